package fetcher

import (
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/darkkaiser/prowl-cli/pkg/strutil"
)

// redactedValue 마스킹된 값을 대신하는 문자열입니다.
const redactedValue = "xxxxx"

// sensitiveQueryKeys 값이 로그에 남으면 안 되는 쿼리 파라미터 이름입니다. (대소문자 무시, 전체 일치)
var sensitiveQueryKeys = []string{
	"apikey", "providerkey", "token",
	"api_key", "provider_key", "key", "secret", "password",
}

// RedactURL URL의 사용자 인증 정보와 민감한 쿼리 파라미터 값을 마스킹한 문자열을 반환합니다.
// 원본 URL은 변경하지 않습니다.
//
//	https://api.prowlapp.com/publicapi/verify?apikey=abc&providerkey=def
//	→ https://api.prowlapp.com/publicapi/verify?apikey=xxxxx&providerkey=xxxxx
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	ru := *u

	if u.User != nil {
		if _, has := u.User.Password(); has {
			ru.User = url.UserPassword(u.User.Username(), redactedValue)
		} else if u.User.Username() != "" {
			ru.User = url.User(redactedValue)
		}
	}

	if u.RawQuery != "" {
		ru.RawQuery = redactValues(ru.Query()).Encode()
	}

	return ru.String()
}

// RedactForm 폼 값에서 민감한 항목을 마스킹한 복사본을 반환합니다.
func RedactForm(form url.Values) url.Values {
	if form == nil {
		return nil
	}

	masked := make(url.Values, len(form))
	for key, values := range form {
		masked[key] = slices.Clone(values)
	}
	return redactValues(masked)
}

// secretPattern 응답 본문의 apikey/providerkey/token 속성 값과 URL 안의 token 파라미터 값을 찾습니다.
var secretPattern = regexp.MustCompile(`(?i)\b(apikey|providerkey|token)(="|=)([^"&\s<>]*)`)

// RedactSecrets 응답 본문처럼 구조가 정해지지 않은 문자열에서 키와 토큰 값을 마스킹합니다.
// 값의 앞뒤 일부만 남겨 로그에서 어떤 키였는지 구분할 수 있게 합니다.
//
//	<retrieve apikey="0123456789abcdef"/> → <retrieve apikey="0123***cdef"/>
func RedactSecrets(s string) string {
	return secretPattern.ReplaceAllStringFunc(s, func(match string) string {
		m := secretPattern.FindStringSubmatch(match)
		return m[1] + m[2] + strutil.MaskSensitiveData(m[3])
	})
}

func redactValues(values url.Values) url.Values {
	for key := range values {
		if isSensitiveKey(key) {
			values.Set(key, redactedValue)
		}
	}
	return values
}

func isSensitiveKey(key string) bool {
	return slices.Contains(sensitiveQueryKeys, strings.ToLower(key))
}

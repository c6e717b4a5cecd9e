// Package strutil은 문자열 처리를 위한 유틸리티 함수들을 제공합니다.
package strutil

import (
	"strconv"
	"strings"
)

// Integer 모든 정수 타입을 포괄하는 제네릭 인터페이스
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// FormatCommas 숫자를 천 단위 구분 기호(,)가 포함된 문자열로 변환합니다.
// 예: 1234567 -> "1,234,567"
func FormatCommas[T Integer](num T) string {
	var str string
	if num < 0 {
		str = strconv.FormatInt(int64(num), 10)
	} else {
		str = strconv.FormatUint(uint64(num), 10)
	}

	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}

	if len(str) <= 3 {
		return sign + str
	}

	var builder strings.Builder
	builder.Grow(len(sign) + len(str) + (len(str)-1)/3)
	builder.WriteString(sign)

	// 첫 번째 그룹 (1~3자리)
	head := len(str) % 3
	if head == 0 {
		head = 3
	}
	builder.WriteString(str[:head])

	for i := head; i < len(str); i += 3 {
		builder.WriteByte(',')
		builder.WriteString(str[i : i+3])
	}

	return builder.String()
}

// SplitAndTrim 주어진 구분자로 문자열을 분리한 후, 각 항목의 앞뒤 공백을 제거하고 빈 문자열을 제외한 슬라이스를 반환합니다.
// 결과가 없으면 nil을 반환합니다.
// 예: "a, , b,c" (구분자 ",") -> ["a", "b", "c"]
func SplitAndTrim(s, sep string) []string {
	var result []string
	for token := range strings.SplitSeq(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// MaskKey 화면에 표시할 API 키를 마스킹합니다.
//
// 8바이트 이하의 키는 같은 길이의 '*'로 모두 가리고,
// 그보다 긴 키는 앞 4자와 뒤 4자만 남깁니다. 예: "abcd...wxyz"
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// MaskSensitiveData 로그에 남길 토큰이나 키 같은 민감 정보를 마스킹합니다.
func MaskSensitiveData(data string) string {
	if data == "" {
		return ""
	}

	// 3자 이하는 전체 마스킹
	if len(data) <= 3 {
		return "***"
	}

	// 앞 4자만 표시하고 나머지는 마스킹
	if len(data) <= 12 {
		return data[:4] + "***"
	}

	return data[:4] + "***" + data[len(data)-4:]
}

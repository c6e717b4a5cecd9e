// Package prowl Prowl 공개 API(https://api.prowlapp.com/publicapi)의 클라이언트입니다.
//
// 요청 검증, HTTP 요청 구성, XML 응답 디코딩을 담당하며, 모든 실패는 타입이 있는 에러로 반환합니다.
// 재시도나 백오프는 수행하지 않습니다.
package prowl

import (
	"strconv"
	"strings"
)

// DefaultBaseURL Prowl 공개 API의 기본 주소입니다.
const DefaultBaseURL = "https://api.prowlapp.com/publicapi"

// 요청 필드별 최대 길이 (바이트 단위)
const (
	MaxApplicationBytes = 256
	MaxEventBytes       = 1024
	MaxDescriptionBytes = 10000
	MaxURLBytes         = 512
)

// Priority 알림 우선순위입니다. 유효한 값은 -2 ~ 2 입니다.
type Priority int

const (
	PriorityVeryLow   Priority = -2
	PriorityModerate  Priority = -1
	PriorityNormal    Priority = 0
	PriorityHigh      Priority = 1
	PriorityEmergency Priority = 2
)

var priorityNames = map[string]Priority{
	"very-low":  PriorityVeryLow,
	"moderate":  PriorityModerate,
	"normal":    PriorityNormal,
	"high":      PriorityHigh,
	"emergency": PriorityEmergency,
}

// PriorityNames 명령행에서 사용할 수 있는 우선순위 이름 목록입니다. (낮은 순)
var PriorityNames = []string{"very-low", "moderate", "normal", "high", "emergency"}

// ParsePriority 우선순위 이름(very-low, moderate, normal, high, emergency) 또는 숫자를 Priority로 변환합니다.
// 숫자는 범위를 검사하지 않습니다. 범위 검사는 SendRequest.Validate에서 수행합니다.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if p, ok := priorityNames[s]; ok {
		return p, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidPriority
	}
	return Priority(n), nil
}

// String 우선순위의 숫자 표현을 반환합니다.
func (p Priority) String() string {
	return strconv.Itoa(int(p))
}

// SendRequest 알림 발송(/add) 요청입니다.
//
// 필드 선언 순서가 검증 순서입니다.
type SendRequest struct {
	APIKey      string   `form:"apikey"`
	Event       string   `form:"event" validate:"max_bytes=1024"`
	Description string   `form:"description" validate:"max_bytes=10000"`
	URL         string   `form:"url" validate:"max_bytes=512"`
	Application string   `form:"application" validate:"max_bytes=256"`
	Priority    Priority `form:"priority" validate:"priority"`
	ProviderKey string   `form:"providerkey"`
}

// KeyCount 요청에 포함된 API 키의 개수를 반환합니다.
func (r *SendRequest) KeyCount() int {
	return len(strings.Split(r.APIKey, ","))
}

// VerifyRequest API 키 확인(/verify) 요청입니다.
type VerifyRequest struct {
	APIKey      string
	ProviderKey string
}

// TokenRequest 등록 토큰 발급(/retrieve/token) 요청입니다.
type TokenRequest struct {
	ProviderKey string
}

// RegisterRequest 승인된 토큰으로 API 키를 발급받는(/retrieve/apikey) 요청입니다.
type RegisterRequest struct {
	ProviderKey string
	Token       string
}

// Result 성공한 API 호출의 결과입니다.
//
// send/verify 응답에는 Code, Remaining, ResetDate만 채워지고,
// 토큰 발급 응답에는 Token과 TokenURL, API 키 발급 응답에는 APIKey만 채워집니다.
type Result struct {
	Code      int
	Remaining *int
	ResetDate string
	Token     string
	TokenURL  string
	APIKey    string
}

// JoinAPIKeys 기본 API 키 뒤에 추가 키들을 순서대로 쉼표로 이어 붙입니다. 중복은 제거하지 않습니다.
func JoinAPIKeys(primary string, additional []string) string {
	keys := make([]string, 0, len(additional)+1)
	keys = append(keys, primary)
	keys = append(keys, additional...)
	return strings.Join(keys, ",")
}

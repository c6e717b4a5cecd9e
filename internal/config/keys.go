package config

import (
	"slices"

	"github.com/iancoleman/strcase"
)

// 설정 파일, 환경 변수, 명령행 플래그가 공유하는 설정 키 이름입니다.
const (
	KeyAPIKey      = "api_key"
	KeyProviderKey = "provider_key"
	KeyApplication = "application"
)

// EnvPrefix 설정 값을 읽어 들이는 환경 변수의 공통 접두사입니다.
const EnvPrefix = "PROWL_"

// Keys 사용자가 설정할 수 있는 키 목록입니다. 순서는 에러 메시지와 출력 순서를 따릅니다.
var Keys = []string{KeyAPIKey, KeyProviderKey, KeyApplication}

// IsValidKey 주어진 이름이 설정 가능한 키인지 확인합니다.
func IsValidKey(key string) bool {
	return slices.Contains(Keys, key)
}

// EnvVar 설정 키에 대응하는 환경 변수 이름을 반환합니다. 예: "api_key" -> "PROWL_API_KEY"
func EnvVar(key string) string {
	return EnvPrefix + strcase.ToScreamingSnake(key)
}

// FlagName 설정 키에 대응하는 명령행 플래그 이름을 반환합니다. 예: "api_key" -> "api-key"
func FlagName(key string) string {
	return strcase.ToKebab(key)
}

// keyForEnvVar 환경 변수 이름을 설정 키로 되돌립니다. 알 수 없는 변수이면 빈 문자열을 반환합니다.
func keyForEnvVar(name string) string {
	for _, key := range Keys {
		if EnvVar(key) == name {
			return key
		}
	}
	return ""
}

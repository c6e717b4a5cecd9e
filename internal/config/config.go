// Package config 설정 파일, 환경 변수, 명령행 값을 병합하여 실행 시점의 유효 설정을 결정합니다.
package config

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 설정 디렉토리 이름으로 사용하는 애플리케이션 식별자입니다.
	AppName = "prowl"

	// DefaultFilename 설정 파일 이름입니다.
	DefaultFilename = "config.json"

	// DefaultApplication 어떤 소스에서도 application 값을 제공하지 않을 때 사용하는 기본값입니다.
	DefaultApplication = "prowl-cli"
)

// Config 설정 파일에 저장되는 값입니다. 모든 필드는 선택 사항이며, 빈 문자열은 '설정되지 않음'을 뜻합니다.
type Config struct {
	APIKey      string `json:"api_key,omitempty"`
	ProviderKey string `json:"provider_key,omitempty"`
	Application string `json:"application,omitempty"`
}

// Set 키 이름으로 필드 값을 변경합니다. 알 수 없는 키이면 false를 반환합니다.
func (c *Config) Set(key, value string) bool {
	switch key {
	case KeyAPIKey:
		c.APIKey = value
	case KeyProviderKey:
		c.ProviderKey = value
	case KeyApplication:
		c.Application = value
	default:
		return false
	}
	return true
}

// Get 키 이름으로 필드 값을 조회합니다.
func (c *Config) Get(key string) string {
	switch key {
	case KeyAPIKey:
		return c.APIKey
	case KeyProviderKey:
		return c.ProviderKey
	case KeyApplication:
		return c.Application
	}
	return ""
}

// strictUnmarshalConf 정의되지 않은 키를 에러로 취급하는 koanf 언마샬 설정을 반환합니다.
// 값이 문자열이 아니면 변환하지 않고 에러로 처리합니다.
func strictUnmarshalConf() koanf.UnmarshalConf {
	return koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: false,
		},
	}
}

// fileUnmarshalConf 설정 파일용 koanf 언마샬 설정을 반환합니다.
//
// 알 수 없는 키는 에러로 처리하지 않고 md.Unused에 기록합니다.
// 알려진 키의 값이 문자열이 아니면 에러입니다.
func fileUnmarshalConf(md *mapstructure.Metadata) koanf.UnmarshalConf {
	return koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			Metadata:         md,
			WeaklyTypedInput: false,
		},
	}
}

package config

import (
	apperrors "github.com/darkkaiser/prowl-cli/internal/pkg/errors"
	"github.com/darkkaiser/prowl-cli/pkg/log"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Loader 저장된 설정을 읽어오는 기능을 정의합니다. *Store가 이를 구현합니다.
type Loader interface {
	Path() string
	Load() (Config, error)
}

// ResolvedConfig 한 번의 실행 동안 사용할 유효 설정입니다. 디스크에 저장되지 않습니다.
type ResolvedConfig struct {
	APIKey      string `json:"api_key"`
	ProviderKey string `json:"provider_key"`
	Application string `json:"application"`
}

// RequireAPIKey API 키를 반환합니다. 설정되지 않았으면 ErrMissingAPIKey를 반환합니다.
func (r *ResolvedConfig) RequireAPIKey() (string, error) {
	if r.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	return r.APIKey, nil
}

// RequireProviderKey Provider 키를 반환합니다. 설정되지 않았으면 ErrMissingProviderKey를 반환합니다.
func (r *ResolvedConfig) RequireProviderKey() (string, error) {
	if r.ProviderKey == "" {
		return "", ErrMissingProviderKey
	}
	return r.ProviderKey, nil
}

// Resolve 네 단계의 설정 소스를 병합하여 유효 설정을 만듭니다. 뒤의 단계가 앞의 단계를 덮어씁니다.
//
//  1. 기본값 (application = "prowl-cli")
//  2. 설정 파일 (읽기 또는 파싱에 실패하면 경고 로그만 남기고 건너뜀)
//  3. 환경 변수 (PROWL_API_KEY, PROWL_PROVIDER_KEY, PROWL_APPLICATION)
//  4. 명령행에서 명시한 값 (explicit)
//
// 모든 단계에서 빈 문자열은 값이 없는 것으로 취급합니다. 키가 없다는 이유로 실패하지 않습니다.
func Resolve(loader Loader, explicit Config) (*ResolvedConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		KeyApplication: DefaultApplication,
	}, "."), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "기본 설정 로드에 실패했습니다")
	}

	if loader != nil {
		fileConfig, err := loader.Load()
		if err != nil {
			log.WithComponentAndFields("config", log.Fields{
				"path":  loader.Path(),
				"error": err,
			}).Warn("설정 파일을 읽을 수 없어 무시합니다")
		} else if err := k.Load(structs.Provider(fileConfig, "json"), nil); err != nil {
			return nil, apperrors.Wrap(err, apperrors.Internal, "설정 파일 값 병합에 실패했습니다")
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(name, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return keyForEnvVar(name), value
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "환경 변수 로드에 실패했습니다")
	}

	if err := k.Load(structs.Provider(explicit, "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "명령행 설정 값 병합에 실패했습니다")
	}

	var resolved ResolvedConfig
	if err := k.UnmarshalWithConf("", &resolved, strictUnmarshalConf()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "유효 설정을 구성하는데 실패했습니다")
	}

	log.WithComponentAndFields("config", log.Fields{
		"api_key_set":      resolved.APIKey != "",
		"provider_key_set": resolved.ProviderKey != "",
		"application":      resolved.Application,
	}).Debug("유효 설정 결정 완료")

	return &resolved, nil
}

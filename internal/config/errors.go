package config

import (
	apperrors "github.com/darkkaiser/prowl-cli/internal/pkg/errors"
)

var (
	// ErrMissingAPIKey API 키가 명령행, 환경 변수, 설정 파일 어디에도 없을 때 반환됩니다.
	ErrMissingAPIKey = apperrors.New(apperrors.Unauthorized, "No API key provided. Set via --api-key, PROWL_API_KEY env var, or config file")

	// ErrMissingProviderKey Provider 키가 없을 때 반환됩니다.
	ErrMissingProviderKey = apperrors.New(apperrors.Unauthorized, "No provider key provided. Set via --provider-key or PROWL_PROVIDER_KEY env var")
)

// configErrorPrefix 설정 관련 에러 메시지의 공통 접두사입니다.
const configErrorPrefix = "Config file error: "

func newConfigError(format string, args ...any) error {
	return apperrors.Newf(apperrors.Config, configErrorPrefix+format, args...)
}

func wrapConfigError(err error, format string, args ...any) error {
	return apperrors.Wrapf(err, apperrors.Config, configErrorPrefix+format, args...)
}

func wrapIOError(err error) error {
	return apperrors.Wrap(err, apperrors.System, "IO error")
}

package fetcher

import (
	apperrors "github.com/darkkaiser/prowl-cli/internal/pkg/errors"
)

// NewErrResponseBodyTooLarge Prowl 응답 본문을 읽는 도중 크기 제한을 넘었을 때의 에러를 생성합니다.
func NewErrResponseBodyTooLarge(endpoint string, limit int64) error {
	return apperrors.Newf(apperrors.Transport, "Prowl response from %s exceeds %d bytes", endpoint, limit)
}

// NewErrResponseBodyTooLargeByContentLength Content-Length 헤더만으로 크기 제한 초과를 판단했을 때의 에러를 생성합니다.
func NewErrResponseBodyTooLargeByContentLength(endpoint string, contentLength, limit int64) error {
	return apperrors.Newf(apperrors.Transport, "Prowl response from %s too large: Content-Length %d exceeds %d bytes", endpoint, contentLength, limit)
}

// Package exitcode 명령 실행 결과(에러)를 프로세스 종료 코드로 변환합니다.
package exitcode

import (
	"errors"

	apperrors "github.com/darkkaiser/prowl-cli/internal/pkg/errors"
	"github.com/darkkaiser/prowl-cli/internal/prowl"
)

// 종료 코드
const (
	Success          = 0
	Failure          = 1
	Unauthorized     = 2
	RateLimited      = 3
	TokenNotApproved = 4
)

// FromError 에러를 종료 코드로 변환합니다.
//
//	nil                              → 0
//	API 에러 401, API 키/Provider 키 누락 → 2
//	API 에러 406 (호출 한도 초과)         → 3
//	API 에러 409, 토큰 미승인             → 4
//	그 외                              → 1
func FromError(err error) int {
	if err == nil {
		return Success
	}

	var apiErr *prowl.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401:
			return Unauthorized
		case 406:
			return RateLimited
		case 409:
			return TokenNotApproved
		default:
			return Failure
		}
	}

	if errors.Is(err, prowl.ErrTokenNotApproved) {
		return TokenNotApproved
	}

	if apperrors.Is(err, apperrors.Unauthorized) {
		return Unauthorized
	}

	return Failure
}

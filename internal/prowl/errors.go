package prowl

import (
	"fmt"

	apperrors "github.com/darkkaiser/prowl-cli/internal/pkg/errors"
)

var (
	// ErrTokenNotApproved 사용자가 아직 등록 토큰을 승인하지 않았을 때 반환됩니다.
	// 토큰/API 키 발급 응답의 409 에러만 이 값으로 변환됩니다.
	ErrTokenNotApproved = apperrors.New(apperrors.Unauthorized, "Token not yet approved")

	// ErrInvalidPriority 우선순위가 -2 ~ 2 범위를 벗어났을 때 반환됩니다.
	ErrInvalidPriority = apperrors.New(apperrors.InvalidInput, "Invalid priority: must be between -2 and 2")
)

// APIError Prowl API가 <error> 요소로 응답한 실패입니다.
type APIError struct {
	Code    int
	Message string
}

// NewAPIError API 에러를 생성합니다. 메시지가 비어 있으면 에러 코드로부터 설명을 만듭니다.
func NewAPIError(code int, message string) *APIError {
	if message == "" {
		message = describeCode(code)
	}
	return &APIError{Code: code, Message: message}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Code, e.Message)
}

func describeCode(code int) string {
	switch code {
	case 400:
		return "Bad request - invalid parameters"
	case 401:
		return "Unauthorized - invalid API key"
	case 406:
		return "Not acceptable - rate limit exceeded"
	case 409:
		return "Not approved - token has not been approved yet"
	case 500:
		return "Internal server error"
	default:
		return fmt.Sprintf("Unknown error code: %d", code)
	}
}

// TooLongError 요청 필드가 허용된 바이트 길이를 넘었을 때 반환됩니다.
type TooLongError struct {
	Field  string
	Length int
	Max    int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("Message too long: %d bytes (max %d)", e.Length, e.Max)
}

func newTransportError(err error) error {
	return apperrors.Wrap(err, apperrors.Transport, "HTTP request failed")
}

func newParseError(format string, args ...any) error {
	return apperrors.Newf(apperrors.ParsingFailed, "XML parsing failed: "+format, args...)
}

func wrapParseError(err error) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, "XML parsing failed")
}

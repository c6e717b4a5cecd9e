package prowl

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/darkkaiser/prowl-cli/internal/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator 요청 검증에 사용할 validator 인스턴스를 반환합니다.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		// 에러에 표시되는 필드명은 API 파라미터 이름(form 태그)을 사용합니다.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("form"); name != "" {
				return name
			}
			return fld.Name
		})

		// 기본 제공되는 max 태그는 문자열 길이를 룬 단위로 세므로, 바이트 단위 검사를 별도로 등록합니다.
		_ = validate.RegisterValidation("max_bytes", func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(fl.Field().String()) <= limit
		})

		_ = validate.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
			p := fl.Field().Int()
			return p >= int64(PriorityVeryLow) && p <= int64(PriorityEmergency)
		})
	})

	return validate
}

// Validate 요청을 네트워크로 보내기 전에 필드 길이와 우선순위 범위를 검사합니다.
//
// 검사 순서는 event, description, url, application, priority 이며 처음 발견한 문제 하나만 반환합니다.
// 길이 초과는 *TooLongError, 우선순위 범위 오류는 ErrInvalidPriority 입니다.
func (r *SendRequest) Validate() error {
	err := getValidator().Struct(r)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !apperrors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.Internal, "request validation failed")
	}

	fieldErr := validationErrors[0]
	switch fieldErr.Tag() {
	case "max_bytes":
		limit, _ := strconv.Atoi(fieldErr.Param())
		return &TooLongError{
			Field:  fieldErr.Field(),
			Length: len(fieldErr.Value().(string)),
			Max:    limit,
		}

	case "priority":
		return ErrInvalidPriority

	default:
		return apperrors.Newf(apperrors.InvalidInput, "invalid %s", fieldErr.Field())
	}
}

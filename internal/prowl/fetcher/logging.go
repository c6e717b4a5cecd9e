package fetcher

import (
	"net/http"
	"time"

	"github.com/darkkaiser/prowl-cli/pkg/log"
	"github.com/google/uuid"
)

// RequestIDHeader 요청마다 부여하는 식별자를 담는 헤더 이름입니다.
const RequestIDHeader = "X-Request-Id"

// LoggingFetcher HTTP 요청의 메서드, 마스킹된 URL, 상태 코드, 소요 시간을 로그로 남기는 미들웨어입니다.
type LoggingFetcher struct {
	delegate Fetcher
}

// NewLoggingFetcher 새로운 LoggingFetcher를 생성합니다.
func NewLoggingFetcher(delegate Fetcher) *LoggingFetcher {
	return &LoggingFetcher{
		delegate: delegate,
	}
}

// Do HTTP 요청을 수행하고 결과를 로그로 남깁니다.
//
// 요청에 X-Request-Id 헤더가 없으면 UUID를 생성하여 추가하고, 같은 값을 로그 필드(request_id)에 기록합니다.
func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	requestID := req.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()

	resp, err := f.delegate.Do(req)

	fields := log.Fields{
		"request_id": requestID,
		"method":     req.Method,
		"url":        RedactURL(req.URL),
		"duration":   time.Since(start).String(),
	}
	if resp != nil {
		fields["status"] = resp.Status
		fields["status_code"] = resp.StatusCode
	}

	if err != nil {
		fields["error"] = err.Error()

		log.WithComponentAndFields(component, fields).
			WithContext(req.Context()).
			Error("HTTP 요청 실패")

		return resp, err
	}

	log.WithComponentAndFields(component, fields).
		WithContext(req.Context()).
		Debug("HTTP 요청 완료")

	return resp, nil
}

// Package fetcher Prowl API 호출에 사용하는 HTTP 전송 계층을 제공합니다.
//
// 기본 HTTP 클라이언트(HTTPFetcher)를 로깅(LoggingFetcher), 응답 크기 제한(MaxBytesFetcher) 데코레이터로
// 감싸서 하나의 Fetcher 체인을 구성합니다. 재시도는 수행하지 않습니다.
package fetcher

import (
	"io"
	"net/http"
	"time"
)

// component Fetcher 로깅용 컴포넌트 이름
const component = "prowl.fetcher"

const (
	// DefaultTimeout 요청 하나에 허용하는 전체 시간입니다.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBytes 응답 본문의 최대 크기입니다 (1MB). Prowl API 응답은 수백 바이트 수준입니다.
	DefaultMaxBytes = 1024 * 1024

	// maxDrainBytes 커넥션 재사용을 위해 Body를 비울 때 읽을 최대 바이트 수 (64KB)
	maxDrainBytes = 64 * 1024
)

// Fetcher HTTP 요청을 수행하는 핵심 인터페이스입니다.
//
// 반환된 응답 객체의 Body는 호출자가 닫아야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config Fetcher 체인 구성 값입니다. 0 값 필드는 기본값을 사용합니다.
type Config struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// New 설정에 따라 HTTPFetcher → MaxBytesFetcher → LoggingFetcher 순서로 감싼 Fetcher를 생성합니다.
func New(cfg Config) Fetcher {
	var opts []Option
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.UserAgent))
	}

	maxBytes := cfg.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}

	var f Fetcher = NewHTTPFetcher(opts...)
	f = NewMaxBytesFetcher(f, maxBytes)
	return NewLoggingFetcher(f)
}

// drainAndCloseBody HTTP 커넥션 재사용을 위해 응답 Body를 일정량 읽어서 버린 뒤 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrainBytes))
}

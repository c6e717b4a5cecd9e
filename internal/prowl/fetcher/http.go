package fetcher

import (
	"net/http"
	"time"

	"github.com/darkkaiser/prowl-cli/internal/pkg/version"
)

// HTTPFetcher 타임아웃과 User-Agent 자동 추가 기능이 내장된 HTTP 클라이언트 구현체입니다.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// Option HTTPFetcher의 설정을 변경하기 위한 함수 타입입니다.
type Option func(*HTTPFetcher)

// WithTimeout HTTP 요청 전체(연결, 응답 헤더, 본문 읽기)에 대한 타임아웃을 설정합니다.
// 0 이하의 값은 타임아웃을 비활성화합니다.
func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		h.client.Timeout = timeout
	}
}

// WithUserAgent 요청에 User-Agent 헤더가 없을 때 사용할 값을 설정합니다.
func WithUserAgent(ua string) Option {
	return func(h *HTTPFetcher) {
		h.userAgent = ua
	}
}

// WithTransport 내부 http.Client가 사용할 RoundTripper를 교체합니다.
func WithTransport(rt http.RoundTripper) Option {
	return func(h *HTTPFetcher) {
		h.client.Transport = rt
	}
}

// NewHTTPFetcher 기본 타임아웃(30초)과 "prowl-cli/<version>" User-Agent가 설정된 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	h := &HTTPFetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: version.UserAgent(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Do HTTP 요청을 실행합니다. 요청 헤더에 User-Agent가 없으면 설정된 값을 추가합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" && h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	return h.client.Do(req)
}

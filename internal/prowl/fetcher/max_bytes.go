package fetcher

import (
	"io"
	"net/http"
)

// MaxBytesFetcher Prowl 응답 본문의 크기를 제한합니다.
//
// Prowl은 짧은 XML 한 줄로 응답하므로, 제한을 넘는 본문은 중간 프록시나 캡티브 포털이 내려준 페이지로 보고 거부합니다.
// Content-Length가 제한을 넘으면 본문을 읽지 않고 바로 실패하며, 헤더가 없으면 읽는 도중에 제한을 확인합니다.
type MaxBytesFetcher struct {
	next  Fetcher
	limit int64
}

// NewMaxBytesFetcher limit 바이트까지만 읽도록 next를 감쌉니다. limit이 0 이하이면 DefaultMaxBytes를 사용합니다.
func NewMaxBytesFetcher(next Fetcher, limit int64) *MaxBytesFetcher {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	return &MaxBytesFetcher{next: next, limit: limit}
}

// Do 요청을 전달하고 응답 본문을 limitedBody로 교체합니다.
func (f *MaxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.next.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	endpoint := req.URL.Path
	if resp.ContentLength > f.limit {
		drainAndCloseBody(resp.Body)
		return nil, NewErrResponseBodyTooLargeByContentLength(endpoint, resp.ContentLength, f.limit)
	}

	if resp.Body != nil {
		resp.Body = &limitedBody{
			ReadCloser: resp.Body,
			endpoint:   endpoint,
			limit:      f.limit,
			remaining:  f.limit,
		}
	}

	return resp, nil
}

// limitedBody 남은 허용량을 넘는 바이트가 하나라도 들어오면 이후의 모든 읽기를 실패시킵니다.
type limitedBody struct {
	io.ReadCloser

	endpoint  string
	limit     int64
	remaining int64
	exceeded  bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	if b.exceeded {
		return 0, NewErrResponseBodyTooLarge(b.endpoint, b.limit)
	}

	// 제한을 넘었는지 알 수 있도록 남은 허용량보다 1바이트 더 읽습니다.
	if int64(len(p)) > b.remaining+1 {
		p = p[:b.remaining+1]
	}

	n, err := b.ReadCloser.Read(p)
	if int64(n) > b.remaining {
		n = int(b.remaining)
		b.remaining = 0
		b.exceeded = true
		return n, NewErrResponseBodyTooLarge(b.endpoint, b.limit)
	}

	b.remaining -= int64(n)
	return n, err
}

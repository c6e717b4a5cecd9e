package prowl

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sanity-io/litter"

	"github.com/darkkaiser/prowl-cli/internal/pkg/version"
	"github.com/darkkaiser/prowl-cli/internal/prowl/fetcher"
	applog "github.com/darkkaiser/prowl-cli/pkg/log"
	"github.com/darkkaiser/prowl-cli/pkg/strutil"
)

const component = "prowl.client"

// Client Prowl API 클라이언트입니다. 호출 사이에 상태를 유지하지 않으므로 여러 고루틴에서 공유해도 안전합니다.
type Client struct {
	baseURL string
	fetcher fetcher.Fetcher
}

// ClientOption Client의 설정을 변경하기 위한 함수 타입입니다.
type ClientOption func(*Client)

// WithBaseURL API 주소를 변경합니다. 끝의 '/'는 제거됩니다.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithFetcher HTTP 전송 계층을 교체합니다.
func WithFetcher(f fetcher.Fetcher) ClientOption {
	return func(c *Client) {
		c.fetcher = f
	}
}

// NewClient 기본 API 주소와 기본 Fetcher 체인(30초 타임아웃, 1MB 응답 제한)을 사용하는 Client를 생성합니다.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.fetcher == nil {
		c.fetcher = fetcher.New(fetcher.Config{
			Timeout:   fetcher.DefaultTimeout,
			MaxBytes:  fetcher.DefaultMaxBytes,
			UserAgent: version.UserAgent(),
		})
	}

	return c
}

// BaseURL 요청에 사용하는 API 주소를 반환합니다.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send 알림을 발송합니다.
//
// 요청은 먼저 검증되며, 검증에 실패하면 네트워크 요청 없이 에러를 반환합니다.
func (c *Client) Send(ctx context.Context, req *SendRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("apikey", req.APIKey)
	form.Set("application", req.Application)
	form.Set("event", req.Event)
	form.Set("description", req.Description)
	form.Set("priority", req.Priority.String())
	if req.URL != "" {
		form.Set("url", req.URL)
	}
	if req.ProviderKey != "" {
		form.Set("providerkey", req.ProviderKey)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"form": fetcher.RedactForm(form).Encode(),
	}).Debug("알림 발송 요청")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/add", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, newTransportError(err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}
	return traceResult(ParseResponse(body))
}

// Verify API 키가 유효한지 확인합니다.
func (c *Client) Verify(ctx context.Context, req *VerifyRequest) (*Result, error) {
	query := url.Values{}
	query.Set("apikey", req.APIKey)
	if req.ProviderKey != "" {
		query.Set("providerkey", req.ProviderKey)
	}

	body, err := c.get(ctx, "/verify", query)
	if err != nil {
		return nil, err
	}
	return traceResult(ParseResponse(body))
}

// RetrieveToken 새 API 키 등록 절차를 시작하기 위한 등록 토큰과 승인 URL을 발급받습니다.
func (c *Client) RetrieveToken(ctx context.Context, req *TokenRequest) (*Result, error) {
	query := url.Values{}
	query.Set("providerkey", req.ProviderKey)

	body, err := c.get(ctx, "/retrieve/token", query)
	if err != nil {
		return nil, err
	}
	return traceResult(ParseTokenResponse(body))
}

// RetrieveAPIKey 사용자가 승인한 등록 토큰으로 API 키를 발급받습니다.
// 아직 승인되지 않았다면 ErrTokenNotApproved를 반환합니다.
func (c *Client) RetrieveAPIKey(ctx context.Context, req *RegisterRequest) (*Result, error) {
	query := url.Values{}
	query.Set("providerkey", req.ProviderKey)
	query.Set("token", req.Token)

	body, err := c.get(ctx, "/retrieve/apikey", query)
	if err != nil {
		return nil, err
	}
	return traceResult(ParseTokenResponse(body))
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, newTransportError(err)
	}
	return c.do(httpReq)
}

// do 요청을 전송하고 응답 본문을 읽어 반환합니다.
// Prowl은 실패 시에도 XML 본문을 내려주므로 HTTP 상태 코드와 관계없이 본문을 그대로 반환합니다.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.fetcher.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(err)
	}

	if applog.IsLevelEnabled(applog.TraceLevel) {
		applog.WithComponentAndFields(component, applog.Fields{
			"status_code": resp.StatusCode,
			"body":        fetcher.RedactSecrets(string(body)),
		}).Trace("응답 수신")
	}

	return body, nil
}

func traceResult(result *Result, err error) (*Result, error) {
	if err == nil && applog.IsLevelEnabled(applog.TraceLevel) {
		applog.WithComponent(component).Tracef("응답 해석 결과:\n%s", litter.Sdump(redactResult(result)))
	}
	return result, err
}

// redactResult 로그에 남길 수 있도록 키와 토큰을 마스킹한 복사본을 반환합니다.
func redactResult(result *Result) *Result {
	masked := *result
	masked.APIKey = strutil.MaskSensitiveData(masked.APIKey)
	masked.Token = strutil.MaskSensitiveData(masked.Token)
	masked.TokenURL = fetcher.RedactSecrets(masked.TokenURL)
	return &masked
}

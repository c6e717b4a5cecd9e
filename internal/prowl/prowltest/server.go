// Package prowltest 테스트에서 사용할 Prowl API 가짜 서버를 제공합니다.
//
// 실제 Prowl 서버와 같은 XML 응답을 내려주며, API 키별 시간당 호출 제한(Token Bucket)과
// 등록 토큰 승인 절차를 흉내 냅니다.
package prowltest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// DefaultHourlyLimit API 키 하나당 시간당 허용 호출 수입니다.
const DefaultHourlyLimit = 1000

const contentTypeXML = "text/xml; charset=utf-8"

// Request 서버가 받은 요청 기록입니다.
type Request struct {
	Method    string
	Path      string
	Params    url.Values
	UserAgent string
}

// Server Prowl API 가짜 서버입니다.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	apiKeys      map[string]bool
	providerKeys map[string]bool
	tokens       map[string]*registration
	limiters     map[string]*rate.Limiter
	hourlyLimit  int
	overrides    map[string]rawResponse
	requests     []Request
	resetDate    int64
}

type registration struct {
	approved bool
	apiKey   string
}

type rawResponse struct {
	status int
	body   string
}

// Option Server의 설정을 변경하기 위한 함수 타입입니다.
type Option func(*Server)

// WithAPIKeys 유효한 API 키를 등록합니다.
func WithAPIKeys(keys ...string) Option {
	return func(s *Server) {
		for _, k := range keys {
			s.apiKeys[k] = true
		}
	}
}

// WithProviderKeys 유효한 Provider 키를 등록합니다.
func WithProviderKeys(keys ...string) Option {
	return func(s *Server) {
		for _, k := range keys {
			s.providerKeys[k] = true
		}
	}
}

// WithHourlyLimit API 키 하나당 시간당 허용 호출 수를 설정합니다.
func WithHourlyLimit(limit int) Option {
	return func(s *Server) {
		s.hourlyLimit = limit
	}
}

// NewServer 가짜 서버를 시작합니다. 테스트가 끝나면 Close를 호출해야 합니다.
func NewServer(opts ...Option) *Server {
	s := &Server{
		apiKeys:      make(map[string]bool),
		providerKeys: make(map[string]bool),
		tokens:       make(map[string]*registration),
		limiters:     make(map[string]*rate.Limiter),
		hourlyLimit:  DefaultHourlyLimit,
		overrides:    make(map[string]rawResponse),
		resetDate:    time.Now().Add(time.Hour).Unix(),
	}

	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(s.record, s.override)

	e.POST("/publicapi/add", s.handleAdd)
	e.GET("/publicapi/verify", s.handleVerify)
	e.GET("/publicapi/retrieve/token", s.handleRetrieveToken)
	e.GET("/publicapi/retrieve/apikey", s.handleRetrieveAPIKey)

	s.Server = httptest.NewServer(e)

	return s
}

// BaseURL 클라이언트에 전달할 API 주소입니다.
func (s *Server) BaseURL() string {
	return s.URL + "/publicapi"
}

// Requests 지금까지 받은 요청 목록의 복사본을 반환합니다.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.requests...)
}

// Respond 지정한 경로(예: "/add")에 대해 상태 코드와 본문을 그대로 응답하도록 고정합니다.
func (s *Server) Respond(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides["/publicapi"+path] = rawResponse{status: status, body: body}
}

// Approve 사용자가 등록 토큰을 승인한 것처럼 처리하고, 발급될 API 키를 반환합니다.
func (s *Server) Approve(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.tokens[token]
	if !ok {
		return "", false
	}
	reg.approved = true
	s.apiKeys[reg.apiKey] = true

	return reg.apiKey, true
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		params := url.Values{}
		if req.Method == http.MethodPost {
			form, err := c.FormParams()
			if err != nil {
				return err
			}
			params = form
		} else {
			params = c.QueryParams()
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    req.Method,
			Path:      req.URL.Path,
			Params:    params,
			UserAgent: req.UserAgent(),
		})
		s.mu.Unlock()

		return next(c)
	}
}

func (s *Server) override(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		resp, ok := s.overrides[c.Request().URL.Path]
		s.mu.Unlock()

		if ok {
			return c.Blob(resp.status, contentTypeXML, []byte(resp.body))
		}
		return next(c)
	}
}

func (s *Server) handleAdd(c echo.Context) error {
	return s.handleCall(c, c.FormValue("apikey"))
}

func (s *Server) handleVerify(c echo.Context) error {
	return s.handleCall(c, c.QueryParam("apikey"))
}

// handleCall 발송/확인 요청을 처리합니다. 쉼표로 나열된 키가 모두 유효해야 하며, 첫 번째 키의 호출 한도를 차감합니다.
func (s *Server) handleCall(c echo.Context, apiKeys string) error {
	keys := strings.Split(apiKeys, ",")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		if !s.apiKeys[strings.TrimSpace(k)] {
			return writeError(c, http.StatusUnauthorized, "Invalid API key")
		}
	}

	limiter := s.limiterFor(keys[0])
	if !limiter.Allow() {
		return writeError(c, http.StatusNotAcceptable, "Your IP address has exceeded the API limit")
	}

	return c.Blob(http.StatusOK, contentTypeXML, []byte(fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>`+"\n"+`<prowl><success code="200" remaining="%d" resetdate="%d"/></prowl>`,
		int(limiter.Tokens()), s.resetDate,
	)))
}

func (s *Server) handleRetrieveToken(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.providerKeys[c.QueryParam("providerkey")] {
		return writeError(c, http.StatusUnauthorized, "Invalid provider key")
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	s.tokens[token] = &registration{apiKey: strings.ReplaceAll(uuid.NewString(), "-", "")}

	return c.Blob(http.StatusOK, contentTypeXML, []byte(fmt.Sprintf(
		`<prowl><retrieve token="%s" url="https://www.prowlapp.com/retrieve.php?token=%s"/></prowl>`,
		token, token,
	)))
}

func (s *Server) handleRetrieveAPIKey(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.providerKeys[c.QueryParam("providerkey")] {
		return writeError(c, http.StatusUnauthorized, "Invalid provider key")
	}

	reg, ok := s.tokens[c.QueryParam("token")]
	if !ok {
		return writeError(c, http.StatusBadRequest, "Invalid token")
	}
	if !reg.approved {
		return writeError(c, http.StatusConflict, "Token has not been approved")
	}

	return c.Blob(http.StatusOK, contentTypeXML, []byte(fmt.Sprintf(`<prowl><retrieve apikey="%s"/></prowl>`, reg.apiKey)))
}

// limiterFor API 키별 호출 한도를 반환합니다. 호출 시 s.mu를 잡고 있어야 합니다.
func (s *Server) limiterFor(apiKey string) *rate.Limiter {
	limiter, ok := s.limiters[apiKey]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Hour/time.Duration(s.hourlyLimit)), s.hourlyLimit)
		s.limiters[apiKey] = limiter
	}
	return limiter
}

func writeError(c echo.Context, status int, message string) error {
	return c.Blob(status, contentTypeXML, []byte(fmt.Sprintf(`<prowl><error code="%d">%s</error></prowl>`, status, message)))
}

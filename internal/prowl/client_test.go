package prowl

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/darkkaiser/prowl-cli/internal/pkg/errors"
	"github.com/darkkaiser/prowl-cli/internal/prowl/fetcher"
	"github.com/darkkaiser/prowl-cli/internal/prowl/fetcher/mocks"
	"github.com/darkkaiser/prowl-cli/internal/prowl/prowltest"
)

const (
	testAPIKey      = "0123456789abcdef0123456789abcdef01234567"
	testAPIKey2     = "fedcba9876543210fedcba9876543210fedcba98"
	testProviderKey = "provider0123456789provider0123456789abcd"
)

func newTestServer(t *testing.T, opts ...prowltest.Option) (*prowltest.Server, *Client) {
	t.Helper()

	opts = append([]prowltest.Option{
		prowltest.WithAPIKeys(testAPIKey, testAPIKey2),
		prowltest.WithProviderKeys(testProviderKey),
	}, opts...)

	srv := prowltest.NewServer(opts...)
	t.Cleanup(srv.Close)

	return srv, NewClient(WithBaseURL(srv.BaseURL()))
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewClient()
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.NotNil(t, c.fetcher)

	assert.Equal(t, "http://localhost:1234/publicapi", NewClient(WithBaseURL("http://localhost:1234/publicapi/")).BaseURL())
}

func TestClient_Send(t *testing.T) {
	t.Parallel()

	t.Run("성공", func(t *testing.T) {
		t.Parallel()
		srv, c := newTestServer(t)

		result, err := c.Send(context.Background(), &SendRequest{
			APIKey:      testAPIKey,
			Application: "prowl-cli",
			Event:       "Deploy",
			Description: "v1.2.3 배포 완료",
			Priority:    PriorityHigh,
			URL:         "https://example.com/deploy/123",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, result.Code)
		require.NotNil(t, result.Remaining)
		assert.Equal(t, prowltest.DefaultHourlyLimit-1, *result.Remaining)
		assert.NotEmpty(t, result.ResetDate)

		requests := srv.Requests()
		require.Len(t, requests, 1)
		got := requests[0]
		assert.Equal(t, http.MethodPost, got.Method)
		assert.Equal(t, "/publicapi/add", got.Path)
		assert.Equal(t, testAPIKey, got.Params.Get("apikey"))
		assert.Equal(t, "prowl-cli", got.Params.Get("application"))
		assert.Equal(t, "Deploy", got.Params.Get("event"))
		assert.Equal(t, "v1.2.3 배포 완료", got.Params.Get("description"))
		assert.Equal(t, "1", got.Params.Get("priority"))
		assert.Equal(t, "https://example.com/deploy/123", got.Params.Get("url"))
		assert.False(t, got.Params.Has("providerkey"))
		assert.True(t, strings.HasPrefix(got.UserAgent, "prowl-cli/"), got.UserAgent)
	})

	t.Run("선택 필드 생략", func(t *testing.T) {
		t.Parallel()
		srv, c := newTestServer(t)

		_, err := c.Send(context.Background(), &SendRequest{APIKey: testAPIKey, Application: "a", Event: "e"})
		require.NoError(t, err)

		got := srv.Requests()[0]
		assert.False(t, got.Params.Has("url"))
		assert.False(t, got.Params.Has("providerkey"))
		assert.True(t, got.Params.Has("description"))
		assert.Equal(t, "0", got.Params.Get("priority"))
	})

	t.Run("Provider 키 포함", func(t *testing.T) {
		t.Parallel()
		srv, c := newTestServer(t)

		_, err := c.Send(context.Background(), &SendRequest{APIKey: testAPIKey, ProviderKey: testProviderKey})
		require.NoError(t, err)
		assert.Equal(t, testProviderKey, srv.Requests()[0].Params.Get("providerkey"))
	})

	t.Run("여러 API 키", func(t *testing.T) {
		t.Parallel()
		srv, c := newTestServer(t)

		_, err := c.Send(context.Background(), &SendRequest{APIKey: JoinAPIKeys(testAPIKey, []string{testAPIKey2})})
		require.NoError(t, err)
		assert.Equal(t, testAPIKey+","+testAPIKey2, srv.Requests()[0].Params.Get("apikey"))
	})

	t.Run("잘못된 API 키", func(t *testing.T) {
		t.Parallel()
		_, c := newTestServer(t)

		_, err := c.Send(context.Background(), &SendRequest{APIKey: "invalid"})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 401, apiErr.Code)
		assert.Equal(t, "API error (401): Invalid API key", err.Error())
	})

	t.Run("호출 한도 초과", func(t *testing.T) {
		t.Parallel()
		_, c := newTestServer(t, prowltest.WithHourlyLimit(2))

		req := &SendRequest{APIKey: testAPIKey}
		for want := 1; want >= 0; want-- {
			result, err := c.Send(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, want, *result.Remaining)
		}

		_, err := c.Send(context.Background(), req)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 406, apiErr.Code)
	})

	t.Run("검증 실패 시 요청하지 않음", func(t *testing.T) {
		t.Parallel()
		srv, c := newTestServer(t)

		_, err := c.Send(context.Background(), &SendRequest{APIKey: testAPIKey, Priority: 3})
		assert.ErrorIs(t, err, ErrInvalidPriority)

		_, err = c.Send(context.Background(), &SendRequest{APIKey: testAPIKey, Event: strings.Repeat("x", MaxEventBytes+1)})
		var tooLong *TooLongError
		assert.ErrorAs(t, err, &tooLong)

		assert.Empty(t, srv.Requests())
	})
}

func TestClient_Verify(t *testing.T) {
	t.Parallel()

	t.Run("유효한 키", func(t *testing.T) {
		t.Parallel()
		srv, c := newTestServer(t)

		result, err := c.Verify(context.Background(), &VerifyRequest{APIKey: testAPIKey, ProviderKey: testProviderKey})
		require.NoError(t, err)
		assert.Equal(t, 200, result.Code)

		got := srv.Requests()[0]
		assert.Equal(t, http.MethodGet, got.Method)
		assert.Equal(t, "/publicapi/verify", got.Path)
		assert.Equal(t, testAPIKey, got.Params.Get("apikey"))
		assert.Equal(t, testProviderKey, got.Params.Get("providerkey"))
	})

	t.Run("Provider 키 생략", func(t *testing.T) {
		t.Parallel()
		srv, c := newTestServer(t)

		_, err := c.Verify(context.Background(), &VerifyRequest{APIKey: testAPIKey})
		require.NoError(t, err)
		assert.False(t, srv.Requests()[0].Params.Has("providerkey"))
	})

	t.Run("잘못된 키", func(t *testing.T) {
		t.Parallel()
		_, c := newTestServer(t)

		_, err := c.Verify(context.Background(), &VerifyRequest{APIKey: "nope"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 401, apiErr.Code)
	})
}

func TestClient_RegistrationFlow(t *testing.T) {
	t.Parallel()
	srv, c := newTestServer(t)
	ctx := context.Background()

	token, err := c.RetrieveToken(ctx, &TokenRequest{ProviderKey: testProviderKey})
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)
	assert.Contains(t, token.TokenURL, token.Token)

	// 승인 전
	_, err = c.RetrieveAPIKey(ctx, &RegisterRequest{ProviderKey: testProviderKey, Token: token.Token})
	assert.ErrorIs(t, err, ErrTokenNotApproved)

	apiKey, ok := srv.Approve(token.Token)
	require.True(t, ok)

	// 승인 후
	result, err := c.RetrieveAPIKey(ctx, &RegisterRequest{ProviderKey: testProviderKey, Token: token.Token})
	require.NoError(t, err)
	assert.Equal(t, apiKey, result.APIKey)

	// 발급받은 키로 확인
	_, err = c.Verify(ctx, &VerifyRequest{APIKey: result.APIKey})
	assert.NoError(t, err)

	requests := srv.Requests()
	require.Len(t, requests, 4)
	assert.Equal(t, "/publicapi/retrieve/token", requests[0].Path)
	assert.Equal(t, testProviderKey, requests[0].Params.Get("providerkey"))
	assert.Equal(t, "/publicapi/retrieve/apikey", requests[1].Path)
	assert.Equal(t, token.Token, requests[1].Params.Get("token"))
}

// 주의: 전역 로거의 레벨과 훅을 바꾸므로 t.Parallel()을 사용하지 않습니다.
func TestClient_TraceLogsMaskSecrets(t *testing.T) {
	hook := test.NewGlobal()
	originalLevel := logrus.GetLevel()
	logrus.SetLevel(logrus.TraceLevel)
	t.Cleanup(func() {
		logrus.SetLevel(originalLevel)
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	})

	srv, c := newTestServer(t)
	ctx := context.Background()

	token, err := c.RetrieveToken(ctx, &TokenRequest{ProviderKey: testProviderKey})
	require.NoError(t, err)
	apiKey, ok := srv.Approve(token.Token)
	require.True(t, ok)
	result, err := c.RetrieveAPIKey(ctx, &RegisterRequest{ProviderKey: testProviderKey, Token: token.Token})
	require.NoError(t, err)
	require.Equal(t, apiKey, result.APIKey, "호출자에게는 마스킹되지 않은 값을 반환")

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)

	var traced int
	for _, entry := range entries {
		if entry.Level != logrus.TraceLevel {
			continue
		}
		traced++

		logged := entry.Message
		if body, ok := entry.Data["body"].(string); ok {
			logged += body
		}
		assert.NotContains(t, logged, token.Token)
		assert.NotContains(t, logged, apiKey)
	}
	assert.Positive(t, traced, "응답 본문과 해석 결과가 Trace 레벨로 기록되어야 함")
}

func TestRedactResult(t *testing.T) {
	t.Parallel()

	original := &Result{
		Code:     200,
		APIKey:   "0123456789abcdef",
		Token:    "tk0123456789xyz",
		TokenURL: "https://www.prowlapp.com/retrieve.php?token=tk0123456789xyz",
	}

	masked := redactResult(original)
	assert.Equal(t, "0123***cdef", masked.APIKey)
	assert.Equal(t, "tk01***9xyz", masked.Token)
	assert.Equal(t, "https://www.prowlapp.com/retrieve.php?token=tk01***9xyz", masked.TokenURL)
	assert.Equal(t, 200, masked.Code)
	assert.Equal(t, "0123456789abcdef", original.APIKey, "원본은 변경되지 않아야 함")
}

func TestClient_RetrieveToken_InvalidProviderKey(t *testing.T) {
	t.Parallel()
	_, c := newTestServer(t)

	_, err := c.RetrieveToken(context.Background(), &TokenRequest{ProviderKey: "wrong"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Code)
}

func TestClient_DecodesBodyRegardlessOfStatus(t *testing.T) {
	t.Parallel()

	t.Run("500 상태의 success 본문", func(t *testing.T) {
		t.Parallel()
		srv, c := newTestServer(t)
		srv.Respond("/verify", http.StatusInternalServerError, `<prowl><success code="200"/></prowl>`)

		result, err := c.Verify(context.Background(), &VerifyRequest{APIKey: testAPIKey})
		require.NoError(t, err)
		assert.Equal(t, 200, result.Code)
	})

	t.Run("XML이 아닌 오류 페이지", func(t *testing.T) {
		t.Parallel()
		srv, c := newTestServer(t)
		srv.Respond("/add", http.StatusServiceUnavailable, `<html><body>Service Unavailable`)

		_, err := c.Send(context.Background(), &SendRequest{APIKey: testAPIKey})
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed), "err=%v", err)
	})
}

func TestClient_TransportErrors(t *testing.T) {
	t.Parallel()

	t.Run("전송 실패", func(t *testing.T) {
		t.Parallel()

		mockFetcher := mocks.NewMockFetcher()
		mockFetcher.On("Do", mock.Anything).Return(nil, errors.New("connection refused"))

		c := NewClient(WithFetcher(mockFetcher))
		_, err := c.Verify(context.Background(), &VerifyRequest{APIKey: testAPIKey})

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Transport))
		assert.Equal(t, "HTTP request failed: connection refused", err.Error())
		mockFetcher.AssertExpectations(t)
	})

	t.Run("취소된 컨텍스트", func(t *testing.T) {
		t.Parallel()
		_, c := newTestServer(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Verify(ctx, &VerifyRequest{APIKey: testAPIKey})
		assert.True(t, apperrors.Is(err, apperrors.Transport))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("응답 크기 제한 초과", func(t *testing.T) {
		t.Parallel()

		srv := prowltest.NewServer()
		t.Cleanup(srv.Close)
		srv.Respond("/verify", http.StatusOK, `<prowl><error code="500">`+strings.Repeat("x", 4096)+`</error></prowl>`)

		c := NewClient(
			WithBaseURL(srv.BaseURL()),
			WithFetcher(fetcher.New(fetcher.Config{MaxBytes: 1024})),
		)

		_, err := c.Verify(context.Background(), &VerifyRequest{APIKey: testAPIKey})
		assert.True(t, apperrors.Is(err, apperrors.Transport), "err=%v", err)
		assert.Contains(t, err.Error(), "Prowl response from /publicapi/verify")
	})

	t.Run("Mock 응답 디코딩", func(t *testing.T) {
		t.Parallel()

		mockFetcher := mocks.NewMockFetcher()
		mockFetcher.On("Do", mock.MatchedBy(func(req *http.Request) bool {
			return req.Method == http.MethodGet && req.URL.Path == "/publicapi/retrieve/apikey"
		})).Return(mocks.NewMockResponse(`<prowl><retrieve apikey="issued"/></prowl>`, http.StatusOK), nil)

		c := NewClient(WithFetcher(mockFetcher))
		result, err := c.RetrieveAPIKey(context.Background(), &RegisterRequest{ProviderKey: testProviderKey, Token: "t"})
		require.NoError(t, err)
		assert.Equal(t, "issued", result.APIKey)
	})
}

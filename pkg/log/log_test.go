package log

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Helpers
// =============================================================================

type failWriter struct {
	err error
}

func (w *failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

type errorFormatter struct{}

func (f *errorFormatter) Format(*Entry) ([]byte, error) {
	return nil, errors.New("formatting failed")
}

func newEntry(level Level, msg string) *Entry {
	e := logrus.NewEntry(logrus.New())
	e.Level = level
	e.Message = msg
	return e
}

// =============================================================================
// Options
// =============================================================================

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"비활성화는 항상 유효", Options{Disabled: true}, ""},
		{"이름 누락", Options{}, "Name"},
		{"음수 MaxAge", Options{Name: "prowl", MaxAge: -1}, "MaxAge"},
		{"음수 MaxSizeMB", Options{Name: "prowl", MaxSizeMB: -1}, "MaxSizeMB"},
		{"음수 MaxBackups", Options{Name: "prowl", MaxBackups: -1}, "MaxBackups"},
		{"디버그 옵션", NewDebugOptions("prowl", t.TempDir(), nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// =============================================================================
// Hook
// =============================================================================

func TestHook_Fire(t *testing.T) {
	t.Parallel()

	t.Run("콘솔과 파일 모두 기록", func(t *testing.T) {
		var console, file bytes.Buffer
		h := &hook{consoleWriter: &console, fileWriter: &file, formatter: &logrus.TextFormatter{DisableColors: true}}

		require.NoError(t, h.Fire(newEntry(TraceLevel, "trace message")))
		assert.Contains(t, console.String(), "trace message")
		assert.Contains(t, file.String(), "trace message")
	})

	t.Run("콘솔 쓰기 실패는 무시", func(t *testing.T) {
		var file bytes.Buffer
		h := &hook{consoleWriter: &failWriter{err: errors.New("broken pipe")}, fileWriter: &file, formatter: &logrus.TextFormatter{}}

		assert.NoError(t, h.Fire(newEntry(InfoLevel, "hello")))
		assert.Contains(t, file.String(), "hello")
	})

	t.Run("파일 쓰기 실패는 반환", func(t *testing.T) {
		writeErr := errors.New("disk full")
		h := &hook{fileWriter: &failWriter{err: writeErr}, formatter: &logrus.TextFormatter{}}

		assert.ErrorIs(t, h.Fire(newEntry(ErrorLevel, "x")), writeErr)
	})

	t.Run("포맷팅 실패", func(t *testing.T) {
		h := &hook{formatter: &errorFormatter{}}
		assert.EqualError(t, h.Fire(newEntry(InfoLevel, "x")), "formatting failed")
	})

	t.Run("종료 후에는 기록하지 않음", func(t *testing.T) {
		var console bytes.Buffer
		h := &hook{consoleWriter: &console, formatter: &logrus.TextFormatter{}}

		require.NoError(t, h.Close())
		require.NoError(t, h.Fire(newEntry(InfoLevel, "after close")))
		assert.Empty(t, console.String())
	})

	t.Run("모든 레벨 수신", func(t *testing.T) {
		assert.Equal(t, AllLevels, (&hook{}).Levels())
	})
}

// =============================================================================
// Closer
// =============================================================================

type countingCloser struct {
	closed int
	synced int
	err    error
}

func (c *countingCloser) Close() error { c.closed++; return c.err }
func (c *countingCloser) Sync() error  { c.synced++; return nil }

func TestCloser_Close(t *testing.T) {
	t.Parallel()

	first := &countingCloser{err: errors.New("close failed")}
	second := &countingCloser{}
	h := &hook{}

	c := &closer{closers: []io.Closer{first, nil, second}, hook: h}

	err := c.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close failed")
	assert.True(t, h.closed)
	assert.Equal(t, 1, first.closed)
	assert.Equal(t, 1, first.synced)
	assert.Equal(t, 1, second.closed)

	// 두 번째 호출은 아무 일도 하지 않음
	assert.NoError(t, c.Close())
	assert.Equal(t, 1, first.closed)
}

// =============================================================================
// Setup
// =============================================================================

func TestSetupInternal_Disabled(t *testing.T) {
	t.Parallel()

	logger := logrus.New()
	c, err := setupInternal(logger, NewDisabledOptions())
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, PanicLevel, logger.GetLevel())
	assert.Equal(t, io.Discard, logger.Out)
	assert.Empty(t, logger.Hooks[InfoLevel])
	assert.NoError(t, c.Close())
}

func TestSetupInternal_Debug(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	logger := logrus.New()
	c, err := setupInternal(logger, NewDebugOptions("prowl", dir, &console))
	require.NoError(t, err)

	assert.Equal(t, TraceLevel, logger.GetLevel())
	logger.WithField("component", "test").Trace("hello from debug")
	require.NoError(t, c.Close())

	assert.Contains(t, console.String(), "hello from debug")
	assert.Contains(t, console.String(), "component=test")

	data, err := os.ReadFile(filepath.Join(dir, "prowl.log"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "hello from debug"))
}

func TestSetupInternal_DirUnavailableFallsBackToConsole(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	dir := filepath.Join(blocker, "logs")
	var console bytes.Buffer

	logger := logrus.New()
	c, err := setupInternal(logger, NewDebugOptions("prowl", dir, &console))
	require.NoError(t, err)

	logger.WithField("component", "test").Trace("still logging")
	require.NoError(t, c.Close())

	assert.Contains(t, console.String(), "로그 디렉토리를 만들 수 없어 파일 로그를 남기지 않습니다")
	assert.Contains(t, console.String(), "still logging")
	assert.NoFileExists(t, filepath.Join(dir, "prowl.log"))
}

func TestSetupInternal_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := setupInternal(logrus.New(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "유효하지 않은 로그 설정")
}

func TestWithComponentAndFields(t *testing.T) {
	t.Parallel()

	entry := WithComponentAndFields("prowl.client", Fields{"action": "send", "component": "ignored"})
	assert.Equal(t, "prowl.client", entry.Data["component"])
	assert.Equal(t, "send", entry.Data["action"])

	assert.Equal(t, "config", WithComponent("config").Data["component"])
}

func TestDefaultDir(t *testing.T) {
	t.Parallel()

	dir := DefaultDir("prowl")
	if dir == "" {
		t.Skip("사용자 캐시 디렉토리를 결정할 수 없는 환경")
	}
	assert.Equal(t, filepath.Join("prowl", "logs"), filepath.Join(filepath.Base(filepath.Dir(dir)), filepath.Base(dir)))
}

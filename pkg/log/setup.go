// Package log logrus 기반의 전역 로깅 설정을 제공합니다.
//
// CLI의 표준 출력은 명령 결과 전용이므로, 로그는 기본적으로 모두 버려지고
// 디버그 모드에서만 콘솔(stderr)과 로테이션 파일로 기록됩니다.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// 생성되는 로그 파일의 기본 확장자
	fileExt = "log"

	// 기본 로그 로테이션 정책
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
)

var (
	// Setup()이 프로세스 생명주기 동안 단 한 번만 실행되도록 보장합니다.
	setupOnce sync.Once

	globalCloser   io.Closer
	globalSetupErr error
)

// Setup 전역 로깅 시스템을 초기화합니다.
// 두 번째 호출부터는 최초 호출의 결과(Closer, 에러)를 그대로 반환합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setupInternal(logrus.StandardLogger(), opts)
	})

	return globalCloser, globalSetupErr
}

// setupInternal 주어진 Logger에 옵션을 적용합니다.
func setupInternal(logger *logrus.Logger, opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	logger.SetOutput(io.Discard)
	logger.SetFormatter(&silentFormatter{})

	if opts.Disabled {
		logger.SetLevel(PanicLevel)
		return nopCloser{}, nil
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logger.SetLevel(level)
	logger.SetReportCaller(opts.ReportCaller)

	textFormatter := &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			function = frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
			return
		},
	}

	h := &hook{
		consoleWriter: opts.Console,
		formatter:     textFormatter,
	}

	var closers []io.Closer
	var dirErr error
	if opts.Dir != "" {
		dirErr = os.MkdirAll(opts.Dir, 0755)
	}
	if opts.Dir != "" && dirErr == nil {
		maxSize := opts.MaxSizeMB
		if maxSize == 0 {
			maxSize = defaultMaxSizeMB
		}
		maxBackups := opts.MaxBackups
		if maxBackups == 0 {
			maxBackups = defaultMaxBackups
		}

		fileLogger := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, fmt.Sprintf("%s.%s", opts.Name, fileExt)),
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     opts.MaxAge,
			LocalTime:  true,
		}
		h.fileWriter = fileLogger
		closers = append(closers, fileLogger)
	}

	logger.AddHook(h)

	// 파일 로그를 남길 수 없어도 명령 실행은 계속하고 콘솔에만 기록합니다.
	if dirErr != nil {
		logger.WithFields(logrus.Fields{
			"dir":   opts.Dir,
			"error": dirErr,
		}).Warn("로그 디렉토리를 만들 수 없어 파일 로그를 남기지 않습니다")
	}

	return &closer{
		closers: closers,
		hook:    h,
	}, nil
}

// DefaultDir 디버그 로그 파일을 저장할 기본 디렉토리(<UserCacheDir>/<appName>/logs)를 반환합니다.
// 캐시 디렉토리를 결정할 수 없으면 빈 문자열을 반환하며, 이 경우 파일 로그는 남기지 않습니다.
func DefaultDir(appName string) string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "logs")
}

package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer 로깅 리소스(Hook, 로그 파일)의 해제를 통합 관리합니다.
//
// Hook을 먼저 비활성화한 뒤 파일을 닫으며, 여러 번 호출해도 두 번째 이후는 아무 일도 하지 않습니다.
type closer struct {
	closers []io.Closer

	hook *hook

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.hook != nil {
		_ = c.hook.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if cl == nil {
			continue
		}
		if s, ok := cl.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}

// nopCloser 로깅이 비활성화된 경우 반환되는 Closer입니다.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 하나의 로그 이벤트를 콘솔과 파일로 분배합니다.
//
// logrus 기본 출력은 io.Discard로 막아 두고, 실제 기록은 모두 이 Hook이 담당합니다.
// 콘솔 쓰기 실패는 무시하고 파일 쓰기 실패만 호출자에게 돌려줍니다.
type hook struct {
	fileWriter    io.Writer // 로테이션되는 로그 파일
	consoleWriter io.Writer // 실시간 확인용 콘솔 (보통 stderr)

	formatter Formatter

	mu sync.RWMutex // 로그 기록(Read Lock)과 종료 처리(Write Lock) 간의 동시성 제어

	closed bool
}

// Levels 이 Hook이 수신할 로그 레벨의 집합을 반환합니다.
func (h *hook) Levels() []Level {
	return AllLevels
}

// Fire 로그 이벤트를 포맷팅하여 등록된 Writer에 기록합니다.
func (h *hook) Fire(entry *Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	if h.consoleWriter != nil {
		_, _ = h.consoleWriter.Write(msg)
	}

	if h.fileWriter != nil {
		if _, err := h.fileWriter.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 로그 파일 쓰기 실패: %v\n", err)
			return err
		}
	}

	return nil
}

// Close 이후의 모든 로그 기록 요청을 거부하도록 Hook을 종료 상태로 전환합니다.
func (h *hook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	return nil
}

package log

import (
	"github.com/sirupsen/logrus"
)

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

const (
	// PanicLevel 가장 높은 심각도입니다. 로깅이 비활성화된 상태의 기준 레벨로도 사용합니다.
	PanicLevel Level = logrus.PanicLevel

	// ErrorLevel 에러 상황입니다.
	ErrorLevel Level = logrus.ErrorLevel

	// WarnLevel 경고 상황입니다. 손상된 설정 파일을 건너뛰는 경우처럼 동작은 계속되지만 주의가 필요한 상태를 나타냅니다.
	WarnLevel Level = logrus.WarnLevel

	// InfoLevel 일반적인 정보입니다.
	InfoLevel Level = logrus.InfoLevel

	// DebugLevel 디버깅 정보입니다. HTTP 요청/응답 요약 등을 기록합니다.
	DebugLevel Level = logrus.DebugLevel

	// TraceLevel 가장 세밀한 정보입니다. 디코딩된 응답 구조체 덤프 등을 기록합니다.
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

// Fields logrus.Fields의 별칭입니다.
type Fields = logrus.Fields

// Entry logrus.Entry의 별칭입니다.
type Entry = logrus.Entry

// Formatter logrus.Formatter의 별칭입니다.
type Formatter = logrus.Formatter

// WithComponent 컴포넌트 이름이 포함된 로그 엔트리를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields 컴포넌트 이름과 추가 필드가 포함된 로그 엔트리를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["component"] = component
	return logrus.WithFields(merged)
}

// IsLevelEnabled 전역 로거에서 주어진 레벨이 활성화되어 있는지 확인합니다.
// 비용이 큰 덤프 문자열 생성을 건너뛸 때 사용합니다.
func IsLevelEnabled(level Level) bool {
	return logrus.IsLevelEnabled(level)
}

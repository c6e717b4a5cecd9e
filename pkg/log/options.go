package log

import (
	"fmt"
	"io"
)

// Options 로거 설정을 위한 구조체입니다.
type Options struct {
	Name  string // 로그 파일명 생성에 사용될 애플리케이션 식별자
	Dir   string // 로그 파일이 저장될 디렉토리 경로 (빈 값이거나 만들 수 없으면 파일 로그를 남기지 않음)
	Level Level  // 로그 레벨

	MaxAge     int // 오래된 로그 삭제 기준일 (일 단위, 0: 삭제 안 함)
	MaxSizeMB  int // 로그 파일 최대 크기 (MB, 0: 기본값 사용)
	MaxBackups int // 최대 백업 파일 수 (0: 기본값 사용)

	// Console 로그를 실시간으로 출력할 Writer입니다. nil이면 콘솔 출력을 하지 않습니다.
	// 명령의 실제 결과(stdout)와 섞이지 않도록 보통 os.Stderr를 지정합니다.
	Console io.Writer

	// 로그를 호출한 소스 코드의 위치(파일명:라인번호)를 함께 기록할지 여부
	ReportCaller bool

	// Disabled true이면 모든 로그를 버립니다. 디버그 모드가 아닌 일반 실행의 기본값입니다.
	Disabled bool
}

// Validate는 Options 구조체의 필드 값이 유효한지 검증합니다.
func (opts *Options) Validate() error {
	if opts.Disabled {
		return nil
	}

	if opts.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if opts.MaxAge < 0 {
		return fmt.Errorf("MaxAge는 0 이상이어야 합니다: %d", opts.MaxAge)
	}
	if opts.MaxSizeMB < 0 {
		return fmt.Errorf("MaxSizeMB는 0 이상이어야 합니다: %d", opts.MaxSizeMB)
	}
	if opts.MaxBackups < 0 {
		return fmt.Errorf("MaxBackups는 0 이상이어야 합니다: %d", opts.MaxBackups)
	}

	return nil
}

// NewDisabledOptions 로그를 전혀 남기지 않는 설정을 반환합니다.
// 사람이 읽는 출력이나 JSON 출력이 로그로 오염되지 않도록 일반 실행 시 사용합니다.
func NewDisabledOptions() Options {
	return Options{Disabled: true}
}

// NewDebugOptions --debug 플래그가 지정된 실행에 사용할 로그 설정을 반환합니다.
func NewDebugOptions(appName, dir string, console io.Writer) Options {
	return Options{
		Name:  appName,
		Dir:   dir,
		Level: TraceLevel,

		MaxAge:     7,
		MaxSizeMB:  10,
		MaxBackups: 3,

		Console: console,

		ReportCaller: true,
	}
}

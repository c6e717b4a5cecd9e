// Package output 명령 실행 결과를 사람이 읽는 형식, JSON, 무출력(quiet) 중 하나로 출력합니다.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/darkkaiser/prowl-cli/internal/config"
	"github.com/darkkaiser/prowl-cli/internal/prowl"
	"github.com/darkkaiser/prowl-cli/pkg/strutil"
)

// Format 출력 형식입니다.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatQuiet Format = "quiet"
)

// Formats 지원하는 출력 형식 목록입니다.
var Formats = []Format{FormatHuman, FormatJSON, FormatQuiet}

// ParseFormat 문자열을 Format으로 변환합니다. 대소문자는 구분하지 않습니다.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHuman, FormatJSON, FormatQuiet:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected human, json or quiet)", s)
	}
}

// Formatter 명령별 결과 출력 전략입니다.
//
// 성공 결과는 표준 출력으로, 에러는 표준 에러로 출력합니다.
type Formatter interface {
	SendSuccess(result *prowl.Result)
	VerifySuccess(result *prowl.Result)
	TokenSuccess(result *prowl.Result)
	RegisterSuccess(result *prowl.Result)
	DryRun(req *prowl.SendRequest)

	ConfigShow(cfg *config.Config, path string)
	ConfigInit(path string)
	ConfigSet(key, value string)

	Error(err error, exitCode int)

	// Progress 오래 걸리는 작업 동안 진행 표시를 시작하고, 표시를 멈추는 함수를 반환합니다.
	Progress(message string) (stop func())
}

// New 출력 형식에 맞는 Formatter를 생성합니다. 알 수 없는 형식은 human으로 처리합니다.
func New(format Format, stdout, stderr io.Writer) Formatter {
	switch format {
	case FormatJSON:
		return NewJSON(stdout, stderr)
	case FormatQuiet:
		return Quiet{}
	default:
		return NewHuman(stdout, stderr)
	}
}

// displayValue 설정 값을 화면에 표시할 형태로 변환합니다. 이름에 "key"가 포함된 항목은 마스킹합니다.
func displayValue(key, value string) string {
	if strings.Contains(key, "key") {
		return strutil.MaskKey(value)
	}
	return value
}

package output

import (
	"github.com/darkkaiser/prowl-cli/internal/config"
	"github.com/darkkaiser/prowl-cli/internal/prowl"
)

// Quiet 아무것도 출력하지 않습니다. 결과는 종료 코드로만 전달됩니다.
type Quiet struct{}

var _ Formatter = Quiet{}

func (Quiet) SendSuccess(*prowl.Result) {}
func (Quiet) VerifySuccess(*prowl.Result) {}
func (Quiet) TokenSuccess(*prowl.Result) {}
func (Quiet) RegisterSuccess(*prowl.Result) {}
func (Quiet) DryRun(*prowl.SendRequest) {}
func (Quiet) ConfigShow(*config.Config, string) {}
func (Quiet) ConfigInit(string) {}
func (Quiet) ConfigSet(string, string) {}
func (Quiet) Error(error, int) {}
func (Quiet) Progress(string) func() { return func() {} }

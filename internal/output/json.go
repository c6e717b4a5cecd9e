package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/darkkaiser/prowl-cli/internal/config"
	"github.com/darkkaiser/prowl-cli/internal/prowl"
	"github.com/darkkaiser/prowl-cli/pkg/strutil"
)

// JSON 스크립트에서 처리하기 위한 JSON 출력입니다. 들여쓰기 2칸의 객체 하나를 출력합니다.
//
// 값이 없는 필드는 생략하지 않고 null로 출력합니다.
type JSON struct {
	out    io.Writer
	errOut io.Writer
}

var _ Formatter = (*JSON)(nil)

// NewJSON 새로운 JSON Formatter를 생성합니다.
func NewJSON(stdout, stderr io.Writer) *JSON {
	return &JSON{out: stdout, errOut: stderr}
}

type sendOutput struct {
	Success   bool    `json:"success"`
	Action    string  `json:"action"`
	Remaining *int    `json:"remaining"`
	ResetDate *string `json:"reset_date"`
}

type verifyOutput struct {
	Success   bool    `json:"success"`
	Action    string  `json:"action"`
	Valid     bool    `json:"valid"`
	Remaining *int    `json:"remaining"`
	ResetDate *string `json:"reset_date"`
}

type tokenOutput struct {
	Success     bool    `json:"success"`
	Action      string  `json:"action"`
	Token       *string `json:"token"`
	ApprovalURL *string `json:"approval_url"`
}

type registerOutput struct {
	Success bool    `json:"success"`
	Action  string  `json:"action"`
	APIKey  *string `json:"api_key"`
}

type errorOutput struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	ExitCode int    `json:"exit_code"`
}

type dryRunOutput struct {
	DryRun  bool          `json:"dry_run"`
	Request dryRunRequest `json:"request"`
}

type dryRunRequest struct {
	Application string  `json:"application"`
	Event       string  `json:"event"`
	Description string  `json:"description"`
	Priority    int     `json:"priority"`
	URL         *string `json:"url"`
	APIKeyCount int     `json:"api_key_count"`
}

type configShowOutput struct {
	Path        string  `json:"path"`
	APIKey      *string `json:"api_key"`
	ProviderKey *string `json:"provider_key"`
	Application *string `json:"application"`
}

type configInitOutput struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
	Path    string `json:"path"`
}

type configSetOutput struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

func (j *JSON) SendSuccess(result *prowl.Result) {
	j.write(j.out, sendOutput{
		Success:   true,
		Action:    "send",
		Remaining: result.Remaining,
		ResetDate: optional(result.ResetDate),
	})
}

func (j *JSON) VerifySuccess(result *prowl.Result) {
	j.write(j.out, verifyOutput{
		Success:   true,
		Action:    "verify",
		Valid:     true,
		Remaining: result.Remaining,
		ResetDate: optional(result.ResetDate),
	})
}

func (j *JSON) TokenSuccess(result *prowl.Result) {
	j.write(j.out, tokenOutput{
		Success:     true,
		Action:      "token",
		Token:       optional(result.Token),
		ApprovalURL: optional(result.TokenURL),
	})
}

func (j *JSON) RegisterSuccess(result *prowl.Result) {
	j.write(j.out, registerOutput{
		Success: true,
		Action:  "register",
		APIKey:  optional(result.APIKey),
	})
}

func (j *JSON) DryRun(req *prowl.SendRequest) {
	j.write(j.out, dryRunOutput{
		DryRun: true,
		Request: dryRunRequest{
			Application: req.Application,
			Event:       req.Event,
			Description: req.Description,
			Priority:    int(req.Priority),
			URL:         optional(req.URL),
			APIKeyCount: req.KeyCount(),
		},
	})
}

func (j *JSON) ConfigShow(cfg *config.Config, path string) {
	j.write(j.out, configShowOutput{
		Path:        path,
		APIKey:      optional(strutil.MaskKey(cfg.APIKey)),
		ProviderKey: optional(strutil.MaskKey(cfg.ProviderKey)),
		Application: optional(cfg.Application),
	})
}

func (j *JSON) ConfigInit(path string) {
	j.write(j.out, configInitOutput{
		Success: true,
		Action:  "config_init",
		Path:    path,
	})
}

func (j *JSON) ConfigSet(key, value string) {
	j.write(j.out, configSetOutput{
		Success: true,
		Action:  "config_set",
		Key:     key,
		Value:   displayValue(key, value),
	})
}

func (j *JSON) Error(err error, exitCode int) {
	j.write(j.errOut, errorOutput{
		Success:  false,
		Error:    err.Error(),
		ExitCode: exitCode,
	})
}

func (j *JSON) Progress(string) func() {
	return func() {}
}

func (j *JSON) write(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// 출력용 구조체는 모두 직렬화 가능한 타입으로만 구성되어 있습니다.
		panic(fmt.Sprintf("output: JSON 직렬화 실패: %v", err))
	}
	fmt.Fprintln(w, string(data))
}

// optional 빈 문자열을 nil(null)로 변환합니다.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

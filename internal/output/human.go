package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/labstack/gommon/color"
	"github.com/mattn/go-isatty"

	"github.com/darkkaiser/prowl-cli/internal/config"
	"github.com/darkkaiser/prowl-cli/internal/prowl"
	"github.com/darkkaiser/prowl-cli/pkg/strutil"
)

const (
	checkMark = "✓"
	bullet    = "●"

	spinnerDelay = 80 * time.Millisecond
)

// Human 사람이 읽기 위한 컬러 출력입니다.
//
// 색상은 표준 출력이 터미널일 때만, 진행 표시(spinner)는 표준 에러가 터미널일 때만 사용합니다.
type Human struct {
	out      io.Writer
	errOut   io.Writer
	color    *color.Color
	errColor *color.Color

	spinnerFile *os.File
}

var _ Formatter = (*Human)(nil)

// NewHuman 새로운 Human Formatter를 생성합니다.
func NewHuman(stdout, stderr io.Writer) *Human {
	h := &Human{
		out:      stdout,
		errOut:   stderr,
		color:    newColor(stdout),
		errColor: newColor(stderr),
	}
	if f, ok := stderr.(*os.File); ok && isTerminal(f) {
		h.spinnerFile = f
	}

	return h
}

func newColor(w io.Writer) *color.Color {
	c := color.New()
	c.SetOutput(w)
	if !isTerminal(w) {
		c.Disable()
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (h *Human) success(message string) {
	fmt.Fprintf(h.out, "%s %s\n", h.color.Green(checkMark, color.B), message)
}

func (h *Human) dim(message string) string {
	return h.color.Grey(message)
}

func (h *Human) SendSuccess(result *prowl.Result) {
	h.success("Notification sent successfully")
	if result.Remaining != nil {
		fmt.Fprintf(h.out, "  %s API calls remaining\n", h.color.Cyan(strutil.FormatCommas(*result.Remaining)))
	}
}

func (h *Human) VerifySuccess(result *prowl.Result) {
	h.success("API key is valid")
	if result.Remaining != nil {
		fmt.Fprintf(h.out, "  %s API calls remaining\n", h.color.Cyan(strutil.FormatCommas(*result.Remaining)))
	}
	if result.ResetDate != "" {
		fmt.Fprintf(h.out, "  Resets at: %s\n", h.color.Cyan(result.ResetDate))
	}
}

func (h *Human) TokenSuccess(result *prowl.Result) {
	h.success("Registration token retrieved")
	if result.Token != "" {
		fmt.Fprintf(h.out, "\n  Token: %s\n", h.color.Yellow(result.Token, color.B))
	}
	if result.TokenURL != "" {
		fmt.Fprintf(h.out, "\n  Approval URL: %s\n", h.color.Cyan(result.TokenURL))
		fmt.Fprintf(h.out, "\n  %s\n", h.dim("User must visit the URL above to approve the token."))
		fmt.Fprintf(h.out, "  %s\n", h.dim("Then use 'prowl register --token <token>' to get the API key."))
	}
}

func (h *Human) RegisterSuccess(result *prowl.Result) {
	h.success("API key retrieved successfully")
	if result.APIKey != "" {
		fmt.Fprintf(h.out, "\n  API Key: %s\n", h.color.Yellow(result.APIKey, color.B))
		fmt.Fprintf(h.out, "\n  %s\n", h.dim("Save this key securely. You can add it to your config with:"))
		fmt.Fprintf(h.out, "  %s\n", h.color.Cyan("prowl config set api_key "+result.APIKey))
	}
}

func (h *Human) DryRun(req *prowl.SendRequest) {
	fmt.Fprintf(h.out, "%s Dry run - would send:\n", h.color.Yellow("[DRY RUN]", color.B))
	fmt.Fprintf(h.out, "  Application: %s\n", h.color.Cyan(req.Application))
	fmt.Fprintf(h.out, "  Event:       %s\n", h.color.Cyan(req.Event))
	fmt.Fprintf(h.out, "  Description: %s\n", h.color.Cyan(req.Description))
	fmt.Fprintf(h.out, "  Priority:    %s\n", h.color.Cyan(req.Priority.String()))
	if req.URL != "" {
		fmt.Fprintf(h.out, "  URL:         %s\n", h.color.Cyan(req.URL))
	}
	fmt.Fprintf(h.out, "  API Keys:    %s\n", h.color.Cyan(fmt.Sprintf("%d key(s)", req.KeyCount())))
}

func (h *Human) ConfigShow(cfg *config.Config, path string) {
	fmt.Fprintf(h.out, "%s Configuration\n", h.color.Cyan(bullet, color.B))
	fmt.Fprintf(h.out, "  Path: %s\n", h.dim(path))
	fmt.Fprintln(h.out)

	rows := []struct {
		label string
		key   string
	}{
		{"api_key:     ", config.KeyAPIKey},
		{"provider_key:", config.KeyProviderKey},
		{"application: ", config.KeyApplication},
	}
	for _, row := range rows {
		value := cfg.Get(row.key)
		if value == "" {
			fmt.Fprintf(h.out, "  %s %s\n", row.label, h.dim("(not set)"))
			continue
		}
		fmt.Fprintf(h.out, "  %s %s\n", row.label, h.color.Green(displayValue(row.key, value)))
	}
}

func (h *Human) ConfigInit(path string) {
	fmt.Fprintf(h.out, "%s Config file created at %s\n", h.color.Green(checkMark, color.B), h.color.Cyan(path))
	fmt.Fprintf(h.out, "\n  %s\n", h.dim("Edit the file or use 'prowl config set' to configure."))
}

func (h *Human) ConfigSet(key, value string) {
	fmt.Fprintf(h.out, "%s Set %s = %s\n", h.color.Green(checkMark, color.B), h.color.Cyan(key), h.color.Green(displayValue(key, value)))
}

func (h *Human) Error(err error, _ int) {
	fmt.Fprintf(h.errOut, "%s %v\n", h.errColor.Red("Error:", color.B), err)
}

// Progress 표준 에러가 터미널이면 spinner를 표시합니다.
func (h *Human) Progress(message string) func() {
	if h.spinnerFile == nil {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], spinnerDelay, spinner.WithWriterFile(h.spinnerFile), spinner.WithColor("cyan"))
	s.Suffix = " " + message
	s.Start()

	return s.Stop
}

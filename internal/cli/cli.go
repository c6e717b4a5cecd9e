// Package cli prowl 명령행 도구의 명령 트리(cobra)를 구성하고 실행합니다.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/darkkaiser/prowl-cli/internal/config"
	"github.com/darkkaiser/prowl-cli/internal/exitcode"
	"github.com/darkkaiser/prowl-cli/internal/output"
	apperrors "github.com/darkkaiser/prowl-cli/internal/pkg/errors"
	"github.com/darkkaiser/prowl-cli/internal/pkg/version"
	"github.com/darkkaiser/prowl-cli/internal/prowl"
	applog "github.com/darkkaiser/prowl-cli/pkg/log"
)

const component = "cli"

// Options 명령 실행 환경입니다. 비어 있는 필드는 프로세스의 기본값을 사용합니다.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Store 설정 파일 저장소입니다. nil이면 사용자 설정 디렉토리의 prowl/config.json을 사용합니다.
	Store *config.Store

	// ClientOptions Prowl API 클라이언트 생성 시 적용할 옵션입니다.
	ClientOptions []prowl.ClientOption
}

// app 한 번의 명령 실행 동안 공유되는 상태입니다.
type app struct {
	opts Options

	format      string
	apiKey      string
	providerKey string
	application string
	debug       bool

	formatter output.Formatter
	logCloser io.Closer
}

// Execute 명령행 인자를 실행하고 프로세스 종료 코드를 반환합니다.
//
// 에러는 선택된 출력 형식으로 표준 에러에 출력됩니다.
func Execute(ctx context.Context, args []string, opts Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	a := &app{opts: opts}
	defer a.closeLog()

	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetIn(opts.Stdin)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitcode.Success
	}

	code := exitcode.FromError(err)
	applog.WithComponentAndFields(component, failureFields(err, code)).Debug("명령 실행 실패")

	a.outputFormatter().Error(err, code)

	return code
}

// failureFields 실패한 명령의 디버그 로그에 남길 필드를 만듭니다.
func failureFields(err error, code int) applog.Fields {
	return applog.Fields{
		"exit_code":  code,
		"error":      err.Error(),
		"error_type": apperrors.UnderlyingType(err).String(),
		"root_cause": apperrors.RootCause(err).Error(),
	}
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "prowl",
		Short: "A modern CLI for the Prowl push notification API",
		Long: "Send push notifications to iOS devices via the Prowl API.\n\n" +
			"Configure your API key via the config file, PROWL_API_KEY environment variable, or the --api-key flag.",
		Version: version.Get().String(),

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: a.setup,
	}

	root.SetVersionTemplate("prowl {{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&a.format, "format", "F", string(output.FormatHuman), "Output format (human, json, quiet)")
	flags.StringVarP(&a.apiKey, config.FlagName(config.KeyAPIKey), "k", "", "API key (overrides config and env var)")
	flags.StringVarP(&a.providerKey, config.FlagName(config.KeyProviderKey), "K", "", "Provider key for higher rate limits")
	flags.StringVarP(&a.application, config.FlagName(config.KeyApplication), "a", "", "Application name for notifications")
	flags.BoolVar(&a.debug, "debug", false, "Write debug logs to stderr and the log file")

	_ = root.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		formats := make([]string, 0, len(output.Formats))
		for _, f := range output.Formats {
			formats = append(formats, string(f))
		}
		return formats, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		a.newSendCommand(),
		a.newVerifyCommand(),
		a.newTokenCommand(),
		a.newRegisterCommand(),
		a.newConfigCommand(),
		newCompletionCommand(),
	)

	return root
}

// setup 플래그 해석이 끝난 뒤, 명령 실행 전에 출력 형식과 로깅을 초기화합니다.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	format, err := output.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.formatter = output.New(format, a.opts.Stdout, a.opts.Stderr)

	logOpts := applog.NewDisabledOptions()
	if a.debug {
		logOpts = applog.NewDebugOptions(config.AppName, applog.DefaultDir(config.AppName), a.opts.Stderr)
	}

	closer, err := applog.Setup(logOpts)
	if err != nil {
		return err
	}
	a.logCloser = closer

	applog.WithComponentAndFields(component, applog.Fields{
		"command": cmd.CommandPath(),
		"version": version.Version(),
	}).Debug("명령 실행 시작")

	return nil
}

// outputFormatter 에러 출력에 사용할 Formatter를 반환합니다.
// 플래그 해석 단계에서 실패하여 아직 Formatter가 없으면 요청된 형식(해석 불가 시 human)으로 생성합니다.
func (a *app) outputFormatter() output.Formatter {
	if a.formatter != nil {
		return a.formatter
	}

	format, err := output.ParseFormat(a.format)
	if err != nil {
		format = output.FormatHuman
	}
	return output.New(format, a.opts.Stdout, a.opts.Stderr)
}

func (a *app) closeLog() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

// store 설정 파일 저장소를 반환합니다.
func (a *app) store() (*config.Store, error) {
	if a.opts.Store != nil {
		return a.opts.Store, nil
	}
	return config.NewDefaultStore()
}

// resolveConfig 기본값, 설정 파일, 환경 변수, 명령행 플래그를 병합한 유효 설정을 반환합니다.
// 설정 디렉토리를 결정할 수 없으면 설정 파일 단계만 건너뜁니다.
func (a *app) resolveConfig() (*config.ResolvedConfig, error) {
	var loader config.Loader
	if s, err := a.store(); err == nil {
		loader = s
	} else {
		applog.WithComponent(component).WithError(err).Warn("설정 파일 경로를 결정할 수 없어 설정 파일을 건너뜁니다")
	}

	return config.Resolve(loader, config.Config{
		APIKey:      a.apiKey,
		ProviderKey: a.providerKey,
		Application: a.application,
	})
}

func (a *app) newClient() *prowl.Client {
	return prowl.NewClient(a.opts.ClientOptions...)
}

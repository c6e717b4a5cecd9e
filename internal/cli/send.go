package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/darkkaiser/prowl-cli/internal/pkg/errors"
	"github.com/darkkaiser/prowl-cli/internal/prowl"
	"github.com/darkkaiser/prowl-cli/pkg/strutil"
)

// stdinMessage 메시지 인자로 지정하면 표준 입력에서 본문을 읽습니다.
const stdinMessage = "-"

func (a *app) newSendCommand() *cobra.Command {
	var (
		event    string
		priority string
		url      string
		to       []string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:     "send [message]",
		Aliases: []string{"s"},
		Short:   "Send a push notification",
		Example: `  prowl send "Build finished"
  prowl send -e Deploy -p high -u https://ci.example.com/42 "v1.2.3 deployed"
  make test 2>&1 | tail -n 20 | prowl send -e "Test results" -
  prowl send --to KEY2,KEY3 --dry-run "hello"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var message string
			if len(args) == 1 {
				message = args[0]
			}
			if message == stdinMessage {
				var err error
				if message, err = readLines(a.opts.Stdin); err != nil {
					return err
				}
			}

			p, err := prowl.ParsePriority(priority)
			if err != nil {
				return err
			}

			resolved, err := a.resolveConfig()
			if err != nil {
				return err
			}
			apiKey, err := resolved.RequireAPIKey()
			if err != nil {
				return err
			}

			var additional []string
			for _, v := range to {
				additional = append(additional, strutil.SplitAndTrim(v, ",")...)
			}

			req := &prowl.SendRequest{
				APIKey:      prowl.JoinAPIKeys(apiKey, additional),
				Application: resolved.Application,
				Event:       event,
				Description: message,
				Priority:    p,
				URL:         url,
				ProviderKey: resolved.ProviderKey,
			}

			if dryRun {
				a.formatter.DryRun(req)
				return nil
			}

			stop := a.formatter.Progress("Sending notification...")
			result, err := a.newClient().Send(cmd.Context(), req)
			stop()
			if err != nil {
				return err
			}

			a.formatter.SendSuccess(result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&event, "event", "e", "Alert", "Event title")
	flags.StringVarP(&priority, "priority", "p", "normal", "Priority level ("+strings.Join(prowl.PriorityNames, ", ")+")")
	flags.StringVarP(&url, "url", "u", "", "URL to attach to the notification")
	flags.StringArrayVarP(&to, "to", "t", nil, "Additional API keys to send to (comma-separated or repeated)")
	flags.BoolVar(&dryRun, "dry-run", false, "Show what would be sent without actually sending")

	_ = cmd.RegisterFlagCompletionFunc("priority", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return prowl.PriorityNames, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// readLines 입력을 줄 단위로 읽어 "\n"으로 다시 연결합니다. 줄 끝의 "\r"과 마지막 줄바꿈은 제거됩니다.
func readLines(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.System, "IO error")
	}
	if len(data) == 0 {
		return "", nil
	}

	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return strings.Join(lines, "\n"), nil
}

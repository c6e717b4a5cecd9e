package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darkkaiser/prowl-cli/internal/config"
)

func (a *app) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(
		a.newConfigInitCommand(),
		a.newConfigShowCommand(),
		a.newConfigSetCommand(),
		a.newConfigPathCommand(),
	)

	return cmd
}

func (a *app) newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			if err := store.Init(force); err != nil {
				return err
			}

			a.formatter.ConfigInit(store.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file")

	return cmd
}

func (a *app) newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			cfg, err := store.Load()
			if err != nil {
				return err
			}

			a.formatter.ConfigShow(&cfg, store.Path())
			return nil
		},
	}
}

func (a *app) newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Valid keys are: api_key, provider_key, application",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.Keys, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			if err := store.Set(key, value); err != nil {
				return err
			}

			a.formatter.ConfigSet(key, value)
			return nil
		},
	}
}

// newConfigPathCommand 설정 파일 경로를 출력합니다. 스크립트에서 사용할 수 있도록 출력 형식과 관계없이 경로만 출력합니다.
func (a *app) newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}

			fmt.Fprintln(a.opts.Stdout, store.Path())
			return nil
		},
	}
}

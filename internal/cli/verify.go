package cli

import (
	"github.com/spf13/cobra"

	"github.com/darkkaiser/prowl-cli/internal/prowl"
)

func (a *app) newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "verify",
		Aliases: []string{"v"},
		Short:   "Verify API key validity",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := a.resolveConfig()
			if err != nil {
				return err
			}
			apiKey, err := resolved.RequireAPIKey()
			if err != nil {
				return err
			}

			stop := a.formatter.Progress("Verifying API key...")
			result, err := a.newClient().Verify(cmd.Context(), &prowl.VerifyRequest{
				APIKey:      apiKey,
				ProviderKey: resolved.ProviderKey,
			})
			stop()
			if err != nil {
				return err
			}

			a.formatter.VerifySuccess(result)
			return nil
		},
	}
}

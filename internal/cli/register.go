package cli

import (
	"github.com/spf13/cobra"

	"github.com/darkkaiser/prowl-cli/internal/prowl"
)

// newTokenCommand 앱 개발자가 사용자에게 API 키 발급 승인을 요청하기 위한 등록 토큰을 발급받습니다.
func (a *app) newTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Get a registration token (for app developers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := a.resolveConfig()
			if err != nil {
				return err
			}
			providerKey, err := resolved.RequireProviderKey()
			if err != nil {
				return err
			}

			stop := a.formatter.Progress("Retrieving registration token...")
			result, err := a.newClient().RetrieveToken(cmd.Context(), &prowl.TokenRequest{ProviderKey: providerKey})
			stop()
			if err != nil {
				return err
			}

			a.formatter.TokenSuccess(result)
			return nil
		},
	}
}

// newRegisterCommand 사용자가 승인한 등록 토큰으로 API 키를 발급받습니다.
func (a *app) newRegisterCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Get API key from an approved registration token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := a.resolveConfig()
			if err != nil {
				return err
			}
			providerKey, err := resolved.RequireProviderKey()
			if err != nil {
				return err
			}

			stop := a.formatter.Progress("Retrieving API key...")
			result, err := a.newClient().RetrieveAPIKey(cmd.Context(), &prowl.RegisterRequest{
				ProviderKey: providerKey,
				Token:       token,
			})
			stop()
			if err != nil {
				return err
			}

			a.formatter.RegisterSuccess(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "Registration token from 'prowl token'")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

package main

import (
	"fmt"

	"github.com/newreleases/admin-console/bootstrap"
	"github.com/newreleases/admin-console/domain"
	"github.com/newreleases/admin-console/repository/repository_auth"
	"github.com/newreleases/admin-console/usecase/usecase_auth"
	"github.com/newreleases/admin-console/util/util_log"
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts and the allow-list",
	}
	cmd.AddCommand(newAdminAddCmd())
	cmd.AddCommand(newAdminRevokeCmd())
	return cmd
}

func adminUsecase(app *bootstrap.Application) *usecase_auth.AdminAccountUsecase {
	db := app.Database()
	return usecase_auth.NewAdminAccountUsecase(
		repository_auth.NewAdminAccountRepository(db, domain.CollectionAdminAccounts),
		repository_auth.NewAdminGrantRepository(db, domain.CollectionAdminGrants),
		app.Env.Timeout(),
	)
}

func newAdminAddCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account (or reset its password) and grant admin access",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.AdminApp(envFile)
			if err != nil {
				return err
			}
			defer app.Close()

			account, err := adminUsecase(app).AddAdmin(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}
			util_log.Info().Str("email", account.Email).Str("user_id", account.ID.Hex()).Msg("admin granted")
			fmt.Fprintf(cmd.OutOrStdout(), "admin granted: %s (%s)\n", account.Email, account.ID.Hex())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAdminRevokeCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Remove an account from the admin allow-list",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.AdminApp(envFile)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := adminUsecase(app).RevokeAdmin(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin revoked: %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

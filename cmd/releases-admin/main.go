package main

import (
	"os"

	"github.com/newreleases/admin-console/util/util_log"
	"github.com/spf13/cobra"
)

var envFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "releases-admin",
		Short:         "Admin console backend for new release announcements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to the .env file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newAdminCmd())
	root.AddCommand(newIndexesCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		util_log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

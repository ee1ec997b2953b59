package main

import (
	"fmt"

	"github.com/newreleases/admin-console/bootstrap"
	"github.com/newreleases/admin-console/mongo"
	"github.com/spf13/cobra"
)

func newIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create MongoDB indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.AdminApp(envFile)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := mongo.CreateIndexes(cmd.Context(), app.Database()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "indexes created")
			return nil
		},
	}
}

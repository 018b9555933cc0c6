package main

import (
	"context"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations (sqlite) or create indexes (mongo)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}

		st, err := openStores(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.close(context.Background())

		log.Info().Str("driver", cfg.StoreDriver).Msg("schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rpdbs/research-databank/internal/core/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default admin and viewer accounts if missing",
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

		created, err := service.SeedAccounts(cmd.Context(), st.accounts, cfg.SeedAccounts(), log)
		if err != nil {
			return err
		}
		log.Info().Strs("created", created).Msg("seeding finished")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

package cli

import (
	"talent-match/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo candidates and jobs into Postgres",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, lg, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = lg.Sync() }()

		db, err := connectPostgres(cmd.Context(), cfg, lg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		return seeder.Runner{Seeders: seeder.Defaults(), Logger: lg.Named("seed")}.Run(cmd.Context(), db)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

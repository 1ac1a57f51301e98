package cli

import (
	"context"
	"fmt"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations to Postgres",
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

		r := migration.Runner{Dir: cfg.Database.MigrationsDir, Logger: lg.Named("migrate")}
		if err := r.Run(cmd.Context(), db.SQLDB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		lg.Info("migrations up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// connectPostgres is shared by the commands that only make sense against a
// real database.
func connectPostgres(ctx context.Context, cfg config.Config, lg *zap.Logger) (database.DB, error) {
	if cfg.Database.Driver != config.DriverPostgres {
		return nil, fmt.Errorf("DATABASE_DRIVER must be %q, got %q", config.DriverPostgres, cfg.Database.Driver)
	}
	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return dbpostgres.Connect(cctx, cfg.Database, lg)
}

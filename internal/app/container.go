package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/database/seeder"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/infrastructure/persistence/supabase"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the process.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	// DB is only set for the postgres driver.
	DB         database.DB
	Store      handler.Pinger
	Jobs       repository.JobRepository
	Candidates repository.CandidateRepository
	Matches    repository.MatchRepository

	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   *jwt.HMACService

	Matching  *usecase.Matching
	Dashboard *usecase.Dashboard
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.openStore(ctx); err != nil {
		return nil, err
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger.Named("cache"))
	c.Hub = ws.NewHub(logger.Named("ws"))
	c.JWT = jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiresIn)

	var mc usecase.MatchCache
	if c.Cache.Enabled() {
		mc = c.Cache
	}
	c.Matching = usecase.NewMatchingUsecase(c.Jobs, c.Candidates, c.Matches, mc, c.Hub, cfg.Matching, logger.Named("matching"))
	c.Dashboard = usecase.NewDashboardUsecase(c.Jobs, c.Candidates, c.Matches, mc, cfg.Matching.CacheTTL, logger.Named("dashboard"))

	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	cfg := c.Config
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(cctx, cfg.Database, c.Logger)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.DB = db
		c.Store = db
		c.Jobs = repository.NewPostgresJobRepository(db)
		c.Candidates = repository.NewPostgresCandidateRepository(db)
		c.Matches = repository.NewPostgresMatchRepository(db)

	case config.DriverSupabase:
		s, err := supabase.NewStore(cfg.Supabase)
		if err != nil {
			return err
		}
		c.Store, c.Jobs, c.Candidates, c.Matches = s, s, s, s

	case config.DriverMemory:
		s := repository.NewMemoryStore()
		seeder.SeedMemory(s)
		c.Store, c.Jobs, c.Candidates, c.Matches = s, s, s, s
		c.Logger.Warn("using in-memory store, data is lost on exit")

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

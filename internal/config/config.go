package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSupabase = "supabase"
	DriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	Supabase SupabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Matching MatchingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	WSPort      string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type DatabaseConfig struct {
	Driver     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	MigrationsDir string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type SupabaseConfig struct {
	URL string
	Key string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	Secret    string
	Issuer    string
	ExpiresIn time.Duration
}

type MatchingConfig struct {
	// FetchConcurrency bounds the per-candidate skill fetches; 0 is unbounded.
	FetchConcurrency int
	// CacheTTL is how long a job's saved match list stays cached.
	CacheTTL time.Duration
	// GenerateRate limits match generation requests per second; 0 disables it.
	GenerateRate  float64
	GenerateBurst int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "talent-match")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("WS_PORT", "8081")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MIGRATIONS_DIR", "migrations")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_TTL", 600*time.Second)
	v.SetDefault("JWT_ISSUER", "talent-match")
	v.SetDefault("JWT_EXPIRES_IN", time.Hour)
	v.SetDefault("MATCH_FETCH_CONCURRENCY", 0)
	v.SetDefault("MATCH_CACHE_TTL", 5*time.Minute)
	v.SetDefault("MATCH_GENERATE_RATE", 0)
	v.SetDefault("MATCH_GENERATE_BURST", 1)
}

// Load reads configuration from the environment and, when configFile is set,
// from that file. Environment values win over file values.
func Load(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if strings.TrimSpace(configFile) != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return FromViper(v)
}

func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME"),
		Environment: opt("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		WSPort:      opt("WS_PORT"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	cfg.Database = DatabaseConfig{
		Driver:                strings.ToLower(opt("DATABASE_DRIVER")),
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		MigrationsDir:         opt("DB_MIGRATIONS_DIR"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	switch cfg.Database.Driver {
	case DriverPostgres:
		req("DB_HOST")
		req("DB_NAME")
		req("DB_USER")
	case DriverSupabase:
		cfg.Supabase = SupabaseConfig{
			URL: req("SUPABASE_URL"),
			Key: req("SUPABASE_KEY"),
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET"),
		Issuer:    opt("JWT_ISSUER"),
		ExpiresIn: v.GetDuration("JWT_EXPIRES_IN"),
	}

	cfg.Matching = MatchingConfig{
		FetchConcurrency: v.GetInt("MATCH_FETCH_CONCURRENCY"),
		CacheTTL:         v.GetDuration("MATCH_CACHE_TTL"),
		GenerateRate:     v.GetFloat64("MATCH_GENERATE_RATE"),
		GenerateBurst:    v.GetInt("MATCH_GENERATE_BURST"),
	}
	if cfg.Matching.GenerateBurst < 1 {
		cfg.Matching.GenerateBurst = 1
	}
	if cfg.Matching.FetchConcurrency < 0 {
		cfg.Matching.FetchConcurrency = 0
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

package cli

import (
	"errors"
	"fmt"
	"os"

	"talent-match/internal/config"
	"talent-match/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "matcher"

var (
	cfgFile   string
	debugLogs bool
	jsonLogs  bool

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "matcher scores candidates against jobs and manages the match store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(loadDotEnv)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional config file; environment variables take precedence")
	rootCmd.PersistentFlags().BoolVarP(&debugLogs, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "json format for logging")
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "reading .env: %v\n", err)
	}
}

// setup loads configuration and builds the logger shared by every command.
// Flags override LOG_JSON and LOG_DEBUG.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}
	lg, err := logger.New(cfg.Log.JSON || jsonLogs, cfg.Log.Debug || debugLogs)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, lg, nil
}

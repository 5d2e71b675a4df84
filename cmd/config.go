package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/getlawrence/techprofile/internal/config"
	"github.com/getlawrence/techprofile/internal/logger"
	"github.com/getlawrence/techprofile/internal/ui"
	"github.com/spf13/cobra"
)

// AppConfig holds all the shared configuration and dependencies
type AppConfig struct {
	Config  *config.Config
	Logger  logger.Logger
	Verbose bool
	// Output is the resolved output format
	Output string
}

// NewAppConfig creates a new configuration instance
func NewAppConfig(cfg *config.Config, l logger.Logger) *AppConfig {
	return &AppConfig{
		Config: cfg,
		Logger: logger.OrNop(l),
		Output: cfg.Output.Format,
	}
}

// loadAppConfig reads the config file and stores the AppConfig on the command context.
func loadAppConfig(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Output.Format = out
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ui.SetColor(cfg.Output.Color)
	app := NewAppConfig(cfg, &ui.UILogger{Out: os.Stderr, Verbose: verbose})
	app.Verbose = verbose
	cmd.SetContext(withAppConfig(cmd.Context(), app))
	return nil
}

func appConfig(cmd *cobra.Command) (*AppConfig, error) {
	if app, ok := cmd.Context().Value(ConfigKey).(*AppConfig); ok && app != nil {
		return app, nil
	}
	return nil, fmt.Errorf("configuration not loaded")
}

func withAppConfig(ctx context.Context, app *AppConfig) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ConfigKey, app)
}

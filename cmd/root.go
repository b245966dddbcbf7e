package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cinemate/internal/app"
	"cinemate/pkg/config"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "cinemate",
	Short: "Discover movies and get AI recommendations",
	Long: `Cinemate browses the TMDB movie catalog and layers AI recommendations on top:
prompt or filter based picks, mood suggestions, scene lookup and movie chat.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (default ./config.yaml)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogger()
	}
}

// Execute runs the root command; an interrupt cancels in-flight requests.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// setupLogger writes logs to stderr so command output on stdout stays pipeable.
func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(ctx, configPath)
	}
	return config.Load(ctx)
}

// loadService builds the application. Catalog-only commands skip the model key check.
func loadService(cmd *cobra.Command, needsLLM bool) (*app.Service, error) {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	if needsLLM {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	} else if cfg.TMDBAPIKey == "" {
		return nil, errors.New("TMDB_API_KEY is not set, run: cinemate setup")
	}

	return app.BuildService(ctx, cfg)
}

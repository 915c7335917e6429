package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/klokku/freelancer/internal/app"
	"github.com/klokku/freelancer/internal/config"
	"github.com/klokku/freelancer/internal/kvstore"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "freelancer",
	Short:         "Freelancer dashboard",
	Long:          "Track clients, projects, time, milestones, expenses, invoices and documents.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogging()
	},
	RunE: runDashboard,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", config.DefaultPath, "Path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
}

func setupLogging() error {
	level := flagLogLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		log.SetLevel(log.InfoLevel)
		return nil
	}
	logrusLevel, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(logrusLevel)
	return nil
}

// loadConfig reads the configuration and applies log.level unless the level
// was given on the command line or in LOG_LEVEL.
func loadConfig() (config.Application, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLogLevel == "" && os.Getenv("LOG_LEVEL") == "" && cfg.Log.Level != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			return cfg, fmt.Errorf("invalid log.level: %w", err)
		}
		log.SetLevel(level)
	}
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// openDependencies is the shared path used by the non-server commands. The
// caller closes the returned store.
func openDependencies(ctx context.Context) (*app.Dependencies, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	return app.BuildDependencies(store, cfg), nil
}

func closeStore(deps *app.Dependencies) {
	if err := deps.Store.Close(); err != nil {
		log.Errorf("failed to close store: %v", err)
	}
}

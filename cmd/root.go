package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"multitimer/internal/config"
	"multitimer/internal/db"
	"multitimer/internal/logging"
)

var (
	configPath string
	quiet      bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "multitimer",
	Short: "Run several labelled countdown timers from the menu bar",
	Long: `multitimer puts a timer icon in the menu bar. Pick a preset or a custom
duration to start a countdown; every running timer gets its own row with
Pause/Resume and Cancel actions, and a system alert fires when it ends.

Run without a subcommand to launch the menu bar app.`,
	SilenceUsage: true,
	RunE:         runMenubar,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.config/multitimer/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func GetConfigPath() string {
	return configPath
}

func GetQuiet() bool {
	return quiet
}

// loadConfig reads the config and builds a logger honoring --log-level and --quiet.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(GetConfigPath())
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("loading config: %w", err)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logging.New(os.Stderr, cfg.LogLevel)
	if GetQuiet() {
		log = logging.Quiet(os.Stderr)
	}
	return cfg, log, nil
}

// openHistory returns nil when history is disabled in the config.
func openHistory(cfg *config.Config) (*db.Database, error) {
	if !cfg.HistoryEnabled {
		return nil, nil
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

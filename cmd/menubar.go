package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"multitimer/internal/notify"
	"multitimer/internal/timer"
	"multitimer/internal/tray"
)

func runMenubar(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	opts := tray.Options{
		Notifier: notify.NewSystem(&notify.RealExecutor{}, notify.Style(cfg.AlertStyle)),
		Logger:   log,
		Sound:    cfg.SoundEnabled,
	}

	database, err := openHistory(cfg)
	if err != nil {
		// History is optional; the timers still work without it.
		log.Warn().Err(err).Str("path", cfg.DBPath).Msg("history disabled")
	} else if database != nil {
		defer database.Close()
		opts.Recorder = database
	}

	ctrl := tray.NewController(timer.NewRegistry(timer.SystemClock), opts)

	app, err := tray.NewApp(cfg, ctrl, log)
	if err != nil {
		return fmt.Errorf("starting menu bar: %w", err)
	}

	app.Run(context.Background())
	return nil
}

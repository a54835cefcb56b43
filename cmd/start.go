package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"multitimer/internal/notify"
	"multitimer/internal/timer"
	"multitimer/internal/tray"
)

var startCmd = &cobra.Command{
	Use:   "start <duration> [label]",
	Short: "Run a single countdown in the terminal",
	Long: `Run one countdown without the menu bar and raise the same completion
alert when it ends.

Duration can be:
  - A Go duration: 90s, 25m, 1h30m
  - Plain minutes: 5, 2.5

Press Ctrl-C to cancel.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	d, err := timer.ParseDuration(args[0])
	if err != nil {
		return err
	}
	label := strings.Join(args[1:], " ")

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	opts := tray.Options{
		Notifier: notify.NewSystem(&notify.RealExecutor{}, notify.Style(cfg.AlertStyle)),
		Logger:   log,
		Sound:    cfg.SoundEnabled,
		// Wait for the alert so the process does not exit under it.
		Dispatch: func(fn func()) { fn() },
	}

	database, err := openHistory(cfg)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.DBPath).Msg("history disabled")
	} else if database != nil {
		defer database.Close()
		opts.Recorder = database
	}

	ctrl := tray.NewController(timer.NewRegistry(timer.SystemClock), opts)
	t, err := ctrl.StartTimer(label, d)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return countdown(ctx, ctrl, t, cfg.TickInterval.Duration)
}

func countdown(ctx context.Context, ctrl *tray.Controller, t *timer.Timer, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		if !GetQuiet() {
			fmt.Printf("\r%s   ", tray.RowTitle(t))
		}

		select {
		case <-ctx.Done():
			if !GetQuiet() {
				fmt.Println()
			}
			if err := ctrl.Cancel(t.ID); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Cancelled: %s\n", t.Label)
			return nil
		case <-ticker.C:
			if ctrl.Tick() > 0 {
				if !GetQuiet() {
					fmt.Printf("\n%s\n", tray.CompletionTitle(t.Label))
				}
				return nil
			}
		}
	}
}

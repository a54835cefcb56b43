package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"multitimer/internal/db"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently finished timers",
	Long:  `Display completed and cancelled timers, newest first, with running totals.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	summary, err := database.Summarize()
	if err != nil {
		return fmt.Errorf("summarizing history: %w", err)
	}

	fmt.Println("=== Totals ===")
	fmt.Printf("Database:   %s\n", database.Path())
	fmt.Printf("Completed:  %d\n", summary.Completed)
	fmt.Printf("Cancelled:  %d\n", summary.Cancelled)
	fmt.Printf("Time timed: %s\n", summary.TotalTime.Round(time.Second))
	fmt.Println()

	entries, err := database.RecentEntries(historyLimit)
	if err != nil {
		return fmt.Errorf("getting history: %w", err)
	}

	fmt.Println("=== Recent Timers ===")
	if len(entries) == 0 {
		fmt.Println("No timers recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tDURATION\tOUTCOME\tENDED")

	for _, e := range entries {
		outcome := string(e.Outcome)
		if e.AlertError.Valid {
			outcome += " (alert failed)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s ago\n",
			truncate(e.Label, 30), e.Duration.Round(time.Second), outcome, formatAge(time.Since(e.EndedAt)))
	}

	w.Flush()

	return nil
}

// truncate shortens s to maxLen runes so labels never split a character.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func formatAge(d time.Duration) string {
	switch hours := int(d.Hours()); {
	case hours >= 24:
		return fmt.Sprintf("%dd", hours/24)
	case hours >= 1:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
}

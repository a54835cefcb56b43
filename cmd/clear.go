package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"multitimer/internal/db"
)

var forceFlag bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the timer history",
	Long:  `Delete the multitimer history database. Running timers are not affected.`,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		fmt.Println("History does not exist. Nothing to clear.")
		return nil
	}

	summary, err := describeHistory(cfg.DBPath)
	if err != nil {
		return err
	}

	if !forceFlag {
		fmt.Printf("This will delete %s from %s\n", summary, cfg.DBPath)
		ok, err := confirm(os.Stdin)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.Remove(cfg.DBPath); err != nil {
		return fmt.Errorf("deleting history: %w", err)
	}

	fmt.Printf("Deleted %s.\n", summary)
	return nil
}

// describeHistory summarizes what a clear would throw away.
func describeHistory(path string) (string, error) {
	database, err := db.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	s, err := database.Summarize()
	if err != nil {
		return "", fmt.Errorf("summarizing history: %w", err)
	}

	total := s.Completed + s.Cancelled
	noun := "entries"
	if total == 1 {
		noun = "entry"
	}
	return fmt.Sprintf("%d %s (%d completed, %s timed)",
		total, noun, s.Completed, s.TotalTime.Round(time.Second)), nil
}

func confirm(r io.Reader) (bool, error) {
	fmt.Print("Are you sure? [y/N] ")

	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

//go:build linux

package notify

import (
	"fmt"
	"os"
)

func platformAlert(exec Executor, title, message string) error {
	if err := exec.Run("notify-send", "--urgency=critical", title, message); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}

func platformNotify(exec Executor, title, body string) error {
	if err := exec.Run("notify-send", title, body); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}

func platformPlaySound(exec Executor) {
	soundPath := "/usr/share/sounds/freedesktop/stereo/complete.oga"
	if _, err := os.Stat(soundPath); err == nil {
		_ = exec.Run("paplay", soundPath)
		return
	}
	// Fallback to terminal bell
	fmt.Print("\a")
}

//go:build darwin

package notify

import (
	"fmt"
)

func platformAlert(exec Executor, title, message string) error {
	script := fmt.Sprintf(`display alert %q message %q as informational`, title, message)
	if err := exec.Run("osascript", "-e", script); err != nil {
		return fmt.Errorf("osascript alert failed: %w", err)
	}
	return nil
}

func platformNotify(exec Executor, title, body string) error {
	script := fmt.Sprintf(`display notification %q with title %q`, body, title)
	if err := exec.Run("osascript", "-e", script); err != nil {
		return fmt.Errorf("osascript notification failed: %w", err)
	}
	return nil
}

func platformPlaySound(exec Executor) {
	_ = exec.Run("afplay", "/System/Library/Sounds/Glass.aiff")
}

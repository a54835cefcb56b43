//go:build !linux && !darwin

package notify

import "fmt"

func platformAlert(exec Executor, title, message string) error {
	fmt.Printf("[ALERT] %s: %s\n", title, message)
	return nil
}

func platformNotify(exec Executor, title, body string) error {
	// Unsupported platform - just print to stdout
	fmt.Printf("[NOTIFICATION] %s: %s\n", title, body)
	return nil
}

func platformPlaySound(exec Executor) {
	// Terminal bell fallback
	fmt.Print("\a")
}

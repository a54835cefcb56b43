package notify

import (
	"os/exec"
)

// Executor runs an external command. Tests substitute a recorder.
type Executor interface {
	Run(name string, args ...string) error
}

type RealExecutor struct{}

func (e *RealExecutor) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Style picks how a completion is surfaced.
type Style string

const (
	StyleAlert        Style = "alert"        // modal dialog, blocks until dismissed
	StyleNotification Style = "notification" // banner in the notification center
)

// Notifier raises completion alerts.
type Notifier interface {
	Alert(title, message string) error
	PlaySound()
}

// System talks to the host OS through its scripting bridge.
type System struct {
	executor Executor
	style    Style
}

func NewSystem(executor Executor, style Style) *System {
	if executor == nil {
		executor = &RealExecutor{}
	}
	if style != StyleNotification {
		style = StyleAlert
	}
	return &System{executor: executor, style: style}
}

func (s *System) Alert(title, message string) error {
	if s.style == StyleNotification {
		return platformNotify(s.executor, title, message)
	}
	return platformAlert(s.executor, title, message)
}

func (s *System) PlaySound() {
	platformPlaySound(s.executor)
}

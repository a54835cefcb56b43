package timer

import "errors"

var (
	ErrInvalidDuration   = errors.New("duration must be greater than zero")
	ErrInvalidTransition = errors.New("invalid timer state transition")
	ErrNotFound          = errors.New("timer not found")
	ErrInvalidInput      = errors.New("invalid duration input")
)

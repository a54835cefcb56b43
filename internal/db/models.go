package db

import (
	"database/sql"
	"time"
)

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
)

type Entry struct {
	ID         int64
	TimerID    string
	Label      string
	Duration   time.Duration
	StartedAt  time.Time
	EndedAt    time.Time
	Outcome    Outcome
	AlertError sql.NullString // set when the completion alert could not be shown
}

type Summary struct {
	Completed int
	Cancelled int
	TotalTime time.Duration // sum of completed durations
}

package timer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatRemaining renders MM:SS, or HH:MM:SS once an hour or more is left.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// MaxMinutes is the longest timer, in minutes, a time.Duration can hold.
const MaxMinutes = float64(math.MaxInt64) / float64(time.Minute)

// DefaultLabel names a timer after its duration, e.g. "45 seconds" or "2.5 minutes".
func DefaultLabel(d time.Duration) string {
	if d < time.Minute {
		return pluralize(trimFloat(d.Seconds()), "second")
	}
	return pluralize(trimFloat(d.Minutes()), "minute")
}

// MinutesToDuration converts a minute count, rejecting values that are not
// finite, not positive, or too large for a time.Duration.
func MinutesToDuration(minutes float64) (time.Duration, error) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0, fmt.Errorf("%g minutes: %w", minutes, ErrInvalidInput)
	}
	if minutes <= 0 {
		return 0, fmt.Errorf("%g minutes: %w", minutes, ErrInvalidDuration)
	}
	if minutes >= MaxMinutes {
		return 0, fmt.Errorf("%g minutes is too long: %w", minutes, ErrInvalidInput)
	}
	return time.Duration(minutes * float64(time.Minute)), nil
}

// ParseMinutes reads the custom timer dialog answer.
func ParseMinutes(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty input: %w", ErrInvalidInput)
	}
	minutes, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", s, ErrInvalidInput)
	}
	d, err := MinutesToDuration(minutes)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", s, err)
	}
	return d, nil
}

// ParseDuration accepts a Go duration ("90s", "1h30m") or plain minutes ("25").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("%q: %w", s, ErrInvalidDuration)
		}
		return d, nil
	}
	return ParseMinutes(s)
}

func pluralize(n, unit string) string {
	if n == "1" {
		return n + " " + unit
	}
	return n + " " + unit + "s"
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

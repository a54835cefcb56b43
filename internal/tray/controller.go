package tray

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"multitimer/internal/db"
	"multitimer/internal/notify"
	"multitimer/internal/timer"
)

const (
	CompletionMessage = "Timer Complete"
	pauseLabel        = "Pause"
	resumeLabel       = "Resume"
	cancelLabel       = "Cancel"
)

// Recorder stores finished timers.
type Recorder interface {
	LogEntry(e *db.Entry) error
}

type Options struct {
	Notifier notify.Notifier
	Recorder Recorder // optional
	Logger   zerolog.Logger
	Sound    bool

	// Dispatch runs a completion alert off the event loop. Defaults to a goroutine.
	Dispatch func(fn func())

	// OnChange is called on the event loop whenever the menu should be redrawn.
	OnChange func()
}

// Controller owns the timer registry and turns user actions and ticks
// into registry updates, alerts and history entries. All methods must be
// called from the same event loop.
type Controller struct {
	reg      *timer.Registry
	notifier notify.Notifier
	recorder Recorder
	log      zerolog.Logger
	sound    bool
	dispatch func(fn func())
	onChange func()
}

func NewController(reg *timer.Registry, opts Options) *Controller {
	c := &Controller{
		reg:      reg,
		notifier: opts.Notifier,
		recorder: opts.Recorder,
		log:      opts.Logger,
		sound:    opts.Sound,
		dispatch: opts.Dispatch,
		onChange: opts.OnChange,
	}
	if c.dispatch == nil {
		c.dispatch = func(fn func()) { go fn() }
	}
	return c
}

func (c *Controller) SetOnChange(fn func()) {
	c.onChange = fn
}

func (c *Controller) Registry() *timer.Registry {
	return c.reg
}

func (c *Controller) StartTimer(label string, d time.Duration) (*timer.Timer, error) {
	t, err := c.reg.Start(label, d)
	if err != nil {
		return nil, fmt.Errorf("starting timer: %w", err)
	}
	c.log.Info().Str("timer", t.ID).Str("label", t.Label).Dur("duration", d).Msg("timer started")
	c.changed()
	return t, nil
}

// StartCustom starts a timer from the minutes typed into the custom dialog.
func (c *Controller) StartCustom(input string) (*timer.Timer, error) {
	d, err := timer.ParseMinutes(input)
	if err != nil {
		return nil, fmt.Errorf("custom timer: %w", err)
	}
	return c.StartTimer(timer.DefaultLabel(d), d)
}

func (c *Controller) Pause(id string) error {
	t, err := c.reg.Pause(id)
	if err != nil {
		return fmt.Errorf("pausing timer: %w", err)
	}
	c.log.Debug().Str("timer", id).Dur("remaining", t.Remaining()).Msg("timer paused")
	c.changed()
	return nil
}

func (c *Controller) Resume(id string) error {
	t, err := c.reg.Resume(id)
	if err != nil {
		return fmt.Errorf("resuming timer: %w", err)
	}
	c.log.Debug().Str("timer", id).Time("end", t.EndTime).Msg("timer resumed")
	c.changed()
	return nil
}

// Toggle pauses a running timer or resumes a paused one.
func (c *Controller) Toggle(id string) error {
	t, err := c.reg.Get(id)
	if err != nil {
		return fmt.Errorf("toggling timer: %w", err)
	}
	if t.Paused() {
		return c.Resume(id)
	}
	return c.Pause(id)
}

func (c *Controller) Cancel(id string) error {
	t, err := c.reg.Cancel(id)
	if err != nil {
		return fmt.Errorf("cancelling timer: %w", err)
	}
	c.log.Info().Str("timer", id).Str("label", t.Label).Msg("timer cancelled")
	c.record(t, db.OutcomeCancelled, c.reg.Clock().Now(), nil)
	c.changed()
	return nil
}

// Tick advances every timer and fires one alert per timer that expired.
// It returns the number of alerts raised.
func (c *Controller) Tick() int {
	active := c.reg.Len()
	expired := c.reg.Tick()

	for _, t := range expired {
		c.log.Info().Str("timer", t.ID).Str("label", t.Label).Msg("timer finished")
		c.alert(t)
	}

	if active > 0 {
		c.changed()
	}
	return len(expired)
}

func (c *Controller) alert(t *timer.Timer) {
	title := CompletionTitle(t.Label)
	endedAt := c.reg.Clock().Now()
	c.dispatch(func() {
		var alertErr error
		if c.notifier != nil {
			if c.sound {
				c.notifier.PlaySound()
			}
			alertErr = c.notifier.Alert(title, CompletionMessage)
			if alertErr != nil {
				c.log.Error().Err(alertErr).Str("timer", t.ID).Msg("completion alert failed")
			}
		}
		c.record(t, db.OutcomeCompleted, endedAt, alertErr)
	})
}

func (c *Controller) record(t *timer.Timer, outcome db.Outcome, endedAt time.Time, alertErr error) {
	if c.recorder == nil {
		return
	}

	entry := &db.Entry{
		TimerID:   t.ID,
		Label:     t.Label,
		Duration:  t.Duration,
		StartedAt: t.StartedAt,
		EndedAt:   endedAt,
		Outcome:   outcome,
	}
	if alertErr != nil {
		entry.AlertError = sql.NullString{String: alertErr.Error(), Valid: true}
	}

	if err := c.recorder.LogEntry(entry); err != nil {
		c.log.Warn().Err(err).Str("timer", t.ID).Msg("recording history failed")
	}
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// View describes what the dropdown should show right now.
type View struct {
	Status        string
	StatusEnabled bool
	Rows          []Row
}

type Row struct {
	ID          string
	Title       string
	ToggleLabel string
}

func (v View) Equal(o View) bool {
	if v.Status != o.Status || v.StatusEnabled != o.StatusEnabled || len(v.Rows) != len(o.Rows) {
		return false
	}
	for i := range v.Rows {
		if v.Rows[i] != o.Rows[i] {
			return false
		}
	}
	return true
}

func (c *Controller) View() View {
	timers := c.reg.List()
	v := View{
		Status:        StatusTitle(len(timers)),
		StatusEnabled: len(timers) > 0,
		Rows:          make([]Row, 0, len(timers)),
	}
	for _, t := range timers {
		toggle := pauseLabel
		if t.Paused() {
			toggle = resumeLabel
		}
		v.Rows = append(v.Rows, Row{
			ID:          t.ID,
			Title:       RowTitle(t),
			ToggleLabel: toggle,
		})
	}
	return v
}

func StatusTitle(n int) string {
	switch n {
	case 0:
		return "No active timers"
	case 1:
		return "1 active timer"
	default:
		return fmt.Sprintf("%d active timers", n)
	}
}

// RowTitle renders "tea (03:12 remaining)" or "tea (Paused, 03:12 remaining)".
func RowTitle(t *timer.Timer) string {
	remaining := timer.FormatRemaining(t.Remaining())
	if t.Paused() {
		remaining = "Paused, " + remaining
	}
	return fmt.Sprintf("%s (%s remaining)", t.Label, remaining)
}

func CompletionTitle(label string) string {
	return fmt.Sprintf("Your timer for %s has ended!", label)
}

// IsUserError reports whether err came from bad input rather than a fault.
func IsUserError(err error) bool {
	return errors.Is(err, timer.ErrInvalidInput) || errors.Is(err, timer.ErrInvalidDuration)
}

package tray

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"multitimer/internal/db"
	"multitimer/internal/timer"
)

type alertCall struct {
	title   string
	message string
}

type fakeNotifier struct {
	alerts []alertCall
	sounds int
	err    error
}

func (f *fakeNotifier) Alert(title, message string) error {
	f.alerts = append(f.alerts, alertCall{title: title, message: message})
	return f.err
}

func (f *fakeNotifier) PlaySound() {
	f.sounds++
}

type fakeRecorder struct {
	entries []*db.Entry
}

func (f *fakeRecorder) LogEntry(e *db.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestController(sound bool) (*Controller, *timer.ManualClock, *fakeNotifier, *fakeRecorder, *int) {
	clock := timer.NewManualClock(epoch)
	notifier := &fakeNotifier{}
	recorder := &fakeRecorder{}
	redraws := 0
	ctrl := NewController(timer.NewRegistry(clock), Options{
		Notifier: notifier,
		Recorder: recorder,
		Logger:   zerolog.Nop(),
		Sound:    sound,
		Dispatch: func(fn func()) { fn() },
		OnChange: func() { redraws++ },
	})
	return ctrl, clock, notifier, recorder, &redraws
}

func TestController_FiveSecondTimerAlertsExactlyOnce(t *testing.T) {
	ctrl, clock, notifier, recorder, _ := newTestController(true)

	if _, err := ctrl.StartTimer("tea", 5*time.Second); err != nil {
		t.Fatalf("failed to start timer: %v", err)
	}

	for i := 0; i < 4; i++ {
		clock.Advance(time.Second)
		if n := ctrl.Tick(); n != 0 {
			t.Fatalf("tick %d: expected no alerts, got %d", i, n)
		}
	}

	clock.Advance(time.Second)
	if n := ctrl.Tick(); n != 1 {
		t.Fatalf("expected 1 alert at 5s, got %d", n)
	}
	for i := 0; i < 3; i++ {
		clock.Advance(time.Second)
		ctrl.Tick()
	}

	if len(notifier.alerts) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(notifier.alerts))
	}
	if notifier.alerts[0].title != "Your timer for tea has ended!" {
		t.Errorf("unexpected alert title %q", notifier.alerts[0].title)
	}
	if notifier.alerts[0].message != CompletionMessage {
		t.Errorf("unexpected alert message %q", notifier.alerts[0].message)
	}
	if notifier.sounds != 1 {
		t.Errorf("expected 1 sound, got %d", notifier.sounds)
	}

	if len(recorder.entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(recorder.entries))
	}
	if recorder.entries[0].Outcome != db.OutcomeCompleted {
		t.Errorf("expected completed outcome, got %q", recorder.entries[0].Outcome)
	}
	if !recorder.entries[0].EndedAt.Equal(epoch.Add(5 * time.Second)) {
		t.Errorf("expected ended at 5s, got %v", recorder.entries[0].EndedAt)
	}

	if v := ctrl.View(); v.Status != "No active timers" || v.StatusEnabled {
		t.Errorf("expected empty disabled status, got %+v", v)
	}
}

func TestController_SoundDisabled(t *testing.T) {
	ctrl, clock, notifier, _, _ := newTestController(false)
	_, _ = ctrl.StartTimer("quiet", time.Second)

	clock.Advance(time.Second)
	ctrl.Tick()

	if notifier.sounds != 0 {
		t.Errorf("expected no sound, got %d", notifier.sounds)
	}
	if len(notifier.alerts) != 1 {
		t.Errorf("expected alert even without sound, got %d", len(notifier.alerts))
	}
}

func TestController_AlertFailureIsRecorded(t *testing.T) {
	ctrl, clock, notifier, recorder, _ := newTestController(false)
	notifier.err = errors.New("osascript missing")
	_, _ = ctrl.StartTimer("x", time.Second)

	clock.Advance(time.Second)
	ctrl.Tick()

	if len(recorder.entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(recorder.entries))
	}
	if !recorder.entries[0].AlertError.Valid {
		t.Error("expected alert error to be recorded")
	}
}

func TestController_CancelNeverAlerts(t *testing.T) {
	ctrl, clock, notifier, recorder, _ := newTestController(true)
	tm, _ := ctrl.StartTimer("eggs", 10*time.Second)

	clock.Advance(3 * time.Second)
	if err := ctrl.Cancel(tm.ID); err != nil {
		t.Fatalf("failed to cancel: %v", err)
	}

	clock.Advance(time.Minute)
	ctrl.Tick()

	if len(notifier.alerts) != 0 {
		t.Errorf("expected no alerts, got %d", len(notifier.alerts))
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Outcome != db.OutcomeCancelled {
		t.Errorf("expected one cancelled entry, got %+v", recorder.entries)
	}
	if err := ctrl.Cancel(tm.ID); !errors.Is(err, timer.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second cancel, got %v", err)
	}
}

func TestController_ToggleAndView(t *testing.T) {
	ctrl, clock, notifier, _, _ := newTestController(false)
	tm, _ := ctrl.StartTimer("pasta", 10*time.Minute)

	clock.Advance(2*time.Minute + 30*time.Second)
	v := ctrl.View()
	if len(v.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(v.Rows))
	}
	if v.Rows[0].Title != "pasta (07:30 remaining)" {
		t.Errorf("unexpected row title %q", v.Rows[0].Title)
	}
	if v.Rows[0].ToggleLabel != "Pause" {
		t.Errorf("expected Pause, got %q", v.Rows[0].ToggleLabel)
	}

	if err := ctrl.Toggle(tm.ID); err != nil {
		t.Fatalf("failed to pause: %v", err)
	}
	clock.Advance(time.Hour)
	ctrl.Tick()

	v = ctrl.View()
	if v.Rows[0].Title != "pasta (Paused, 07:30 remaining)" {
		t.Errorf("unexpected paused title %q", v.Rows[0].Title)
	}
	if v.Rows[0].ToggleLabel != "Resume" {
		t.Errorf("expected Resume, got %q", v.Rows[0].ToggleLabel)
	}
	if len(notifier.alerts) != 0 {
		t.Errorf("paused timer alerted")
	}

	if err := ctrl.Toggle(tm.ID); err != nil {
		t.Fatalf("failed to resume: %v", err)
	}
	clock.Advance(7*time.Minute + 30*time.Second)
	if n := ctrl.Tick(); n != 1 {
		t.Errorf("expected resumed timer to finish, got %d alerts", n)
	}
}

func TestController_StartCustom(t *testing.T) {
	ctrl, _, _, _, redraws := newTestController(false)

	tm, err := ctrl.StartCustom("2.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tm.Label != "2.5 minutes" {
		t.Errorf("expected label %q, got %q", "2.5 minutes", tm.Label)
	}
	if tm.Duration != 150*time.Second {
		t.Errorf("expected 150s, got %v", tm.Duration)
	}
	if *redraws != 1 {
		t.Errorf("expected 1 redraw, got %d", *redraws)
	}

	tm, err = ctrl.StartCustom("0.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tm.Label != "30 seconds" {
		t.Errorf("expected label %q, got %q", "30 seconds", tm.Label)
	}

	for _, in := range []string{"", "soon", "-1", "0", "Inf", "NaN", "1e12"} {
		_, err := ctrl.StartCustom(in)
		if err == nil {
			t.Errorf("StartCustom(%q): expected error", in)
			continue
		}
		if !IsUserError(err) {
			t.Errorf("StartCustom(%q): expected user error, got %v", in, err)
		}
	}
	if ctrl.Registry().Len() != 2 {
		t.Errorf("expected 2 timers, got %d", ctrl.Registry().Len())
	}
}

func TestController_TickRedrawsOnlyWithTimers(t *testing.T) {
	ctrl, clock, _, _, redraws := newTestController(false)

	ctrl.Tick()
	if *redraws != 0 {
		t.Errorf("expected no redraw with no timers, got %d", *redraws)
	}

	_, _ = ctrl.StartTimer("a", time.Minute)
	clock.Advance(time.Second)
	ctrl.Tick()
	if *redraws != 2 {
		t.Errorf("expected 2 redraws (start + tick), got %d", *redraws)
	}
}

func TestStatusTitle(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "No active timers"},
		{1, "1 active timer"},
		{2, "2 active timers"},
		{12, "12 active timers"},
	}
	for _, tt := range tests {
		if got := StatusTitle(tt.n); got != tt.want {
			t.Errorf("StatusTitle(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRowTitle_HourForm(t *testing.T) {
	clock := timer.NewManualClock(epoch)
	tm, _ := timer.New("nap", 90*time.Minute, clock)
	_ = tm.Start()

	if got := RowTitle(tm); got != "nap (01:30:00 remaining)" {
		t.Errorf("unexpected title %q", got)
	}
}

func TestView_Equal(t *testing.T) {
	a := View{Status: "1 active timer", StatusEnabled: true, Rows: []Row{{ID: "x", Title: "t (00:01 remaining)", ToggleLabel: "Pause"}}}
	b := View{Status: "1 active timer", StatusEnabled: true, Rows: []Row{{ID: "x", Title: "t (00:01 remaining)", ToggleLabel: "Pause"}}}
	if !a.Equal(b) {
		t.Error("expected identical views to be equal")
	}
	b.Rows[0].Title = "t (00:00 remaining)"
	if a.Equal(b) {
		t.Error("expected views with different rows to differ")
	}
}

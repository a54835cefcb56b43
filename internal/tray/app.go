package tray

import (
	"context"
	"errors"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"multitimer/internal/config"
)

const (
	AppName = "MultiTimer"
	AppID   = "io.multitimer.menubar"

	customLabel  = "Custom Timer..."
	customPrompt = "Custom timer duration (minutes):"
)

var ErrNoSystemTray = errors.New("system tray is not supported by this driver")

// App binds a Controller to the fyne system tray, which is the macOS
// status bar item.
type App struct {
	fyneApp fyne.App
	desk    desktop.App
	ctrl    *Controller
	cfg     *config.Config
	log     zerolog.Logger

	lastView View
	drawn    bool
	custom   fyne.Window
}

func NewApp(cfg *config.Config, ctrl *Controller, log zerolog.Logger) (*App, error) {
	fyneApp := app.NewWithID(AppID)
	desk, ok := fyneApp.(desktop.App)
	if !ok {
		return nil, ErrNoSystemTray
	}

	a := &App{
		fyneApp: fyneApp,
		desk:    desk,
		ctrl:    ctrl,
		cfg:     cfg,
		log:     log,
	}
	ctrl.SetOnChange(a.refresh)

	desk.SetSystemTrayIcon(theme.HistoryIcon())
	a.refresh()

	return a, nil
}

// Run blocks on the fyne event loop until the user quits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.fyneApp.Lifecycle().SetOnStopped(cancel)
	go a.tickLoop(ctx)

	a.log.Info().Int("presets", len(a.cfg.Presets)).Dur("tick", a.cfg.TickInterval.Duration).Msg("menubar started")
	a.fyneApp.Run()
}

func (a *App) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.TickInterval.Duration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(func() { a.ctrl.Tick() })
		}
	}
}

// refresh redraws the tray menu when what it shows has changed.
func (a *App) refresh() {
	view := a.ctrl.View()
	if a.drawn && view.Equal(a.lastView) {
		return
	}
	a.lastView = view
	a.drawn = true
	a.desk.SetSystemTrayMenu(a.buildMenu(view))
}

func (a *App) buildMenu(view View) *fyne.Menu {
	status := fyne.NewMenuItem(view.Status, nil)
	status.Disabled = !view.StatusEnabled

	if len(view.Rows) > 0 {
		rows := make([]*fyne.MenuItem, 0, len(view.Rows))
		for _, row := range view.Rows {
			id := row.ID
			item := fyne.NewMenuItem(row.Title, nil)
			item.ChildMenu = fyne.NewMenu("",
				fyne.NewMenuItem(row.ToggleLabel, func() { a.report(a.ctrl.Toggle(id)) }),
				fyne.NewMenuItem(cancelLabel, func() { a.report(a.ctrl.Cancel(id)) }),
			)
			rows = append(rows, item)
		}
		status.ChildMenu = fyne.NewMenu("", rows...)
	}

	items := []*fyne.MenuItem{status, fyne.NewMenuItemSeparator()}
	for _, p := range a.cfg.Presets {
		preset := p
		items = append(items, fyne.NewMenuItem(preset.Label, func() {
			_, err := a.ctrl.StartTimer(preset.Label, preset.Duration())
			a.report(err)
		}))
	}
	items = append(items,
		fyne.NewMenuItem(customLabel, a.showCustomDialog),
		fyne.NewMenuItemSeparator(),
	)

	return fyne.NewMenu(AppName, items...)
}

func (a *App) showCustomDialog() {
	if a.custom != nil {
		a.custom.RequestFocus()
		return
	}

	w := a.fyneApp.NewWindow(customLabel)
	a.custom = w
	w.SetOnClosed(func() { a.custom = nil })

	entry := widget.NewEntry()
	entry.SetText(a.cfg.CustomDefaultMinutes)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: customPrompt, Widget: entry},
		},
		SubmitText: "Start",
		OnSubmit: func() {
			if _, err := a.ctrl.StartCustom(entry.Text); err != nil {
				a.log.Warn().Err(err).Str("input", entry.Text).Msg("custom timer rejected")
				dialog.ShowError(err, w)
				return
			}
			w.Close()
		},
		OnCancel: w.Close,
	}

	w.SetContent(form)
	w.Resize(fyne.NewSize(360, 120))
	w.CenterOnScreen()
	w.Show()
	w.Canvas().Focus(entry)
}

func (a *App) report(err error) {
	if err == nil {
		return
	}
	if IsUserError(err) {
		a.log.Warn().Err(err).Msg("rejected timer action")
		return
	}
	a.log.Error().Err(err).Msg("timer action failed")
}

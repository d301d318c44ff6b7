package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/components/forecast"
	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/skycast/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/skycast/internal/core/domain"
	"github.com/custodia-labs/skycast/internal/logger"
)

// WatchFunc watches configuration and calls onChange after each reload.
// It blocks until ctx is cancelled.
type WatchFunc func(ctx context.Context, onChange func()) error

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// watch is an optional config watcher started by Run.
	watch WatchFunc

	styles *styles.Styles
	keymap *keymap.KeyMap

	input      *input.CityInput
	candidates *list.CandidateList
	panel      *forecast.Panel
	statusBar  *status.Bar
	spinner    spinner.Model
	help       help.Model

	// snap is the last resolver snapshot applied to the view.
	snap domain.ResolverSnapshot

	// showCandidates is false after a selection or esc until the next keystroke.
	showCandidates bool

	// showHelp toggles the full keybinding help.
	showHelp bool

	// night is set while the forecast location is in darkness.
	night bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Title

	a := &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		input:      input.NewCityInput(s),
		candidates: list.NewCandidateList(s),
		panel:      forecast.NewPanel(s),
		statusBar:  status.NewBar(s, km),
		spinner:    sp,
		help:       help.New(),
	}
	a.checkSettings()
	a.applySnapshot(ports.Resolver.Snapshot())

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithConfigWatch sets a watcher that Run starts alongside the program.
func (a *App) WithConfigWatch(watch WatchFunc) *App {
	a.watch = watch
	return a
}

// Init implements tea.Model.
// It loads the initial forecast and starts the cursor and spinner.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("skycast"),
		a.input.Init(),
		a.spinner.Tick,
		a.bootstrapCmd(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.statusBar.SetSpinner(a.spinner.View())
		return a, cmd

	case messages.SnapshotChanged:
		// Listener deliveries can arrive out of order; the resolver is authoritative.
		a.applySnapshot(a.ports.Resolver.Snapshot())
		return a, nil

	case messages.CandidateChosen:
		return a, a.selectCmd(msg.Candidate)

	case messages.SelectCompleted:
		a.finish(msg.Err)
		return a, nil

	case messages.BootstrapCompleted:
		a.finish(msg.Err)
		return a, nil

	case messages.RefreshCompleted:
		a.finish(msg.Err)
		return a, nil

	case messages.ConfigReloaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetMessage("Config reload failed")
			return a, nil
		}
		logger.Debug("config reloaded")
		a.checkSettings()
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// handleKey routes a key press to an action or the search input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keymap.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil

	case key.Matches(msg, a.keymap.Refresh):
		return a, a.refreshCmd()

	case key.Matches(msg, a.keymap.Clear):
		a.input.Reset()
		a.showCandidates = false
		a.ports.Resolver.QueryChanged("")
		return a, nil

	case key.Matches(msg, a.keymap.Up):
		a.candidates.MoveUp()
		return a, nil

	case key.Matches(msg, a.keymap.Down):
		a.candidates.MoveDown()
		return a, nil

	case key.Matches(msg, a.keymap.Select):
		if !a.CandidatesVisible() {
			return a, nil
		}
		c := a.candidates.SelectedCandidate()
		if c == nil {
			return a, nil
		}
		a.showCandidates = false
		return a, a.selectCmd(*c)
	}

	var cmd tea.Cmd
	var changed bool
	a.input, cmd, changed = a.input.Update(msg)
	if changed {
		a.showCandidates = true
		a.ports.Resolver.QueryChanged(a.input.Value())
	}
	return a, cmd
}

// applySnapshot pushes resolver state into the components.
func (a *App) applySnapshot(snap domain.ResolverSnapshot) {
	if !sameCandidates(a.snap.Candidates, snap.Candidates) {
		a.candidates.SetCandidates(snap.Candidates)
	}
	a.snap = snap
	if snap.Forecast != nil && snap.Forecast.Current.IsDay == a.night {
		a.night = !snap.Forecast.Current.IsDay
		a.styles.Apply(styles.ThemeFor(!a.night))
		a.spinner.Style = a.styles.Title
	}
	a.statusBar.SetSnapshot(snap)
	a.panel.SetForecast(snap.Forecast, snap.Stale)
}

// finish applies the latest snapshot after a resolver call returns.
// Superseded results are expected and not reported.
func (a *App) finish(err error) {
	a.applySnapshot(a.ports.Resolver.Snapshot())
	switch {
	case err == nil:
		a.err = nil
	case !errors.Is(err, domain.ErrSuperseded):
		a.err = err
	}
}

// checkSettings warns in the status bar when the API key is missing.
func (a *App) checkSettings() {
	if a.ports.Settings == nil {
		return
	}
	if err := a.ports.Settings.Validate(); err != nil {
		a.statusBar.SetMessage("API key missing: set SKYCAST_API_KEY or run 'skycast settings'")
		return
	}
	a.statusBar.Clear()
}

func (a *App) selectCmd(c domain.Candidate) tea.Cmd {
	resolver, ctx := a.ports.Resolver, a.ctx
	return func() tea.Msg {
		return messages.SelectCompleted{Candidate: c, Err: resolver.Select(ctx, c)}
	}
}

func (a *App) bootstrapCmd() tea.Cmd {
	resolver, ctx := a.ports.Resolver, a.ctx
	return func() tea.Msg {
		return messages.BootstrapCompleted{Err: resolver.Bootstrap(ctx)}
	}
}

func (a *App) refreshCmd() tea.Cmd {
	resolver, ctx := a.ports.Resolver, a.ctx
	return func() tea.Msg {
		return messages.RefreshCompleted{Err: resolver.Refresh(ctx)}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := []string{
		a.styles.Title.Render("☁ skycast"),
		a.input.View(),
	}

	if a.CandidatesVisible() {
		sections = append(sections, a.candidates.View())
	} else if a.snap.State == domain.StateLoading && a.snap.Forecast == nil {
		sections = append(sections, "", a.spinner.View()+" "+a.styles.Muted.Render("Loading forecast..."))
	} else {
		sections = append(sections, "", a.panel.View())
	}

	if a.showHelp {
		sections = append(sections, "", a.help.View(a.keymap))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	gap := a.height - lipgloss.Height(body) - 1
	if gap < 1 {
		gap = 1
	}

	return body + strings.Repeat("\n", gap) + a.statusBar.View()
}

// Run starts the TUI application. Resolver snapshots and config reloads
// are forwarded to the program as messages until it exits.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := a.ports.Resolver.Subscribe(func(snap domain.ResolverSnapshot) {
		p.Send(messages.SnapshotChanged{Snapshot: snap})
	})
	defer unsubscribe()

	if a.watch != nil {
		go func() {
			err := a.watch(ctx, func() { p.Send(messages.ConfigReloaded{}) })
			if err != nil && ctx.Err() == nil {
				p.Send(messages.ConfigReloaded{Err: err})
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// CandidatesVisible reports whether the candidate list replaces the forecast.
func (a *App) CandidatesVisible() bool {
	return a.showCandidates && a.snap.HasCandidates()
}

// Query returns the current input text.
func (a *App) Query() string {
	return a.input.Value()
}

// Snapshot returns the last applied resolver snapshot.
func (a *App) Snapshot() domain.ResolverSnapshot {
	return a.snap
}

// ShowingHelp reports whether the full help is visible.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// StatusMessage returns the status bar override message.
func (a *App) StatusMessage() string {
	return a.statusBar.Message()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.SetWidth(width)
	a.panel.SetWidth(width)
	a.statusBar.SetWidth(width)
	a.help.Width = width
	// title, input box and status bar
	a.candidates.SetDimensions(width, height-6)
}

// sameCandidates reports whether two lists hold the same candidates in order.
func sameCandidates(a, b []domain.Candidate) bool {
	if len(a) != len(b) || (a == nil) != (b == nil) {
		return false
	}
	for i := range a {
		if a[i].Key() != b[i].Key() || a[i].Region != b[i].Region {
			return false
		}
	}
	return true
}

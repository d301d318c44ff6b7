package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/skycast/internal/adapters/driving/tui"
	"github.com/custodia-labs/skycast/internal/core/ports/driving"
	"github.com/custodia-labs/skycast/internal/logger"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	Resolver        driving.TypeaheadResolver
	SettingsService driving.SettingsService

	// Watch reloads configuration while the TUI runs. Optional.
	Watch tui.WatchFunc

	// LogPath receives log output while the screen is active. When empty,
	// logs are discarded until the TUI exits.
	LogPath string
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// errNotTerminal is returned when the TUI is started without a terminal.
var errNotTerminal = errors.New("the interactive UI needs a terminal; use 'skycast forecast' instead")

// isTerminal reports whether stdout is a terminal. Tests replace it.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive weather screen.

Type a city name; matching cities appear after a short pause. Pick one to
load its forecast. The chosen city is remembered for the next start.

Controls:
  (type)   - Search for a city
  ↑/↓      - Move through matches
  Enter    - Select the highlighted city
  Esc      - Clear the search
  Ctrl+R   - Refresh the forecast
  F1       - Toggle help
  Ctrl+C   - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	if tuiConfig == nil || tuiConfig.Resolver == nil {
		return errors.New("typeahead resolver not configured")
	}
	if !isTerminal() {
		return errNotTerminal
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	restore, err := redirectLogs(tuiConfig.LogPath)
	if err != nil {
		return err
	}
	defer restore()

	app, err := tui.NewApp(tui.NewPorts(tuiConfig.Resolver, tuiConfig.SettingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	defer tuiConfig.Resolver.Close()

	app.WithContext(cmd.Context()).WithConfigWatch(tuiConfig.Watch)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// redirectLogs keeps log output off the alternate screen. It returns a
// function that restores stderr logging.
func redirectLogs(path string) (func(), error) {
	if path == "" || !logger.IsVerbose() {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	//nolint:gosec // G304: path comes from application wiring, not user input
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)

	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

// Package hypr tracks the active workspace and focused-window title of the
// Hyprland compositor and derives display values for a status bar.
//
// Hyprland exposes two UNIX sockets per instance: a request socket
// (.socket.sock) answering one-shot queries, and an event socket
// (.socket2.sock) streaming events. Both are spoken through
// [github.com/thiagokokada/hyprland-go] and live under the instance
// directory resolved by [SocketDir].
package hypr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	hyprland "github.com/thiagokokada/hyprland-go"
	"github.com/thiagokokada/hyprland-go/event"
)

const (
	requestSocket = ".socket.sock"
	eventSocket   = ".socket2.sock"
)

// ErrStreamEnded reports that the compositor event stream terminated. The
// monitor does not reconnect.
var ErrStreamEnded = errors.New("event stream ended")

// SocketDir resolves the IPC directory of the running Hyprland instance from
// the environment.
func SocketDir() (string, error) {
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return "", errors.New("HYPRLAND_INSTANCE_SIGNATURE not set")
	}

	runtime := os.Getenv("XDG_RUNTIME_DIR")
	if runtime == "" {
		return "", errors.New("XDG_RUNTIME_DIR not set")
	}

	return filepath.Join(runtime, "hypr", sig), nil
}

// WorkspaceUpdate carries the formatted workspace label together with the
// workspace id. The bar keys its title accent color on the id.
type WorkspaceUpdate struct {
	ID   int
	Text string
}

// Config parametrizes a [Monitor].
type Config struct {
	// IPC directory of the Hyprland instance, as returned by [SocketDir].
	SocketDir string

	// Maximum title length in runes before middle truncation.
	// Defaults to [DefaultMaxTitle].
	MaxTitle int

	Logger zerolog.Logger
}

// Monitor follows workspace and window-title changes and pushes display
// values to its output channels.
type Monitor struct {
	event.DefaultEventHandler

	events   *event.EventClient
	maxTitle int

	// Query method values of the request client, held as fields so the
	// event handlers can be driven without a live compositor.
	activeWorkspace func() (hyprland.Workspace, error)
	activeWindow    func() (hyprland.Window, error)

	workspaceOut chan<- WorkspaceUpdate
	titleOut     chan<- string

	log zerolog.Logger
}

// NewMonitor opens the event socket and returns a new [Monitor]. The sending
// halves of the workspace and title channels are injected here; the monitor
// is their only producer.
func NewMonitor(cfg Config, workspaceOut chan<- WorkspaceUpdate, titleOut chan<- string) (*Monitor, error) {
	if cfg.MaxTitle <= 0 {
		cfg.MaxTitle = DefaultMaxTitle
	}

	events, err := event.NewClient(filepath.Join(cfg.SocketDir, eventSocket))
	if err != nil {
		return nil, fmt.Errorf("failed to open compositor event socket: %w", err)
	}

	request := hyprland.NewClient(filepath.Join(cfg.SocketDir, requestSocket))

	return &Monitor{
		events:          events,
		maxTitle:        cfg.MaxTitle,
		activeWorkspace: request.ActiveWorkspace,
		activeWindow:    request.ActiveWindow,
		workspaceOut:    workspaceOut,
		titleOut:        titleOut,
		log:             cfg.Logger,
	}, nil
}

// loadInitial seeds both outputs with the current compositor state. Each
// query is tolerant of failure: a dead request socket or an absent focused
// window degrades to placeholder text, never to an error state.
func (m *Monitor) loadInitial() {
	update := WorkspaceUpdate{Text: "Workspace ?"}

	if ws, err := m.activeWorkspace(); err != nil {
		m.log.Error().Err(err).Msg("failed to query active workspace")
	} else {
		update = WorkspaceUpdate{ID: ws.Id, Text: FormatWorkspace(ws.Name, ws.Id)}
	}

	m.workspaceOut <- update

	title := ""

	// The query fails when no window is focused; that is the empty-title
	// case, not an error worth surfacing.
	if win, err := m.activeWindow(); err == nil {
		title = TruncateTitle(win.Title, m.maxTitle)
	}

	m.titleOut <- title
}

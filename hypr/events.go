package hypr

import (
	"context"

	"github.com/thiagokokada/hyprland-go/event"
)

// Run seeds the outputs with the current state and then consumes the
// compositor event stream until it ends. Like the bus monitor, it does not
// reconnect: a terminated stream ends workspace and title tracking for the
// rest of the process.
func (m *Monitor) Run() error {
	m.loadInitial()

	defer m.events.Close()

	m.log.Info().Msg("listening for compositor events")

	err := m.events.Subscribe(context.Background(), m, event.EventWorkspace, event.EventActiveWindow)
	if err != nil {
		m.log.Error().Err(err).Msg("compositor event stream failed")
		return err
	}

	m.log.Error().Msg("compositor event stream ended unexpectedly")

	return ErrStreamEnded
}

// Workspace handles a workspace switch. The event stream only carries the
// workspace name; the id behind the bar's accent color comes from a
// follow-up query.
func (m *Monitor) Workspace(name event.WorkspaceName) {
	ws, err := m.activeWorkspace()
	if err != nil {
		m.log.Error().Err(err).Msg("failed to query active workspace")
		m.workspaceOut <- WorkspaceUpdate{Text: FormatWorkspace(string(name), 0)}
		return
	}

	m.workspaceOut <- WorkspaceUpdate{ID: ws.Id, Text: FormatWorkspace(ws.Name, ws.Id)}
}

// ActiveWindow handles a focus change.
func (m *Monitor) ActiveWindow(w event.ActiveWindow) {
	m.titleOut <- TruncateTitle(w.Title, m.maxTitle)
}

// Package bar renders the status bar. It is a plain last-value-wins view:
// each segment displays the most recently received value on its input
// queue and tolerates duplicate values. The bar never blocks a producer;
// the queues upstream are unbounded.
package bar

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sergioahp/statusbar/hypr"
)

// Inputs are the receiving halves of the display queues.
type Inputs struct {
	Workspace <-chan hypr.WorkspaceUpdate
	Title     <-chan string
	Bluetooth <-chan string
	Battery   <-chan string
}

// Model is the bubbletea model of the bar.
type Model struct {
	inputs Inputs

	workspace hypr.WorkspaceUpdate
	title     string
	bluetooth string
	battery   string
	now       time.Time

	width int
}

type workspaceMsg hypr.WorkspaceUpdate

type titleMsg string

type bluetoothMsg string

type batteryMsg string

type tickMsg time.Time

// New returns the initial bar model.
func New(inputs Inputs) Model {
	return Model{
		inputs:    inputs,
		workspace: hypr.WorkspaceUpdate{Text: "Workspace ?"},
		bluetooth: "No BT",
		now:       time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		await(m.inputs.Workspace, func(w hypr.WorkspaceUpdate) tea.Msg { return workspaceMsg(w) }),
		await(m.inputs.Title, func(s string) tea.Msg { return titleMsg(s) }),
		await(m.inputs.Bluetooth, func(s string) tea.Msg { return bluetoothMsg(s) }),
		await(m.inputs.Battery, func(s string) tea.Msg { return batteryMsg(s) }),
		tick(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workspaceMsg:
		m.workspace = hypr.WorkspaceUpdate(msg)
		return m, await(m.inputs.Workspace, func(w hypr.WorkspaceUpdate) tea.Msg { return workspaceMsg(w) })
	case titleMsg:
		m.title = string(msg)
		return m, await(m.inputs.Title, func(s string) tea.Msg { return titleMsg(s) })
	case bluetoothMsg:
		m.bluetooth = string(msg)
		return m, await(m.inputs.Bluetooth, func(s string) tea.Msg { return bluetoothMsg(s) })
	case batteryMsg:
		m.battery = string(msg)
		return m, await(m.inputs.Battery, func(s string) tea.Msg { return batteryMsg(s) })
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// await waits for the next value on a queue. A closed queue yields a nil
// message, which bubbletea discards; the segment then keeps its last value
// for the rest of the run.
func await[T any](ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}

		return wrap(v)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

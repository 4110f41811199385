package bar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	workspaceStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("61")).
			Foreground(lipgloss.Color("230"))

	titleStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("235"))

	segmentStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("245"))
)

// workspaceColors maps workspace ids to the title accent color. Ids outside
// the map, including the negative ids of special workspaces, share a default.
var workspaceColors = map[int]lipgloss.Color{
	1:  "#7aa2f7",
	2:  "#7dcfff",
	3:  "#9ece6a",
	4:  "#bb9af7",
	5:  "#f7768e",
	6:  "#ff9e66",
	7:  "#9d7cd8",
	8:  "#e0af68",
	9:  "#2ac3de",
	10: "#0db9d7",
}

const defaultWorkspaceColor = lipgloss.Color("#43e97b")

func workspaceColor(id int) lipgloss.Color {
	if c, ok := workspaceColors[id]; ok {
		return c
	}

	return defaultWorkspaceColor
}

func (m Model) View() string {
	left := workspaceStyle.Render(m.workspace.Text)
	center := titleStyle.Background(workspaceColor(m.workspace.ID)).Render(m.title)
	right := m.rightGroup()

	if m.width <= 0 {
		return left + center + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if gap < 0 {
		return left + center + right
	}

	// Center the title between the two groups.
	pre := gap / 2
	post := gap - pre

	return left + strings.Repeat(" ", pre) + center + strings.Repeat(" ", post) + right
}

// rightGroup assembles the bluetooth, battery, and clock segments, skipping
// empty ones (no battery on a desktop machine leaves its segment out).
func (m Model) rightGroup() string {
	var segments []string

	for _, s := range []string{m.bluetooth, m.battery, m.now.Format("15:04")} {
		if s == "" {
			continue
		}

		segments = append(segments, segmentStyle.Render(s))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, segments...)
}

package hypr

import (
	"fmt"
	"strings"
)

// DefaultMaxTitle is the title length, in runes, above which titles are
// middle-truncated.
const DefaultMaxTitle = 64

// FormatWorkspace derives the workspace label. Special workspaces get their
// own prefix; an empty name falls back to the numeric id.
func FormatWorkspace(name string, id int) string {
	if rest, ok := strings.CutPrefix(name, "special:"); ok && rest != "" {
		return fmt.Sprintf("Special: %s", rest)
	}

	if name == "special" || strings.HasPrefix(name, "special:") {
		return fmt.Sprintf("Special %d", id)
	}

	if name == "" {
		return fmt.Sprintf("Workspace %d", id)
	}

	return fmt.Sprintf("Workspace %s", name)
}

// TruncateTitle middle-truncates title to roughly max runes, keeping the
// start and end and marking the cut with an ellipsis. Short titles pass
// through unchanged.
func TruncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}

	left := max/2 - 1
	right := max - left

	return string(runes[:left]) + "…" + string(runes[len(runes)-right:])
}

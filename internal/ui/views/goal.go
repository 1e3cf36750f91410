package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"goalsort/internal/sortable"
)

// DeleteLabel is the delete control drawn at the right end of a goal row
const DeleteLabel = " X "

// GoalRow describes one goal row to draw
type GoalRow struct {
	Handle    string
	Task      string
	State     sortable.VisualState
	Selected  bool
	Width     int
	RowHeight int
}

// HandleWidth returns the columns the drag handle occupies, its trailing
// space included
func HandleWidth(handle string) int {
	return runewidth.StringWidth(handle) + 1
}

// DeleteColumn returns the first column of the delete control in a row of
// the given width
func DeleteColumn(width int) int {
	return max(width-runewidth.StringWidth(DeleteLabel), 0)
}

// RenderGoalRow draws a goal row as RowHeight lines. The first line carries
// the handle, task and delete control; a row taller than one line ends with
// a separator.
func (s *Styles) RenderGoalRow(r GoalRow) string {
	lines := make([]string, max(r.RowHeight, 1))
	if r.State == sortable.Placeholder {
		blank := s.Placeholder.Render(strings.Repeat(" ", max(r.Width, 0)))
		for i := range lines {
			lines[i] = blank
		}
		return strings.Join(lines, "\n")
	}

	handleW := HandleWidth(r.Handle)
	deleteW := runewidth.StringWidth(DeleteLabel)
	taskW := max(r.Width-handleW-deleteW, 0)
	task := runewidth.FillRight(runewidth.Truncate(r.Task, taskW, "…"), taskW)

	switch r.State {
	case sortable.Dragging:
		lines[0] = s.Floating.Render(r.Handle + " " + task + DeleteLabel)
	default:
		line := s.Handle.Render(r.Handle) + " " + s.Task.Render(task) + s.Delete.Render(DeleteLabel)
		if r.Selected {
			line = s.SelectionBg.Render(line)
		}
		lines[0] = line
	}

	if len(lines) > 1 && r.State != sortable.Dragging {
		lines[len(lines)-1] = s.Separator.Render(strings.Repeat("─", max(r.Width, 0)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

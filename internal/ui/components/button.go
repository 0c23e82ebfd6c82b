package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

// Button is a labelled action.
type Button struct {
	Label   string
	OnPress func() tea.Cmd
}

// ButtonRow is a horizontal set of buttons navigated with left/right.
type ButtonRow struct {
	Buttons []Button
	Focused int
}

// NewButtonRow creates a row with the first button focused.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update handles key events.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		if r.Focused > 0 {
			r.Focused--
		}
	case "right", "l", "tab":
		if r.Focused < len(r.Buttons)-1 {
			r.Focused++
		}
	case "enter":
		if b := r.Buttons[r.Focused]; b.OnPress != nil {
			return r, b.OnPress()
		}
	}

	return r, nil
}

// View renders the row.
func (r ButtonRow) View() string {
	parts := make([]string, len(r.Buttons))
	for i, b := range r.Buttons {
		if i == r.Focused {
			parts[i] = theme.ButtonActive.Render("▸ " + b.Label)
		} else {
			parts[i] = theme.ButtonInactive.Render("  " + b.Label)
		}
	}
	return strings.Join(parts, "  ")
}

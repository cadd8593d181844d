package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algoquiz/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label   string
	OnPress func() tea.Cmd
}

// ButtonRow is a horizontal row of buttons navigated with left/right.
type ButtonRow struct {
	Buttons  []Button
	Selected int
}

// NewButtonRow creates a row with the first button selected.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update handles key events.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		if r.Selected > 0 {
			r.Selected--
		}
	case "right", "l", "tab":
		if r.Selected < len(r.Buttons)-1 {
			r.Selected++
		}
	case "enter":
		if r.Selected < len(r.Buttons) && r.Buttons[r.Selected].OnPress != nil {
			return r, r.Buttons[r.Selected].OnPress()
		}
	}
	return r, nil
}

// View renders the buttons side by side.
func (r ButtonRow) View() string {
	parts := make([]string, len(r.Buttons))
	for i, b := range r.Buttons {
		if i == r.Selected {
			parts[i] = theme.ButtonActive.Render("▸ " + b.Label)
		} else {
			parts[i] = theme.ButtonInactive.Render(b.Label)
		}
	}
	return strings.Join(parts, "  ")
}

package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastLevel selects the toast's accent.
type ToastLevel int

const (
	ToastSuccess ToastLevel = iota
	ToastError
	ToastInfo
)

const toastDuration = 3 * time.Second

// toastExpiredMsg dismisses a toast after its duration.
type toastExpiredMsg struct {
	id int
}

// Toast is the transient notification shown in the dashboard footer.
type Toast struct {
	id      int
	text    string
	level   ToastLevel
	visible bool
}

// Show replaces the current toast and returns the expiry command.
func (t *Toast) Show(text string, level ToastLevel) tea.Cmd {
	t.id++
	t.text = text
	t.level = level
	t.visible = true
	id := t.id
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Update consumes expiry messages. Stale expiries from a replaced toast
// are ignored.
func (t *Toast) Update(msg tea.Msg) {
	if exp, ok := msg.(toastExpiredMsg); ok && exp.id == t.id {
		t.visible = false
	}
}

// View renders the toast, or an empty string when nothing is showing.
func (t *Toast) View(styles Styles) string {
	if !t.visible {
		return ""
	}
	body := t.text
	switch t.level {
	case ToastSuccess:
		body = styles.Success.Render(body)
	case ToastError:
		body = styles.Error.Render(body)
	default:
		body = styles.Info.Render(body)
	}
	return styles.Toast.Render(body)
}

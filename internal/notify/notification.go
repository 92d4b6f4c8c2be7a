// Package notify delivers toast notifications. Publishers post to a
// Registry from any goroutine and a Container renders the live ones inside
// a Bubble Tea program.
package notify

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/popkit/internal/ui"
)

// Type selects the look of a notification.
type Type string

const (
	TypeStandard Type = "standard"
	TypeSuccess  Type = "success"
	TypeWarning  Type = "warning"
	TypeError    Type = "error"
	TypeInfo     Type = "info"
)

// DefaultTimeout applies to notifications published without one.
const DefaultTimeout = 5 * time.Second

// ID identifies a published notification.
type ID string

// Notification is one toast.
type Notification struct {
	ID      ID
	Type    Type
	Title   string
	Message string
	// Timeout is how long the toast stays up. Zero means the container
	// default, a negative value keeps it until dismissed.
	Timeout time.Duration
	// OnClick runs when the toast is clicked. The toast is dismissed
	// afterwards either way.
	OnClick func()
}

// New builds a notification of type t.
func New(t Type, title, message string) Notification {
	return Notification{Type: t, Title: title, Message: message}
}

// Success builds a success notification.
func Success(title, message string) Notification { return New(TypeSuccess, title, message) }

// Warning builds a warning notification.
func Warning(title, message string) Notification { return New(TypeWarning, title, message) }

// Error builds an error notification.
func Error(title, message string) Notification { return New(TypeError, title, message) }

func (n Notification) accent() lipgloss.Color {
	switch n.Type {
	case TypeSuccess:
		return ui.ColorSuccess
	case TypeWarning:
		return ui.ColorWarning
	case TypeError:
		return ui.ColorError
	case TypeInfo:
		return ui.ColorInfo
	default:
		return ui.ColorMuted
	}
}

func (n Notification) symbol() string {
	switch n.Type {
	case TypeSuccess:
		return ui.SymbolSuccess
	case TypeWarning:
		return ui.SymbolWarning
	case TypeError:
		return ui.SymbolFail
	default:
		return ui.SymbolComplete
	}
}

// render draws the toast boxed to width cells.
func (n Notification) render(width int) string {
	accent := n.accent()
	var body string
	if n.Title != "" {
		body = lipgloss.NewStyle().Bold(true).Foreground(accent).Render(n.symbol() + " " + n.Title)
	}
	if n.Message != "" {
		if body != "" {
			body += "\n"
		}
		body += n.Message
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if width > 0 {
		// Width counts padding but not the border.
		box = box.Width(width - 2)
	}
	return box.Render(body)
}

package outside

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Key is a normalized key name.
type Key string

const (
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyEnter      Key = "Enter"
	KeySpace      Key = "Space"
	KeyTab        Key = "Tab"
	KeyEscape     Key = "Escape"
	KeyBackspace  Key = "Backspace"
	KeyHome       Key = "Home"
	KeyEnd        Key = "End"
)

// KeyEvent is one key press travelling through a chain of handlers.
// Handlers report whether they consumed the key and may additionally mark
// the event so the caller suppresses its default action or stops passing it
// to outer handlers.
type KeyEvent struct {
	Key Key
	// Text is the typed text for printable keys.
	Text string
	// Composing is set while input is still being assembled, such as a
	// bracketed paste. Navigation ignores composing events.
	Composing bool
	Shift     bool

	defaultPrevented   bool
	propagationStopped bool
}

// NewKeyEvent creates an event for a normalized key.
func NewKeyEvent(k Key) *KeyEvent {
	return &KeyEvent{Key: k}
}

// PreventDefault asks the caller to skip its default handling.
func (e *KeyEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *KeyEvent) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation keeps outer handlers from seeing the event.
func (e *KeyEvent) StopPropagation() { e.propagationStopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *KeyEvent) PropagationStopped() bool { return e.propagationStopped }

// FromKeyMsg normalizes a Bubble Tea key message.
func FromKeyMsg(msg tea.KeyMsg) *KeyEvent {
	e := &KeyEvent{Composing: msg.Paste}

	switch msg.Type {
	case tea.KeyDown:
		e.Key = KeyArrowDown
	case tea.KeyUp:
		e.Key = KeyArrowUp
	case tea.KeyLeft:
		e.Key = KeyArrowLeft
	case tea.KeyRight:
		e.Key = KeyArrowRight
	case tea.KeyEnter:
		e.Key = KeyEnter
	case tea.KeySpace:
		e.Key = KeySpace
		e.Text = " "
	case tea.KeyTab:
		e.Key = KeyTab
	case tea.KeyShiftTab:
		e.Key = KeyTab
		e.Shift = true
	case tea.KeyEsc:
		e.Key = KeyEscape
	case tea.KeyBackspace:
		e.Key = KeyBackspace
	case tea.KeyHome:
		e.Key = KeyHome
	case tea.KeyEnd:
		e.Key = KeyEnd
	case tea.KeyRunes:
		e.Text = string(msg.Runes)
		if e.Text == " " {
			e.Key = KeySpace
		} else {
			e.Key = Key(e.Text)
		}
	default:
		e.Key = Key(msg.String())
	}
	return e
}

// KeyHandler consumes key events. It returns true when the key was handled.
type KeyHandler interface {
	HandleKey(e *KeyEvent) bool
}

// KeyHandlerFunc adapts a function to KeyHandler.
type KeyHandlerFunc func(e *KeyEvent) bool

// HandleKey calls f.
func (f KeyHandlerFunc) HandleKey(e *KeyEvent) bool { return f(e) }

// DefaultOpenKeys open a closed overlay from its trigger.
var DefaultOpenKeys = []Key{KeyEnter, KeySpace, KeyArrowDown}

// Delegator forwards trigger key presses to an overlay's navigation. Keys
// the overlay leaves unhandled open it when they are open keys.
type Delegator struct {
	Target   KeyHandler
	OpenKeys []Key
	IsOpen   func() bool
	Open     func()
}

// HandleKey implements KeyHandler.
func (d Delegator) HandleKey(e *KeyEvent) bool {
	if d.Target != nil && d.Target.HandleKey(e) {
		return true
	}
	if d.IsOpen != nil && d.IsOpen() {
		return false
	}

	keys := d.OpenKeys
	if keys == nil {
		keys = DefaultOpenKeys
	}
	for _, k := range keys {
		if e.Key == k {
			if d.Open != nil {
				d.Open()
			}
			e.PreventDefault()
			return true
		}
	}
	return false
}

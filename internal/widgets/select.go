package widgets

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/popkit/internal/listnav"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/outside"
	"github.com/rileyhilliard/popkit/internal/overlay"
)

// selectReclick is how long the list stays open against clicks on the
// input after being shown.
const selectReclick = 2 * time.Second

// SelectProps configure a Select.
type SelectProps struct {
	Options []listnav.Option
	Value   string
	// ShowOptionsIfEmptyInput lists options before anything is typed.
	ShowOptionsIfEmptyInput bool
	// CloseOnSelect defaults to true.
	CloseOnSelect *bool
	// DropDirectionUp renders the list above the input.
	DropDirectionUp bool
	Placeholder     string
	Disabled        bool
	Size            Size
	MaxRows         int

	OnSelect func(option listnav.Option)
	OnChange func(value string)
}

func (p SelectProps) closeOnSelect() bool {
	return p.CloseOnSelect == nil || *p.CloseOnSelect
}

// Select is a text input with a list of options rendered next to it.
type Select struct {
	props SelectProps
	log   logger.Logger

	input       InputAffix
	layout      *listnav.Layout
	list        listnav.Model
	showOptions bool
	lastShow    time.Time
	now         func() time.Time
	origin      overlay.Point
}

// NewSelect creates a select with the list hidden.
func NewSelect(props SelectProps, opts ...WidgetOption) *Select {
	o := resolveOptions(opts)
	s := &Select{
		props: props,
		log:   o.log,
		input: NewInputAffix(props.Placeholder),
		now:   time.Now,
	}
	s.input.SetValue(props.Value)
	s.input.Disabled = props.Disabled
	s.input.Size = props.Size
	s.input.Focus()

	s.layout = listnav.New(s.layoutProps(), listnav.WithLogger(s.log))
	s.list = listnav.NewModel(s.layout)
	if props.MaxRows > 0 {
		s.list.MaxRows = props.MaxRows
	}
	s.list.DropDirectionUp = props.DropDirectionUp
	return s
}

func (s *Select) layoutProps() listnav.Props {
	return listnav.Props{
		Options:  s.props.Options,
		OnSelect: s.handleSelect,
		OnClose:  s.HideOptions,
		Visible:  s.ListVisible(),
	}
}

func (s *Select) sync() {
	s.layout.SetProps(s.layoutProps())
	s.placeList()
}

// SetProps applies new props. Value replaces the typed text when it
// changes.
func (s *Select) SetProps(next SelectProps) {
	prev := s.props
	s.props = next
	if next.Value != prev.Value {
		s.input.SetValue(next.Value)
	}
	s.input.Disabled = next.Disabled
	s.input.Size = next.Size
	s.list.DropDirectionUp = next.DropDirectionUp
	s.sync()
}

// ListVisible reports whether the option list is drawn: options were
// requested and either empty input is allowed or something was typed.
func (s *Select) ListVisible() bool {
	return s.showOptions && (s.props.ShowOptionsIfEmptyInput || len(s.input.Value()) > 0)
}

// ShowOptions requests the list.
func (s *Select) ShowOptions() {
	s.showOptions = true
	s.lastShow = s.now()
	s.sync()
}

// HideOptions hides the list.
func (s *Select) HideOptions() {
	if s.showOptions {
		s.showOptions = false
		s.sync()
	}
}

// InputValue returns the typed text.
func (s *Select) InputValue() string { return s.input.Value() }

// Layout exposes the list state machine.
func (s *Select) Layout() *listnav.Layout { return s.layout }

// Focus focuses the input.
func (s *Select) Focus() tea.Cmd { return s.input.Focus() }

// Blur removes focus from the input.
func (s *Select) Blur() { s.input.Blur() }

func (s *Select) handleSelect(option listnav.Option, sameAsBefore bool) {
	s.showOptions = true
	if s.props.closeOnSelect() || sameAsBefore {
		s.showOptions = false
	}
	s.sync()
	if s.props.OnSelect != nil {
		s.props.OnSelect(option)
	}
}

// Click toggles the list from the input. The list ignores clicks for a
// moment after it was shown.
func (s *Select) Click() {
	if s.props.Disabled {
		return
	}
	if !s.showOptions {
		s.ShowOptions()
		return
	}
	if s.now().Sub(s.lastShow) > selectReclick {
		s.HideOptions()
	}
}

// SetOrigin records where the select is drawn.
func (s *Select) SetOrigin(p overlay.Point) {
	s.origin = p
	s.placeList()
}

func (s *Select) placeList() {
	if s.props.DropDirectionUp {
		h := s.list.Size().H
		s.list.SetOrigin(overlay.Point{X: s.origin.X, Y: s.origin.Y - h})
		return
	}
	s.list.SetOrigin(overlay.Point{X: s.origin.X, Y: s.origin.Y + 1})
}

// Update handles typing, list navigation and pointer input.
func (s *Select) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.MouseMsg:
		if pt, ok := outside.FromMouse(msg); ok && s.onInput(pt) {
			s.Click()
			return nil
		}
		s.list, _ = s.list.Update(msg)
	}
	return nil
}

func (s *Select) onInput(pt overlay.Point) bool {
	return pt.Y == s.origin.Y && pt.X >= s.origin.X
}

func (s *Select) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.props.Disabled {
		return nil
	}
	e := outside.FromKeyMsg(msg)
	if s.layout.HandleKey(e) {
		s.list.Follow()
		return nil
	}
	if e.Key == outside.KeyArrowDown && !s.ListVisible() {
		s.ShowOptions()
		return nil
	}

	changed, cmd := s.input.Update(msg)
	if changed {
		value := s.input.Value()
		if !s.showOptions {
			s.ShowOptions()
		} else {
			s.sync()
		}
		if s.props.OnChange != nil {
			s.props.OnChange(value)
		}
	}
	return cmd
}

// View renders the input with the list above or below it.
func (s *Select) View() string {
	field := s.input.View()
	list := s.list.View()
	if list == "" {
		return field
	}
	if s.props.DropDirectionUp {
		return list + "\n" + field
	}
	return field + "\n" + list
}

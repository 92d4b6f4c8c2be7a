package widgets

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/popkit/internal/listnav"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/outside"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/rileyhilliard/popkit/internal/ui"
)

// cellWidth is the pixel width one terminal cell stands for when menu sizes
// are given in pixels.
const cellWidth = 8

// PixelsToCells converts a pixel width to cells, rounding up.
func PixelsToCells(px int) int {
	if px <= 0 {
		return 0
	}
	return (px + cellWidth - 1) / cellWidth
}

// Menu width defaults, in pixels.
const (
	DefaultMenuMaxWidthPx = 204
	DefaultMenuMinWidthPx = 144
)

// MenuEntry is one child of a PopoverMenu.
type MenuEntry interface {
	menuEntry()
}

// MenuItem is an action row.
type MenuItem struct {
	Text     string
	Subtitle string
	Prefix   string
	Disabled bool
	Skin     Skin
	OnClick  func()
}

// MenuDivider separates groups of items.
type MenuDivider struct{}

// MenuCustom is a row drawn by the caller. It is not focusable from the
// keyboard.
type MenuCustom struct {
	Render func(state listnav.ItemState) string
}

func (MenuItem) menuEntry()    {}
func (MenuDivider) menuEntry() {}
func (MenuCustom) menuEntry()  {}

// MenuTriggerProps is handed to a custom menu trigger.
type MenuTriggerProps struct {
	OnClick func()
	Toggle  func()
	Open    func()
	Close   func()
	IsOpen  bool
}

// PopoverMenuProps configure a PopoverMenu.
type PopoverMenuProps struct {
	Items []MenuEntry

	// Trigger renders the menu button. TriggerLabel and TriggerAs are used
	// when it is nil.
	Trigger      func(MenuTriggerProps) string
	TriggerLabel string
	TriggerAs    As

	// Widths are in pixels and converted to cells. Zero means the default.
	MaxWidthPx int
	MinWidthPx int

	Placement overlay.Placement
	// Fixed and Flip default to true.
	Fixed     *bool
	Flip      *bool
	AppendTo  *overlay.AppendTo
	ShowArrow *bool
	MaxRows   int

	// Skin applies to items without their own.
	Skin Skin
}

type menuRow struct {
	entry   MenuEntry
	onClick func()
}

// PopoverMenu is a button that opens a list of actions.
type PopoverMenu struct {
	props PopoverMenuProps
	log   logger.Logger

	rows      []menuRow
	focusable []listnav.ID
	focused   listnav.ID

	base *DropdownBase
	cmds []tea.Cmd
}

// NewPopoverMenu creates a menu whose button is the trigger node.
func NewPopoverMenu(tree *overlay.Tree, trigger overlay.Handle, props PopoverMenuProps, opts ...WidgetOption) *PopoverMenu {
	o := resolveOptions(opts)
	m := &PopoverMenu{props: props, log: o.log}
	options := m.buildOptions()
	m.base = NewDropdownBase(tree, trigger, m.baseProps(options), WithLogger(m.log))
	return m
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func (m *PopoverMenu) popoverOptions() overlay.Options {
	appendTo := overlay.AppendWindow
	if m.props.AppendTo != nil {
		appendTo = *m.props.AppendTo
	}
	return overlay.Options{
		Placement: m.props.Placement,
		Fixed:     boolOr(m.props.Fixed, true),
		Flip:      overlay.Bool(boolOr(m.props.Flip, true)),
		AppendTo:  appendTo,
	}
}

func (m *PopoverMenu) baseProps(options []listnav.Option) DropdownBaseProps {
	maxPx, minPx := m.props.MaxWidthPx, m.props.MinWidthPx
	if maxPx == 0 {
		maxPx = DefaultMenuMaxWidthPx
	}
	if minPx == 0 {
		minPx = DefaultMenuMinWidthPx
	}
	return DropdownBaseProps{
		Options:        options,
		OnSelect:       m.handleSelect,
		OnOptionMarked: m.handleMarked,
		Popover:        m.popoverOptions(),
		MinWidth:       PixelsToCells(minPx),
		MaxWidth:       PixelsToCells(maxPx),
		MaxRows:        m.props.MaxRows,
		ShowArrow:      boolOr(m.props.ShowArrow, true),
		Children:       m.renderTrigger,
	}
}

// buildOptions turns the entries into list options with positional ids
// and records the focusable ones.
func (m *PopoverMenu) buildOptions() []listnav.Option {
	m.rows = m.rows[:0]
	m.focusable = m.focusable[:0]
	options := make([]listnav.Option, 0, len(m.props.Items))

	for i, entry := range m.props.Items {
		id := listnav.IntID(i)
		row := menuRow{entry: entry}

		switch e := entry.(type) {
		case MenuDivider:
			options = append(options, listnav.DividerOption(id))

		case MenuCustom:
			options = append(options, listnav.Option{
				ID:            id,
				Render:        e.Render,
				OverrideStyle: true,
			})

		case MenuItem:
			row.onClick = e.OnClick
			if !e.Disabled {
				m.focusable = append(m.focusable, id)
			}
			options = append(options, listnav.Option{
				ID:            id,
				Value:         e.Text,
				Disabled:      e.Disabled,
				OverrideStyle: true,
				Render:        m.itemRenderer(id, e),
			})
		}
		m.rows = append(m.rows, row)
	}

	if len(m.focusable) > 0 && m.indexOfFocusable(m.focused) < 0 {
		m.focused = m.focusable[0]
	}
	return options
}

func (m *PopoverMenu) itemRenderer(id listnav.ID, item MenuItem) func(listnav.ItemState) string {
	skin := item.Skin
	if skin == "" {
		skin = m.props.Skin
	}
	if skin == "" {
		skin = SkinDark
	}
	return func(state listnav.ItemState) string {
		label := item.Text
		if item.Prefix != "" {
			label = item.Prefix + " " + label
		}
		style := skinStyle(RenderProps{
			Disabled:    item.Disabled,
			Highlighted: state.Hovered || (m.base != nil && m.base.IsOpen() && m.focused == id),
			Skin:        skin,
		})
		out := style.Render(label)
		if item.Subtitle != "" {
			out += " " + ui.MutedStyle().Render(item.Subtitle)
		}
		return out
	}
}

func (m *PopoverMenu) renderTrigger(api TriggerAPI) string {
	if m.props.Trigger != nil {
		return m.props.Trigger(MenuTriggerProps{
			OnClick: api.Toggle,
			Toggle:  api.Toggle,
			Open:    api.Open,
			Close:   api.Close,
			IsOpen:  api.IsOpen,
		})
	}
	label := m.props.TriggerLabel
	if label == "" {
		label = ui.SymbolCaret
	}
	return m.props.TriggerAs.Render(RenderProps{Label: label, OnClick: api.Toggle})
}

// SetProps rebuilds the menu from new props.
func (m *PopoverMenu) SetProps(next PopoverMenuProps) tea.Cmd {
	m.props = next
	options := m.buildOptions()
	m.queue(m.base.SetProps(m.baseProps(options)))
	return m.flush()
}

// Base exposes the underlying dropdown.
func (m *PopoverMenu) Base() *DropdownBase { return m.base }

// IsOpen reports whether the menu is shown.
func (m *PopoverMenu) IsOpen() bool { return m.base.IsOpen() }

// Focused returns the id of the keyboard-focused item.
func (m *PopoverMenu) Focused() listnav.ID { return m.focused }

// Mount attaches the menu popover.
func (m *PopoverMenu) Mount() tea.Cmd { return m.base.Mount() }

// Unmount releases the menu popover.
func (m *PopoverMenu) Unmount() { m.base.Unmount() }

// Toggle opens or closes the menu, as a click on the button does.
func (m *PopoverMenu) Toggle() tea.Cmd {
	m.queue(m.base.Toggle())
	return m.flush()
}

func (m *PopoverMenu) handleSelect(option listnav.Option) {
	for i, row := range m.rows {
		if listnav.IntID(i) == option.ID && row.onClick != nil {
			row.onClick()
			return
		}
	}
}

func (m *PopoverMenu) handleMarked(option *listnav.Option) {
	if option != nil && m.indexOfFocusable(option.ID) >= 0 {
		m.focused = option.ID
	}
}

func (m *PopoverMenu) indexOfFocusable(id listnav.ID) int {
	for i, f := range m.focusable {
		if f == id {
			return i
		}
	}
	return -1
}

// moveFocus steps through focusable items, wrapping at both ends.
func (m *PopoverMenu) moveFocus(step int) {
	n := len(m.focusable)
	if n == 0 {
		return
	}
	i := m.indexOfFocusable(m.focused)
	if i < 0 {
		m.focused = m.focusable[0]
		if step < 0 {
			m.focused = m.focusable[n-1]
		}
		return
	}
	m.focused = m.focusable[modulo(i+step, n)]
}

func modulo(n, d int) int {
	r := n % d
	if r < 0 {
		r += d
	}
	return r
}

// HandleKey moves focus with the arrow keys while the menu is open and
// runs the focused item on Enter or Space. Other keys go to the dropdown.
func (m *PopoverMenu) HandleKey(e *outside.KeyEvent) bool {
	if !m.base.IsOpen() || e.Composing {
		return m.base.HandleKey(e)
	}

	switch e.Key {
	case outside.KeyArrowLeft, outside.KeyArrowUp:
		m.moveFocus(-1)
	case outside.KeyArrowRight, outside.KeyArrowDown:
		m.moveFocus(1)
	case outside.KeyEnter, outside.KeySpace:
		if m.indexOfFocusable(m.focused) < 0 {
			return false
		}
		i := listnav.Index(m.base.Props().Options, m.focused)
		m.base.Layout().Click(i)
	default:
		return m.base.HandleKey(e)
	}
	e.PreventDefault()
	e.StopPropagation()
	return true
}

// Update routes keys, clicks on the button and popover messages.
func (m *PopoverMenu) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.HandleKey(outside.FromKeyMsg(msg))
		m.queue(m.base.flush())
	case tea.MouseMsg:
		if pt, ok := outside.FromMouse(msg); ok && msg.Button == tea.MouseButtonLeft && m.base.HitsTrigger(pt) {
			m.queue(m.base.Toggle())
		}
		m.queue(m.base.Update(msg))
	default:
		m.queue(m.base.Update(msg))
	}
	return m.flush()
}

// View renders the button.
func (m *PopoverMenu) View() string { return m.base.View() }

// Overlay draws the open menu over base.
func (m *PopoverMenu) Overlay(base string) string { return m.base.Overlay(base) }

func (m *PopoverMenu) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

func (m *PopoverMenu) flush() tea.Cmd {
	cmds := m.cmds
	m.cmds = nil
	return tea.Batch(cmds...)
}

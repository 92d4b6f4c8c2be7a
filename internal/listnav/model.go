package listnav

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/popkit/internal/outside"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/rileyhilliard/popkit/internal/ui"
)

// DefaultMaxRows is the visible option count before the list scrolls.
const DefaultMaxRows = 10

// Styles are the lipgloss styles of a rendered list.
type Styles struct {
	Panel    lipgloss.Style
	Option   lipgloss.Style
	Marked   lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style
	Title    lipgloss.Style
	Divider  lipgloss.Style
	Link     lipgloss.Style
	Arrow    lipgloss.Style
}

// DefaultStyles returns the popkit list look.
func DefaultStyles() Styles {
	return Styles{
		Panel:    ui.PanelStyle(),
		Option:   lipgloss.NewStyle().Foreground(ui.ColorPrimary),
		Marked:   ui.HighlightStyle(),
		Selected: ui.SelectedStyle(),
		Disabled: ui.MutedStyle(),
		Title:    ui.MutedStyle().Bold(true),
		Divider:  ui.MutedStyle(),
		Link:     lipgloss.NewStyle().Foreground(ui.ColorInfo).Underline(true),
		Arrow:    lipgloss.NewStyle().Foreground(ui.ColorPanelBorder),
	}
}

// Model renders a Layout and routes Bubble Tea input to it.
type Model struct {
	Styles Styles
	Keys   KeyMap

	MaxRows  int
	MinWidth int
	MaxWidth int
	Header   string
	Footer   string
	// BigItems renders every option two rows tall.
	BigItems          bool
	SelectedHighlight bool
	WithArrow         bool
	DropDirectionUp   bool

	layout   *Layout
	offset   int
	origin   overlay.Point
	hoverRow int
}

// NewModel wraps l and scrolls the selected option into view.
func NewModel(l *Layout) Model {
	m := Model{
		Styles:            DefaultStyles(),
		Keys:              DefaultKeyMap(),
		MaxRows:           DefaultMaxRows,
		SelectedHighlight: true,
		layout:            l,
		hoverRow:          NoneMarked,
	}
	m.FocusOnSelected()
	return m
}

// Layout returns the wrapped state machine.
func (m Model) Layout() *Layout { return m.layout }

// SetOrigin records where the list is drawn so pointer events map to rows.
func (m *Model) SetOrigin(p overlay.Point) { m.origin = p }

// Origin returns the recorded screen position.
func (m Model) Origin() overlay.Point { return m.origin }

// Offset returns the index of the first visible option.
func (m Model) Offset() int { return m.offset }

// FocusOnSelected scrolls so the selected option is visible with one row of
// context above it.
func (m *Model) FocusOnSelected() {
	sel := m.layout.SelectedID()
	if sel == nil {
		return
	}
	if i := Index(m.layout.props.Options, *sel); i >= 0 {
		m.offset = i - 1
		m.clampOffset()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update routes keys and pointer events to the layout.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.layout.HandleKey(outside.FromKeyMsg(msg))
		m.Follow()

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.layout.props.Visible {
		return
	}
	pt := overlay.Point{X: msg.X, Y: msg.Y}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.offset--
		m.clampOffset()
	case msg.Button == tea.MouseButtonWheelDown:
		m.offset++
		m.clampOffset()
	case msg.Action == tea.MouseActionMotion:
		m.hover(m.RowAt(pt))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if row := m.RowAt(pt); row >= 0 {
			m.layout.Click(row)
		}
	}
}

// hover mirrors per-row enter and leave events.
func (m *Model) hover(row int) {
	if row == m.hoverRow {
		return
	}
	if m.hoverRow != NoneMarked {
		m.layout.MouseLeave()
	}
	if row != NoneMarked {
		m.layout.MouseEnter(row)
	}
	m.hoverRow = row
}

// Follow scrolls the window so the marked option stays visible.
func (m *Model) Follow() {
	marked := m.layout.MarkedIndex()
	if marked < 0 {
		return
	}
	rows := m.visibleRows()
	if marked < m.offset {
		m.offset = marked
	}
	if marked >= m.offset+rows {
		m.offset = marked - rows + 1
	}
	m.clampOffset()
}

func (m *Model) clampOffset() {
	maxOffset := max(len(m.layout.props.Options)-m.visibleRows(), 0)
	m.offset = max(min(m.offset, maxOffset), 0)
}

func (m Model) visibleRows() int {
	n := len(m.layout.props.Options)
	if m.MaxRows > 0 && n > m.MaxRows {
		return m.MaxRows
	}
	return n
}

func (m Model) itemHeight() int {
	if m.BigItems {
		return 2
	}
	return 1
}

// firstRowY is the offset of the first option line from the top of the view.
func (m Model) firstRowY() int {
	y := 1 // border
	if m.WithArrow && !m.DropDirectionUp {
		y++
	}
	if m.Header != "" {
		y += lipgloss.Height(m.Header)
	}
	return y
}

// RowAt maps a screen cell to an option index, or NoneMarked.
func (m Model) RowAt(pt overlay.Point) int {
	if !m.layout.props.Visible {
		return NoneMarked
	}
	x := pt.X - m.origin.X
	y := pt.Y - m.origin.Y - m.firstRowY()
	if x < 1 || x > m.innerWidth() || y < 0 {
		return NoneMarked
	}
	slot := y / m.itemHeight()
	if slot >= m.visibleRows() {
		return NoneMarked
	}
	return m.offset + slot
}

// innerWidth is the width between the panel borders.
func (m Model) innerWidth() int {
	w := 0
	for _, o := range m.layout.props.Options {
		if o.IsDivider() {
			continue
		}
		w = max(w, lipgloss.Width(o.Text(ItemState{}))+2)
	}
	if m.Header != "" {
		w = max(w, lipgloss.Width(m.Header))
	}
	if m.Footer != "" {
		w = max(w, lipgloss.Width(m.Footer))
	}
	if m.MaxWidth > 2 {
		w = min(w, m.MaxWidth-2)
	}
	if m.MinWidth > 2 {
		w = max(w, m.MinWidth-2)
	}
	return max(w, 3)
}

// View implements tea.Model. A hidden list renders nothing.
func (m Model) View() string {
	if !m.layout.props.Visible {
		return ""
	}
	width := m.innerWidth()

	var lines []string
	if m.Header != "" {
		lines = append(lines, m.block(m.Header, width)...)
	}
	end := m.offset + m.visibleRows()
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, width)...)
	}
	if m.Footer != "" {
		lines = append(lines, m.block(m.Footer, width)...)
	}

	panel := m.Styles.Panel.Render(strings.Join(lines, "\n"))
	if !m.WithArrow {
		return panel
	}

	glyph := ui.SymbolArrowUp
	if m.DropDirectionUp {
		glyph = ui.SymbolArrowDown
	}
	arrow := "  " + m.Styles.Arrow.Render(glyph)
	if m.DropDirectionUp {
		return panel + "\n" + arrow
	}
	return arrow + "\n" + panel
}

// Size measures the rendered list.
func (m Model) Size() overlay.Size {
	v := m.View()
	if v == "" {
		return overlay.Size{}
	}
	return overlay.Size{W: lipgloss.Width(v), H: lipgloss.Height(v)}
}

func (m Model) block(s string, width int) []string {
	out := ui.SplitLines(s)
	for i, l := range out {
		out[i] = ui.PadRight(ui.Truncate(l, width), width)
	}
	return out
}

func (m Model) renderRow(i, width int) []string {
	o := m.layout.props.Options[i]
	if o.IsDivider() {
		line := m.Styles.Divider.Render(strings.Repeat(ui.SymbolDivider, width))
		return m.pad([]string{line}, line)
	}

	state := ItemState{
		Selected: m.layout.IsSelected(o),
		Hovered:  i == m.layout.MarkedIndex(),
		Disabled: o.Disabled || o.Title,
	}
	text := " " + ui.PadRight(ui.Truncate(o.Text(state), width-2), width-2) + " "

	style := m.Styles.Option
	switch {
	case o.OverrideStyle:
		style = lipgloss.NewStyle()
	case o.Title:
		style = m.Styles.Title
	case state.Hovered:
		style = m.Styles.Marked
	case state.Selected && m.SelectedHighlight:
		style = m.Styles.Selected
	case o.Disabled:
		style = m.Styles.Disabled
	}
	if o.LinkTo != "" && !o.OverrideStyle {
		style = style.Inherit(m.Styles.Link)
	}

	line := style.Render(text)
	return m.pad([]string{line}, style.Render(strings.Repeat(" ", width)))
}

func (m Model) pad(lines []string, filler string) []string {
	if m.BigItems {
		return append(lines, filler)
	}
	return lines
}

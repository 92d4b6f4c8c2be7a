package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/popkit/internal/errors"
	"golang.org/x/term"
)

// widgetItem implements list.Item for the Bubbles list component.
type widgetItem struct {
	row CatalogRow
}

func (i widgetItem) Title() string       { return i.row.Name }
func (i widgetItem) Description() string { return i.row.Kind + " | " + i.row.Description }
func (i widgetItem) FilterValue() string { return i.row.Name + " " + i.row.Kind }

// WidgetPickerModel is a Bubble Tea model for choosing a demo widget.
type WidgetPickerModel struct {
	list     list.Model
	selected *CatalogRow
	quitting bool
}

type widgetPickerKeyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

var widgetPickerKeys = widgetPickerKeyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run demo"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "cancel"),
	),
}

// NewWidgetPickerModel creates a picker over the catalog rows.
func NewWidgetPickerModel(rows []CatalogRow) WidgetPickerModel {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = widgetItem{row: r}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorPrimary).
		BorderForeground(ColorSecondary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorMuted)

	l := list.New(items, delegate, 80, 15)
	l.Title = "Select a widget"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 0, 1, 0)
	l.Styles.HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	return WidgetPickerModel{list: l}
}

// Init implements tea.Model.
func (m WidgetPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m WidgetPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, widgetPickerKeys.Enter):
			if item, ok := m.list.SelectedItem().(widgetItem); ok {
				m.selected = &item.row
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, widgetPickerKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m WidgetPickerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Selected returns the chosen widget, or nil if cancelled.
func (m WidgetPickerModel) Selected() *CatalogRow {
	return m.selected
}

// PickWidget displays the picker on the given streams. A single row is
// returned without prompting.
func PickWidget(rows []CatalogRow, output io.Writer, input io.Reader) (*CatalogRow, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrConfig, "No widgets to pick from", "Pass a widget name, see 'popkit catalog'.")
	}
	if len(rows) == 1 {
		return &rows[0], nil
	}

	p := tea.NewProgram(
		NewWidgetPickerModel(rows),
		tea.WithOutput(output),
		tea.WithInput(input),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRender, "Widget picker failed", "Pass the widget name directly: popkit demo <widget>.")
	}

	if m, ok := finalModel.(WidgetPickerModel); ok {
		return m.Selected(), nil
	}
	return nil, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package bulkselect

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/ui"
	"github.com/rileyhilliard/popkit/internal/util"
)

// Row is one table row. Cells line up with TableConfig.Columns.
type Row struct {
	ID    string
	Cells []string
}

// PageMsg delivers the next page of rows.
type PageMsg struct {
	Rows    []Row
	HasMore bool
}

// PageErrMsg reports a failed page load.
type PageErrMsg struct {
	Err error
}

// TableKeyMap binds the selection keys. Navigation keys come from the
// underlying bubbles table.
type TableKeyMap struct {
	Toggle    key.Binding
	ToggleAll key.Binding
}

// DefaultTableKeyMap returns the default selection bindings.
func DefaultTableKeyMap() TableKeyMap {
	return TableKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle row"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle all"),
		),
	}
}

// TableConfig configures a Table.
type TableConfig struct {
	Columns []ui.TableColumn
	Rows    []Row
	// SelectedIDs makes the selection controlled when non-nil.
	SelectedIDs []string
	// TotalCount is the collection size including unloaded pages. It
	// defaults to the number of loaded rows.
	TotalCount            int
	HasMore               bool
	Disabled              bool
	DeselectRowsByDefault bool
	// Height caps the visible body rows. It defaults to 10.
	Height int

	OnSelectionChanged func(selected []string, change *Change)
	// LoadMore fetches the next page once the cursor reaches the last
	// loaded row. The returned command should produce a PageMsg or
	// PageErrMsg.
	LoadMore func() tea.Cmd
}

const defaultTableHeight = 10

// Table is a bubbles table with a selection column and a bulk checkbox in
// the header.
type Table struct {
	cfg    TableConfig
	rows   []Row
	sel    *BulkSelection
	model  table.Model
	loader ui.Loader
	keys   TableKeyMap
	log    logger.Logger
}

// TableOption customizes a Table.
type TableOption func(*Table)

// WithTableLogger sets the table's logger.
func WithTableLogger(l logger.Logger) TableOption {
	return func(t *Table) { t.log = l }
}

// WithTableKeys overrides the selection key bindings.
func WithTableKeys(k TableKeyMap) TableOption {
	return func(t *Table) { t.keys = k }
}

// NewTable builds a focused table over cfg.Rows.
func NewTable(cfg TableConfig, opts ...TableOption) *Table {
	t := &Table{
		cfg:    cfg,
		rows:   append([]Row(nil), cfg.Rows...),
		keys:   DefaultTableKeyMap(),
		loader: ui.NewLoader("Loading rows"),
	}
	for _, o := range opts {
		o(t)
	}
	t.log = logger.OrDefault(t.log)

	height := cfg.Height
	if height <= 0 {
		height = defaultTableHeight
	}
	t.model = ui.NewTable(t.columns(), nil, ui.WithTableFocus(), ui.WithTableHeight(height))
	t.sel = New(t.props(), WithLogger(t.log))
	t.refresh()
	return t
}

func (t *Table) props() Props {
	ids := make([]string, len(t.rows))
	for i, r := range t.rows {
		ids[i] = r.ID
	}
	return Props{
		SelectedIDs:            t.cfg.SelectedIDs,
		AllIDs:                 ids,
		TotalCount:             max(t.cfg.TotalCount, len(t.rows)),
		Disabled:               t.cfg.Disabled,
		DeselectRowsByDefault:  t.cfg.DeselectRowsByDefault,
		HasMoreInBulkSelection: t.cfg.HasMore,
		OnSelectionChanged:     t.cfg.OnSelectionChanged,
	}
}

func (t *Table) columns() []ui.TableColumn {
	cols := make([]ui.TableColumn, 0, len(t.cfg.Columns)+1)
	cols = append(cols, ui.TableColumn{Title: t.HeaderCheckbox(), Width: 2})
	return append(cols, t.cfg.Columns...)
}

// refresh rebuilds the rendered rows from the selection.
func (t *Table) refresh() {
	rows := make([]table.Row, len(t.rows))
	for i, r := range t.rows {
		box := ui.SymbolUnchecked
		if t.sel.IsSelected(r.ID) {
			box = ui.SymbolChecked
		}
		rows[i] = append(table.Row{box}, t.fitCells(r)...)
	}
	t.model.SetColumns(toBubbleColumns(t.columns()))
	t.model.SetRows(rows)
}

// fitCells pads or truncates a row's cells to the configured columns. The
// bubbles table indexes cells by column and panics on extras.
func (t *Table) fitCells(r Row) []string {
	n := len(t.cfg.Columns)
	if len(r.Cells) == n {
		return r.Cells
	}
	t.log.Warn("row %q has %s for %s", r.ID,
		util.CountNoun(len(r.Cells), "cell", "cells"), util.CountNoun(n, "column", "columns"))
	cells := make([]string, n)
	copy(cells, r.Cells)
	return cells
}

func toBubbleColumns(cols []ui.TableColumn) []table.Column {
	out := make([]table.Column, len(cols))
	for i, c := range cols {
		out[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	return out
}

// Selection exposes the underlying selection state.
func (t *Table) Selection() *BulkSelection { return t.sel }

// Rows returns the loaded rows.
func (t *Table) Rows() []Row { return t.rows }

// HasMore reports whether more pages are expected.
func (t *Table) HasMore() bool { return t.cfg.HasMore }

// Cursor returns the highlighted row index.
func (t *Table) Cursor() int { return t.model.Cursor() }

// Loading reports whether a page load is in flight.
func (t *Table) Loading() bool { return t.loader.State == ui.LoaderLoading }

// HeaderCheckbox renders the bulk checkbox for the current state.
func (t *Table) HeaderCheckbox() string {
	if t.sel == nil {
		return ui.SymbolUnchecked
	}
	switch t.sel.State() {
	case StateAll:
		return ui.SymbolChecked
	case StateSome:
		return ui.SymbolPartial
	default:
		return ui.SymbolUnchecked
	}
}

// ToggleRow flips the selection of the row under the cursor.
func (t *Table) ToggleRow() {
	if t.cfg.Disabled || len(t.rows) == 0 {
		return
	}
	c := t.model.Cursor()
	if c < 0 || c >= len(t.rows) {
		return
	}
	t.sel.ToggleSelectionByID(t.rows[c].ID)
	t.refresh()
}

// ToggleAll advances the header checkbox.
func (t *Table) ToggleAll() {
	if t.sel.Disabled() {
		return
	}
	t.sel.ToggleAll(t.cfg.DeselectRowsByDefault)
	t.refresh()
}

// AppendRows adds a loaded page and reconciles the selection with it.
func (t *Table) AppendRows(rows []Row, hasMore bool) {
	t.rows = append(t.rows, rows...)
	t.cfg.HasMore = hasMore
	t.loader.Finish()
	t.sel.UpdateProps(t.props())
	t.refresh()
	t.log.Debug("table loaded %s, hasMore=%t", util.CountNoun(len(rows), "row", "rows"), hasMore)
}

// SetSelectedIDs updates the controlled selection prop.
func (t *Table) SetSelectedIDs(ids []string) {
	t.cfg.SelectedIDs = ids
	t.sel.UpdateProps(t.props())
	t.refresh()
}

// SetDisabled toggles interaction with the selection.
func (t *Table) SetDisabled(disabled bool) {
	t.cfg.Disabled = disabled
	t.sel.UpdateProps(t.props())
	t.refresh()
}

// Init implements tea.Model.
func (t *Table) Init() tea.Cmd { return nil }

// Update handles selection keys, forwards navigation to the table and
// triggers page loads at the bottom edge.
func (t *Table) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, t.keys.Toggle):
			t.ToggleRow()
			return nil
		case key.Matches(msg, t.keys.ToggleAll):
			t.ToggleAll()
			return nil
		}
		var cmd tea.Cmd
		t.model, cmd = t.model.Update(msg)
		return tea.Batch(cmd, t.maybeLoadMore())

	case PageMsg:
		t.AppendRows(msg.Rows, msg.HasMore)
		return nil

	case PageErrMsg:
		t.loader.Fail()
		t.log.Warn("loading rows failed: %v", msg.Err)
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		t.loader, cmd = t.loader.Update(msg)
		return cmd
	}
	return nil
}

func (t *Table) maybeLoadMore() tea.Cmd {
	if !t.cfg.HasMore || t.cfg.LoadMore == nil || t.Loading() {
		return nil
	}
	if t.model.Cursor() < len(t.rows)-1 {
		return nil
	}
	return tea.Batch(t.loader.Start(), t.cfg.LoadMore())
}

// View renders the summary line, the table and the loader.
func (t *Table) View() string {
	var b strings.Builder

	count := t.sel.SelectedCount()
	summary := t.HeaderCheckbox() + " " + util.CountNoun(count, "row", "rows") + " selected"
	if t.sel.Disabled() {
		summary = ui.MutedStyle().Render(summary)
	}
	b.WriteString(summary + "\n")
	b.WriteString(t.model.View())

	if l := t.loader.View(); l != "" {
		b.WriteString("\n" + l)
	}
	return b.String()
}

// ShortHelp implements help.KeyMap.
func (k TableKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ToggleAll}
}

// FullHelp implements help.KeyMap.
func (k TableKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

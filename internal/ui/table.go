package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableStyle provides consistent styling for tables across the CLI.
type TableStyle struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
}

// DefaultTableStyle returns the default table styling.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		Cell: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Selected: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Background(ColorMuted),
		Border: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// TableOption adjusts a table after the default styling is applied.
type TableOption func(*table.Model)

// WithTableFocus makes the table interactive.
func WithTableFocus() TableOption {
	return func(t *table.Model) { t.Focus() }
}

// WithTableHeight caps the visible body rows.
func WithTableHeight(rows int) TableOption {
	return func(t *table.Model) { t.SetHeight(rows + 1) }
}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row, opts ...TableOption) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	s.Selected = s.Selected.
		Foreground(ColorPrimary).
		Background(ColorMuted).
		Bold(false)
	t.SetStyles(s)

	for _, o := range opts {
		o(&t)
	}
	return t
}

// RenderSimpleTable renders a non-interactive table string for CLI output.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// CatalogRow describes one widget in the catalog listing.
type CatalogRow struct {
	Name        string
	Kind        string
	Description string
}

// RenderCatalog renders the widget catalog grouped by kind.
func RenderCatalog(rows []CatalogRow) string {
	if len(rows) == 0 {
		return "No widgets registered"
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	nameStyle := lipgloss.NewStyle().Foreground(ColorInfo)
	mutedStyle := MutedStyle()

	groups := make(map[string][]CatalogRow)
	var order []string
	for _, row := range rows {
		if _, exists := groups[row.Kind]; !exists {
			order = append(order, row.Kind)
		}
		groups[row.Kind] = append(groups[row.Kind], row)
	}

	var b strings.Builder
	for _, kind := range order {
		b.WriteString(headerStyle.Render(kind) + "\n")
		for _, row := range groups[kind] {
			b.WriteString("  " + PadRight(nameStyle.Render(row.Name), 16) + mutedStyle.Render(row.Description) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓"
	SymbolFail     = "✗"
	SymbolWarning  = "⚠"
	SymbolPending  = "○"
	SymbolProgress = "◐"
	SymbolComplete = "●"
	SymbolSkipped  = "⊘"
)

// Widget glyphs.
const (
	SymbolChecked   = "☑"
	SymbolUnchecked = "☐"
	SymbolPartial   = "⊟"
	SymbolCaret     = "▾"
	SymbolPointer   = "›"
	SymbolArrowUp   = "▲"
	SymbolArrowDown = "▼"
	SymbolDivider   = "─"
)

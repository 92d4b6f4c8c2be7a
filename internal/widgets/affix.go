package widgets

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/popkit/internal/ui"
)

// Size is the input size an affix adapts to.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// AffixContext is handed by an input to the renderers of its prefix and
// suffix.
type AffixContext struct {
	Size     Size
	Disabled bool
	InPrefix bool
	InSuffix bool
}

// Affix renders decoration before or after an input.
type Affix interface {
	RenderAffix(ctx AffixContext) string
}

// AffixFunc adapts a function to Affix.
type AffixFunc func(ctx AffixContext) string

// RenderAffix calls f.
func (f AffixFunc) RenderAffix(ctx AffixContext) string { return f(ctx) }

// TextAffix renders fixed text, muted when the input is disabled.
func TextAffix(text string) Affix {
	return AffixFunc(func(ctx AffixContext) string {
		if ctx.Disabled {
			return ui.MutedStyle().Render(text)
		}
		return text
	})
}

// CaretSuffix is the dropdown arrow of select-like inputs.
func CaretSuffix() Affix { return TextAffix(ui.SymbolCaret) }

// StatusSuffix renders a validation status glyph. An empty status renders
// nothing.
func StatusSuffix(status string) Affix {
	return AffixFunc(func(ctx AffixContext) string {
		switch status {
		case "error":
			return ui.ErrorStyle().Render(ui.SymbolFail)
		case "warning":
			return ui.WarningStyle().Render(ui.SymbolWarning)
		case "loading":
			return ui.MutedStyle().Render(ui.SymbolProgress)
		default:
			return ""
		}
	})
}

// InputAffix is a text input with optional prefix and suffix.
type InputAffix struct {
	Input    textinput.Model
	Prefix   Affix
	Suffix   Affix
	Size     Size
	Disabled bool
	// ReadOnly ignores typing while still rendering the value.
	ReadOnly bool
}

// NewInputAffix creates a medium input.
func NewInputAffix(placeholder string) InputAffix {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	return InputAffix{Input: ti, Size: SizeMedium}
}

// Value returns the input text.
func (in InputAffix) Value() string { return in.Input.Value() }

// SetValue replaces the input text.
func (in *InputAffix) SetValue(v string) { in.Input.SetValue(v) }

// Focus focuses the input unless it is disabled.
func (in *InputAffix) Focus() tea.Cmd {
	if in.Disabled {
		return nil
	}
	return in.Input.Focus()
}

// Blur removes focus.
func (in *InputAffix) Blur() { in.Input.Blur() }

// Update forwards typing to the input. It reports whether the value
// changed.
func (in *InputAffix) Update(msg tea.Msg) (bool, tea.Cmd) {
	if in.Disabled || in.ReadOnly {
		return false, nil
	}
	before := in.Input.Value()
	var cmd tea.Cmd
	in.Input, cmd = in.Input.Update(msg)
	return in.Input.Value() != before, cmd
}

func (in InputAffix) context() AffixContext {
	return AffixContext{Size: in.Size, Disabled: in.Disabled}
}

// View renders prefix, input and suffix on one line.
func (in InputAffix) View() string {
	ctx := in.context()
	parts := make([]string, 0, 3)

	if in.Prefix != nil {
		pctx := ctx
		pctx.InPrefix = true
		if s := in.Prefix.RenderAffix(pctx); s != "" {
			parts = append(parts, s)
		}
	}

	field := in.Input.View()
	if in.Disabled {
		field = ui.MutedStyle().Render(in.Input.Value())
	}
	parts = append(parts, field)

	if in.Suffix != nil {
		sctx := ctx
		sctx.InSuffix = true
		if s := in.Suffix.RenderAffix(sctx); s != "" {
			parts = append(parts, s)
		}
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(parts)...)
	if in.Size == SizeLarge {
		return lipgloss.NewStyle().Padding(0, 1).Render(line)
	}
	return line
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}

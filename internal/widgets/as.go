package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rileyhilliard/popkit/internal/ui"
)

// Tag names an intrinsic element a trigger can render as.
type Tag string

const (
	TagButton Tag = "button"
	TagLink   Tag = "a"
)

// Skin selects the color treatment of an action.
type Skin string

const (
	SkinStandard    Skin = "standard"
	SkinDark        Skin = "dark"
	SkinDestructive Skin = "destructive"
)

// RenderProps is what every trigger renderer receives, whatever it renders
// as.
type RenderProps struct {
	Label    string
	Prefix   string
	Disabled bool
	// Highlighted is set while the pointer or keyboard focus is on the item.
	Highlighted bool
	Skin        Skin
	OnClick     func()
}

// Component renders a trigger from RenderProps.
type Component func(RenderProps) string

// As is the element a trigger renders as: an intrinsic tag or a custom
// component. The zero value renders as a button.
type As struct {
	tag       Tag
	href      string
	component Component
}

// AsButton renders as a button.
func AsButton() As { return As{tag: TagButton} }

// AsLink renders as a terminal hyperlink to href.
func AsLink(href string) As { return As{tag: TagLink, href: href} }

// AsComponent renders through fn.
func AsComponent(fn Component) As { return As{component: fn} }

// Tag returns the intrinsic tag, or "" for a custom component.
func (a As) Tag() Tag {
	if a.component != nil {
		return ""
	}
	if a.tag == "" {
		return TagButton
	}
	return a.tag
}

// Href returns the link target for AsLink.
func (a As) Href() string { return a.href }

// IsComponent reports whether a custom component renders the trigger.
func (a As) IsComponent() bool { return a.component != nil }

// Render draws p.
func (a As) Render(p RenderProps) string {
	if a.component != nil {
		return a.component(p)
	}

	label := p.Label
	if p.Prefix != "" {
		label = p.Prefix + " " + label
	}
	style := skinStyle(p)

	if a.Tag() == TagLink {
		text := style.Underline(true).Render(label)
		if a.href == "" || p.Disabled {
			return text
		}
		return ansi.SetHyperlink(a.href) + text + ansi.ResetHyperlink()
	}
	return style.Render("[ " + label + " ]")
}

// Activate runs OnClick unless the trigger is disabled. It reports whether
// a handler ran.
func (a As) Activate(p RenderProps) bool {
	if p.Disabled || p.OnClick == nil {
		return false
	}
	p.OnClick()
	return true
}

func skinStyle(p RenderProps) lipgloss.Style {
	if p.Disabled {
		return ui.MutedStyle()
	}
	style := lipgloss.NewStyle().Foreground(ui.ColorPrimary)
	switch p.Skin {
	case SkinDestructive:
		style = ui.ErrorStyle()
	case SkinDark:
		style = style.Bold(true)
	}
	if p.Highlighted {
		style = style.Inherit(ui.HighlightStyle())
	}
	return style
}

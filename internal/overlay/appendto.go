package overlay

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/popkit/internal/errors"
)

type appendKind int

const (
	appendInline appendKind = iota
	appendParent
	appendScrollParent
	appendWindow
	appendPredicate
	appendElement
)

// AppendTo picks the node a popover's portal is attached to. The zero value
// renders the panel inline next to its reference.
type AppendTo struct {
	kind      appendKind
	predicate func(*Tree, Handle) bool
	element   Handle
}

var (
	// AppendInline renders the panel as a sibling of the reference.
	AppendInline = AppendTo{kind: appendInline}
	// AppendParent portals into the reference's parent.
	AppendParent = AppendTo{kind: appendParent}
	// AppendScrollParent portals into the nearest scrollable ancestor.
	AppendScrollParent = AppendTo{kind: appendScrollParent}
	// AppendWindow portals into the root so no ancestor can clip the panel.
	AppendWindow = AppendTo{kind: appendWindow}
)

// AppendPredicate portals into the nearest ancestor of the reference that
// satisfies fn.
func AppendPredicate(fn func(*Tree, Handle) bool) AppendTo {
	return AppendTo{kind: appendPredicate, predicate: fn}
}

// AppendElement portals into a specific node.
func AppendElement(h Handle) AppendTo {
	return AppendTo{kind: appendElement, element: h}
}

// ParseAppendTo maps config keywords to targets. Predicates and elements
// cannot be expressed as text.
func ParseAppendTo(s string) (AppendTo, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inline", "none":
		return AppendInline, nil
	case "parent":
		return AppendParent, nil
	case "scrollparent", "scroll-parent":
		return AppendScrollParent, nil
	case "window", "body", "viewport":
		return AppendWindow, nil
	}
	return AppendTo{}, errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown appendTo target '%s'", s),
		"Use inline, parent, scrollParent or window.")
}

func (a AppendTo) String() string {
	switch a.kind {
	case appendParent:
		return "parent"
	case appendScrollParent:
		return "scrollParent"
	case appendWindow:
		return "window"
	case appendPredicate:
		return "predicate"
	case appendElement:
		return "element"
	default:
		return "inline"
	}
}

// Resolve finds the target node for ref. ok is false when the panel must
// render inline: inline mode, an unmounted reference, or no match.
func (a AppendTo) Resolve(t *Tree, ref Handle) (Handle, bool) {
	if !t.Valid(ref) {
		return NoHandle, false
	}

	var h Handle
	switch a.kind {
	case appendParent:
		h = t.Parent(ref)
	case appendScrollParent:
		h = t.Ancestors(ref, func(_ Handle, spec NodeSpec) bool { return spec.Scrollable })
		if h == NoHandle {
			h = t.Root()
		}
	case appendWindow:
		h = t.Root()
	case appendPredicate:
		if a.predicate != nil {
			h = t.Ancestors(ref, func(c Handle, _ NodeSpec) bool { return a.predicate(t, c) })
		}
	case appendElement:
		h = a.element
	}

	if !t.Valid(h) {
		return NoHandle, false
	}
	return h, true
}

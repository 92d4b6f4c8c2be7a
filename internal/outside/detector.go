package outside

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/popkit/internal/overlay"
)

// Detector reports presses that land outside a set of subtrees.
type Detector struct {
	Tree *overlay.Tree
	// Refs returns the subtrees that count as inside. It is called on every
	// press so panels created after construction are included.
	Refs func() []overlay.Handle
	// ExcludeClass shields nodes carrying the class, and their descendants.
	ExcludeClass string
	// Exclude, when set, is consulted on every press instead of
	// ExcludeClass.
	Exclude func() string
	// Enabled gates detection. Nil means always on.
	Enabled   func() bool
	OnOutside func()
}

// ForPopover builds a detector covering a popover's reference, portal and
// panel. While the popover is hidden it stays quiet unless the popover
// asks for click-outside when closed.
func ForPopover(p *overlay.Popover, onOutside func()) *Detector {
	return &Detector{
		Tree: p.Tree(),
		Refs: func() []overlay.Handle {
			refs := []overlay.Handle{p.Reference()}
			if h, ok := p.ContentNode(); ok {
				refs = append(refs, h)
			}
			if h, ok := p.PortalNode(); ok {
				refs = append(refs, h)
			}
			return refs
		},
		Exclude: func() string { return p.Options().OutsideExcludeClass() },
		Enabled: func() bool {
			if !p.Mounted() {
				return false
			}
			return p.Shown() || p.Options().ClickOutsideWhenClosed
		},
		OnOutside: onOutside,
	}
}

// HandlePress hit-tests pt and fires OnOutside when it lands outside every
// ref. It reports whether the press was outside.
func (d *Detector) HandlePress(pt overlay.Point) bool {
	if d.Tree == nil || (d.Enabled != nil && !d.Enabled()) {
		return false
	}

	target := d.Tree.HitTest(pt)
	if target == overlay.NoHandle {
		return false
	}
	if d.Refs != nil {
		for _, ref := range d.Refs() {
			if d.Tree.Contains(ref, target) {
				return false
			}
		}
	}
	if d.Tree.HasClass(target, d.excludeClass()) {
		return false
	}

	if d.OnOutside != nil {
		d.OnOutside()
	}
	return true
}

func (d *Detector) excludeClass() string {
	if d.Exclude != nil {
		return d.Exclude()
	}
	return d.ExcludeClass
}

// HandleMouse is HandlePress for Bubble Tea mouse messages. Anything other
// than a button press is ignored.
func (d *Detector) HandleMouse(msg tea.MouseMsg) bool {
	pt, ok := FromMouse(msg)
	if !ok {
		return false
	}
	return d.HandlePress(pt)
}

// FromMouse extracts the cell of a button press.
func FromMouse(msg tea.MouseMsg) (overlay.Point, bool) {
	if msg.Action != tea.MouseActionPress || tea.MouseEvent(msg).IsWheel() {
		return overlay.Point{}, false
	}
	return overlay.Point{X: msg.X, Y: msg.Y}, true
}

// FromMotion extracts the pointer cell of a motion event.
func FromMotion(msg tea.MouseMsg) (overlay.Point, bool) {
	if msg.Action != tea.MouseActionMotion {
		return overlay.Point{}, false
	}
	return overlay.Point{X: msg.X, Y: msg.Y}, true
}

package overlay

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/popkit/internal/errors"
)

// Side is the edge of the reference element a panel is anchored to.
type Side int

const (
	SideBottom Side = iota
	SideTop
	SideRight
	SideLeft
	// SideAuto picks whichever side has the most room inside the boundary.
	SideAuto
)

// String returns the placement keyword for the side.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideLeft:
		return "left"
	case SideAuto:
		return "auto"
	default:
		return "bottom"
	}
}

// Opposite returns the side across the reference element.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return s
	}
}

// Vertical reports whether the panel sits above or below the reference.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

// Align positions the panel along the reference edge.
type Align int

const (
	AlignCenter Align = iota
	AlignStart
	AlignEnd
)

// Placement is a side plus an alignment, written "bottom", "top-start",
// "right-end" and so on.
type Placement struct {
	Side  Side
	Align Align
}

func (p Placement) String() string {
	switch p.Align {
	case AlignStart:
		return p.Side.String() + "-start"
	case AlignEnd:
		return p.Side.String() + "-end"
	default:
		return p.Side.String()
	}
}

// Opposite flips the side and keeps the alignment.
func (p Placement) Opposite() Placement {
	return Placement{Side: p.Side.Opposite(), Align: p.Align}
}

// ParsePlacement parses a placement keyword. The empty string means bottom.
func ParsePlacement(s string) (Placement, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Placement{Side: SideBottom}, nil
	}

	sidePart, alignPart, hasAlign := strings.Cut(s, "-")

	var p Placement
	switch sidePart {
	case "top":
		p.Side = SideTop
	case "bottom":
		p.Side = SideBottom
	case "left":
		p.Side = SideLeft
	case "right":
		p.Side = SideRight
	case "auto":
		p.Side = SideAuto
	default:
		return Placement{}, errors.New(errors.ErrPlacement,
			fmt.Sprintf("Unknown placement '%s'", s),
			"Use top, bottom, left, right or auto, optionally followed by -start or -end.")
	}

	if hasAlign {
		switch alignPart {
		case "start":
			p.Align = AlignStart
		case "end":
			p.Align = AlignEnd
		default:
			return Placement{}, errors.New(errors.ErrPlacement,
				fmt.Sprintf("Unknown alignment '%s' in placement '%s'", alignPart, s),
				"Alignment suffix must be -start or -end.")
		}
	}

	return p, nil
}

// MustPlacement is ParsePlacement for compile-time constants.
func MustPlacement(s string) Placement {
	p, err := ParsePlacement(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Offset shifts the panel. X and Y are screen axes as the caller thinks of
// them; Along maps them onto the placement's axes.
type Offset struct {
	X, Y int
}

// Along returns (cross, main) for the given side. For left/right placements
// the axes swap, so the first coordinate always moves the panel along the
// reference edge and the second moves it away from the reference.
func (o Offset) Along(s Side) (cross, main int) {
	if s.Vertical() {
		return o.X, o.Y
	}
	return o.Y, o.X
}

// Sizing constrains the panel width. Zero values mean unconstrained.
type Sizing struct {
	Width        int
	MinWidth     int
	MaxWidth     int
	DynamicWidth bool
}

// Resolve returns the panel width for a content width and reference width.
// DynamicWidth makes the reference width the minimum. A minimum beats a
// maximum when they conflict.
func (s Sizing) Resolve(contentW, refW int) int {
	w := contentW
	if s.Width > 0 {
		w = s.Width
	}
	if s.MaxWidth > 0 && w > s.MaxWidth {
		w = s.MaxWidth
	}
	minW := s.MinWidth
	if s.DynamicWidth {
		minW = refW
	}
	if w < minW {
		w = minW
	}
	return w
}

// Constraints controls one Compute call.
type Constraints struct {
	Placement Placement
	Flip      bool
	Fixed     bool
	MoveBy    Offset
	Sizing    Sizing
}

// Position is a resolved panel location.
type Position struct {
	Rect      Rect
	Placement Placement
	Flipped   bool
	Hidden    bool
}

// Compute anchors a panel of the given content size to ref inside boundary.
//
// Unless Fixed is set, a panel overflowing the boundary on its main axis is
// flipped to the opposite side when Flip is on, it is shifted along the cross
// axis to stay inside the boundary, and it is marked Hidden once ref has left
// the boundary entirely. Fixed keeps the requested placement as is.
func Compute(ref Rect, content Size, boundary Rect, c Constraints) Position {
	size := Size{W: c.Sizing.Resolve(content.W, ref.W), H: content.H}

	placement := c.Placement
	if placement.Side == SideAuto {
		placement.Side = roomiestSide(ref, boundary)
	}

	rect := anchor(ref, size, placement, c.MoveBy)
	pos := Position{Rect: rect, Placement: placement}

	if c.Fixed {
		return pos
	}

	if c.Flip && overflowsMain(rect, boundary, placement.Side) {
		flipped := placement.Opposite()
		pos.Rect = anchor(ref, size, flipped, c.MoveBy)
		pos.Placement = flipped
		pos.Flipped = true
	}

	pos.Rect = keepInside(pos.Rect, boundary, pos.Placement.Side)
	pos.Hidden = !ref.Overlaps(boundary)

	return pos
}

func anchor(ref Rect, size Size, p Placement, moveBy Offset) Rect {
	r := Rect{W: size.W, H: size.H}
	cross, main := moveBy.Along(p.Side)

	switch p.Side {
	case SideTop:
		r.Y = ref.Y - size.H - main
	case SideBottom:
		r.Y = ref.Bottom() + main
	case SideLeft:
		r.X = ref.X - size.W - main
	case SideRight:
		r.X = ref.Right() + main
	}

	if p.Side.Vertical() {
		switch p.Align {
		case AlignStart:
			r.X = ref.X
		case AlignEnd:
			r.X = ref.Right() - size.W
		default:
			r.X = ref.X + (ref.W-size.W)/2
		}
		r.X += cross
	} else {
		switch p.Align {
		case AlignStart:
			r.Y = ref.Y
		case AlignEnd:
			r.Y = ref.Bottom() - size.H
		default:
			r.Y = ref.Y + (ref.H-size.H)/2
		}
		r.Y += cross
	}

	return r
}

func overflowsMain(r, boundary Rect, s Side) bool {
	switch s {
	case SideTop:
		return r.Y < boundary.Y
	case SideBottom:
		return r.Bottom() > boundary.Bottom()
	case SideLeft:
		return r.X < boundary.X
	case SideRight:
		return r.Right() > boundary.Right()
	}
	return false
}

// keepInside slides r along the cross axis until it fits in boundary. A panel
// wider than the boundary is pinned to the boundary's start edge.
func keepInside(r, boundary Rect, s Side) Rect {
	if s.Vertical() {
		r.X = clamp(r.X, boundary.X, boundary.Right()-r.W)
	} else {
		r.Y = clamp(r.Y, boundary.Y, boundary.Bottom()-r.H)
	}
	return r
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func roomiestSide(ref, boundary Rect) Side {
	room := []struct {
		side  Side
		space int
	}{
		{SideBottom, boundary.Bottom() - ref.Bottom()},
		{SideTop, ref.Y - boundary.Y},
		{SideRight, boundary.Right() - ref.Right()},
		{SideLeft, ref.X - boundary.X},
	}
	best := room[0]
	for _, r := range room[1:] {
		if r.space > best.space {
			best = r
		}
	}
	return best.side
}

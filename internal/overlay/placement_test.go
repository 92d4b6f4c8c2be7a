package overlay

import (
	"testing"

	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var screen = Rect{W: 80, H: 24}

func TestParsePlacement(t *testing.T) {
	tests := []struct {
		in   string
		want Placement
	}{
		{"", Placement{Side: SideBottom}},
		{"bottom", Placement{Side: SideBottom}},
		{"top-start", Placement{Side: SideTop, Align: AlignStart}},
		{"Right-End", Placement{Side: SideRight, Align: AlignEnd}},
		{" left ", Placement{Side: SideLeft}},
		{"auto", Placement{Side: SideAuto}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlacement(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePlacement_Invalid(t *testing.T) {
	for _, in := range []string{"middle", "top-center", "bottom-"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePlacement(in)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrPlacement))
		})
	}
	assert.Panics(t, func() { MustPlacement("nowhere") })
}

func TestPlacement_String(t *testing.T) {
	for _, s := range []string{"bottom", "top-start", "left-end", "right"} {
		assert.Equal(t, s, MustPlacement(s).String())
	}
	assert.Equal(t, "top-end", MustPlacement("bottom-end").Opposite().String())
}

func TestOffset_Along(t *testing.T) {
	o := Offset{X: 2, Y: 5}

	cross, main := o.Along(SideBottom)
	assert.Equal(t, 2, cross)
	assert.Equal(t, 5, main)

	cross, main = o.Along(SideLeft)
	assert.Equal(t, 5, cross)
	assert.Equal(t, 2, main)
}

func TestSizing_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		sizing   Sizing
		content  int
		ref      int
		expected int
	}{
		{"unconstrained", Sizing{}, 12, 30, 12},
		{"explicit width", Sizing{Width: 20}, 12, 30, 20},
		{"max caps content", Sizing{MaxWidth: 10}, 12, 30, 10},
		{"min grows content", Sizing{MinWidth: 15}, 12, 30, 15},
		{"min beats max", Sizing{MinWidth: 15, MaxWidth: 10}, 12, 30, 15},
		{"dynamic width follows reference", Sizing{MinWidth: 5, DynamicWidth: true}, 12, 30, 30},
		{"dynamic width does not shrink", Sizing{DynamicWidth: true}, 40, 30, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.sizing.Resolve(tt.content, tt.ref))
		})
	}
}

func TestCompute_Anchoring(t *testing.T) {
	ref := Rect{X: 10, Y: 5, W: 10, H: 1}
	content := Size{W: 6, H: 3}

	tests := []struct {
		placement string
		want      Rect
	}{
		{"bottom", Rect{X: 12, Y: 6, W: 6, H: 3}},
		{"bottom-start", Rect{X: 10, Y: 6, W: 6, H: 3}},
		{"bottom-end", Rect{X: 14, Y: 6, W: 6, H: 3}},
		{"top-start", Rect{X: 10, Y: 2, W: 6, H: 3}},
		{"right-start", Rect{X: 20, Y: 5, W: 6, H: 3}},
		{"left-start", Rect{X: 4, Y: 5, W: 6, H: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.placement, func(t *testing.T) {
			pos := Compute(ref, content, screen, Constraints{Placement: MustPlacement(tt.placement), Flip: true})
			assert.Equal(t, tt.want, pos.Rect)
			assert.False(t, pos.Flipped)
			assert.False(t, pos.Hidden)
		})
	}
}

func TestCompute_MoveBy(t *testing.T) {
	ref := Rect{X: 10, Y: 5, W: 10, H: 1}
	content := Size{W: 6, H: 3}
	moveBy := Offset{X: 2, Y: 1}

	below := Compute(ref, content, screen, Constraints{Placement: MustPlacement("bottom-start"), MoveBy: moveBy})
	assert.Equal(t, Rect{X: 12, Y: 7, W: 6, H: 3}, below.Rect)

	above := Compute(ref, content, screen, Constraints{Placement: MustPlacement("top-start"), MoveBy: moveBy})
	assert.Equal(t, Rect{X: 12, Y: 1, W: 6, H: 3}, above.Rect, "main offset pushes away from the reference")

	right := Compute(ref, content, screen, Constraints{Placement: MustPlacement("right-start"), MoveBy: moveBy})
	assert.Equal(t, Rect{X: 22, Y: 6, W: 6, H: 3}, right.Rect, "x stays horizontal for side placements")
}

func TestCompute_Flip(t *testing.T) {
	ref := Rect{X: 10, Y: 22, W: 10, H: 1}
	content := Size{W: 6, H: 3}

	flipped := Compute(ref, content, screen, Constraints{Placement: MustPlacement("bottom"), Flip: true})
	assert.True(t, flipped.Flipped)
	assert.Equal(t, SideTop, flipped.Placement.Side)
	assert.Equal(t, 19, flipped.Rect.Y)

	kept := Compute(ref, content, screen, Constraints{Placement: MustPlacement("bottom"), Flip: false})
	assert.False(t, kept.Flipped)
	assert.Equal(t, 23, kept.Rect.Y)
}

func TestCompute_FlipKeepsPanelInside(t *testing.T) {
	content := Size{W: 8, H: 4}
	constraints := Constraints{Placement: MustPlacement("bottom-start"), Flip: true}

	for y := 0; y < screen.H; y++ {
		ref := Rect{X: 30, Y: y, W: 10, H: 1}
		roomBelow := screen.Bottom()-ref.Bottom() >= content.H
		roomAbove := ref.Y-screen.Y >= content.H
		if !roomBelow && !roomAbove {
			continue
		}

		pos := Compute(ref, content, screen, constraints)
		assert.True(t, pos.Rect.Inside(screen), "ref row %d placed at %s", y, pos.Rect)
		assert.Equal(t, !roomBelow, pos.Flipped, "ref row %d", y)
	}
}

func TestCompute_PreventOverflow(t *testing.T) {
	ref := Rect{X: 76, Y: 5, W: 4, H: 1}
	pos := Compute(ref, Size{W: 10, H: 2}, screen, Constraints{Placement: MustPlacement("bottom-start")})

	assert.Equal(t, 70, pos.Rect.X)
	assert.True(t, pos.Rect.Inside(screen))
}

func TestCompute_Fixed(t *testing.T) {
	ref := Rect{X: 76, Y: 22, W: 4, H: 1}
	pos := Compute(ref, Size{W: 10, H: 3}, screen, Constraints{Placement: MustPlacement("bottom-start"), Flip: true, Fixed: true})

	assert.Equal(t, Rect{X: 76, Y: 23, W: 10, H: 3}, pos.Rect)
	assert.False(t, pos.Flipped)
	assert.False(t, pos.Hidden)
}

func TestCompute_Auto(t *testing.T) {
	ref := Rect{X: 10, Y: 20, W: 4, H: 1}
	pos := Compute(ref, Size{W: 4, H: 2}, screen, Constraints{Placement: MustPlacement("auto")})

	assert.Equal(t, SideRight, pos.Placement.Side, "the right side has the most room")
}

func TestCompute_HiddenWhenReferenceLeavesBoundary(t *testing.T) {
	ref := Rect{X: 10, Y: 30, W: 4, H: 1}
	pos := Compute(ref, Size{W: 4, H: 2}, screen, Constraints{Placement: MustPlacement("bottom")})

	assert.True(t, pos.Hidden)
}

func TestCompute_DynamicWidth(t *testing.T) {
	ref := Rect{X: 10, Y: 5, W: 20, H: 1}
	pos := Compute(ref, Size{W: 6, H: 2}, screen, Constraints{
		Placement: MustPlacement("bottom-start"),
		Sizing:    Sizing{DynamicWidth: true},
	})

	assert.Equal(t, 20, pos.Rect.W)
}

package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Clip bounds the cells a layer may paint. The zero value means the whole
// canvas.
type Clip struct {
	X, Y, W, H int
}

func (c Clip) unbounded() bool { return c == Clip{} }

// Layer is a rendered block placed at a cell position. Higher Z paints on
// top; equal Z keeps insertion order.
type Layer struct {
	X, Y    int
	Z       int
	Content string
	Clip    Clip
}

// Composite paints layers over base. The canvas is width x height cells;
// base lines are padded or dropped to fit. ANSI styling in both base and
// layers is preserved.
func Composite(base string, width, height int, layers ...Layer) string {
	lines := SplitLines(base)
	if height > 0 {
		for len(lines) < height {
			lines = append(lines, "")
		}
		lines = lines[:height]
	}

	ordered := make([]Layer, len(layers))
	copy(ordered, layers)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Z < ordered[j].Z })

	for _, l := range ordered {
		paint(lines, width, l)
	}
	return strings.Join(lines, "\n")
}

func paint(lines []string, width int, l Layer) {
	minX, maxX := 0, width
	minY, maxY := 0, len(lines)
	if !l.Clip.unbounded() {
		minX = max(minX, l.Clip.X)
		maxX = min(maxX, l.Clip.X+l.Clip.W)
		minY = max(minY, l.Clip.Y)
		maxY = min(maxY, l.Clip.Y+l.Clip.H)
	}

	src := SplitLines(l.Content)
	w := MaxLineWidth(src)
	for i, line := range src {
		row := l.Y + i
		if row < minY || row >= maxY {
			continue
		}
		left := max(l.X, minX)
		right := min(l.X+w, maxX)
		if right <= left {
			continue
		}
		seg := ansi.Cut(PadRight(line, w), left-l.X, right-l.X)
		lines[row] = overlayAt(lines[row], seg, left, width)
	}
}

// overlayAt replaces the cells of line starting at column x with seg.
func overlayAt(line, seg string, x, width int) string {
	target := PadRight(line, width)
	left := ansi.Truncate(target, x, "")
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}
	pos := x + ansi.StringWidth(seg)
	right := ansi.TruncateLeft(target, pos, "")
	return left + seg + right
}

// SplitLines splits s on newlines, returning at least one element.
func SplitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// MaxLineWidth returns the visual width of the widest line.
func MaxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// PadRight pads s with spaces so its visual width equals width.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Truncate shortens s to width cells, appending an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/rileyhilliard/popkit/internal/overlay"
)

// parseInts splits "a,b,..." into exactly n integers. Spaces around the
// numbers are allowed.
func parseInts(flag, value string, n int, example string) ([]int, error) {
	parts := strings.Split(value, ",")
	if len(parts) != n {
		return nil, errors.New(errors.ErrOption,
			fmt.Sprintf("--%s needs %d comma-separated numbers, got '%s'", flag, n, value),
			"Try something like --"+flag+" "+example+".")
	}

	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrOption,
				fmt.Sprintf("'%s' in --%s isn't a whole number", strings.TrimSpace(p), flag),
				"Try something like --"+flag+" "+example+".")
		}
		out[i] = v
	}
	return out, nil
}

// ParseRect parses "x,y,w,h". Width and height must be positive.
func ParseRect(flag, value string) (overlay.Rect, error) {
	v, err := parseInts(flag, value, 4, "10,5,12,1")
	if err != nil {
		return overlay.Rect{}, err
	}
	r := overlay.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}
	if r.Empty() {
		return overlay.Rect{}, errors.New(errors.ErrOption,
			fmt.Sprintf("--%s has no area: %s", flag, r),
			"Width and height must both be greater than zero.")
	}
	return r, nil
}

// ParseSize parses "w,h". Both must be positive.
func ParseSize(flag, value string) (overlay.Size, error) {
	v, err := parseInts(flag, value, 2, "20,6")
	if err != nil {
		return overlay.Size{}, err
	}
	if v[0] <= 0 || v[1] <= 0 {
		return overlay.Size{}, errors.New(errors.ErrOption,
			fmt.Sprintf("--%s must be positive, got %dx%d", flag, v[0], v[1]),
			"Width and height must both be greater than zero.")
	}
	return overlay.Size{W: v[0], H: v[1]}, nil
}

// ParseOffset parses "x,y". An empty value means no offset.
func ParseOffset(flag, value string) (*overlay.Offset, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	v, err := parseInts(flag, value, 2, "0,1")
	if err != nil {
		return nil, err
	}
	return &overlay.Offset{X: v[0], Y: v[1]}, nil
}

package config

import (
	"github.com/rileyhilliard/popkit/internal/overlay"
)

// PopoverOptions turns the popover section into overlay options. Call
// Validate first; invalid placement or appendTo values are returned as
// errors here too.
func (p PopoverConfig) PopoverOptions() (overlay.Options, error) {
	placement, err := overlay.ParsePlacement(p.Placement)
	if err != nil {
		return overlay.Options{}, err
	}
	appendTo, err := overlay.ParseAppendTo(p.AppendTo)
	if err != nil {
		return overlay.Options{}, err
	}
	return overlay.Options{
		Placement:              placement,
		Flip:                   overlay.Bool(p.Flip),
		Fixed:                  p.Fixed,
		ZIndex:                 p.ZIndex,
		ShowDelay:              p.ShowDelay,
		HideDelay:              p.HideDelay,
		AppendTo:               appendTo,
		Sizing:                 overlay.Sizing{DynamicWidth: p.DynamicWidth},
		ClickOutsideWhenClosed: p.ClickOutsideWhenClosed,
		ExcludeClass:           p.ExcludeClass,
	}, nil
}

package config

import (
	"fmt"
	"slices"

	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/rileyhilliard/popkit/internal/overlay"
)

var (
	colorModes  = []string{"auto", "always", "never"}
	notifyKinds = []string{"global", "local", "sticky"}
)

// Validate checks the config for errors. Every problem found is reported,
// joined into one error.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but popkit only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade popkit or lower the version in .popkit.yaml.")
	}

	var errs []error
	errs = append(errs, validatePopover(cfg.Popover)...)
	errs = append(errs, validateDropdown(cfg.Dropdown)...)
	errs = append(errs, validateTable(cfg.Table)...)
	errs = append(errs, validateNotify(cfg.Notify)...)

	if !slices.Contains(colorModes, cfg.Output.Color) {
		errs = append(errs, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown color mode '%s'", cfg.Output.Color),
			"Use auto, always or never in the 'output' section."))
	}

	return errors.Join(errs...)
}

func validatePopover(p PopoverConfig) []error {
	var errs []error
	if _, err := overlay.ParsePlacement(p.Placement); err != nil {
		errs = append(errs, err)
	}
	if _, err := overlay.ParseAppendTo(p.AppendTo); err != nil {
		errs = append(errs, err)
	}
	if p.ZIndex < 0 {
		errs = append(errs, errors.New(errors.ErrConfig,
			fmt.Sprintf("popover.z_index can't be negative (got %d)", p.ZIndex),
			"Use 0 or a positive stacking order."))
	}
	if p.ShowDelay < 0 || p.HideDelay < 0 {
		errs = append(errs, errors.New(errors.ErrConfig,
			"Popover delays can't be negative",
			"Set show_delay and hide_delay to 0 or a duration like 150ms."))
	}
	return errs
}

func validateDropdown(d DropdownConfig) []error {
	var errs []error
	if d.MaxRows <= 0 {
		errs = append(errs, errors.New(errors.ErrConfig,
			fmt.Sprintf("dropdown.max_rows must be positive (got %d)", d.MaxRows),
			"Lists need room for at least one option."))
	}
	if d.MinWidth < 0 || d.MaxWidth < 0 {
		errs = append(errs, errors.New(errors.ErrConfig,
			"Dropdown widths can't be negative",
			"Use 0 to leave a bound unset."))
	}
	if d.MaxWidth > 0 && d.MinWidth > d.MaxWidth {
		errs = append(errs, errors.New(errors.ErrConfig,
			fmt.Sprintf("dropdown.min_width (%d) is larger than dropdown.max_width (%d)", d.MinWidth, d.MaxWidth),
			"Lower min_width or raise max_width."))
	}
	return errs
}

func validateTable(t TableConfig) []error {
	var errs []error
	if t.PageSize <= 0 {
		errs = append(errs, errors.New(errors.ErrConfig,
			fmt.Sprintf("table.page_size must be positive (got %d)", t.PageSize),
			"Pick how many rows load per page, like 20."))
	}
	if t.Height <= 0 {
		errs = append(errs, errors.New(errors.ErrConfig,
			fmt.Sprintf("table.height must be positive (got %d)", t.Height),
			"Pick how many rows are visible, like 10."))
	}
	return errs
}

func validateNotify(n NotifyConfig) []error {
	var errs []error
	if !slices.Contains(notifyKinds, n.Kind) {
		errs = append(errs, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown notification kind '%s'", n.Kind),
			"Use global, local or sticky."))
	}
	if n.Width < 10 {
		errs = append(errs, errors.New(errors.ErrConfig,
			fmt.Sprintf("notify.width is too narrow (got %d)", n.Width),
			"Toasts need at least 10 cells."))
	}
	return errs
}

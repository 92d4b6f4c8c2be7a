package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .popkit.yaml configuration file.
type Config struct {
	Version  int            `yaml:"version" mapstructure:"version"`
	Popover  PopoverConfig  `yaml:"popover" mapstructure:"popover"`
	Dropdown DropdownConfig `yaml:"dropdown" mapstructure:"dropdown"`
	Table    TableConfig    `yaml:"table" mapstructure:"table"`
	Notify   NotifyConfig   `yaml:"notify" mapstructure:"notify"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// PopoverConfig holds the defaults applied to every popover the CLI builds.
type PopoverConfig struct {
	// Placement is "<side>" or "<side>-<align>", e.g. "bottom-start".
	Placement string `yaml:"placement" mapstructure:"placement"`

	Flip  bool `yaml:"flip" mapstructure:"flip"`
	Fixed bool `yaml:"fixed" mapstructure:"fixed"`

	ZIndex int `yaml:"z_index" mapstructure:"z_index"`

	ShowDelay time.Duration `yaml:"show_delay" mapstructure:"show_delay"`
	HideDelay time.Duration `yaml:"hide_delay" mapstructure:"hide_delay"`

	// AppendTo is one of inline, parent, scrollParent or window.
	AppendTo string `yaml:"append_to" mapstructure:"append_to"`

	// DynamicWidth stretches panels to at least the trigger width.
	DynamicWidth bool `yaml:"dynamic_width" mapstructure:"dynamic_width"`

	ClickOutsideWhenClosed bool   `yaml:"click_outside_when_closed" mapstructure:"click_outside_when_closed"`
	ExcludeClass           string `yaml:"exclude_class" mapstructure:"exclude_class"`
}

// DropdownConfig controls dropdown, select and menu lists.
type DropdownConfig struct {
	CloseOnSelect bool `yaml:"close_on_select" mapstructure:"close_on_select"`

	// MaxRows is how many options show before the list scrolls.
	MaxRows  int `yaml:"max_rows" mapstructure:"max_rows"`
	MinWidth int `yaml:"min_width" mapstructure:"min_width"`
	MaxWidth int `yaml:"max_width" mapstructure:"max_width"`

	ShowArrow bool `yaml:"show_arrow" mapstructure:"show_arrow"`
}

// TableConfig controls bulk-selection tables.
type TableConfig struct {
	DeselectRowsByDefault bool `yaml:"deselect_rows_by_default" mapstructure:"deselect_rows_by_default"`

	// PageSize is how many rows a table loads per page.
	PageSize int `yaml:"page_size" mapstructure:"page_size"`

	// Height is the number of visible rows.
	Height int `yaml:"height" mapstructure:"height"`
}

// NotifyConfig controls toast notifications.
type NotifyConfig struct {
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Kind is global, local or sticky.
	Kind  string `yaml:"kind" mapstructure:"kind"`
	Width int    `yaml:"width" mapstructure:"width"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Popover: PopoverConfig{
			Placement: "bottom",
			Flip:      true,
			Fixed:     false,
			ZIndex:    1000,
			AppendTo:  "parent",
		},
		Dropdown: DropdownConfig{
			CloseOnSelect: true,
			MaxRows:       10,
			MinWidth:      12,
			MaxWidth:      40,
		},
		Table: TableConfig{
			DeselectRowsByDefault: false,
			PageSize:              20,
			Height:                10,
		},
		Notify: NotifyConfig{
			Timeout: 5 * time.Second,
			Kind:    "global",
			Width:   40,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

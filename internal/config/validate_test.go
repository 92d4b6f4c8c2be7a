package config

import (
	"testing"

	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
		code    string
	}{
		{
			name:    "future version",
			mutate:  func(c *Config) { c.Version = CurrentConfigVersion + 1 },
			wantErr: "from the future",
			code:    errors.ErrConfig,
		},
		{
			name:    "bad placement",
			mutate:  func(c *Config) { c.Popover.Placement = "middle" },
			wantErr: "Unknown placement",
			code:    errors.ErrPlacement,
		},
		{
			name:    "bad alignment",
			mutate:  func(c *Config) { c.Popover.Placement = "top-left" },
			wantErr: "Unknown alignment",
			code:    errors.ErrPlacement,
		},
		{
			name:    "bad append target",
			mutate:  func(c *Config) { c.Popover.AppendTo = "body-ish" },
			wantErr: "Unknown appendTo",
			code:    errors.ErrConfig,
		},
		{
			name:    "negative z-index",
			mutate:  func(c *Config) { c.Popover.ZIndex = -1 },
			wantErr: "z_index",
			code:    errors.ErrConfig,
		},
		{
			name:    "negative delay",
			mutate:  func(c *Config) { c.Popover.HideDelay = -1 },
			wantErr: "delays",
			code:    errors.ErrConfig,
		},
		{
			name:    "no rows",
			mutate:  func(c *Config) { c.Dropdown.MaxRows = 0 },
			wantErr: "max_rows",
			code:    errors.ErrConfig,
		},
		{
			name:    "min above max",
			mutate:  func(c *Config) { c.Dropdown.MinWidth, c.Dropdown.MaxWidth = 50, 20 },
			wantErr: "min_width",
			code:    errors.ErrConfig,
		},
		{
			name:    "empty page",
			mutate:  func(c *Config) { c.Table.PageSize = 0 },
			wantErr: "page_size",
			code:    errors.ErrConfig,
		},
		{
			name:    "unknown toast kind",
			mutate:  func(c *Config) { c.Notify.Kind = "floating" },
			wantErr: "notification kind",
			code:    errors.ErrConfig,
		},
		{
			name:    "narrow toast",
			mutate:  func(c *Config) { c.Notify.Width = 4 },
			wantErr: "too narrow",
			code:    errors.ErrConfig,
		},
		{
			name:    "color mode",
			mutate:  func(c *Config) { c.Output.Color = "sometimes" },
			wantErr: "color mode",
			code:    errors.ErrConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCode(err, tt.code), "want code %s", tt.code)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Popover.Placement = "nowhere"
	cfg.Table.Height = 0
	cfg.Output.Color = "rainbow"

	err := Validate(cfg)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "nowhere")
	assert.Contains(t, msg, "table.height")
	assert.Contains(t, msg, "rainbow")
}

func TestValidate_Nil(t *testing.T) {
	assert.Error(t, Validate(nil))
}

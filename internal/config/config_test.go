package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "bottom", cfg.Popover.Placement)
	assert.True(t, cfg.Popover.Flip)
	assert.False(t, cfg.Popover.Fixed)
	assert.Equal(t, 1000, cfg.Popover.ZIndex)
	assert.Zero(t, cfg.Popover.ShowDelay)
	assert.Zero(t, cfg.Popover.HideDelay)
	assert.Equal(t, "parent", cfg.Popover.AppendTo)
	assert.True(t, cfg.Dropdown.CloseOnSelect)
	assert.Equal(t, 10, cfg.Dropdown.MaxRows)
	assert.False(t, cfg.Table.DeselectRowsByDefault)
	assert.Equal(t, 20, cfg.Table.PageSize)
	assert.Equal(t, 5*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, "auto", cfg.Output.Color)

	require.NoError(t, Validate(cfg))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, `
version: 1
popover:
  placement: top-start
  fixed: true
  show_delay: 150ms
  append_to: window
dropdown:
  max_rows: 6
table:
  deselect_rows_by_default: true
notify:
  timeout: 2s
output:
  color: never
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "top-start", cfg.Popover.Placement)
	assert.True(t, cfg.Popover.Fixed)
	assert.True(t, cfg.Popover.Flip, "unset keys keep their defaults")
	assert.Equal(t, 150*time.Millisecond, cfg.Popover.ShowDelay)
	assert.Equal(t, "window", cfg.Popover.AppendTo)
	assert.Equal(t, 6, cfg.Dropdown.MaxRows)
	assert.True(t, cfg.Dropdown.CloseOnSelect)
	assert.True(t, cfg.Table.DeselectRowsByDefault)
	assert.Equal(t, 20, cfg.Table.PageSize)
	assert.Equal(t, 2*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "popover: [unclosed\n")
	_, err = Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "popover:\n  placement: left\n")
	t.Setenv("POPKIT_POPOVER_PLACEMENT", "right-end")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "right-end", cfg.Popover.Placement)
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		writeFile(t, path, "version: 1\n")

		got, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("parent directory", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ConfigFileName), "version: 1\n")
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		t.Chdir(nested)

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, realPath(t, filepath.Join(root, ConfigFileName)), realPath(t, got))
	})

	t.Run("stops at git root", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ConfigFileName), "version: 1\n")
		repo := filepath.Join(root, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
		t.Setenv("HOME", t.TempDir())
		t.Chdir(repo)

		got, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("global fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		writeFile(t, global, "version: 1\n")

		work := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(work, ".git"), 0o755))
		t.Chdir(work)

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, got)
	})
}

func realPath(t *testing.T, path string) string {
	t.Helper()
	p, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return p
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	work := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(work, ".git"), 0o755))
	t.Chdir(work)

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestPopoverOptions(t *testing.T) {
	p := DefaultConfig().Popover
	p.Placement = "right-end"
	p.AppendTo = "window"
	p.Fixed = true
	p.Flip = false
	p.DynamicWidth = true

	opts, err := p.PopoverOptions()
	require.NoError(t, err)
	assert.Equal(t, overlay.Placement{Side: overlay.SideRight, Align: overlay.AlignEnd}, opts.Placement)
	assert.Equal(t, "window", opts.AppendTo.String())
	assert.True(t, opts.Fixed)
	assert.False(t, opts.FlipEnabled())
	assert.True(t, opts.Sizing.DynamicWidth)
	assert.Equal(t, 1000, opts.ZIndex)

	p.Placement = "diagonal"
	_, err = p.PopoverOptions()
	assert.True(t, errors.IsCode(err, errors.ErrPlacement))
}

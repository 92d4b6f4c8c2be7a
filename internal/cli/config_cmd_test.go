package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/rileyhilliard/popkit/internal/config"
	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, showConfig(&buf, config.DefaultConfig(), ""))

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "# defaults")
	assert.Regexp(t, `(?m)^popover\.placement\s+bottom$`, out)
	assert.Regexp(t, `(?m)^notify\.timeout\s+5s$`, out)
}

func TestShowConfig_JSON(t *testing.T) {
	machineMode = true
	t.Cleanup(func() { machineMode = false })

	var buf bytes.Buffer
	require.NoError(t, showConfig(&buf, config.DefaultConfig(), "/tmp/.popkit.yaml"))

	var env struct {
		Success bool           `json:"success"`
		Data    configShowData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "/tmp/.popkit.yaml", env.Data.Path)
	assert.Equal(t, "bottom", env.Data.Values["popover.placement"])
	assert.Equal(t, "true", env.Data.Values["dropdown.close_on_select"])
}

func TestConfigShowCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	writeTestFile(t, path, "version: 1\npopover:\n  placement: top-end\n")

	out, err := executeCommand(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# "+path)
	assert.Regexp(t, `(?m)^popover\.placement\s+top-end$`, out)
}

func TestConfigSetCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, config.Save(config.DefaultConfig(), path))

	out, err := executeCommand(t, "config", "set", "popover.placement", "left", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "popover.placement = left")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "left", cfg.Popover.Placement)
}

func TestConfigSetCommand_Rejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, config.Save(config.DefaultConfig(), path))

	_, err := executeCommand(t, "config", "set", "popover.placement", "sideways", "--config", path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrPlacement))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bottom", cfg.Popover.Placement)
}

func TestConfigSetCommand_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := executeCommand(t, "config", "set", "popover.placement", "top", "--config", missing)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestDescribePath(t *testing.T) {
	assert.Equal(t, "defaults", describePath(""))
	assert.Equal(t, "/x/.popkit.yaml", describePath("/x/.popkit.yaml"))
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".popkit.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/popkit"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. POPKIT_POPOVER_PLACEMENT.
	EnvPrefix = "POPKIT"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'popkit config init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .popkit.yaml in current directory
// 3. .popkit.yaml in parent directories (stops at git root or home)
// 4. ~/.config/popkit/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	if path := findUpwards(cwd); path != "" {
		return path, nil
	}

	if global := GlobalConfigPath(); global != "" {
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// findUpwards checks dir and its parents for a project config. It stops
// below the home directory and at a git root.
func findUpwards(dir string) string {
	home, _ := os.UserHomeDir()
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		if isGitRoot(dir) {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			return ""
		}
		dir = parent
	}
}

// GlobalConfigPath is where the user-wide config lives, or "" when the home
// directory is unknown.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// LoadOrDefault loads config from the found path, or returns defaults if
// not found. It also returns the path it read, "" for defaults.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		v := newViper()
		cfg, err := parseConfig(v, "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	return cfg, nil
}

// setDefaults registers every key so partial files merge with the defaults
// and environment overrides resolve.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)

	v.SetDefault("popover.placement", d.Popover.Placement)
	v.SetDefault("popover.flip", d.Popover.Flip)
	v.SetDefault("popover.fixed", d.Popover.Fixed)
	v.SetDefault("popover.z_index", d.Popover.ZIndex)
	v.SetDefault("popover.show_delay", d.Popover.ShowDelay)
	v.SetDefault("popover.hide_delay", d.Popover.HideDelay)
	v.SetDefault("popover.append_to", d.Popover.AppendTo)
	v.SetDefault("popover.dynamic_width", d.Popover.DynamicWidth)
	v.SetDefault("popover.click_outside_when_closed", d.Popover.ClickOutsideWhenClosed)
	v.SetDefault("popover.exclude_class", d.Popover.ExcludeClass)

	v.SetDefault("dropdown.close_on_select", d.Dropdown.CloseOnSelect)
	v.SetDefault("dropdown.max_rows", d.Dropdown.MaxRows)
	v.SetDefault("dropdown.min_width", d.Dropdown.MinWidth)
	v.SetDefault("dropdown.max_width", d.Dropdown.MaxWidth)
	v.SetDefault("dropdown.show_arrow", d.Dropdown.ShowArrow)

	v.SetDefault("table.deselect_rows_by_default", d.Table.DeselectRowsByDefault)
	v.SetDefault("table.page_size", d.Table.PageSize)
	v.SetDefault("table.height", d.Table.Height)

	v.SetDefault("notify.timeout", d.Notify.Timeout)
	v.SetDefault("notify.kind", d.Notify.Kind)
	v.SetDefault("notify.width", d.Notify.Width)

	v.SetDefault("output.color", d.Output.Color)
}

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax - just ~ for the current user.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/popkit/internal/config"
	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/rileyhilliard/popkit/internal/ui"
)

// InitOptions holds options for the config init command.
type InitOptions struct {
	Path           string // Explicit destination, overrides Global
	Global         bool   // Write ~/.config/popkit/config.yaml
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, write defaults
	Out            io.Writer
}

func (o InitOptions) target() (string, error) {
	switch {
	case o.Path != "":
		return config.ExpandTilde(o.Path), nil
	case o.Global:
		path := config.GlobalConfigPath()
		if path == "" {
			return "", errors.New(errors.ErrConfig,
				"Couldn't find your home directory",
				"Pass an explicit path with --config.")
		}
		return path, nil
	}
	return filepath.Join(".", config.ConfigFileName), nil
}

// Init writes a new config file, asking for the common settings unless
// NonInteractive is set. It returns the path written, or "" when the user
// cancelled.
func Init(opts InitOptions) (string, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	path, err := opts.target()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return "", errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return "", nil
		}
	}

	cfg := config.DefaultConfig()
	if !opts.NonInteractive {
		if err := initForm(cfg).Run(); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --yes to write defaults")
		}
	}

	if err := config.Validate(cfg); err != nil {
		return "", err
	}
	if err := config.Save(cfg, path); err != nil {
		return "", err
	}

	fmt.Fprintf(out, "%s Wrote %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path)
	return path, nil
}

var placementChoices = []string{
	"bottom", "bottom-start", "bottom-end",
	"top", "top-start", "top-end",
	"left", "right", "auto",
}

// initForm asks for the settings people change most. Everything else keeps
// its default and can be changed with 'popkit config set'.
func initForm(cfg *config.Config) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default placement").
				Description("Where panels open relative to their trigger").
				Options(huh.NewOptions(placementChoices...)...).
				Value(&cfg.Popover.Placement),
			huh.NewConfirm().
				Title("Flip panels that don't fit?").
				Value(&cfg.Popover.Flip),
			huh.NewSelect[string]().
				Title("Render panels into").
				Options(
					huh.NewOption("the trigger's parent", "parent"),
					huh.NewOption("the nearest scrolling parent", "scrollParent"),
					huh.NewOption("the whole window", "window"),
					huh.NewOption("the trigger itself (clipped)", "inline"),
				).
				Value(&cfg.Popover.AppendTo),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Close dropdowns after a selection?").
				Value(&cfg.Dropdown.CloseOnSelect),
			huh.NewConfirm().
				Title("Start tables with everything deselected?").
				Value(&cfg.Table.DeselectRowsByDefault),
			huh.NewSelect[string]().
				Title("Notification position").
				Options(
					huh.NewOption("top right", "global"),
					huh.NewOption("bottom right", "sticky"),
					huh.NewOption("next to the widget", "local"),
				).
				Value(&cfg.Notify.Kind),
			huh.NewSelect[string]().
				Title("Colors").
				Options(huh.NewOptions("auto", "always", "never")...).
				Value(&cfg.Output.Color),
		),
	)
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/popkit/internal/config"
	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/ui"
	"github.com/rileyhilliard/popkit/internal/util"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

// Loaded lazily by loadConfig.
var (
	loadedConfig     *config.Config
	loadedConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "popkit",
	Short: "Terminal popovers, dropdowns and bulk selection",
	Long: `popkit is a toolkit of floating terminal widgets: positioned popovers,
dropdowns, selects, menus, bulk-selectable tables and notifications.

Try them out:
  popkit catalog
  popkit demo dropdown
  popkit place --ref 10,5,12,1 --content 20,6`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			os.Setenv(logger.DebugEnv, "1")
		}
		applyColorMode("auto", noColor)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .popkit.yaml, then ~/.config/popkit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if machineMode {
			_ = WriteJSONFromError(os.Stdout, err)
		} else {
			fmt.Fprint(os.Stderr, formatError(err))
		}
		os.Exit(1)
	}
}

// loadConfig finds, loads and validates the configuration once per run.
// No config file means defaults.
func loadConfig() (*config.Config, error) {
	if loadedConfig != nil {
		return loadedConfig, nil
	}

	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger.Default().Debug("config: %s", describePath(path))
	applyColorMode(cfg.Output.Color, noColor)

	loadedConfig, loadedConfigPath = cfg, path
	return cfg, nil
}

func describePath(path string) string {
	if path == "" {
		return "defaults"
	}
	return path
}

// applyColorMode switches the lipgloss profile. --no-color and NO_COLOR
// always win over the configured mode.
func applyColorMode(mode string, disable bool) {
	switch {
	case disable, os.Getenv("NO_COLOR") != "", mode == "never":
		ui.DisableColors()
	case mode == "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

// isUnknownCommandError reports whether cobra rejected the command line.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "x" for "popkit"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

func commandNames() []string {
	var names []string
	for _, c := range rootCmd.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	return names
}

// formatError renders err for the terminal. Unknown commands that name a
// widget point at the demo command.
func formatError(err error) string {
	if _, ok := errors.As(err); ok {
		return err.Error()
	}
	if isUnknownCommandError(err) {
		name := extractUnknownCommand(err)
		suggestion := "Run 'popkit --help' to see the available commands."
		if isWidgetName(name) {
			suggestion = fmt.Sprintf("Did you mean 'popkit demo %s'?", name)
		} else if similar := util.SuggestSimilar(name, commandNames(), 3); len(similar) > 0 {
			suggestion = fmt.Sprintf("Did you mean 'popkit %s'?", similar[0])
		} else if similar := util.SuggestSimilar(name, widgetNames(), 3); len(similar) > 0 {
			suggestion = fmt.Sprintf("Did you mean 'popkit demo %s'?", similar[0])
		}
		return errors.New(errors.ErrConfig, err.Error(), suggestion).Error()
	}
	return ui.ErrorStyle().Render(ui.SymbolFail) + " " + err.Error() + "\n"
}

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/popkit/internal/config"
	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/rileyhilliard/popkit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configInitForce  bool
	configInitGlobal bool
	configInitYes    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage popkit configuration",
	Long: `Create, inspect and edit .popkit.yaml.

popkit looks for .popkit.yaml in the current directory and its parents (up to
the repository root), then for ~/.config/popkit/config.yaml. POPKIT_* environment
variables override file values, e.g. POPKIT_POPOVER_PLACEMENT=top.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file",
	Long: `Create a config file with the common settings.

Examples:
  popkit config init
  popkit config init --global
  popkit config init --yes --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := Init(InitOptions{
			Path:           cfgFile,
			Global:         configInitGlobal,
			Overwrite:      configInitForce,
			NonInteractive: configInitYes,
			Out:            cmd.OutOrStdout(),
		})
		return err
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print every setting after defaults, the config file and POPKIT_*
environment variables are applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return showConfig(cmd.OutOrStdout(), cfg, loadedConfigPath)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Long: `Change one setting in place. Comments and key order are kept. The
file must still be valid afterwards, otherwise it is left untouched.

Examples:
  popkit config set popover.placement top-start
  popkit config set notify.timeout 3s`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Find(cfgFile)
		if err != nil {
			return err
		}
		if path == "" {
			return errors.New(errors.ErrConfig,
				"Config file not found",
				"Create one with 'popkit config init'.")
		}
		if err := config.SetValue(path, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s (%s)\n",
			ui.SuccessStyle().Render(ui.SymbolSuccess), args[0], args[1], path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "write ~/.config/popkit/config.yaml")
	configInitCmd.Flags().BoolVarP(&configInitYes, "yes", "y", false, "write defaults without prompting")

	configCmd.AddCommand(configInitCmd, configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

type configShowData struct {
	Path   string            `json:"path"`
	Values map[string]string `json:"values"`
}

func showConfig(w io.Writer, cfg *config.Config, path string) error {
	pairs, err := config.Flatten(cfg)
	if err != nil {
		return err
	}

	if machineMode {
		data := configShowData{Path: path, Values: make(map[string]string, len(pairs))}
		for _, p := range pairs {
			data.Values[p[0]] = p[1]
		}
		return WriteJSONSuccess(w, data)
	}

	fmt.Fprintln(w, ui.MutedStyle().Render("# "+describePath(path)))
	width := 0
	for _, p := range pairs {
		width = max(width, len(p[0]))
	}
	keyStyle := lipgloss.NewStyle().Foreground(ui.ColorInfo).Width(width + 2)
	for _, p := range pairs {
		fmt.Fprintln(w, keyStyle.Render(p[0])+p[1])
	}
	return nil
}

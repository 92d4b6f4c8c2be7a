package cli

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/popkit/internal/ui"
	"github.com/spf13/cobra"
)

// widgetCatalog lists every demo, in the order the picker shows them.
var widgetCatalog = []ui.CatalogRow{
	{Name: "dropdown", Kind: "Pickers", Description: "Read-only input that opens a list"},
	{Name: "select", Kind: "Pickers", Description: "Text input with inline suggestions"},
	{Name: "menu", Kind: "Pickers", Description: "Button that opens a list of actions"},
	{Name: "popover", Kind: "Overlays", Description: "Positioned panel with click-outside"},
	{Name: "notify", Kind: "Overlays", Description: "Stacked toast notifications"},
	{Name: "table", Kind: "Collections", Description: "Paged table with bulk selection"},
}

func widgetNames() []string {
	names := make([]string, len(widgetCatalog))
	for i, row := range widgetCatalog {
		names[i] = row.Name
	}
	return names
}

func isWidgetName(name string) bool {
	for _, row := range widgetCatalog {
		if row.Name == name {
			return true
		}
	}
	return false
}

var catalogList bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the widgets and run one",
	Long: `Show every widget popkit ships. In a terminal you can filter the list
and press Enter to run the widget's demo. With --list, or when output is not
a terminal, the catalog is printed instead.

Examples:
  popkit catalog
  popkit catalog --list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if machineMode {
			return WriteJSONSuccess(cmd.OutOrStdout(), widgetCatalog)
		}
		if catalogList || !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderCatalog(widgetCatalog))
			return nil
		}

		picked, err := ui.PickWidget(widgetCatalog, os.Stdout, os.Stdin)
		if err != nil {
			return err
		}
		if picked == nil {
			return nil
		}
		return runDemo(picked.Name)
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogList, "list", false, "print the catalog without prompting")
	rootCmd.AddCommand(catalogCmd)
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/popkit/internal/config"
	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/notify"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/rileyhilliard/popkit/internal/ui"
	"github.com/rileyhilliard/popkit/internal/util"
	"github.com/spf13/cobra"
)

var demoLogFile string

var demoCmd = &cobra.Command{
	Use:   "demo [widget]",
	Short: "Run one widget full screen",
	Long: `Run a widget in an interactive full-screen demo. Mouse and keyboard both
work; selections show up as notifications. Without a widget name the catalog
picker opens.

Widgets: dropdown, select, menu, popover, notify, table

Examples:
  popkit demo dropdown
  popkit demo table --config ./demo.yaml
  popkit demo menu --log-file /tmp/popkit.log`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return widgetNames(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return catalogCmd.RunE(cmd, nil)
		}
		if !isWidgetName(args[0]) {
			suggestion := "Available widgets: " + strings.Join(widgetNames(), ", ")
			if similar := util.SuggestSimilar(args[0], widgetNames(), 3); len(similar) > 0 {
				suggestion = fmt.Sprintf("Did you mean '%s'? %s", similar[0], suggestion)
			}
			return errors.New(errors.ErrOption,
				fmt.Sprintf("Unknown widget '%s'", args[0]),
				suggestion)
		}
		return runDemo(args[0])
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoLogFile, "log-file", "", "write widget logs to this file")
	rootCmd.AddCommand(demoCmd)
}

// runDemo runs the named widget in the alternate screen until the user quits.
func runDemo(name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !ui.IsTerminal(os.Stdout) {
		return errors.New(errors.ErrRender,
			"The demo needs a terminal",
			"Run it from an interactive shell, or use 'popkit place' for headless output.")
	}

	log, closeLog, err := demoLogger(name)
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := newDemoModel(name, cfg, log)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender, "Demo failed", "Try a larger terminal or run with --verbose --log-file.")
	}
	return nil
}

// demoLogger returns a logger that does not write to the terminal the
// program owns.
func demoLogger(name string) (logger.Logger, func(), error) {
	if demoLogFile == "" {
		return logger.Noop(), func() {}, nil
	}
	f, err := os.OpenFile(demoLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't open the log file", "Check that the directory exists and is writable.")
	}
	log := logger.NewEnvLoggerTo(f, name)
	logger.SetDefault(log)
	return log, func() { f.Close() }, nil
}

// Demo screen layout, in cells.
const (
	demoWidgetRow  = 3
	demoIndent     = 2
	demoTriggerW   = 24
	demoInitWidth  = 80
	demoInitHeight = 24
)

type demoKeyMap struct {
	widget []key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newDemoKeyMap(widget []key.Binding) demoKeyMap {
	return demoKeyMap{
		widget: widget,
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k demoKeyMap) ShortHelp() []key.Binding {
	out := append([]key.Binding(nil), k.widget...)
	return append(out, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k demoKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.widget, {k.Help, k.Quit}}
}

// demoModel hosts one widget on a layout tree, with a toast container
// on top.
type demoModel struct {
	name   string
	log    logger.Logger
	tree   *overlay.Tree
	widget demoWidget
	reg    *notify.Registry
	toasts *notify.Container
	keys   demoKeyMap
	help   help.Model

	width, height int
	status        string
}

func newDemoModel(name string, cfg *config.Config, log logger.Logger) (*demoModel, error) {
	log = logger.OrDefault(log)
	tree := overlay.NewTree(overlay.Rect{W: demoInitWidth, H: demoInitHeight})
	trigger := tree.Add(tree.Root(), overlay.NodeSpec{
		Name: "trigger",
		Rect: overlay.Rect{X: demoIndent, Y: demoWidgetRow, W: demoTriggerW, H: 1},
	})

	reg := notify.NewRegistry()
	toasts := notify.NewContainer(reg,
		notify.WithKind(notify.Kind(cfg.Notify.Kind)),
		notify.WithTimeout(cfg.Notify.Timeout),
		notify.WithWidth(cfg.Notify.Width),
		notify.WithLogger(log),
	)
	toasts.SetOrigin(overlay.Point{X: demoIndent + demoTriggerW + 2, Y: demoWidgetRow})
	toasts.SetViewport(overlay.Size{W: demoInitWidth, H: demoInitHeight})

	m := &demoModel{
		name:   name,
		log:    log,
		tree:   tree,
		reg:    reg,
		toasts: toasts,
		help:   help.New(),
		width:  demoInitWidth,
		height: demoInitHeight,
	}

	env := demoEnv{cfg: cfg, tree: tree, trigger: trigger, log: log, reg: reg, setStatus: m.setStatus}
	widget, keys, err := buildDemoWidget(name, env)
	if err != nil {
		reg.Close()
		return nil, err
	}
	m.widget = widget
	m.keys = newDemoKeyMap(keys)
	return m, nil
}

func (m *demoModel) setStatus(s string) { m.status = s }

// Init implements tea.Model.
func (m *demoModel) Init() tea.Cmd {
	return tea.Batch(m.widget.Mount(), m.toasts.Init())
}

// Update implements tea.Model.
func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.tree.SetViewport(overlay.Rect{W: msg.Width, H: msg.Height})
		m.help.Width = msg.Width
		m.log.Debug("demo %s resized to %dx%d", m.name, msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		return m, m.widget.Update(msg)
	}

	return m, tea.Batch(m.toasts.Update(msg), m.widget.Update(msg))
}

// View implements tea.Model.
func (m *demoModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorSecondary).Render("popkit " + m.name)
	lines := make([]string, 0, m.height)
	lines = append(lines, " "+title)

	status := ""
	if m.status != "" {
		status = ui.MutedStyle().Render(ui.SymbolPointer + " " + m.status)
	}
	lines = append(lines, " "+status)
	for len(lines) < demoWidgetRow {
		lines = append(lines, "")
	}

	indent := strings.Repeat(" ", demoIndent)
	for _, l := range ui.SplitLines(m.widget.View()) {
		lines = append(lines, indent+l)
	}

	helpLines := ui.SplitLines(m.help.View(m.keys))
	for len(lines) < m.height-len(helpLines) {
		lines = append(lines, "")
	}
	lines = append(lines, helpLines...)

	base := strings.Join(lines, "\n")
	base = m.widget.Overlay(base)
	return m.toasts.Overlay(base)
}

// Close releases the widget and stops the toast container.
func (m *demoModel) Close() {
	m.widget.Unmount()
	m.toasts.Close()
	m.reg.Close()
}

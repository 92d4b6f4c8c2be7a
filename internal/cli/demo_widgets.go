package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/popkit/internal/bulkselect"
	"github.com/rileyhilliard/popkit/internal/config"
	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/rileyhilliard/popkit/internal/listnav"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/notify"
	"github.com/rileyhilliard/popkit/internal/outside"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/rileyhilliard/popkit/internal/ui"
	"github.com/rileyhilliard/popkit/internal/widgets"
)

// demoWidget is what the demo host drives. Dropdown and PopoverMenu
// satisfy it directly.
type demoWidget interface {
	Mount() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	Overlay(base string) string
	Unmount()
}

// demoEnv is what a widget builder gets from the host.
type demoEnv struct {
	cfg       *config.Config
	tree      *overlay.Tree
	trigger   overlay.Handle
	log       logger.Logger
	reg       *notify.Registry
	setStatus func(string)
}

func (e demoEnv) announce(title, message string) {
	e.setStatus(title + ": " + message)
	e.reg.Publish(notify.Success(title, message))
}

func buildDemoWidget(name string, env demoEnv) (demoWidget, []key.Binding, error) {
	switch name {
	case "dropdown":
		return newDropdownDemo(env)
	case "select":
		return newSelectDemo(env), selectKeys(), nil
	case "menu":
		return newMenuDemo(env)
	case "popover":
		return newPopoverDemo(env)
	case "notify":
		return newNotifyDemo(env), notifyKeys(), nil
	case "table":
		return newTableDemo(env), bulkselect.DefaultTableKeyMap().ShortHelp(), nil
	}
	return nil, nil, errors.New(errors.ErrOption, fmt.Sprintf("Unknown widget '%s'", name), "")
}

func fruitOptions() []listnav.Option {
	return []listnav.Option{
		{ID: "apple", Value: "Apple"},
		{ID: "banana", Value: "Banana"},
		{ID: "cherry", Value: "Cherry"},
		{ID: "sep", Value: listnav.Divider},
		{ID: "durian", Value: "Durian", Disabled: true},
		{ID: "elderberry", Value: "Elderberry"},
		{ID: "fig", Value: "Fig"},
		{ID: "grape", Value: "Grape"},
	}
}

func listKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/select")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func newDropdownDemo(env demoEnv) (demoWidget, []key.Binding, error) {
	opts, err := env.cfg.Popover.PopoverOptions()
	if err != nil {
		return nil, nil, err
	}
	d := widgets.NewDropdown(env.tree, env.trigger, widgets.DropdownProps{
		Options:           fruitOptions(),
		InitialSelectedID: listnav.ID("banana").Ptr(),
		Placeholder:       "Pick a fruit",
		Popover:           opts,
		MaxRows:           env.cfg.Dropdown.MaxRows,
		MinWidth:          env.cfg.Dropdown.MinWidth,
		MaxWidth:          env.cfg.Dropdown.MaxWidth,
		OnSelect: func(o listnav.Option) {
			env.announce("Selected", o.Value)
		},
		OnClickOutside: func() { env.setStatus("clicked outside") },
	}, widgets.WithLogger(env.log))
	return d, listKeys(), nil
}

// selectDemo adapts Select, which renders its list inline and needs no
// mounting.
type selectDemo struct {
	*widgets.Select
}

func newSelectDemo(env demoEnv) *selectDemo {
	closeOnSelect := env.cfg.Dropdown.CloseOnSelect
	s := widgets.NewSelect(widgets.SelectProps{
		Options:       fruitOptions(),
		Placeholder:   "Type a fruit",
		CloseOnSelect: &closeOnSelect,
		MaxRows:       env.cfg.Dropdown.MaxRows,
		OnSelect: func(o listnav.Option) {
			env.announce("Selected", o.Value)
		},
		OnChange: func(v string) { env.setStatus("typed " + v) },
	}, widgets.WithLogger(env.log))
	s.SetOrigin(overlay.Point{X: demoIndent, Y: demoWidgetRow})
	return &selectDemo{Select: s}
}

func selectKeys() []key.Binding {
	return append([]key.Binding{
		key.NewBinding(key.WithKeys("a-z"), key.WithHelp("type", "filter")),
	}, listKeys()...)
}

func (s *selectDemo) Mount() tea.Cmd { return s.Focus() }
func (s *selectDemo) Overlay(base string) string { return base }
func (s *selectDemo) Unmount() { s.Blur() }

func newMenuDemo(env demoEnv) (demoWidget, []key.Binding, error) {
	placement, err := overlay.ParsePlacement(env.cfg.Popover.Placement)
	if err != nil {
		return nil, nil, err
	}
	action := func(name string) func() {
		return func() { env.announce("Action", name) }
	}
	showArrow := env.cfg.Dropdown.ShowArrow
	m := widgets.NewPopoverMenu(env.tree, env.trigger, widgets.PopoverMenuProps{
		Items: []widgets.MenuEntry{
			widgets.MenuItem{Text: "Rename", Subtitle: "F2", OnClick: action("Rename")},
			widgets.MenuItem{Text: "Duplicate", OnClick: action("Duplicate")},
			widgets.MenuItem{Text: "Share", Prefix: ui.SymbolPointer, OnClick: action("Share")},
			widgets.MenuDivider{},
			widgets.MenuItem{Text: "Archive", Disabled: true},
			widgets.MenuItem{Text: "Delete", Skin: widgets.SkinDestructive, OnClick: action("Delete")},
		},
		TriggerLabel: "Actions " + ui.SymbolCaret,
		Placement:    placement,
		ShowArrow:    &showArrow,
		MaxRows:      env.cfg.Dropdown.MaxRows,
	}, widgets.WithLogger(env.log))

	return m, []key.Binding{
		key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open/run")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "focus")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}, nil
}

// popoverDemo is a bare popover anchored to a button, closed by clicking
// anywhere else.
type popoverDemo struct {
	popover  *overlay.Popover
	detector *outside.Detector
	content  string
	env      demoEnv
}

func newPopoverDemo(env demoEnv) (demoWidget, []key.Binding, error) {
	opts, err := env.cfg.Popover.PopoverOptions()
	if err != nil {
		return nil, nil, err
	}

	content := ui.PanelStyle().Padding(0, 1).Render(
		lipgloss.NewStyle().Bold(true).Render("Placement") + "\n" +
			ui.MutedStyle().Render(fmt.Sprintf("%s, flip %t, fixed %t", opts.Placement, opts.FlipEnabled(), opts.Fixed)) + "\n" +
			ui.MutedStyle().Render("Click outside or press esc to close"),
	)
	opts.ContentSize = overlay.Size{W: lipgloss.Width(content), H: lipgloss.Height(content)}

	d := &popoverDemo{content: content, env: env}
	d.popover = overlay.New(env.tree, env.trigger, opts,
		overlay.WithLogger(env.log),
		overlay.WithOnShownChange(func(shown bool) {
			if shown {
				env.setStatus("popover shown")
			} else {
				env.setStatus("popover hidden")
			}
		}),
	)
	d.detector = outside.ForPopover(d.popover, func() {
		d.env.setStatus("clicked outside")
	})

	return d, []key.Binding{
		key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}, nil
}

func (d *popoverDemo) Mount() tea.Cmd { return d.popover.Mount() }

func (d *popoverDemo) toggle() tea.Cmd {
	if d.popover.Shown() {
		return d.popover.Hide()
	}
	return d.popover.Show()
}

func (d *popoverDemo) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch outside.FromKeyMsg(msg).Key {
		case outside.KeyEnter, outside.KeySpace:
			return d.toggle()
		case outside.KeyEscape:
			return d.popover.Hide()
		}
		return nil

	case tea.MouseMsg:
		pt, ok := outside.FromMouse(msg)
		if !ok {
			return nil
		}
		if r, ok := d.popover.Tree().Rect(d.popover.Reference()); ok && r.Contains(pt) {
			return d.toggle()
		}
		if d.detector.HandlePress(pt) {
			return d.popover.Hide()
		}
		return nil
	}
	return d.popover.Update(msg)
}

func (d *popoverDemo) View() string {
	return widgets.AsButton().Render(widgets.RenderProps{Label: "Details"})
}

func (d *popoverDemo) Overlay(base string) string { return d.popover.Render(base, d.content) }

func (d *popoverDemo) Unmount() { d.popover.Unmount() }

// notifyDemo publishes a toast per key press.
type notifyDemo struct {
	env  demoEnv
	sent int
}

func newNotifyDemo(env demoEnv) *notifyDemo { return &notifyDemo{env: env} }

func notifyKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "success")),
		key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warning")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "sticky")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
	}
}

func (d *notifyDemo) Mount() tea.Cmd { return nil }

func (d *notifyDemo) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	var n notify.Notification
	switch k.String() {
	case "s":
		n = notify.Success("Saved", "Your changes are stored.")
	case "w":
		n = notify.Warning("Low disk space", "Less than 1 GB left.")
	case "e":
		n = notify.Error("Upload failed", "The server closed the connection.")
	case "i":
		n = notify.New(notify.TypeInfo, "Heads up", "A new version is available.")
	case "p":
		n = notify.New(notify.TypeStandard, "Pinned", "Click to dismiss.")
		n.Timeout = -1
	case "x":
		for _, active := range d.env.reg.Active() {
			d.env.reg.Remove(active.ID)
		}
		d.env.setStatus("cleared")
		return nil
	default:
		return nil
	}

	d.sent++
	title := n.Title
	n.OnClick = func() { d.env.setStatus("clicked " + title) }
	d.env.reg.Publish(n)
	d.env.setStatus(fmt.Sprintf("sent %d", d.sent))
	return nil
}

func (d *notifyDemo) View() string {
	return ui.MutedStyle().Render("Press a key to send a notification. Click one to dismiss it.")
}

func (d *notifyDemo) Overlay(base string) string { return base }
func (d *notifyDemo) Unmount() {}

// tableDemo pages a fake file listing into a bulk-select table.
type tableDemo struct {
	table    *bulkselect.Table
	pageSize int
	total    int
	loaded   int
}

const tableDemoPages = 3

func newTableDemo(env demoEnv) *tableDemo {
	d := &tableDemo{
		pageSize: env.cfg.Table.PageSize,
		total:    env.cfg.Table.PageSize * tableDemoPages,
	}

	first := d.page()
	d.table = bulkselect.NewTable(bulkselect.TableConfig{
		Columns: []ui.TableColumn{
			{Title: "Name", Width: 18},
			{Title: "Size", Width: 8},
			{Title: "Owner", Width: 10},
		},
		Rows:                  first,
		TotalCount:            d.total,
		HasMore:               d.loaded < d.total,
		DeselectRowsByDefault: env.cfg.Table.DeselectRowsByDefault,
		Height:                env.cfg.Table.Height,
		OnSelectionChanged: func(selected []string, change *bulkselect.Change) {
			if change != nil && change.Type != bulkselect.ChangeSingleToggle {
				env.setStatus("bulk toggle")
				return
			}
			env.setStatus(fmt.Sprintf("%d ids tracked", len(selected)))
		},
		LoadMore: d.loadMore,
	}, bulkselect.WithTableLogger(env.log))
	return d
}

var owners = []string{"ana", "bo", "chen", "dee"}

// page returns the next page of rows and advances the cursor.
func (d *tableDemo) page() []bulkselect.Row {
	n := min(d.pageSize, d.total-d.loaded)
	rows := make([]bulkselect.Row, n)
	for i := range rows {
		idx := d.loaded + i
		rows[i] = bulkselect.Row{
			ID: fmt.Sprintf("f%03d", idx+1),
			Cells: []string{
				fmt.Sprintf("report-%03d.csv", idx+1),
				fmt.Sprintf("%d KB", (idx*37)%900+12),
				owners[idx%len(owners)],
			},
		}
	}
	d.loaded += n
	return rows
}

func (d *tableDemo) loadMore() tea.Cmd {
	rows := d.page()
	hasMore := d.loaded < d.total
	return tea.Tick(400*time.Millisecond, func(time.Time) tea.Msg {
		return bulkselect.PageMsg{Rows: rows, HasMore: hasMore}
	})
}

func (d *tableDemo) Mount() tea.Cmd { return d.table.Init() }
func (d *tableDemo) Update(msg tea.Msg) tea.Cmd { return d.table.Update(msg) }
func (d *tableDemo) View() string { return d.table.View() }
func (d *tableDemo) Overlay(base string) string { return base }
func (d *tableDemo) Unmount() {}

package widgets

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/rileyhilliard/popkit/internal/listnav"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/outside"
	"github.com/rileyhilliard/popkit/internal/overlay"
)

// dropdownReclick is how long a freshly opened dropdown ignores a second
// click on its input.
const dropdownReclick = 200 * time.Millisecond

// DefaultValueParser displays an option's Value.
func DefaultValueParser(o listnav.Option) string { return o.Value }

// DropdownProps configure a Dropdown.
type DropdownProps struct {
	Options []listnav.Option
	// SelectedID makes the selection controlled. It cannot be combined
	// with InitialSelectedID.
	SelectedID        *listnav.ID
	InitialSelectedID *listnav.ID
	// ValueParser maps the selected option to the input text.
	ValueParser func(listnav.Option) string

	OnSelect       func(option listnav.Option)
	OnClickOutside func()

	Placeholder string
	Size        Size
	Disabled    bool
	// Status is "", "error", "warning" or "loading".
	Status string

	Popover  overlay.Options
	MaxRows  int
	MinWidth int
	MaxWidth int
}

func (p DropdownProps) parse(o listnav.Option) string {
	if p.ValueParser != nil {
		return p.ValueParser(o)
	}
	return DefaultValueParser(o)
}

// ValidateDropdownProps reports prop combinations a Dropdown rejects.
func ValidateDropdownProps(p DropdownProps) error {
	var errs []error
	if p.SelectedID != nil && p.InitialSelectedID != nil {
		errs = append(errs, errors.NewPropConflict("Dropdown", "selectedId", "initialSelectedId"))
	}
	if err := listnav.ValidateOptions(p.Options); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Dropdown is a read-only input that opens a list of options and shows the
// selected one.
type Dropdown struct {
	props DropdownProps
	log   logger.Logger

	value      string
	selectedID *listnav.ID

	input    InputAffix
	base     *DropdownBase
	lastShow time.Time
	now      func() time.Time

	cmds []tea.Cmd
}

// NewDropdown creates a dropdown whose input is the trigger node.
func NewDropdown(tree *overlay.Tree, trigger overlay.Handle, props DropdownProps, opts ...WidgetOption) *Dropdown {
	o := resolveOptions(opts)
	d := &Dropdown{
		props: props,
		log:   o.log,
		input: NewInputAffix(props.Placeholder),
		now:   time.Now,
	}
	d.input.ReadOnly = true
	d.warnInvalid()

	initial := props.SelectedID
	if initial == nil {
		initial = props.InitialSelectedID
	}
	d.derive(initial)

	d.base = NewDropdownBase(tree, trigger, d.baseProps(), WithLogger(d.log))
	return d
}

func (d *Dropdown) warnInvalid() {
	if err := ValidateDropdownProps(d.props); err != nil {
		d.log.Warn("dropdown props: %v", err)
	}
}

// derive recomputes the displayed value for id. An id with no matching
// option clears both.
func (d *Dropdown) derive(id *listnav.ID) {
	d.value = ""
	d.selectedID = nil
	if id != nil {
		if o, ok := listnav.Find(d.props.Options, *id); ok {
			d.value = d.props.parse(o)
			d.selectedID = copyID(id)
		}
	}
	d.syncInput()
}

func (d *Dropdown) syncInput() {
	d.input.SetValue(d.value)
	d.input.Size = d.props.Size
	d.input.Disabled = d.props.Disabled
	d.input.Suffix = AffixFunc(func(ctx AffixContext) string {
		caret := CaretSuffix().RenderAffix(ctx)
		if s := StatusSuffix(d.props.Status).RenderAffix(ctx); s != "" {
			return s + " " + caret
		}
		return caret
	})
}

func (d *Dropdown) controlled() bool { return d.props.SelectedID != nil }

// SelectedID returns the selected id, from props when controlled.
func (d *Dropdown) SelectedID() *listnav.ID {
	if d.controlled() {
		return copyID(d.props.SelectedID)
	}
	return copyID(d.selectedID)
}

// Value is the text shown in the input.
func (d *Dropdown) Value() string { return d.value }

// Base exposes the underlying dropdown.
func (d *Dropdown) Base() *DropdownBase { return d.base }

func (d *Dropdown) baseProps() DropdownBaseProps {
	return DropdownBaseProps{
		Options:        d.props.Options,
		SelectedID:     d.SelectedID(),
		OnSelect:       d.handleSelect,
		OnClickOutside: d.props.OnClickOutside,
		Popover:        d.props.Popover,
		MaxRows:        d.props.MaxRows,
		MinWidth:       d.props.MinWidth,
		MaxWidth:       d.props.MaxWidth,
		Children:       func(TriggerAPI) string { return d.input.View() },
	}
}

// SetProps applies new props. A changed SelectedID or option set
// re-derives the displayed value.
func (d *Dropdown) SetProps(next DropdownProps) tea.Cmd {
	prev := d.props
	d.props = next

	if !sameID(prev.SelectedID, next.SelectedID) || !sameOptionSet(prev.Options, next.Options) {
		d.warnInvalid()
		id := d.selectedID
		if d.controlled() {
			id = next.SelectedID
		}
		d.derive(id)
	} else {
		d.syncInput()
	}

	d.queue(d.base.SetProps(d.baseProps()))
	return d.flush()
}

func (d *Dropdown) handleSelect(option listnav.Option) {
	if !d.controlled() {
		id := option.ID
		d.selectedID = &id
		d.value = d.props.parse(option)
		d.syncInput()
	}
	d.queue(d.base.SetProps(d.baseProps()))

	if d.props.OnSelect != nil {
		d.props.OnSelect(option)
	}
}

// Mount attaches the list popover.
func (d *Dropdown) Mount() tea.Cmd { return d.base.Mount() }

// Unmount releases the list popover.
func (d *Dropdown) Unmount() { d.base.Unmount() }

// Click toggles the list from the input. A click right after opening keeps
// it open.
func (d *Dropdown) Click() tea.Cmd {
	if d.props.Disabled {
		return nil
	}
	if d.base.IsOpen() && d.now().Sub(d.lastShow) > dropdownReclick {
		d.queue(d.base.Close())
	} else if !d.base.IsOpen() {
		d.lastShow = d.now()
		d.queue(d.base.Open())
	}
	return d.flush()
}

// Update routes input to the list and handles clicks on the input.
func (d *Dropdown) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if d.props.Disabled {
			return nil
		}
		wasOpen := d.base.IsOpen()
		d.queue(d.base.Update(msg))
		if !wasOpen && d.base.IsOpen() {
			d.lastShow = d.now()
		}
	case tea.MouseMsg:
		if pt, ok := outside.FromMouse(msg); ok && msg.Button == tea.MouseButtonLeft && d.base.HitsTrigger(pt) {
			d.queue(d.Click())
		}
		d.queue(d.base.Update(msg))
	default:
		d.queue(d.base.Update(msg))
	}
	return d.flush()
}

// View renders the input.
func (d *Dropdown) View() string { return d.base.View() }

// Overlay draws the open list over base.
func (d *Dropdown) Overlay(base string) string { return d.base.Overlay(base) }

func (d *Dropdown) queue(cmd tea.Cmd) {
	if cmd != nil {
		d.cmds = append(d.cmds, cmd)
	}
}

func (d *Dropdown) flush() tea.Cmd {
	cmds := d.cmds
	d.cmds = nil
	return tea.Batch(cmds...)
}

// sameOptionSet compares option lists ignoring order.
func sameOptionSet(a, b []listnav.Option) bool {
	if len(a) != len(b) {
		return false
	}
	key := func(opts []listnav.Option) []listnav.Option {
		out := make([]listnav.Option, len(opts))
		copy(out, opts)
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return out
	}
	sa, sb := key(a), key(b)
	for i := range sa {
		x, y := sa[i], sb[i]
		if x.ID != y.ID || x.Value != y.Value || x.Disabled != y.Disabled || x.Title != y.Title {
			return false
		}
	}
	return true
}

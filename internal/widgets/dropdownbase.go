package widgets

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/popkit/internal/listnav"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/outside"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/rileyhilliard/popkit/internal/ui"
)

// TriggerAPI is handed to the function that renders a dropdown trigger.
type TriggerAPI struct {
	Open  func()
	Close func()
	// CloseOnMouseLeave closes once the pointer has left the trigger and
	// the panel, not when it merely moves from one to the other.
	CloseOnMouseLeave func()
	Toggle            func()
	IsOpen            bool
	// DelegateKeyDown passes a key to the open list and reports whether it
	// was handled.
	DelegateKeyDown func(e *outside.KeyEvent) bool
	SelectedOption  *listnav.Option
}

// DropdownBaseProps configure a DropdownBase.
type DropdownBaseProps struct {
	Options []listnav.Option

	// Open makes visibility controlled when non-nil.
	Open *bool
	// SelectedID together with OnSelect makes the selection controlled.
	SelectedID *listnav.ID
	// InitialSelectedID seeds an uncontrolled selection.
	InitialSelectedID *listnav.ID

	OnSelect       func(option listnav.Option)
	OnOptionMarked func(option *listnav.Option)
	OnClickOutside func()
	OnMouseEnter   func()
	OnMouseLeave   func()

	Popover   overlay.Options
	MinWidth  int
	MaxWidth  int
	MaxRows   int
	ShowArrow bool
	Header    string
	Footer    string
	// OpenKeys defaults to Enter, Space and ArrowDown.
	OpenKeys []outside.Key

	// Children renders the trigger.
	Children func(api TriggerAPI) string
}

// WidgetOption customizes a widget.
type WidgetOption func(*widgetOptions)

type widgetOptions struct {
	log logger.Logger
}

// WithLogger sets the logger for prop warnings and debug traces.
func WithLogger(l logger.Logger) WidgetOption {
	return func(o *widgetOptions) { o.log = l }
}

func resolveOptions(opts []WidgetOption) widgetOptions {
	var o widgetOptions
	for _, fn := range opts {
		fn(&o)
	}
	o.log = logger.OrDefault(o.log)
	return o
}

// DropdownBase joins a trigger, a popover and a navigable list. Visibility
// and selection can each be owned by the caller or by the widget.
type DropdownBase struct {
	props DropdownBaseProps
	log   logger.Logger

	open         bool
	selectedID   *listnav.ID
	closeOnLeave bool
	hovering     bool

	tree     *overlay.Tree
	trigger  overlay.Handle
	popover  *overlay.Popover
	layout   *listnav.Layout
	list     listnav.Model
	detector *outside.Detector

	cmds []tea.Cmd
}

// NewDropdownBase creates a dropdown anchored to the trigger node. Call
// Mount before routing messages to it.
func NewDropdownBase(tree *overlay.Tree, trigger overlay.Handle, props DropdownBaseProps, opts ...WidgetOption) *DropdownBase {
	o := resolveOptions(opts)
	d := &DropdownBase{
		props:   props,
		log:     o.log,
		tree:    tree,
		trigger: trigger,
	}

	d.open = props.Open != nil && *props.Open
	switch {
	case props.SelectedID != nil:
		d.selectedID = copyID(props.SelectedID)
	case props.InitialSelectedID != nil:
		d.selectedID = copyID(props.InitialSelectedID)
	}

	popOpts := props.Popover
	popOpts.Shown = d.open
	d.popover = overlay.New(tree, trigger, popOpts, overlay.WithLogger(d.log))

	d.layout = listnav.New(d.layoutProps(), listnav.WithLogger(d.log))
	d.list = listnav.NewModel(d.layout)
	d.configureList()
	d.detector = outside.ForPopover(d.popover, d.handleClickOutside)
	return d
}

func (d *DropdownBase) layoutProps() listnav.Props {
	return listnav.Props{
		Options:        d.props.Options,
		SelectedID:     d.selectedID,
		Controlled:     true,
		OnSelect:       d.handleSelect,
		OnOptionMarked: d.props.OnOptionMarked,
		OnClose:        d.handleClose,
		Visible:        d.open,
	}
}

func (d *DropdownBase) configureList() {
	if d.props.MaxRows > 0 {
		d.list.MaxRows = d.props.MaxRows
	}
	d.list.MinWidth = d.props.MinWidth
	d.list.MaxWidth = d.props.MaxWidth
	d.list.WithArrow = d.props.ShowArrow
	d.list.Header = d.props.Header
	d.list.Footer = d.props.Footer
}

// Mount attaches the popover to the tree.
func (d *DropdownBase) Mount() tea.Cmd {
	d.sync()
	d.queue(d.popover.Mount())
	if d.popover.Shown() != d.open {
		d.queue(d.popover.SetShown(d.open))
	}
	return d.flush()
}

// Unmount releases the popover. No state changes after this.
func (d *DropdownBase) Unmount() {
	d.popover.Unmount()
	d.cmds = nil
}

// SetProps applies new props. Controlled visibility and selection follow
// the new values.
func (d *DropdownBase) SetProps(next DropdownBaseProps) tea.Cmd {
	prev := d.props
	d.props = next

	if next.Open != nil && (prev.Open == nil || *prev.Open != *next.Open) {
		d.setOpen(*next.Open)
	}
	if d.controllingSelection() && !sameID(prev.SelectedID, next.SelectedID) {
		d.selectedID = copyID(next.SelectedID)
	}

	d.configureList()
	d.queue(d.popover.SetOptions(next.Popover))
	d.sync()
	return d.flush()
}

// Props returns the current props.
func (d *DropdownBase) Props() DropdownBaseProps { return d.props }

func (d *DropdownBase) controllingOpen() bool { return d.props.Open != nil }

func (d *DropdownBase) controllingSelection() bool {
	return d.props.SelectedID != nil && d.props.OnSelect != nil
}

// IsOpen reports whether the list is shown.
func (d *DropdownBase) IsOpen() bool { return d.open }

// SelectedID returns the committed id, or nil.
func (d *DropdownBase) SelectedID() *listnav.ID { return copyID(d.selectedID) }

// SelectedOption returns the option matching the committed id.
func (d *DropdownBase) SelectedOption() *listnav.Option {
	if d.selectedID == nil {
		return nil
	}
	if o, ok := listnav.Find(d.props.Options, *d.selectedID); ok {
		return &o
	}
	return nil
}

// Popover exposes the positioned panel.
func (d *DropdownBase) Popover() *overlay.Popover { return d.popover }

// Layout exposes the list state machine.
func (d *DropdownBase) Layout() *listnav.Layout { return d.layout }

// List exposes the list renderer for styling.
func (d *DropdownBase) List() *listnav.Model { return &d.list }

// API builds the trigger callbacks.
func (d *DropdownBase) API() TriggerAPI {
	return TriggerAPI{
		Open:              d.requestOpen,
		Close:             d.requestClose,
		CloseOnMouseLeave: d.requestCloseOnMouseLeave,
		Toggle:            d.requestToggle,
		IsOpen:            d.open,
		DelegateKeyDown:   d.delegateKeyDown,
		SelectedOption:    d.SelectedOption(),
	}
}

// Open shows the list unless visibility is controlled.
func (d *DropdownBase) Open() tea.Cmd {
	d.requestOpen()
	return d.flush()
}

// Close hides the list unless visibility is controlled.
func (d *DropdownBase) Close() tea.Cmd {
	d.requestClose()
	return d.flush()
}

// Toggle flips visibility unless it is controlled.
func (d *DropdownBase) Toggle() tea.Cmd {
	d.requestToggle()
	return d.flush()
}

func (d *DropdownBase) requestOpen() {
	if !d.controllingOpen() {
		d.setOpen(true)
	}
}

func (d *DropdownBase) requestClose() {
	if !d.controllingOpen() {
		d.setOpen(false)
	}
}

func (d *DropdownBase) requestCloseOnMouseLeave() {
	if !d.controllingOpen() {
		d.closeOnLeave = true
	}
}

func (d *DropdownBase) requestToggle() {
	if !d.controllingOpen() {
		d.setOpen(!d.open)
	}
}

func (d *DropdownBase) setOpen(v bool) {
	if d.open == v {
		return
	}
	d.open = v
	d.sync()
	if v {
		d.list.FocusOnSelected()
	}
	d.queue(d.popover.SetShown(v))
}

// sync pushes the widget state into the list and measures it.
func (d *DropdownBase) sync() {
	d.layout.SetProps(d.layoutProps())
	d.queue(d.popover.SetContentSize(d.list.Size()))
}

func (d *DropdownBase) handleSelect(option listnav.Option, _ bool) {
	if !d.controllingOpen() {
		d.open = false
		d.queue(d.popover.SetShown(false))
	}
	if !d.controllingSelection() {
		id := option.ID
		d.selectedID = &id
	}
	d.sync()

	if d.props.OnSelect != nil {
		d.props.OnSelect(option)
	}
}

func (d *DropdownBase) handleClose() {
	if d.open {
		d.requestClose()
	}
}

func (d *DropdownBase) handleClickOutside() {
	d.requestClose()
	if d.props.OnClickOutside != nil {
		d.props.OnClickOutside()
	}
}

func (d *DropdownBase) handlePanelMouseLeave() {
	if d.closeOnLeave {
		d.closeOnLeave = false
		d.setOpen(false)
	}
	if d.props.OnMouseLeave != nil {
		d.props.OnMouseLeave()
	}
}

// HandleKey is the trigger's key handler: keys go to the open list first,
// and open keys the list leaves alone open it. It does nothing while
// visibility is controlled.
func (d *DropdownBase) HandleKey(e *outside.KeyEvent) bool {
	if d.controllingOpen() {
		return false
	}
	handled := outside.Delegator{
		Target:   outside.KeyHandlerFunc(d.delegateKeyDown),
		OpenKeys: d.props.OpenKeys,
		IsOpen:   d.IsOpen,
		Open:     d.requestOpen,
	}.HandleKey(e)
	return handled
}

func (d *DropdownBase) delegateKeyDown(e *outside.KeyEvent) bool {
	if !d.open {
		return false
	}
	handled := d.layout.HandleKey(e)
	d.list.Follow()
	return handled
}

// HitsTrigger reports whether pt is on the trigger node.
func (d *DropdownBase) HitsTrigger(pt overlay.Point) bool {
	r, ok := d.tree.Rect(d.trigger)
	return ok && r.Contains(pt)
}

func (d *DropdownBase) hitsPanel(pt overlay.Point) bool {
	h, ok := d.popover.ContentNode()
	if !ok {
		return false
	}
	r, ok := d.tree.Rect(h)
	return ok && r.Contains(pt)
}

// Update routes keys, pointer events and popover messages.
func (d *DropdownBase) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		d.HandleKey(outside.FromKeyMsg(msg))
	case tea.MouseMsg:
		d.handleMouse(msg)
	default:
		d.queue(d.popover.Update(msg))
	}
	d.placeList()
	return d.flush()
}

func (d *DropdownBase) handleMouse(msg tea.MouseMsg) {
	d.detector.HandleMouse(msg)

	if pt, ok := outside.FromMotion(msg); ok {
		inside := d.HitsTrigger(pt) || d.hitsPanel(pt)
		switch {
		case inside && !d.hovering:
			d.hovering = true
			if d.props.OnMouseEnter != nil {
				d.props.OnMouseEnter()
			}
		case !inside && d.hovering:
			d.hovering = false
			d.handlePanelMouseLeave()
		}
	}

	// Rows only take pointer input once the panel has been positioned.
	if _, ok := d.popover.ContentNode(); ok && d.open {
		d.placeList()
		d.list, _ = d.list.Update(msg)
	}
}

// placeList keeps the list's pointer mapping and arrow side in line with
// the resolved position.
func (d *DropdownBase) placeList() {
	if !d.popover.Shown() {
		return
	}
	pos := d.popover.Position()
	d.list.SetOrigin(overlay.Point{X: pos.Rect.X, Y: pos.Rect.Y})
	d.list.DropDirectionUp = pos.Placement.Side == overlay.SideTop
}

// View renders the trigger.
func (d *DropdownBase) View() string {
	if d.props.Children == nil {
		return ""
	}
	return d.props.Children(d.API())
}

// PanelView renders the list, or "" while closed.
func (d *DropdownBase) PanelView() string { return d.list.View() }

// Layer returns the open panel as a compositing layer.
func (d *DropdownBase) Layer() (ui.Layer, bool) {
	return d.popover.Layer(d.list.View())
}

// Overlay draws the open panel over base.
func (d *DropdownBase) Overlay(base string) string {
	return d.popover.Render(base, d.list.View())
}

func (d *DropdownBase) queue(cmd tea.Cmd) {
	if cmd != nil {
		d.cmds = append(d.cmds, cmd)
	}
}

func (d *DropdownBase) flush() tea.Cmd {
	cmds := d.cmds
	d.cmds = nil
	return tea.Batch(cmds...)
}

func copyID(id *listnav.ID) *listnav.ID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func sameID(a, b *listnav.ID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

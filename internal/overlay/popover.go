package overlay

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/ui"
	"go.uber.org/atomic"
)

// PanelClass tags every floating panel node. Clicks landing on a node with
// this class do not count as outside clicks unless a different exclude
// class is configured.
const PanelClass = "popover"

// DefaultZIndex matches the stacking order used when none is configured.
const DefaultZIndex = 1000

// Options are the popover props.
type Options struct {
	Placement Placement
	// Flip defaults to true, or to false when MoveBy is set.
	Flip   *bool
	Fixed  bool
	MoveBy *Offset
	Sizing Sizing
	ZIndex int

	ShowDelay time.Duration
	HideDelay time.Duration

	AppendTo AppendTo

	// ClickOutsideWhenClosed keeps outside-click detection running while the
	// panel is hidden. It is off by default.
	ClickOutsideWhenClosed bool
	// ExcludeClass overrides PanelClass for click-outside filtering.
	ExcludeClass string

	// Shown is the initial visibility.
	Shown bool
	// ContentSize is the measured size of the panel content.
	ContentSize Size
}

// FlipEnabled resolves the Flip default.
func (o Options) FlipEnabled() bool {
	if o.Flip != nil {
		return *o.Flip
	}
	return o.MoveBy == nil
}

// OutsideExcludeClass is the class that shields nodes from outside clicks.
func (o Options) OutsideExcludeClass() string {
	if o.ExcludeClass != "" {
		return o.ExcludeClass
	}
	return PanelClass
}

func (o Options) constraints() Constraints {
	c := Constraints{
		Placement: o.Placement,
		Flip:      o.FlipEnabled(),
		Fixed:     o.Fixed,
		Sizing:    o.Sizing,
	}
	if o.MoveBy != nil {
		c.MoveBy = *o.MoveBy
	}
	return c
}

// Bool returns a pointer to b, for optional flags like Options.Flip.
func Bool(b bool) *bool { return &b }

type timerKind int

const (
	showTimer timerKind = iota
	hideTimer
)

// timerMsg fires when a show or hide delay elapses. seq identifies the
// timer generation; cancelled generations are ignored.
type timerMsg struct {
	popover int64
	kind    timerKind
	seq     int
}

// RepositionMsg asks a popover to recompute its position.
type RepositionMsg struct {
	popover int64
}

var popoverIDs atomic.Int64

// Popover anchors a floating panel to a reference node in a Tree and owns
// its visibility timers and portal node.
type Popover struct {
	id   int64
	tree *Tree
	ref  Handle
	opts Options
	log  logger.Logger

	mounted bool
	shown   bool

	seq         int
	showPending int
	hidePending int

	target  Handle
	portal  Handle
	content Handle

	pos               Position
	positioned        bool
	repositionPending bool

	onShownChange func(bool)
}

// PopoverOption customizes a Popover.
type PopoverOption func(*Popover)

// WithLogger sets the logger used for debug traces.
func WithLogger(l logger.Logger) PopoverOption {
	return func(p *Popover) { p.log = l }
}

// WithOnShownChange registers a callback for visibility transitions.
func WithOnShownChange(fn func(bool)) PopoverOption {
	return func(p *Popover) { p.onShownChange = fn }
}

// New creates an unmounted popover anchored to ref.
func New(tree *Tree, ref Handle, opts Options, options ...PopoverOption) *Popover {
	if opts.ZIndex == 0 {
		opts.ZIndex = DefaultZIndex
	}
	p := &Popover{
		id:    popoverIDs.Inc(),
		tree:  tree,
		ref:   ref,
		opts:  opts,
		shown: opts.Shown,
	}
	for _, o := range options {
		o(p)
	}
	p.log = logger.OrDefault(p.log)
	return p
}

// Mount resolves the append target and creates the portal node. It returns
// a command that positions an initially shown panel. Mounting twice is a
// no-op.
func (p *Popover) Mount() tea.Cmd {
	if p.mounted {
		return nil
	}
	if target, ok := p.opts.AppendTo.Resolve(p.tree, p.ref); ok {
		p.target = target
		p.portal = p.tree.Add(target, NodeSpec{Name: "popover-portal"})
		p.log.Debug("popover %d portaled into %s", p.id, p.opts.AppendTo)
	}
	p.mounted = true
	if p.shown {
		return p.ScheduleUpdate()
	}
	return nil
}

// Unmount cancels pending timers and releases the portal and panel nodes.
// Nothing the popover owns changes after this returns.
func (p *Popover) Unmount() {
	if !p.mounted {
		return
	}
	p.mounted = false
	p.shown = false
	p.showPending = 0
	p.hidePending = 0
	p.repositionPending = false
	p.positioned = false
	p.pos = Position{}

	p.tree.Remove(p.content)
	p.content = NoHandle
	p.tree.Remove(p.portal)
	p.portal = NoHandle
	p.target = NoHandle
}

// Show makes the panel visible, after ShowDelay when configured. It is a
// no-op while shown or while a show is already pending, and it cancels a
// pending hide.
func (p *Popover) Show() tea.Cmd {
	if !p.mounted || p.showPending != 0 {
		return nil
	}
	p.hidePending = 0
	if p.shown {
		return nil
	}

	if p.opts.ShowDelay > 0 {
		p.seq++
		p.showPending = p.seq
		return p.tick(showTimer, p.seq, p.opts.ShowDelay)
	}

	p.setShown(true)
	return p.ScheduleUpdate()
}

// Hide hides the panel, after HideDelay when configured. It mirrors Show.
func (p *Popover) Hide() tea.Cmd {
	if !p.mounted || p.hidePending != 0 {
		return nil
	}
	p.showPending = 0
	if !p.shown {
		return nil
	}

	if p.opts.HideDelay > 0 {
		p.seq++
		p.hidePending = p.seq
		return p.tick(hideTimer, p.seq, p.opts.HideDelay)
	}

	p.setShown(false)
	return nil
}

// SetShown drives visibility from a controlled prop.
func (p *Popover) SetShown(shown bool) tea.Cmd {
	if shown {
		return p.Show()
	}
	return p.Hide()
}

func (p *Popover) tick(kind timerKind, seq int, d time.Duration) tea.Cmd {
	id := p.id
	return tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{popover: id, kind: kind, seq: seq}
	})
}

func (p *Popover) setShown(v bool) {
	if p.shown == v {
		return
	}
	p.shown = v
	if !v {
		p.tree.Remove(p.content)
		p.content = NoHandle
		p.positioned = false
	}
	p.log.Debug("popover %d shown=%t", p.id, v)
	if p.onShownChange != nil {
		p.onShownChange(v)
	}
}

// ScheduleUpdate requests a position recomputation on the next message.
// Requests made while one is pending coalesce into it.
func (p *Popover) ScheduleUpdate() tea.Cmd {
	if !p.mounted || p.repositionPending {
		return nil
	}
	p.repositionPending = true
	id := p.id
	return func() tea.Msg { return RepositionMsg{popover: id} }
}

// Update consumes the popover's own timer and reposition messages and
// reacts to window resizes. Messages for other popovers are ignored.
func (p *Popover) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case timerMsg:
		if msg.popover != p.id || !p.mounted {
			return nil
		}
		switch {
		case msg.kind == showTimer && msg.seq == p.showPending:
			p.showPending = 0
			p.setShown(true)
			return p.ScheduleUpdate()
		case msg.kind == hideTimer && msg.seq == p.hidePending:
			p.hidePending = 0
			p.setShown(false)
		}
		return nil

	case RepositionMsg:
		if msg.popover != p.id {
			return nil
		}
		p.repositionPending = false
		p.Reposition()
		return nil

	case tea.WindowSizeMsg:
		return p.ScheduleUpdate()
	}
	return nil
}

// Reposition recomputes the panel position right away. It does nothing when
// the popover is unmounted or hidden. When the reference node is gone the
// panel is hidden and its node released.
func (p *Popover) Reposition() {
	if !p.mounted || !p.shown {
		return
	}
	ref, ok := p.tree.Rect(p.ref)
	if !ok {
		p.pos.Hidden = true
		p.tree.Remove(p.content)
		p.content = NoHandle
		p.log.Debug("popover %d reference gone, hiding panel", p.id)
		return
	}

	p.pos = Compute(ref, p.opts.ContentSize, p.boundary(), p.opts.constraints())
	p.positioned = true

	if p.tree.Valid(p.content) {
		p.tree.SetRect(p.content, p.pos.Rect)
		return
	}
	host := p.portal
	if !p.tree.Valid(host) {
		host = p.tree.Parent(p.ref)
	}
	p.content = p.tree.Add(host, NodeSpec{
		Name:    "popover-content",
		Rect:    p.pos.Rect,
		Classes: []string{PanelClass},
	})
}

func (p *Popover) boundary() Rect {
	if p.tree.Valid(p.target) {
		if r, ok := p.tree.Rect(p.target); ok {
			return r
		}
	}
	return p.tree.Viewport()
}

// SetOptions replaces the props and schedules a reposition. Visibility is
// driven separately through SetShown.
func (p *Popover) SetOptions(opts Options) tea.Cmd {
	if opts.ZIndex == 0 {
		opts.ZIndex = DefaultZIndex
	}
	opts.Shown = p.opts.Shown
	p.opts = opts
	return p.ScheduleUpdate()
}

// SetContentSize records the measured panel size and schedules a reposition
// when it changed.
func (p *Popover) SetContentSize(s Size) tea.Cmd {
	if s == p.opts.ContentSize {
		return nil
	}
	p.opts.ContentSize = s
	return p.ScheduleUpdate()
}

// ID returns the popover's process-unique identifier.
func (p *Popover) ID() int64 { return p.id }

// Shown reports whether the panel is visible.
func (p *Popover) Shown() bool { return p.shown }

// Mounted reports whether Mount ran and Unmount did not.
func (p *Popover) Mounted() bool { return p.mounted }

// Position returns the last computed position.
func (p *Popover) Position() Position { return p.pos }

// Options returns the current props.
func (p *Popover) Options() Options { return p.opts }

// Tree returns the layout tree the popover measures against.
func (p *Popover) Tree() *Tree { return p.tree }

// Reference returns the trigger node.
func (p *Popover) Reference() Handle { return p.ref }

// ContentNode returns the panel node while it is shown and positioned.
func (p *Popover) ContentNode() (Handle, bool) {
	return p.content, p.tree.Valid(p.content)
}

// PortalNode returns the portal host node when the panel is portaled.
func (p *Popover) PortalNode() (Handle, bool) {
	return p.portal, p.tree.Valid(p.portal)
}

// Layer returns the panel as a compositing layer. ok is false when nothing
// should be drawn.
func (p *Popover) Layer(content string) (ui.Layer, bool) {
	if !p.mounted || !p.shown || !p.positioned || p.pos.Hidden || !p.tree.Valid(p.ref) {
		return ui.Layer{}, false
	}

	clip := p.tree.ClipRect(p.ref)
	if p.tree.Valid(p.portal) {
		clip = p.tree.ClipRect(p.portal)
	}
	if clip.Empty() {
		return ui.Layer{}, false
	}

	return ui.Layer{
		X:       p.pos.Rect.X,
		Y:       p.pos.Rect.Y,
		Z:       p.opts.ZIndex,
		Content: content,
		Clip:    ui.Clip{X: clip.X, Y: clip.Y, W: clip.W, H: clip.H},
	}, true
}

// Render draws the panel over base when it is visible.
func (p *Popover) Render(base, content string) string {
	layer, ok := p.Layer(content)
	if !ok {
		return base
	}
	vp := p.tree.Viewport()
	return ui.Composite(base, vp.W, vp.H, layer)
}

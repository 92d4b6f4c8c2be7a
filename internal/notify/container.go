package notify

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/rileyhilliard/popkit/internal/ui"
)

// Kind picks where a container draws its stack.
type Kind string

const (
	// KindGlobal stacks toasts in the top-right corner of the window.
	KindGlobal Kind = "global"
	// KindLocal draws toasts inline at the container's origin.
	KindLocal Kind = "local"
	// KindSticky stacks toasts above the bottom-right corner.
	KindSticky Kind = "sticky"
)

const (
	defaultWidth = 40
	eventBuffer  = 64
	toastZ       = 2000
)

type eventMsg struct {
	container *Container
	event     Event
}

type expireMsg struct {
	container *Container
	id        ID
}

// Container is a Bubble Tea component showing the live notifications of a
// registry.
type Container struct {
	reg     *Registry
	kind    Kind
	timeout time.Duration
	width   int
	log     logger.Logger

	toasts   []Notification
	armed    map[ID]bool
	origin   overlay.Point
	viewport overlay.Size

	events      chan Event
	done        chan struct{}
	subscribe   sync.Once
	closeOnce   sync.Once
	unsubscribe func()
}

// ContainerOption customizes a Container.
type ContainerOption func(*Container)

// WithKind sets where toasts are drawn. The default is KindGlobal.
func WithKind(k Kind) ContainerOption {
	return func(c *Container) { c.kind = k }
}

// WithTimeout sets the lifetime of toasts published without one.
func WithTimeout(d time.Duration) ContainerOption {
	return func(c *Container) { c.timeout = d }
}

// WithWidth sets the toast width in cells.
func WithWidth(w int) ContainerOption {
	return func(c *Container) { c.width = w }
}

// WithLogger sets the logger for dropped events.
func WithLogger(l logger.Logger) ContainerOption {
	return func(c *Container) { c.log = l }
}

// NewContainer creates a container for reg. Init subscribes it.
func NewContainer(reg *Registry, opts ...ContainerOption) *Container {
	c := &Container{
		reg:     reg,
		kind:    KindGlobal,
		timeout: DefaultTimeout,
		width:   defaultWidth,
		armed:   make(map[ID]bool),
		events:  make(chan Event, eventBuffer),
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = logger.OrDefault(c.log)
	return c
}

// Init subscribes to the registry and starts listening.
func (c *Container) Init() tea.Cmd {
	c.subscribe.Do(func() {
		c.unsubscribe = c.reg.Subscribe(c.forward)
		c.toasts = c.reg.Active()
	})
	return tea.Batch(c.arm(), c.wait())
}

// forward runs on the publisher's goroutine. Events never block a
// publisher; a dropped one is recovered from the snapshot of the next.
func (c *Container) forward(ev Event) {
	select {
	case <-c.done:
	case c.events <- ev:
	default:
		c.log.Warn("notification event dropped: %s %s", ev.Kind, ev.Notification.ID)
	}
}

func (c *Container) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-c.events:
			return eventMsg{container: c, event: ev}
		case <-c.done:
			return nil
		}
	}
}

// arm starts expiry timers for toasts that have none yet.
func (c *Container) arm() tea.Cmd {
	live := make(map[ID]bool, len(c.toasts))
	var cmds []tea.Cmd
	for _, n := range c.toasts {
		live[n.ID] = true
		if c.armed[n.ID] {
			continue
		}
		c.armed[n.ID] = true

		d := n.Timeout
		if d == 0 {
			d = c.timeout
		}
		if d < 0 {
			continue
		}
		id := n.ID
		cmds = append(cmds, tea.Tick(d, func(time.Time) tea.Msg {
			return expireMsg{container: c, id: id}
		}))
	}
	for id := range c.armed {
		if !live[id] {
			delete(c.armed, id)
		}
	}
	return tea.Batch(cmds...)
}

// Update applies registry events, expires toasts and handles clicks.
func (c *Container) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case eventMsg:
		if msg.container != c {
			return nil
		}
		c.toasts = msg.event.Active
		return tea.Batch(c.arm(), c.wait())

	case expireMsg:
		if msg.container == c && !c.closed() {
			c.reg.Remove(msg.id)
		}

	case tea.WindowSizeMsg:
		c.viewport = overlay.Size{W: msg.Width, H: msg.Height}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		pt := overlay.Point{X: msg.X, Y: msg.Y}
		for i, r := range c.rects() {
			if r.Contains(pt) {
				c.Dismiss(c.toasts[i].ID, true)
				break
			}
		}
	}
	return nil
}

// Dismiss removes a toast. With click set, its OnClick runs first.
func (c *Container) Dismiss(id ID, click bool) {
	if click {
		for _, n := range c.toasts {
			if n.ID == id && n.OnClick != nil {
				n.OnClick()
				break
			}
		}
	}
	c.reg.Remove(id)
}

// Close unsubscribes and stops listening. Pending timers become no-ops.
func (c *Container) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
	})
}

func (c *Container) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Toasts returns the notifications on screen, oldest first.
func (c *Container) Toasts() []Notification { return c.toasts }

// SetOrigin places a local container.
func (c *Container) SetOrigin(p overlay.Point) { c.origin = p }

// SetViewport sets the window size used to anchor global and sticky
// stacks.
func (c *Container) SetViewport(s overlay.Size) { c.viewport = s }

func (c *Container) blocks() []string {
	out := make([]string, len(c.toasts))
	for i, n := range c.toasts {
		out[i] = n.render(c.width)
	}
	return out
}

// View renders the stack, newest at the bottom.
func (c *Container) View() string {
	if len(c.toasts) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, c.blocks()...)
}

func (c *Container) anchor(height int) overlay.Point {
	switch c.kind {
	case KindLocal:
		return c.origin
	case KindSticky:
		return overlay.Point{X: max(c.viewport.W-c.width-1, 0), Y: max(c.viewport.H-height-1, 0)}
	default:
		return overlay.Point{X: max(c.viewport.W-c.width-1, 0), Y: 1}
	}
}

// rects returns the screen rectangle of every toast.
func (c *Container) rects() []overlay.Rect {
	blocks := c.blocks()
	total := 0
	for _, b := range blocks {
		total += lipgloss.Height(b)
	}
	at := c.anchor(total)

	out := make([]overlay.Rect, len(blocks))
	y := at.Y
	for i, b := range blocks {
		h := lipgloss.Height(b)
		out[i] = overlay.Rect{X: at.X, Y: y, W: lipgloss.Width(b), H: h}
		y += h
	}
	return out
}

// Layer returns the stack as a compositing layer.
func (c *Container) Layer() (ui.Layer, bool) {
	view := c.View()
	if view == "" {
		return ui.Layer{}, false
	}
	at := c.anchor(lipgloss.Height(view))
	return ui.Layer{X: at.X, Y: at.Y, Z: toastZ, Content: view}, true
}

// Overlay draws the stack over base.
func (c *Container) Overlay(base string) string {
	layer, ok := c.Layer()
	if !ok || c.viewport.W <= 0 || c.viewport.H <= 0 {
		return base
	}
	return ui.Composite(base, c.viewport.W, c.viewport.H, layer)
}

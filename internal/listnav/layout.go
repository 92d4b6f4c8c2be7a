package listnav

import (
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/outside"
)

// NoneMarked is the marked index when nothing is marked.
const NoneMarked = -1

type markKind int

const (
	markNone markKind = iota
	markFirst
	markID
)

// Mark pre-marks an option while nothing else is marked.
type Mark struct {
	kind markKind
	id   ID
}

var (
	// NoMark disables auto-marking.
	NoMark = Mark{}
	// MarkFirst marks the first selectable option.
	MarkFirst = Mark{kind: markFirst}
)

// MarkID marks the option with the given id.
func MarkID(id ID) Mark { return Mark{kind: markID, id: id} }

// Props configure a Layout.
type Props struct {
	Options []Option

	// SelectedID is the committed option. Together with OnSelect it makes the
	// selection controlled: the layout then never keeps its own copy.
	SelectedID *ID
	// Controlled forces controlled mode when SelectedID is nil, meaning the
	// caller owns an empty selection.
	Controlled bool

	OnSelect       func(option Option, sameAsBefore bool)
	OnOptionMarked func(option *Option)
	OnClose        func()
	OnClickOutside func()

	Visible bool
	// CloseOnSelect defaults to true.
	CloseOnSelect *bool
	MarkedOption  Mark
	// Composing suppresses navigation while text input is in progress.
	Composing bool
}

func (p Props) closeOnSelect() bool {
	if p.CloseOnSelect != nil {
		return *p.CloseOnSelect
	}
	return true
}

// Layout is the keyboard and pointer state machine of a selectable list.
type Layout struct {
	props    Props
	marked   int
	selected *ID
	log      logger.Logger
}

// LayoutOption customizes a Layout.
type LayoutOption func(*Layout)

// WithLogger sets the logger that receives option validation warnings.
func WithLogger(l logger.Logger) LayoutOption {
	return func(lay *Layout) { lay.log = l }
}

// New creates a layout. Invalid options are logged, never rejected.
func New(props Props, opts ...LayoutOption) *Layout {
	l := &Layout{marked: NoneMarked}
	for _, o := range opts {
		o(l)
	}
	l.log = logger.OrDefault(l.log)

	l.props = props
	l.selected = copyID(props.SelectedID)
	l.validate()
	l.markByProperty()
	return l
}

// SetProps applies new props. A visibility change clears the mark, a new
// SelectedID replaces the local selection, and auto-marking runs again.
func (l *Layout) SetProps(props Props) {
	prev := l.props
	l.props = props

	if !sameOptions(prev.Options, props.Options) {
		l.validate()
		if l.marked >= len(props.Options) {
			l.mark(NoneMarked)
		}
	}
	if props.Visible != prev.Visible {
		l.mark(NoneMarked)
	}
	if !sameID(prev.SelectedID, props.SelectedID) {
		l.selected = copyID(props.SelectedID)
	}
	l.markByProperty()
}

// Props returns the current props.
func (l *Layout) Props() Props { return l.props }

func (l *Layout) validate() {
	if err := ValidateOptions(l.props.Options); err != nil {
		l.log.Warn("invalid list options: %v", err)
	}
}

// Controlled reports whether the caller owns the selection.
func (l *Layout) Controlled() bool {
	return (l.props.SelectedID != nil || l.props.Controlled) && l.props.OnSelect != nil
}

// SelectedID returns the committed id, or nil.
func (l *Layout) SelectedID() *ID {
	if l.Controlled() {
		return copyID(l.props.SelectedID)
	}
	return copyID(l.selected)
}

// IsSelected reports whether o is the committed option.
func (l *Layout) IsSelected(o Option) bool {
	sel := l.SelectedID()
	return sel != nil && *sel == o.ID && !o.IsDivider()
}

// MarkedIndex returns the marked row, or NoneMarked.
func (l *Layout) MarkedIndex() int { return l.marked }

// MarkedOption returns the marked option.
func (l *Layout) MarkedOption() (Option, bool) {
	if l.marked < 0 || l.marked >= len(l.props.Options) {
		return Option{}, false
	}
	return l.props.Options[l.marked], true
}

// HandleKey runs one key through the state machine. It returns true when
// the key was handled. Keys are ignored while hidden or composing.
func (l *Layout) HandleKey(e *outside.KeyEvent) bool {
	if !l.props.Visible || l.props.Composing || e.Composing {
		return false
	}

	switch e.Key {
	case outside.KeyArrowDown:
		l.markNextStep(1)

	case outside.KeyArrowUp:
		l.markNextStep(-1)

	case outside.KeySpace, outside.KeyEnter:
		if !l.commit(l.marked, e) {
			return false
		}

	case outside.KeyTab:
		// Tab commits like Enter, but without closeOnSelect the default
		// action is suppressed only when the commit went through.
		if l.props.closeOnSelect() {
			return l.commit(l.marked, e)
		}
		if l.commit(l.marked, e) {
			e.PreventDefault()
			return true
		}
		return false

	case outside.KeyEscape:
		l.close()

	default:
		return false
	}

	e.StopPropagation()
	return true
}

// MouseEnter marks row i when it is selectable.
func (l *Layout) MouseEnter(i int) {
	if i >= 0 && i < len(l.props.Options) && l.props.Options[i].Selectable() {
		l.mark(i)
	}
}

// MouseLeave clears the mark.
func (l *Layout) MouseLeave() {
	l.mark(NoneMarked)
}

// Click commits row i unless it is disabled, a title or a divider.
func (l *Layout) Click(i int) bool {
	if i < 0 || i >= len(l.props.Options) || !l.props.Options[i].Selectable() {
		return false
	}
	return l.commit(i, nil)
}

// ClickOutside forwards an outside click while the list is visible.
func (l *Layout) ClickOutside() {
	if l.props.Visible && l.props.OnClickOutside != nil {
		l.props.OnClickOutside()
	}
}

// commit selects row i and reports whether a consumer received it.
func (l *Layout) commit(i int, e *outside.KeyEvent) bool {
	if i < 0 || i >= len(l.props.Options) {
		return false
	}
	chosen := l.props.Options[i]

	cur := l.SelectedID()
	same := cur != nil && *cur == chosen.ID

	if l.props.OnSelect != nil {
		if e != nil {
			e.StopPropagation()
		}
		l.props.OnSelect(chosen, same)
	}
	if !l.Controlled() {
		id := chosen.ID
		l.selected = &id
	}
	return l.props.OnSelect != nil
}

func (l *Layout) close() {
	l.mark(NoneMarked)
	if l.props.OnClose != nil {
		l.props.OnClose()
	}
}

func (l *Layout) mark(i int) {
	l.marked = i
	if l.props.OnOptionMarked == nil {
		return
	}
	if o, ok := l.MarkedOption(); ok {
		l.props.OnOptionMarked(&o)
		return
	}
	l.props.OnOptionMarked(nil)
}

// markNextStep moves the mark to the next selectable row in direction
// step, wrapping around. Nothing changes when no row is selectable.
func (l *Layout) markNextStep(step int) {
	n := len(l.props.Options)
	if n == 0 {
		return
	}

	idx := l.marked
	if idx < 0 && step < 0 {
		idx = n
	}
	for range n {
		idx = modulo(idx+step, n)
		if l.props.Options[idx].Selectable() {
			l.mark(idx)
			return
		}
	}
}

func (l *Layout) markByProperty() {
	if l.marked != NoneMarked || l.props.MarkedOption.kind == markNone {
		return
	}

	var first *Option
	for i := range l.props.Options {
		if l.props.Options[i].Selectable() {
			first = &l.props.Options[i]
			break
		}
	}
	if first == nil {
		return
	}

	id := first.ID
	if l.props.MarkedOption.kind == markID {
		id = l.props.MarkedOption.id
	}
	if i := Index(l.props.Options, id); i >= 0 {
		l.mark(i)
	}
}

func modulo(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

func copyID(id *ID) *ID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func sameID(a, b *ID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameOptions(a, b []Option) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

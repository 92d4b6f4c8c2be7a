// Package bulkselect tracks which rows of a possibly paginated collection
// are selected. Selection is held either as an explicit id set or, after
// "select all" on a collection with more pages to load, as an exclusion set
// meaning everything except the listed ids.
package bulkselect

import (
	"slices"

	"github.com/rileyhilliard/popkit/internal/logger"
)

// State summarizes the selection.
type State string

const (
	StateAll  State = "ALL"
	StateSome State = "SOME"
	StateNone State = "NONE"
)

// ChangeType names the user action behind a selection change.
type ChangeType string

const (
	ChangeAll          ChangeType = "ALL"
	ChangeNone         ChangeType = "NONE"
	ChangeSingleToggle ChangeType = "SINGLE_TOGGLE"
)

// Change describes a selection change. ID and Value are only set for
// ChangeSingleToggle.
type Change struct {
	Type  ChangeType
	ID    string
	Value bool
}

// Props configure a BulkSelection.
type Props struct {
	// SelectedIDs is the consumer-supplied selection. nil leaves the
	// selection to the component.
	SelectedIDs []string
	AllIDs      []string
	// TotalCount is the size of the whole collection, loaded or not. It is
	// used to count the selection in exclusion mode.
	TotalCount            int
	Disabled              bool
	DeselectRowsByDefault bool
	// HasMoreInBulkSelection reports that AllIDs is a partial page.
	HasMoreInBulkSelection bool
	// OnSelectionChanged receives the new explicit selection, or nil in
	// exclusion mode, and the change that caused it (nil for changes driven
	// by props).
	OnSelectionChanged func(selected []string, change *Change)
}

// idSet is an insertion-ordered set of ids.
type idSet struct {
	order []string
	index map[string]struct{}
}

func newIDSet(ids []string) *idSet {
	s := &idSet{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *idSet) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *idSet) add(id string) {
	if s.has(id) {
		return
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *idSet) remove(id string) {
	if !s.has(id) {
		return
	}
	delete(s.index, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
}

func (s *idSet) len() int { return len(s.order) }

func (s *idSet) slice() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// equal compares membership, ignoring order.
func (s *idSet) equal(ids []string) bool {
	other := newIDSet(ids)
	if other.len() != s.len() {
		return false
	}
	for _, id := range s.order {
		if !other.has(id) {
			return false
		}
	}
	return true
}

// BulkSelection holds the selection state. Exactly one of selected and
// notSelected is non-nil.
type BulkSelection struct {
	props       Props
	selected    *idSet
	notSelected *idSet
	log         logger.Logger
}

// Option customizes a BulkSelection.
type Option func(*BulkSelection)

// WithLogger sets the logger used for debug traces.
func WithLogger(l logger.Logger) Option {
	return func(b *BulkSelection) { b.log = l }
}

// New creates a selection seeded from props.SelectedIDs.
func New(props Props, opts ...Option) *BulkSelection {
	b := &BulkSelection{
		props:    props,
		selected: newIDSet(props.SelectedIDs),
	}
	for _, o := range opts {
		o(b)
	}
	b.log = logger.OrDefault(b.log)
	return b
}

// Props returns the current props.
func (b *BulkSelection) Props() Props { return b.props }

// IsSelected reports whether id is selected.
func (b *BulkSelection) IsSelected(id string) bool {
	if b.selected != nil {
		return b.selected.has(id)
	}
	return !b.notSelected.has(id)
}

// SelectedCount is the number of selected items. In exclusion mode it is
// derived from TotalCount.
func (b *BulkSelection) SelectedCount() int {
	if b.selected != nil {
		return b.selected.len()
	}
	return max(b.props.TotalCount-b.notSelected.len(), 0)
}

// SelectedIDs returns a copy of the explicit selection, or nil in exclusion
// mode.
func (b *BulkSelection) SelectedIDs() []string {
	if b.selected == nil {
		return nil
	}
	return b.selected.slice()
}

// NotSelectedIDs returns a copy of the exclusion set, or nil when the
// selection is explicit.
func (b *BulkSelection) NotSelectedIDs() []string {
	if b.notSelected == nil {
		return nil
	}
	return b.notSelected.slice()
}

// InfiniteBulkSelected reports exclusion mode.
func (b *BulkSelection) InfiniteBulkSelected() bool { return b.selected == nil }

// State summarizes the selection.
func (b *BulkSelection) State() State {
	if b.selected == nil {
		if b.notSelected.len() == 0 {
			return StateAll
		}
		return StateSome
	}
	n := b.selected.len()
	switch {
	case n == 0:
		return StateNone
	case n == len(b.props.AllIDs):
		return StateAll
	default:
		return StateSome
	}
}

// Disabled reports whether bulk actions are unavailable.
func (b *BulkSelection) Disabled() bool {
	return b.props.Disabled || len(b.props.AllIDs) == 0
}

// SetSelectedIDs replaces the selection with an explicit id set.
func (b *BulkSelection) SetSelectedIDs(ids []string, change *Change) {
	b.selected = newIDSet(ids)
	b.notSelected = nil
	b.notify(change)
}

// SetNotSelectedIDs switches to exclusion mode with the given exclusions.
func (b *BulkSelection) SetNotSelectedIDs(ids []string, change *Change) {
	b.notSelected = newIDSet(ids)
	b.selected = nil
	b.notify(change)
}

func (b *BulkSelection) notify(change *Change) {
	if change != nil {
		b.log.Debug("bulk selection %s: state=%s count=%d", change.Type, b.State(), b.SelectedCount())
	}
	if b.props.OnSelectionChanged != nil {
		b.props.OnSelectionChanged(b.SelectedIDs(), change)
	}
}

// ToggleSelectionByID flips the membership of id.
func (b *BulkSelection) ToggleSelectionByID(id string) {
	value := !b.IsSelected(id)
	change := &Change{Type: ChangeSingleToggle, ID: id, Value: value}

	if b.selected != nil {
		next := newIDSet(b.selected.order)
		if value {
			next.add(id)
		} else {
			next.remove(id)
		}
		b.SetSelectedIDs(next.order, change)
		return
	}

	next := newIDSet(b.notSelected.order)
	if value {
		next.remove(id)
	} else {
		next.add(id)
	}
	b.SetNotSelectedIDs(next.order, change)
}

// ToggleAll advances the bulk checkbox: SOME goes to NONE when
// deselectByDefault is set and to ALL otherwise, ALL goes to NONE and NONE
// goes to ALL.
func (b *BulkSelection) ToggleAll(deselectByDefault bool) {
	switch b.State() {
	case StateSome:
		b.toggleAll(!deselectByDefault)
	case StateAll:
		b.toggleAll(false)
	default:
		b.toggleAll(true)
	}
}

// SelectAll selects every item, including unloaded ones when more pages
// exist.
func (b *BulkSelection) SelectAll() { b.toggleAll(true) }

// DeselectAll clears the selection.
func (b *BulkSelection) DeselectAll() { b.toggleAll(false) }

func (b *BulkSelection) toggleAll(enable bool) {
	switch {
	case enable && b.props.HasMoreInBulkSelection:
		b.SetNotSelectedIDs(nil, &Change{Type: ChangeAll})
	case enable:
		b.SetSelectedIDs(b.props.AllIDs, &Change{Type: ChangeAll})
	default:
		b.SetSelectedIDs(nil, &Change{Type: ChangeNone})
	}
}

// UpdateProps reconciles the selection with new props. The first matching
// rule wins:
//
//  1. a supplied SelectedIDs with different members replaces the selection;
//  2. an explicit ALL selection grows to cover a changed AllIDs;
//  3. exclusion mode collapses to an explicit list once nothing more loads;
//  4. otherwise only the props are stored.
func (b *BulkSelection) UpdateProps(next Props) {
	prevState := b.State()
	prevAll := b.props.AllIDs
	b.props = next

	switch {
	case next.SelectedIDs != nil && (b.selected == nil || !b.selected.equal(next.SelectedIDs)):
		b.SetSelectedIDs(next.SelectedIDs, nil)

	case b.selected != nil && prevState == StateAll && !slices.Equal(prevAll, next.AllIDs):
		b.SetSelectedIDs(next.AllIDs, nil)

	case b.notSelected != nil && !next.HasMoreInBulkSelection:
		excluded := b.notSelected
		remaining := make([]string, 0, len(next.AllIDs))
		for _, id := range next.AllIDs {
			if !excluded.has(id) {
				remaining = append(remaining, id)
			}
		}
		b.SetSelectedIDs(remaining, nil)
	}
}

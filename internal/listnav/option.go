package listnav

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/popkit/internal/errors"
)

// ID identifies an option within one list. Numeric ids are written with
// IntID, so IntID(1) and ID("1") are the same option.
type ID string

// IntID converts a numeric id.
func IntID(n int) ID { return ID(strconv.Itoa(n)) }

// Ptr returns a pointer to id, for optional id props.
func (id ID) Ptr() *ID { return &id }

// Divider is the reserved option value that renders a separator row.
const Divider = "-"

// ItemState is passed to custom option renderers.
type ItemState struct {
	Selected bool
	Hovered  bool
	Disabled bool
}

// Option is one row of a list.
type Option struct {
	ID    ID
	Value string
	// Render overrides Value when set.
	Render func(ItemState) string

	Disabled bool
	// Title rows are section headings and cannot be marked or selected.
	Title bool
	// OverrideStyle leaves highlighting to Render.
	OverrideStyle bool
	LinkTo        string
}

// DividerOption returns a separator row.
func DividerOption(id ID) Option {
	return Option{ID: id, Value: Divider}
}

// IsDivider reports whether the option renders as a separator.
func (o Option) IsDivider() bool { return o.Value == Divider }

// Selectable reports whether the option can be marked and committed.
func (o Option) Selectable() bool {
	return !o.IsDivider() && !o.Disabled && !o.Title
}

// Text renders the option content for the given state.
func (o Option) Text(s ItemState) string {
	if o.Render != nil {
		return o.Render(s)
	}
	return o.Value
}

// ValidateOptions reports every option that breaks the list contract:
// empty ids or values after trimming, and duplicate ids. Dividers are exempt.
// The problems are joined into one error; nil means the list is valid.
func ValidateOptions(options []Option) error {
	var errs []error
	seen := make(map[ID]int, len(options))

	for i, o := range options {
		if o.IsDivider() {
			continue
		}
		if strings.TrimSpace(string(o.ID)) == "" {
			errs = append(errs, errors.New(errors.ErrOption,
				fmt.Sprintf("Option %d has an empty id", i),
				"Option ids must be non-empty after trimming."))
		} else if first, dup := seen[o.ID]; dup {
			errs = append(errs, errors.New(errors.ErrOption,
				fmt.Sprintf("Option %d repeats id '%s' from option %d", i, o.ID, first),
				"Option ids must be unique within one list."))
		} else {
			seen[o.ID] = i
		}
		if o.Render == nil && strings.TrimSpace(o.Value) == "" {
			errs = append(errs, errors.New(errors.ErrOption,
				fmt.Sprintf("Option '%s' has an empty value", o.ID),
				"Option values must be non-empty after trimming."))
		}
	}
	return errors.Join(errs...)
}

// Index returns the position of the option with the given id, or -1.
func Index(options []Option, id ID) int {
	for i, o := range options {
		if o.ID == id && !o.IsDivider() {
			return i
		}
	}
	return -1
}

// Find returns the option with the given id.
func Find(options []Option, id ID) (Option, bool) {
	if i := Index(options, id); i >= 0 {
		return options[i], true
	}
	return Option{}, false
}

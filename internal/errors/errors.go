// Package errors carries the structured errors popkit reports to users.
//
// Widgets never panic on bad props. Prop and option problems come back as
// *Error values with a code, which the widget logs as a warning and the
// CLI prints or maps onto its JSON envelope. Several problems found in one
// pass are combined with Join.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ErrConfig covers loading, validating and writing .popkit.yaml.
	ErrConfig = "CONFIG"
	// ErrProp marks props that contradict each other on one widget.
	ErrProp = "PROP"
	// ErrOption marks list options and CLI flag values that fail validation.
	ErrOption = "OPTION"
	// ErrPlacement marks placement strings that do not parse.
	ErrPlacement = "PLACEMENT"
	// ErrRender marks failures while a Bubble Tea program draws a widget.
	ErrRender = "RENDER"
)

// Error is a user-facing failure. Message says what went wrong, Cause
// carries the underlying error and Suggestion tells the user what to
// change. Error() lays them out as:
//
//	✗ <Message>
//
//	  <Cause>
//
//	  <Suggestion>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New returns an Error without a cause.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap attaches a message to err under ErrRender, the code for failures
// raised while a program runs.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrRender,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode attaches a message and suggestion to err under code.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NewPropConflict reports a controlled prop and its uncontrolled
// counterpart set together on one widget.
func NewPropConflict(widget, a, b string) *Error {
	return &Error{
		Code:       ErrProp,
		Message:    fmt.Sprintf("'%s' and '%s' cannot both be used at the same time", a, b),
		Suggestion: fmt.Sprintf("Pick one of them on %s: '%s' for controlled mode, '%s' for uncontrolled.", widget, a, b),
	}
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode reports whether any structured Error in err's tree carries code.
// Every member of a joined error is checked, not only the first.
func IsCode(err error, code string) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *Error:
		if e.Code == code {
			return true
		}
		return IsCode(e.Cause, code)
	case interface{ Unwrap() []error }:
		for _, member := range e.Unwrap() {
			if IsCode(member, code) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return IsCode(e.Unwrap(), code)
	}
	return false
}

// As returns the first structured Error in err's chain.
func As(err error) (*Error, bool) {
	var pe *Error
	if err != nil && errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Join combines validation problems into one error, dropping nils.
// Returns nil when nothing is left.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Problems flattens joined errors into their members, depth first. A
// single error comes back on its own and nil yields nil.
func Problems(err error) []error {
	if err == nil {
		return nil
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, member := range joined.Unwrap() {
		out = append(out, Problems(member)...)
	}
	return out
}

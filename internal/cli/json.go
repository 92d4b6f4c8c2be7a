package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/rileyhilliard/popkit/internal/errors"
)

// Machine mode flag - when true, outputs JSON and suppresses human-friendly decorations
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodePropConflict     = "PROP_CONFLICT"
	ErrCodeInvalidOption    = "INVALID_OPTION"
	ErrCodeInvalidPlacement = "INVALID_PLACEMENT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeUnknown          = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	env := JSONEnvelope{
		Success: false,
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
			Details:    details,
		},
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: false, Error: ErrorToJSON(err)})
}

func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
// Joined validation errors report their first structured member and list
// every line in Details.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	pkErr, ok := errors.As(err)
	if !ok {
		return &JSONError{
			Code:    ErrCodeUnknown,
			Message: err.Error(),
		}
	}

	out := &JSONError{
		Code:       mapErrorCode(pkErr.Code, pkErr.Message),
		Message:    pkErr.Message,
		Suggestion: pkErr.Suggestion,
	}
	if members := errors.Problems(err); len(members) > 1 {
		problems := make([]string, len(members))
		for i, e := range members {
			if p, ok := errors.As(e); ok {
				problems[i] = p.Message
			} else {
				problems[i] = e.Error()
			}
		}
		out.Details = map[string]interface{}{"problems": problems}
	}
	return out
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	switch internalCode {
	case errors.ErrConfig:
		msgLower := strings.ToLower(message)
		if strings.Contains(msgLower, "not found") || strings.Contains(msgLower, "couldn't find") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrProp:
		return ErrCodePropConflict
	case errors.ErrOption:
		return ErrCodeInvalidOption
	case errors.ErrPlacement:
		return ErrCodeInvalidPlacement
	case errors.ErrRender:
		return ErrCodeRenderFailed
	}

	return ErrCodeUnknown
}

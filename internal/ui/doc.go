// Package ui provides the terminal styling and rendering primitives shared
// by popkit widgets.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Confirmations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, disabled options
//	ColorHighlight (blue)   - Keyboard-hovered option background
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
//
// # Compositing
//
// Floating panels are drawn by Composite, which paints Layers over a base
// view. Each layer carries a cell position, a stacking order and an optional
// clip rectangle, so a popover rendered inside a clipping container is cut
// the same way its container is:
//
//	out := ui.Composite(base, width, height,
//		ui.Layer{X: 4, Y: 2, Z: 1000, Content: panel})
//
// # Components
//
//	Loader            - Spinner row shown while more rows load
//	NewTable          - Bubbles table with the popkit styling
//	WidgetPickerModel - Interactive catalog picker
package ui

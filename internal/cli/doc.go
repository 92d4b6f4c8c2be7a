// Package cli implements the popkit command-line interface.
//
// The commands are thin Cobra wrappers around the widget packages. Each one
// loads configuration on demand, builds widgets from it and either runs them
// in a Bubble Tea program or prints a headless result.
//
// # Command Structure
//
//	popkit catalog               - List widgets, pick one to try
//	popkit demo <widget>         - Run one widget full screen
//	popkit place --ref ...       - Print where a panel would be placed
//	popkit config [init|show|set] - Manage .popkit.yaml
//	popkit version               - Print build information
//	popkit completion <shell>    - Generate shell completions
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color, --json) live on the root
// command. --no-color and output.color both end in a lipgloss color profile
// switch; --json turns results and errors into a JSON envelope.
package cli

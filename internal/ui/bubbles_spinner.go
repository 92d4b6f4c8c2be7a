package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames are the animation frames (◐ ◓ ◑ ◒) used by loaders.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// LoaderState is the lifecycle of a Loader.
type LoaderState int

const (
	LoaderIdle LoaderState = iota
	LoaderLoading
	LoaderDone
	LoaderFailed
)

// Loader is a Bubble Tea component showing that more rows are on the way,
// meant to be embedded at the bottom of a list or table.
type Loader struct {
	spinner spinner.Model
	Label   string
	State   LoaderState
}

// NewLoader creates an idle loader with the given label.
func NewLoader(label string) Loader {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	return Loader{spinner: sp, Label: label}
}

// Start switches to the loading state and returns the first tick.
func (l *Loader) Start() tea.Cmd {
	l.State = LoaderLoading
	return l.spinner.Tick
}

// Finish stops the animation.
func (l *Loader) Finish() { l.State = LoaderDone }

// Fail stops the animation and shows a failure marker.
func (l *Loader) Fail() { l.State = LoaderFailed }

// Update advances the animation while loading.
func (l Loader) Update(msg tea.Msg) (Loader, tea.Cmd) {
	if l.State != LoaderLoading {
		return l, nil
	}
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(tick)
		return l, cmd
	}
	return l, nil
}

// View renders the loader. Idle and finished loaders render nothing.
func (l Loader) View() string {
	switch l.State {
	case LoaderLoading:
		return l.spinner.View() + " " + l.Label + "..."
	case LoaderFailed:
		return ErrorStyle().Render(SymbolFail) + " " + l.Label
	default:
		return ""
	}
}

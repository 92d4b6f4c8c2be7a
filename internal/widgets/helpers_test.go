package widgets

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/popkit/internal/listnav"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/stretchr/testify/require"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func fruit() []listnav.Option {
	return []listnav.Option{
		{ID: "a", Value: "Apple"},
		{ID: "b", Value: "Banana"},
		{ID: "c", Value: "Cherry"},
	}
}

type fixture struct {
	tree    *overlay.Tree
	trigger overlay.Handle
}

func newFixture() fixture {
	tree := overlay.NewTree(overlay.Rect{W: 80, H: 24})
	trigger := tree.Add(tree.Root(), overlay.NodeSpec{
		Name: "trigger",
		Rect: overlay.Rect{X: 2, Y: 2, W: 12, H: 1},
	})
	return fixture{tree: tree, trigger: trigger}
}

// run executes cmd and every command it leads to, feeding messages back
// through update. Batches are flattened.
func run(t *testing.T, update func(tea.Msg) tea.Cmd, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, update(msg))
		}
	}
}

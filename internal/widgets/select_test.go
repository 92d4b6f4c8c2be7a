package widgets

import (
	"strings"
	"testing"
	"time"

	"github.com/rileyhilliard/popkit/internal/listnav"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSelect(props SelectProps) *Select {
	if props.Options == nil {
		props.Options = fruit()
	}
	return NewSelect(props, WithLogger(logger.Noop()))
}

func TestSelect_TypingShowsList(t *testing.T) {
	var changes []string
	s := newSelect(SelectProps{OnChange: func(v string) { changes = append(changes, v) }})
	assert.False(t, s.ListVisible())
	assert.NotContains(t, s.View(), "Apple")

	s.Update(runes("a"))
	s.Update(runes("p"))

	assert.Equal(t, "ap", s.InputValue())
	assert.Equal(t, []string{"a", "ap"}, changes)
	assert.True(t, s.ListVisible())
	assert.Contains(t, s.View(), "Apple")
}

func TestSelect_EmptyInputHidesListUnlessAllowed(t *testing.T) {
	s := newSelect(SelectProps{})
	s.ShowOptions()
	assert.False(t, s.ListVisible())

	s = newSelect(SelectProps{ShowOptionsIfEmptyInput: true})
	s.ShowOptions()
	assert.True(t, s.ListVisible())
}

func TestSelect_CloseOnSelect(t *testing.T) {
	tests := []struct {
		name          string
		closeOnSelect *bool
		wantVisible   bool
	}{
		{name: "default closes", closeOnSelect: nil, wantVisible: false},
		{name: "explicit true closes", closeOnSelect: overlay.Bool(true), wantVisible: false},
		{name: "false keeps list", closeOnSelect: overlay.Bool(false), wantVisible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var picked []listnav.ID
			s := newSelect(SelectProps{
				CloseOnSelect: tt.closeOnSelect,
				OnSelect:      func(o listnav.Option) { picked = append(picked, o.ID) },
			})
			s.Update(runes("a"))
			require.True(t, s.ListVisible())

			s.Update(keyDown)
			s.Update(keyEnter)

			assert.Equal(t, []listnav.ID{"a"}, picked)
			assert.Equal(t, tt.wantVisible, s.ListVisible())
		})
	}
}

func TestSelect_ReselectingSameOptionHides(t *testing.T) {
	s := newSelect(SelectProps{CloseOnSelect: overlay.Bool(false)})
	s.Update(runes("a"))
	s.Update(keyDown)
	s.Update(keyEnter)
	require.True(t, s.ListVisible())

	s.Update(keyEnter)
	assert.False(t, s.ListVisible())
}

func TestSelect_EscapeHides(t *testing.T) {
	s := newSelect(SelectProps{})
	s.Update(runes("b"))
	require.True(t, s.ListVisible())

	s.Update(keyEsc)
	assert.False(t, s.ListVisible())
	assert.Equal(t, "b", s.InputValue(), "hiding keeps the typed text")
}

func TestSelect_ArrowDownOpens(t *testing.T) {
	s := newSelect(SelectProps{ShowOptionsIfEmptyInput: true})
	require.False(t, s.ListVisible())

	s.Update(keyDown)
	assert.True(t, s.ListVisible())
	assert.Equal(t, listnav.NoneMarked, s.Layout().MarkedIndex(), "opening does not mark")

	s.Update(keyDown)
	assert.Equal(t, 0, s.Layout().MarkedIndex())
}

func TestSelect_ClickGuard(t *testing.T) {
	s := newSelect(SelectProps{ShowOptionsIfEmptyInput: true})
	now := time.Unix(2000, 0)
	s.now = func() time.Time { return now }
	s.SetOrigin(overlay.Point{X: 0, Y: 5})

	s.Update(press(1, 5))
	require.True(t, s.ListVisible())

	now = now.Add(time.Second)
	s.Update(press(1, 5))
	assert.True(t, s.ListVisible())

	now = now.Add(2 * time.Second)
	s.Update(press(1, 5))
	assert.False(t, s.ListVisible())
}

func TestSelect_DropDirectionUp(t *testing.T) {
	s := newSelect(SelectProps{ShowOptionsIfEmptyInput: true, DropDirectionUp: true})
	s.ShowOptions()

	view := s.View()
	require.Contains(t, view, "Apple")
	lines := strings.Split(view, "\n")
	assert.NotContains(t, lines[0], "Apple", "the border comes first")
	assert.Equal(t, s.input.View(), lines[len(lines)-1])
}

func TestSelect_Disabled(t *testing.T) {
	s := newSelect(SelectProps{Disabled: true, ShowOptionsIfEmptyInput: true})
	s.Update(runes("a"))
	s.Update(keyDown)
	s.Update(press(1, 0))

	assert.Empty(t, s.InputValue())
	assert.False(t, s.ListVisible())
}

package widgets

import (
	"testing"

	"github.com/rileyhilliard/popkit/internal/listnav"
	"github.com/rileyhilliard/popkit/internal/logger"
	"github.com/rileyhilliard/popkit/internal/outside"
	"github.com/rileyhilliard/popkit/internal/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountBase(t *testing.T, f fixture, props DropdownBaseProps) *DropdownBase {
	t.Helper()
	d := NewDropdownBase(f.tree, f.trigger, props, WithLogger(logger.Noop()))
	run(t, d.Update, d.Mount())
	return d
}

func TestDropdownBase_KeyboardOpenNavigateSelect(t *testing.T) {
	f := newFixture()
	var picked []listnav.ID
	d := mountBase(t, f, DropdownBaseProps{
		Options:  fruit(),
		OnSelect: func(o listnav.Option) { picked = append(picked, o.ID) },
	})
	require.False(t, d.IsOpen())

	run(t, d.Update, d.Update(keyEnter))
	require.True(t, d.IsOpen())
	assert.True(t, d.Popover().Shown())
	assert.NotEmpty(t, d.PanelView())

	run(t, d.Update, d.Update(keyDown))
	run(t, d.Update, d.Update(keyDown))
	run(t, d.Update, d.Update(keyEnter))

	assert.False(t, d.IsOpen())
	assert.False(t, d.Popover().Shown())
	assert.Equal(t, []listnav.ID{"b"}, picked)
	require.NotNil(t, d.SelectedOption())
	assert.Equal(t, "Banana", d.SelectedOption().Value)
}

func TestDropdownBase_OpenKeys(t *testing.T) {
	for _, key := range []outside.Key{outside.KeyEnter, outside.KeySpace, outside.KeyArrowDown} {
		t.Run(string(key), func(t *testing.T) {
			d := mountBase(t, newFixture(), DropdownBaseProps{Options: fruit()})
			e := outside.NewKeyEvent(key)
			assert.True(t, d.HandleKey(e))
			assert.True(t, e.DefaultPrevented())
			assert.True(t, d.IsOpen())
		})
	}

	d := mountBase(t, newFixture(), DropdownBaseProps{Options: fruit()})
	assert.False(t, d.HandleKey(outside.NewKeyEvent(outside.KeyTab)))
	assert.False(t, d.IsOpen())
}

func TestDropdownBase_EscapeCloses(t *testing.T) {
	d := mountBase(t, newFixture(), DropdownBaseProps{Options: fruit()})
	run(t, d.Update, d.Open())
	require.True(t, d.IsOpen())

	run(t, d.Update, d.Update(keyEsc))
	assert.False(t, d.IsOpen())
}

func TestDropdownBase_ControlledOpen(t *testing.T) {
	f := newFixture()
	props := DropdownBaseProps{Options: fruit(), Open: overlay.Bool(false)}
	d := mountBase(t, f, props)

	assert.False(t, d.HandleKey(outside.NewKeyEvent(outside.KeyEnter)))
	run(t, d.Update, d.Open())
	assert.False(t, d.IsOpen(), "open is owned by the caller")

	props.Open = overlay.Bool(true)
	run(t, d.Update, d.SetProps(props))
	assert.True(t, d.IsOpen())
	assert.True(t, d.Popover().Shown())

	api := d.API()
	api.Close()
	assert.True(t, d.IsOpen())
}

func TestDropdownBase_ControlledSelectionFollowsProp(t *testing.T) {
	f := newFixture()
	var got []listnav.ID
	props := DropdownBaseProps{
		Options:    fruit(),
		SelectedID: listnav.ID("b").Ptr(),
		OnSelect:   func(o listnav.Option) { got = append(got, o.ID) },
	}
	d := mountBase(t, f, props)

	run(t, d.Update, d.Open())
	for range 3 {
		run(t, d.Update, d.Update(keyDown))
	}
	run(t, d.Update, d.Update(keyEnter))

	assert.Equal(t, []listnav.ID{"c"}, got)
	require.NotNil(t, d.SelectedID())
	assert.Equal(t, listnav.ID("b"), *d.SelectedID(), "the prop was not updated")
	assert.True(t, d.Layout().IsSelected(fruit()[1]))
	assert.False(t, d.Layout().IsSelected(fruit()[2]))

	props.SelectedID = listnav.ID("c").Ptr()
	run(t, d.Update, d.SetProps(props))
	assert.Equal(t, listnav.ID("c"), *d.SelectedID())
}

func TestDropdownBase_InitialSelection(t *testing.T) {
	d := mountBase(t, newFixture(), DropdownBaseProps{
		Options:           fruit(),
		InitialSelectedID: listnav.ID("c").Ptr(),
	})
	require.NotNil(t, d.SelectedOption())
	assert.Equal(t, "Cherry", d.SelectedOption().Value)

	run(t, d.Update, d.Open())
	run(t, d.Update, d.Update(keyDown))
	run(t, d.Update, d.Update(keyEnter))
	assert.Equal(t, listnav.ID("a"), *d.SelectedID())
}

func TestDropdownBase_ClickOutsideClosesAndForwards(t *testing.T) {
	outsideClicks := 0
	d := mountBase(t, newFixture(), DropdownBaseProps{
		Options:        fruit(),
		OnClickOutside: func() { outsideClicks++ },
	})

	run(t, d.Update, d.Update(press(70, 20)))
	assert.Equal(t, 0, outsideClicks, "closed dropdowns ignore outside clicks")

	run(t, d.Update, d.Open())
	run(t, d.Update, d.Update(press(3, 2)))
	assert.True(t, d.IsOpen(), "clicks on the trigger are inside")

	run(t, d.Update, d.Update(press(70, 20)))
	assert.False(t, d.IsOpen())
	assert.Equal(t, 1, outsideClicks)
}

func TestDropdownBase_ClickOptionSelects(t *testing.T) {
	var picked listnav.ID
	d := mountBase(t, newFixture(), DropdownBaseProps{
		Options:  fruit(),
		OnSelect: func(o listnav.Option) { picked = o.ID },
	})
	run(t, d.Update, d.Open())

	pos := d.Popover().Position().Rect
	require.False(t, pos.Empty())

	// First option row sits under the top border.
	run(t, d.Update, d.Update(press(pos.X+1, pos.Y+1)))
	assert.Equal(t, listnav.ID("a"), picked)
	assert.False(t, d.IsOpen())
}

func TestDropdownBase_CloseOnMouseLeaveWaitsForPanelLeave(t *testing.T) {
	leaves := 0
	d := mountBase(t, newFixture(), DropdownBaseProps{
		Options:      fruit(),
		OnMouseLeave: func() { leaves++ },
	})
	run(t, d.Update, d.Open())

	run(t, d.Update, d.Update(motion(3, 2)))
	d.API().CloseOnMouseLeave()
	assert.True(t, d.IsOpen(), "closing waits for the pointer to leave")

	pos := d.Popover().Position().Rect
	run(t, d.Update, d.Update(motion(pos.X+1, pos.Y+1)))
	assert.True(t, d.IsOpen(), "moving onto the panel keeps it open")

	run(t, d.Update, d.Update(motion(70, 20)))
	assert.False(t, d.IsOpen())
	assert.Equal(t, 1, leaves)
}

func TestDropdownBase_TriggerAPI(t *testing.T) {
	var seen TriggerAPI
	d := mountBase(t, newFixture(), DropdownBaseProps{
		Options:           fruit(),
		InitialSelectedID: listnav.ID("a").Ptr(),
		Children: func(api TriggerAPI) string {
			seen = api
			if api.IsOpen {
				return "open"
			}
			return "closed"
		},
	})

	assert.Equal(t, "closed", d.View())
	require.NotNil(t, seen.SelectedOption)
	assert.Equal(t, listnav.ID("a"), seen.SelectedOption.ID)
	assert.False(t, seen.DelegateKeyDown(outside.NewKeyEvent(outside.KeyArrowDown)), "closed lists handle nothing")

	seen.Toggle()
	assert.Equal(t, "open", d.View())
	assert.True(t, seen.DelegateKeyDown(outside.NewKeyEvent(outside.KeyArrowDown)))

	seen.Close()
	assert.Equal(t, "closed", d.View())
}

func TestDropdownBase_UnmountReleasesPanel(t *testing.T) {
	f := newFixture()
	d := mountBase(t, f, DropdownBaseProps{Options: fruit(), Popover: overlay.Options{AppendTo: overlay.AppendWindow}})
	run(t, d.Update, d.Open())
	_, ok := d.Popover().ContentNode()
	require.True(t, ok)

	d.Unmount()
	_, ok = d.Popover().ContentNode()
	assert.False(t, ok)
	_, ok = d.Popover().PortalNode()
	assert.False(t, ok)
	assert.Equal(t, "base", d.Overlay("base"))
}

package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_AddRemove(t *testing.T) {
	tree := NewTree(Rect{W: 80, H: 24})
	root := tree.Root()

	box := tree.Add(root, NodeSpec{Name: "box", Rect: Rect{X: 1, Y: 1, W: 10, H: 5}})
	child := tree.Add(box, NodeSpec{Name: "child"})
	sibling := tree.Add(root, NodeSpec{Name: "sibling"})

	require.True(t, tree.Valid(box))
	assert.Equal(t, box, tree.Parent(child))
	assert.Equal(t, []Handle{box, sibling}, tree.Children(root))

	tree.Remove(box)

	assert.False(t, tree.Valid(box))
	assert.False(t, tree.Valid(child), "subtree goes with its root")
	assert.True(t, tree.Valid(sibling))
	assert.Equal(t, []Handle{sibling}, tree.Children(root))

	assert.Equal(t, NoHandle, tree.Add(box, NodeSpec{}), "adding under a removed node fails")
	assert.NotPanics(t, func() { tree.Remove(box) })
	tree.Remove(root)
	assert.True(t, tree.Valid(root), "root cannot be removed")
}

func TestTree_Contains(t *testing.T) {
	tree := NewTree(Rect{W: 80, H: 24})
	a := tree.Add(tree.Root(), NodeSpec{})
	b := tree.Add(a, NodeSpec{})
	c := tree.Add(tree.Root(), NodeSpec{})

	assert.True(t, tree.Contains(a, a))
	assert.True(t, tree.Contains(a, b))
	assert.False(t, tree.Contains(b, a))
	assert.False(t, tree.Contains(a, c))
	assert.False(t, tree.Contains(NoHandle, a))
}

func TestTree_HasClass(t *testing.T) {
	tree := NewTree(Rect{W: 80, H: 24})
	panel := tree.Add(tree.Root(), NodeSpec{Classes: []string{"popover"}})
	item := tree.Add(panel, NodeSpec{})

	assert.True(t, tree.HasClass(item, "popover"))
	assert.False(t, tree.HasClass(item, "other"))
	assert.False(t, tree.HasClass(item, ""))
}

func TestTree_HitTest(t *testing.T) {
	tree := NewTree(Rect{W: 40, H: 20})
	root := tree.Root()
	box := tree.Add(root, NodeSpec{Rect: Rect{X: 0, Y: 0, W: 10, H: 10}})
	inner := tree.Add(box, NodeSpec{Rect: Rect{X: 2, Y: 2, W: 3, H: 3}})
	portal := tree.Add(root, NodeSpec{})
	floating := tree.Add(portal, NodeSpec{Rect: Rect{X: 20, Y: 5, W: 5, H: 5}})
	overlapping := tree.Add(root, NodeSpec{Rect: Rect{X: 8, Y: 8, W: 4, H: 4}})

	tests := []struct {
		name string
		p    Point
		want Handle
	}{
		{"deepest wins", Point{3, 3}, inner},
		{"parent area", Point{1, 1}, box},
		{"portal content floats outside its host", Point{21, 6}, floating},
		{"later sibling paints on top", Point{9, 9}, overlapping},
		{"empty space hits the root", Point{35, 15}, root},
		{"outside the viewport", Point{50, 50}, NoHandle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.HitTest(tt.p))
		})
	}
}

func TestTree_ClipRect(t *testing.T) {
	tree := NewTree(Rect{W: 80, H: 24})
	clipper := tree.Add(tree.Root(), NodeSpec{Rect: Rect{X: 5, Y: 5, W: 10, H: 4}, ClipsOverflow: true})
	plain := tree.Add(clipper, NodeSpec{Rect: Rect{X: 0, Y: 0, W: 80, H: 24}})
	leaf := tree.Add(plain, NodeSpec{})

	assert.Equal(t, Rect{X: 5, Y: 5, W: 10, H: 4}, tree.ClipRect(leaf))
	assert.Equal(t, Rect{W: 80, H: 24}, tree.ClipRect(clipper))
	assert.Equal(t, Rect{}, tree.ClipRect(NoHandle))
}

func TestTree_Ancestors(t *testing.T) {
	tree := NewTree(Rect{W: 80, H: 24})
	scroller := tree.Add(tree.Root(), NodeSpec{Scrollable: true})
	mid := tree.Add(scroller, NodeSpec{})
	leaf := tree.Add(mid, NodeSpec{Scrollable: true})

	found := tree.Ancestors(leaf, func(_ Handle, s NodeSpec) bool { return s.Scrollable })
	assert.Equal(t, scroller, found, "the node itself is not an ancestor")

	none := tree.Ancestors(leaf, func(Handle, NodeSpec) bool { return false })
	assert.Equal(t, NoHandle, none)
}

func TestTree_SetViewport(t *testing.T) {
	tree := NewTree(Rect{W: 80, H: 24})
	tree.SetViewport(Rect{W: 100, H: 30})

	r, ok := tree.Rect(tree.Root())
	assert.True(t, ok)
	assert.Equal(t, Rect{W: 100, H: 30}, r)
}

func TestTree_ReusedSlotsKeepStaleHandlesInvalid(t *testing.T) {
	tree := NewTree(Rect{W: 80, H: 24})
	root := tree.Root()

	old := tree.Add(root, NodeSpec{Name: "old"})
	oldChild := tree.Add(old, NodeSpec{Name: "old-child"})
	slots := tree.Slots()
	tree.Remove(old)

	fresh := tree.Add(root, NodeSpec{Name: "fresh"})
	freshChild := tree.Add(fresh, NodeSpec{Name: "fresh-child"})
	assert.Equal(t, slots, tree.Slots(), "released slots are reused")

	assert.NotEqual(t, old, fresh)
	assert.NotEqual(t, oldChild, freshChild)
	assert.False(t, tree.Valid(old))
	assert.False(t, tree.Valid(oldChild))
	assert.True(t, tree.Valid(fresh))

	_, ok := tree.Spec(old)
	assert.False(t, ok)
	tree.Remove(old)
	assert.True(t, tree.Valid(fresh), "removing a stale handle leaves the new node alone")
	assert.Equal(t, []Handle{fresh}, tree.Children(root))
	assert.Equal(t, NoHandle, tree.Add(oldChild, NodeSpec{}))
}

func TestTree_ManyAddRemoveCyclesStayBounded(t *testing.T) {
	tree := NewTree(Rect{W: 80, H: 24})
	for i := 0; i < 1000; i++ {
		h := tree.Add(tree.Root(), NodeSpec{})
		require.True(t, tree.Valid(h))
		tree.Remove(h)
	}
	assert.Equal(t, 3, tree.Slots())
}

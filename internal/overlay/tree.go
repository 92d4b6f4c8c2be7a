package overlay

// Handle addresses a node in a Tree. The low bits pick an arena slot and
// the high bits carry the slot's generation, so a handle to a removed node
// stays invalid after its slot is reused. The zero value is never a live
// node.
type Handle int

// NoHandle is returned when a lookup finds nothing.
const NoHandle Handle = 0

const (
	handleSlotBits = 20
	handleSlotMask = 1<<handleSlotBits - 1
	maxSlots       = handleSlotMask + 1
	maxGeneration  = int(^uint(0)>>1) >> handleSlotBits
)

func makeHandle(slot, gen int) Handle { return Handle(gen<<handleSlotBits | slot) }

func (h Handle) slot() int { return int(h) & handleSlotMask }

func (h Handle) generation() int { return int(h) >> handleSlotBits }

// NodeSpec describes a node when adding it to a Tree.
type NodeSpec struct {
	Name          string
	Rect          Rect
	Classes       []string
	Scrollable    bool
	ClipsOverflow bool
}

type node struct {
	spec     NodeSpec
	parent   Handle
	children []Handle
	live     bool
	gen      int
}

// Tree is the layout tree widgets are measured against: an arena of nodes
// addressed by handles. The root covers the viewport. Removed slots are
// recycled; handles to removed nodes stay invalid and every accessor
// tolerates them.
type Tree struct {
	nodes []node
	free  []int
}

// NewTree creates a tree whose root node covers the viewport.
func NewTree(viewport Rect) *Tree {
	t := &Tree{nodes: make([]node, 2, 16)}
	t.nodes[1] = node{
		spec: NodeSpec{Name: "window", Rect: viewport, ClipsOverflow: true},
		live: true,
	}
	return t
}

// Root returns the window node.
func (t *Tree) Root() Handle { return 1 }

// Viewport returns the root rectangle.
func (t *Tree) Viewport() Rect { return t.at(t.Root()).spec.Rect }

// SetViewport resizes the root node, typically on a window resize.
func (t *Tree) SetViewport(r Rect) { t.at(t.Root()).spec.Rect = r }

// Valid reports whether h refers to a live node.
func (t *Tree) Valid(h Handle) bool {
	if h <= 0 {
		return false
	}
	i := h.slot()
	return i < len(t.nodes) && t.nodes[i].live && t.nodes[i].gen == h.generation()
}

// at returns the node behind a handle the caller already validated.
func (t *Tree) at(h Handle) *node { return &t.nodes[h.slot()] }

// Slots reports how many arena slots the tree holds, live or free.
func (t *Tree) Slots() int { return len(t.nodes) }

// Add places a node under parent, reusing a released slot when one is
// free. Adding under an invalid parent, or to a full arena, returns
// NoHandle.
func (t *Tree) Add(parent Handle, spec NodeSpec) Handle {
	if !t.Valid(parent) {
		return NoHandle
	}
	var slot int
	if n := len(t.free); n > 0 {
		slot = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		if len(t.nodes) >= maxSlots {
			return NoHandle
		}
		slot = len(t.nodes)
		t.nodes = append(t.nodes, node{})
	}
	gen := t.nodes[slot].gen
	t.nodes[slot] = node{spec: spec, parent: parent, live: true, gen: gen}
	h := makeHandle(slot, gen)
	t.at(parent).children = append(t.at(parent).children, h)
	return h
}

// Remove detaches h and its whole subtree. Removing the root or an invalid
// handle is a no-op.
func (t *Tree) Remove(h Handle) {
	if !t.Valid(h) || h == t.Root() {
		return
	}
	p := t.at(h).parent
	if t.Valid(p) {
		kids := t.at(p).children
		for i, c := range kids {
			if c == h {
				t.at(p).children = append(kids[:i:i], kids[i+1:]...)
				break
			}
		}
	}
	t.release(h)
}

// release frees h's subtree. Each freed slot moves to the next generation;
// a slot whose generation space is exhausted is retired instead of reused.
func (t *Tree) release(h Handle) {
	for _, c := range t.at(h).children {
		t.release(c)
	}
	slot := h.slot()
	gen := t.nodes[slot].gen + 1
	t.nodes[slot] = node{gen: gen}
	if gen <= maxGeneration {
		t.free = append(t.free, slot)
	}
}

// Parent returns the parent of h, or NoHandle.
func (t *Tree) Parent(h Handle) Handle {
	if !t.Valid(h) {
		return NoHandle
	}
	return t.at(h).parent
}

// Children returns a copy of h's children in paint order.
func (t *Tree) Children(h Handle) []Handle {
	if !t.Valid(h) {
		return nil
	}
	out := make([]Handle, len(t.at(h).children))
	copy(out, t.at(h).children)
	return out
}

// Spec returns the node description. ok is false for invalid handles.
func (t *Tree) Spec(h Handle) (NodeSpec, bool) {
	if !t.Valid(h) {
		return NodeSpec{}, false
	}
	return t.at(h).spec, true
}

// Rect returns the node rectangle, or an empty rect for invalid handles.
func (t *Tree) Rect(h Handle) (Rect, bool) {
	if !t.Valid(h) {
		return Rect{}, false
	}
	return t.at(h).spec.Rect, true
}

// SetRect updates a node's measured rectangle.
func (t *Tree) SetRect(h Handle, r Rect) {
	if t.Valid(h) {
		t.at(h).spec.Rect = r
	}
}

// Contains reports whether h is ancestor or a descendant of ancestor.
func (t *Tree) Contains(ancestor, h Handle) bool {
	if !t.Valid(ancestor) {
		return false
	}
	for cur := h; t.Valid(cur); cur = t.at(cur).parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// HasClass reports whether h or any of its ancestors carries class.
func (t *Tree) HasClass(h Handle, class string) bool {
	if class == "" {
		return false
	}
	for cur := h; t.Valid(cur); cur = t.at(cur).parent {
		for _, c := range t.at(cur).spec.Classes {
			if c == class {
				return true
			}
		}
	}
	return false
}

// HitTest returns the deepest node containing p. Later siblings paint on
// top, so they win ties. Children are searched even when they sit outside
// their parent, the way a portal's content floats outside its 0x0 host.
func (t *Tree) HitTest(p Point) Handle {
	root := t.Root()
	if !t.at(root).spec.Rect.Contains(p) {
		return NoHandle
	}
	if h := t.hit(root, p); h != NoHandle {
		return h
	}
	return root
}

func (t *Tree) hit(h Handle, p Point) Handle {
	kids := t.at(h).children
	for i := len(kids) - 1; i >= 0; i-- {
		if found := t.hit(kids[i], p); found != NoHandle {
			return found
		}
	}
	if t.at(h).spec.Rect.Contains(p) {
		return h
	}
	return NoHandle
}

// ClipRect returns the area h may paint into: the viewport cut by every
// ancestor that clips overflow.
func (t *Tree) ClipRect(h Handle) Rect {
	if !t.Valid(h) {
		return Rect{}
	}
	clip := t.Viewport()
	for cur := t.at(h).parent; t.Valid(cur); cur = t.at(cur).parent {
		if t.at(cur).spec.ClipsOverflow {
			clip = clip.Intersect(t.at(cur).spec.Rect)
		}
	}
	return clip
}

// Ancestors walks from h's parent to the root, stopping when fn returns true.
// It returns the handle fn accepted, or NoHandle.
func (t *Tree) Ancestors(h Handle, fn func(Handle, NodeSpec) bool) Handle {
	if !t.Valid(h) {
		return NoHandle
	}
	for cur := t.at(h).parent; t.Valid(cur); cur = t.at(cur).parent {
		if fn(cur, t.at(cur).spec) {
			return cur
		}
	}
	return NoHandle
}

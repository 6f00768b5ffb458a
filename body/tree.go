package body

import (
	"github.com/lixenwraith/orrery/scene"
)

// Tree owns the body hierarchy rooted at the sun
//
// Traversal contract: Update and Walk visit bodies in pre-order (parent,
// then children in insertion order). Orbit math reads the parent's position
// as already advanced in the same pass, so a child always orbits where its
// parent is now, not where it was last frame.
type Tree struct {
	Root *Body
	size int
}

// NewTree validates spec and builds the tree, registering meshes in sc
func NewTree(spec Spec, sc *scene.Scene, distanceFactor float64) (*Tree, error) {
	root, err := New(spec, sc, distanceFactor)
	if err != nil {
		return nil, err
	}

	t := &Tree{Root: root}
	t.Walk(func(*Body, *Body) bool {
		t.size++
		return true
	})
	return t, nil
}

// Update advances every active body by one step in pre-order
func (t *Tree) Update(s Step) {
	t.Root.update(s, nil)
}

// Walk visits bodies in pre-order with their parent (nil for root)
// Returning false from fn skips that body's children
func (t *Tree) Walk(fn func(b, parent *Body) bool) {
	walk(t.Root, nil, fn)
}

func walk(b, parent *Body, fn func(b, parent *Body) bool) {
	if !fn(b, parent) {
		return
	}
	for _, c := range b.Children {
		walk(c, b, fn)
	}
}

// Find returns the first body named name in pre-order, or nil
func (t *Tree) Find(name string) *Body {
	var found *Body
	t.Walk(func(b, _ *Body) bool {
		if found != nil {
			return false
		}
		if b.Name == name {
			found = b
			return false
		}
		return true
	})
	return found
}

// Banish deactivates up to the first n direct children of the root
// Returns the number of bodies deactivated by this call
func (t *Tree) Banish(n int) int {
	count := 0
	for i, c := range t.Root.Children {
		if i >= n {
			break
		}
		if c.active {
			c.SetActive(false)
			count++
		}
	}
	return count
}

// Len returns the total number of bodies
func (t *Tree) Len() int {
	return t.size
}

// ActiveCount returns the number of bodies currently updated and drawn
func (t *Tree) ActiveCount() int {
	n := 0
	t.Walk(func(b, _ *Body) bool {
		if !b.active {
			return false
		}
		n++
		return true
	})
	return n
}

package omap

import "github.com/agl-alexglopez/ccc/arena"

// Begin returns the index of the minimum key via a splay-free walk down
// the left spine, or arena.Nil if the map is empty.
func (m *Map[V]) Begin() int32 { return m.spine(arena.Left) }

// RBegin returns the index of the maximum key via a splay-free walk down
// the right spine, or arena.Nil if the map is empty.
func (m *Map[V]) RBegin() int32 { return m.spine(arena.Right) }

func (m *Map[V]) spine(dir arena.Direction) int32 {
	a := m.a
	cur := a.Root()
	if cur == arena.Nil {
		return arena.Nil
	}
	for {
		child := a.Branch(cur, dir)
		if child == arena.Nil {
			return cur
		}
		cur = child
	}
}

// Next returns the in-order successor of n in O(1) amortised time via
// parent pointers, or arena.Nil when n is the last element.
func (m *Map[V]) Next(n int32) int32 { return m.step(n, arena.Right) }

// Prev returns the in-order predecessor of n, or arena.Nil when n is the
// first element.
func (m *Map[V]) Prev(n int32) int32 { return m.step(n, arena.Left) }

// step descends to the far opposite-direction child of n's
// direction-child if one exists, else walks up via parent pointers until
// arriving from the opposite-direction branch. dir=Right gives the
// ascending successor; dir=Left gives the descending predecessor. The
// arena's nil sentinel naturally terminates the walk-up, since its own
// parent is always arena.Nil.
func (m *Map[V]) step(n int32, dir arena.Direction) int32 {
	a := m.a
	if child := a.Branch(n, dir); child != arena.Nil {
		cur := child
		for {
			next := a.Branch(cur, dir.Opposite())
			if next == arena.Nil {
				return cur
			}
			cur = next
		}
	}

	cur := n
	p := a.Parent(cur)
	for p != arena.Nil && a.Branch(p, dir) == cur {
		cur = p
		p = a.Parent(cur)
	}
	return p
}

// LowerBound splays key and returns the index of the first element whose
// key is not less than key (the inclusive-lower endpoint of an equal
// range), or arena.Nil if none exists.
func (m *Map[V]) LowerBound(key V) int32 {
	m.splay(key)
	root := m.a.Root()
	if root == arena.Nil {
		return arena.Nil
	}
	if m.cmp(key, *m.a.At(root)) <= 0 {
		return root
	}
	return m.Next(root)
}

// UpperBound splays key and returns the index of the first element whose
// key is strictly greater than key (the exclusive-upper endpoint), or
// arena.Nil if none exists.
func (m *Map[V]) UpperBound(key V) int32 {
	m.splay(key)
	root := m.a.Root()
	if root == arena.Nil {
		return arena.Nil
	}
	if m.cmp(key, *m.a.At(root)) < 0 {
		return root
	}
	return m.Next(root)
}

// EqualRange returns [LowerBound(lo), UpperBound(hi)) as a pair of
// indices; walk from the first with Next until reaching the second
// (exclusive) to enumerate the range.
func (m *Map[V]) EqualRange(lo, hi V) (first, last int32) {
	return m.LowerBound(lo), m.UpperBound(hi)
}

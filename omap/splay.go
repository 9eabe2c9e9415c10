package omap

import (
	"github.com/agl-alexglopez/ccc/arena"
	"github.com/agl-alexglopez/ccc/result"
)

// splay brings the node whose key compares closest to key to the root of
// the tree, using a top-down splay that maintains parent pointers
// throughout — a departure from the textbook top-down algorithm, which
// usually only worries about child pointers.
//
// The two "left" and "right" partial subtrees accumulated while walking
// down are tracked as a pair of chain tails indexed by arena.Direction,
// both initialised to the arena's nil sentinel: the sentinel's own
// branch fields serve as the scratch "header" node the classic algorithm
// anchors both chains to. Every structural change is routed through
// arena.Link so parent pointers never drift out of sync with child
// pointers, which is what lets Next/Prev walk the tree in O(1) amortised
// time between splays.
func (m *Map[V]) splay(key V) {
	a := m.a
	t := a.Root()
	if t == arena.Nil {
		return
	}

	var chainTail [2]int32 // indexed by arena.Direction; both start at the sentinel
	chainTail[arena.Left] = arena.Nil
	chainTail[arena.Right] = arena.Nil

	for {
		c := m.cmp(key, *a.At(t))
		if c == 0 {
			break
		}
		dir := arena.Left
		if c > 0 {
			dir = arena.Right
		}

		child := a.Branch(t, dir)
		if child == arena.Nil {
			break
		}

		c2 := m.cmp(key, *a.At(child))
		sameDir := (c2 < 0 && dir == arena.Left) || (c2 > 0 && dir == arena.Right)
		if sameDir {
			// Zig-zig: heal the straight-line grandchild in place by
			// rotating t and child together before descending further.
			a.Link(t, dir, a.Branch(child, dir.Opposite()))
			a.Link(child, dir.Opposite(), t)
			t = child
			if a.Branch(t, dir) == arena.Nil {
				break
			}
		}

		// Zig / zig-zag: t is strictly on one side of key, so it can never
		// come back into play for the opposite side; hang it off the tail
		// of the opposite-direction chain and descend.
		a.Link(chainTail[dir.Opposite()], dir, t)
		chainTail[dir.Opposite()] = t
		t = a.Branch(t, dir)
	}

	// Stitch the two accumulated chains back onto t's remaining subtrees,
	// then t's subtrees become the accumulated chains themselves.
	oldLeft := a.Branch(t, arena.Left)
	oldRight := a.Branch(t, arena.Right)
	a.Link(chainTail[arena.Left], arena.Right, oldLeft)
	a.Link(chainTail[arena.Right], arena.Left, oldRight)
	headerRight := a.Branch(arena.Nil, arena.Right)
	headerLeft := a.Branch(arena.Nil, arena.Left)
	a.Link(t, arena.Left, headerRight)
	a.Link(t, arena.Right, headerLeft)

	a.SetParent(t, arena.Nil)
	a.SetRoot(t)
}

type insertMode int8

const (
	insertLeaveExisting insertMode = iota
	insertOverwrite
)

func (m *Map[V]) insert(value V, mode insertMode) (result.Handle[int32], bool) {
	if m.a.Root() == arena.Nil {
		if res := m.a.Reserve(1); res != result.Ok {
			return result.Handle[int32]{Status: result.InsertError}, false
		}
		idx := m.a.Alloc()
		*m.a.At(idx) = value
		m.a.SetParent(idx, arena.Nil)
		m.a.SetRoot(idx)
		return result.Handle[int32]{Index: idx, Status: result.Occupied}, true
	}

	m.splay(value)
	root := m.a.Root()
	c := m.cmp(value, *m.a.At(root))
	if c == 0 {
		if mode == insertOverwrite {
			*m.a.At(root) = value
		}
		return result.Handle[int32]{Index: root, Status: result.Occupied}, false
	}

	if res := m.a.Reserve(1); res != result.Ok {
		return result.Handle[int32]{Status: result.InsertError}, false
	}
	// Reserve may have grown the arena, which never moves the root index,
	// so root is still valid to read here.
	idx := m.a.Alloc()
	*m.a.At(idx) = value

	less := c < 0
	if less {
		m.a.Link(idx, arena.Right, root)
		m.a.Link(idx, arena.Left, m.a.Branch(root, arena.Left))
		m.a.Link(root, arena.Left, arena.Nil)
	} else {
		m.a.Link(idx, arena.Left, root)
		m.a.Link(idx, arena.Right, m.a.Branch(root, arena.Right))
		m.a.Link(root, arena.Right, arena.Nil)
	}
	m.a.SetParent(idx, arena.Nil)
	m.a.SetRoot(idx)

	return result.Handle[int32]{Index: idx, Status: result.Occupied}, true
}

// eraseRoot removes the current root (the caller must have already
// confirmed it matches the sought key): if the root has no left child,
// its right child becomes the new root; otherwise the left subtree is
// splayed on the removed key (which, being entirely less than that key,
// brings its maximum to its own root with no right child), and the
// original right subtree is attached as that node's right child.
func (m *Map[V]) eraseRoot() {
	a := m.a
	oldRoot := a.Root()
	left := a.Branch(oldRoot, arena.Left)
	right := a.Branch(oldRoot, arena.Right)

	if left == arena.Nil {
		if right != arena.Nil {
			a.SetParent(right, arena.Nil)
		}
		a.SetRoot(right)
	} else {
		a.SetParent(left, arena.Nil)
		a.SetRoot(left)
		key := *a.At(oldRoot)
		m.splay(key)
		newRoot := a.Root()
		a.Link(newRoot, arena.Right, right)
	}

	a.Free(oldRoot)
}

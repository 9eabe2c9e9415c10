// Package arena implements the struct-of-arrays storage backing the
// adaptive map in package omap: a user-record array and a parallel node
// array (left/right/parent/next-free indices), indexed by a single
// integer handle, with a free list threaded through vacated slots.
//
// Index 0 is a reserved nil sentinel: it is always present, is never a
// real element, and its own left/right/parent fields are used as scratch
// space by the splay algorithm in package omap. User-visible indices lie
// in [1, Cap()).
//
// Capacity is tracked in slots rather than bytes: Go slices are already
// relocatable, GC-tracked, and type-safe, so there is no raw pointer or
// byte offset to keep in bounds here, only the free-list and
// grow-on-exhaustion bookkeeping. See DESIGN.md for the full discussion.
package arena

import "github.com/agl-alexglopez/ccc/result"

// Nil is the reserved sentinel index. It is never a live user record.
const Nil int32 = 0

// Direction indexes the two branches of a tree node. It is declared here,
// rather than in omap, because the node array itself is shaped around it.
type Direction int8

const (
	Left Direction = iota
	Right
)

// Opposite returns the other direction; used throughout the splay loop to
// unify the zig/zag mirror cases into a single direction-indexed body
// instead of writing each rotation twice.
func (d Direction) Opposite() Direction {
	return 1 - d
}

type node struct {
	branch [2]int32 // indexed by Direction
	parent int32
	// There is no separate nextFree field: a vacated slot's branch[Left]
	// holds the index of the next free slot.
}

// GrowFunc is the arena's allocator callback: given its current capacity
// and the minimum capacity a pending operation needs, it returns a new
// capacity (>= minCap) or an error. A nil GrowFunc puts the arena in
// fixed/borrowed-storage mode: any exhaustion is reported as
// result.NoAllocationFunction rather than attempting to grow.
type GrowFunc func(oldCap, minCap int) (int, error)

// DoublingGrowth is the default growth policy: new capacity =
// max(old*2, 8), repeated until it covers minCap.
func DoublingGrowth(oldCap, minCap int) (int, error) {
	next := oldCap * 2
	if next < 8 {
		next = 8
	}
	for next < minCap {
		next *= 2
	}
	return next, nil
}

// Arena owns one logical allocation split into two parallel slices: the
// caller's record type V, and the tree's node linkage. Slot 0 is the
// permanent sentinel; live count therefore always includes it.
type Arena[V any] struct {
	records []V
	nodes   []node
	live    int // includes the sentinel slot
	root    int32
	freeHd  int32
	grow    GrowFunc
}

// New creates an empty arena holding only the sentinel slot. grow may be
// nil; such an arena keeps that single slot for good, since Reserve takes
// no allocator of its own and there is no other way to supply storage, so
// every Reserve(n) with n > 0 reports result.NoAllocationFunction.
func New[V any](grow GrowFunc) *Arena[V] {
	a := &Arena[V]{grow: grow}
	a.records = make([]V, 1)
	a.nodes = make([]node, 1)
	a.live = 1
	return a
}

// Cap returns the total slot capacity, including the sentinel.
func (a *Arena[V]) Cap() int { return len(a.records) }

// Live returns the internal live count, including the sentinel. Callers
// building a container on top of Arena expose Live()-1 as the user-facing
// count.
func (a *Arena[V]) Live() int { return a.live }

// Root returns the current root index (0 if empty); kept here rather than
// in omap because the node array and the index space it defines are
// owned by this package.
func (a *Arena[V]) Root() int32 { return a.root }

// SetRoot updates the current root index.
func (a *Arena[V]) SetRoot(r int32) { a.root = r }

// At returns a pointer to the record stored at i. i must be a live index;
// callers are responsible for validating occupancy (the sentinel at index
// 0 is always "valid" memory but never a real element).
func (a *Arena[V]) At(i int32) *V { return &a.records[i] }

// Branch returns the child index of n in direction d.
func (a *Arena[V]) Branch(n int32, d Direction) int32 { return a.nodes[n].branch[d] }

// SetBranch sets the child index of n in direction d.
func (a *Arena[V]) SetBranch(n int32, d Direction, child int32) { a.nodes[n].branch[d] = child }

// Parent returns the parent index of n.
func (a *Arena[V]) Parent(n int32) int32 { return a.nodes[n].parent }

// SetParent sets the parent index of n.
func (a *Arena[V]) SetParent(n int32, p int32) { a.nodes[n].parent = p }

// Link sets both the parent's child pointer and the child's parent
// pointer in one call; every splay rotation routes through this helper so
// the two pointers never drift out of sync. A Nil child is a no-op on the
// child side (the sentinel's own parent field is scratch and must not be
// overwritten by a real node's link).
func (a *Arena[V]) Link(parent int32, d Direction, child int32) {
	a.nodes[parent].branch[d] = child
	if child != Nil {
		a.nodes[child].parent = parent
	}
}

// Reserve ensures at least Live()+n slots of capacity (Live counts the
// sentinel, so this is room for n more records), growing via grow
// if necessary. It returns result.Ok, result.NoAllocationFunction (grow is
// nil and capacity is insufficient), or result.AllocatorError (grow
// itself failed).
func (a *Arena[V]) Reserve(n int) result.Result {
	need := a.live + n
	if need <= a.Cap() {
		return result.Ok
	}
	if a.grow == nil {
		return result.NoAllocationFunction
	}
	newCap, err := a.grow(a.Cap(), need)
	if err != nil || newCap < need {
		return result.AllocatorError
	}
	a.growTo(newCap)
	return result.Ok
}

// growTo reallocates both parallel arrays to newCap, preserving every
// existing index (grow never invalidates a handle) and threading a fresh
// free list through only the newly added slots; the tree itself is
// untouched since every index it references still points at the same
// record.
func (a *Arena[V]) growTo(newCap int) {
	oldCap := a.Cap()
	records := make([]V, newCap)
	copy(records, a.records)
	nodes := make([]node, newCap)
	copy(nodes, a.nodes)
	a.records = records
	a.nodes = nodes

	for i := oldCap; i < newCap; i++ {
		nodes[i].branch[Left] = a.freeHd
		a.freeHd = int32(i)
	}
}

// Alloc pops a slot from the free list (or Reserve's fresh capacity) and
// returns its index with a zero-valued record. It assumes the caller has
// already called Reserve(1) successfully; Alloc itself never grows.
func (a *Arena[V]) Alloc() int32 {
	var idx int32
	if a.freeHd != Nil {
		idx = a.freeHd
		a.freeHd = a.nodes[idx].branch[Left]
	} else {
		idx = int32(a.live)
	}
	var zero V
	a.records[idx] = zero
	a.nodes[idx] = node{}
	a.live++
	return idx
}

// Free pushes idx onto the head of the free list and decrements the live
// count. It does not touch the record's contents beyond what the caller
// has already done; any per-record cleanup is the owning container's
// responsibility, not the arena's.
func (a *Arena[V]) Free(idx int32) {
	a.nodes[idx].branch[Left] = a.freeHd
	a.freeHd = idx
	a.live--
}

// Clear resets the arena to empty (sentinel only) without returning
// memory to the allocator: Cap() is unchanged and every non-sentinel slot
// goes back on the free list for reuse. Running a destructor hook across live records
// before the reset is the owning container's responsibility, not this
// package's: only omap.Map knows which of the
// indices below Live are actually live versus sitting on the free list
// (that requires walking the tree, not the arena's flat slices), so
// omap.Map.Clear walks in-order, invokes its OnEvict hook, and then calls
// Arena.Clear to reset bookkeeping.
func (a *Arena[V]) Clear() {
	a.live = 1
	a.root = Nil
	a.freeHd = Nil
	a.nodes[Nil] = node{}
	for i := 1; i < len(a.nodes); i++ {
		a.nodes[i] = node{}
		a.nodes[i].branch[Left] = a.freeHd
		a.freeHd = int32(i)
	}
}

// ClearAndFree is Clear plus releasing the backing arrays entirely, for
// callers that want the memory back rather than retained for reuse.
func (a *Arena[V]) ClearAndFree() {
	a.records = make([]V, 1)
	a.nodes = make([]node, 1)
	a.live = 1
	a.root = Nil
	a.freeHd = Nil
}

// Validate checks the arena's structural invariants: every live node's
// parent agrees on the branch it hangs from, the free list length plus
// live count equals capacity, and the free list contains no cycles and
// no out-of-range indices.
func (a *Arena[V]) Validate() bool {
	cap := a.Cap()
	seen := make([]bool, cap)
	freeCount := 0
	for f := a.freeHd; f != Nil; f = a.nodes[f].branch[Left] {
		if int(f) >= cap || seen[f] {
			return false
		}
		seen[f] = true
		freeCount++
		if freeCount > cap {
			return false
		}
	}
	if freeCount+a.live != cap {
		return false
	}
	// Live slots are whatever isn't on the free list; the LIFO free list
	// hands out the most recently freed index first, so live slots are not
	// necessarily contiguous from 1 and must not be assumed to be.
	for i := 1; i < cap; i++ {
		if seen[i] {
			continue // on the free list, not live
		}
		for _, d := range [2]Direction{Left, Right} {
			child := a.nodes[i].branch[d]
			if child != Nil && a.nodes[child].parent != int32(i) {
				return false
			}
		}
	}
	if a.root != Nil && a.nodes[a.root].parent != Nil {
		return false
	}
	return true
}

// Package omap implements the adaptive ordered map: a top-down splay tree
// over a package arena struct-of-arrays arena, exposing a stable integer
// Handle per live record.
//
// Searches mutate the tree (every access splays its key to the root), so
// a *Map is not safe for concurrent readers. A single Cmp function
// totally orders the record type V; ties mean "same key".
package omap

import (
	"github.com/agl-alexglopez/ccc/arena"
	"github.com/agl-alexglopez/ccc/result"
)

// Cmp compares a sought key against a candidate record, returning <0, 0,
// or >0 for less/equal/greater, mirroring the standard library's
// cmp.Compare convention.
type Cmp[V any] func(key, candidate V) int

// Map is an adaptive splay-tree ordered map over records of type V.
type Map[V any] struct {
	a       *arena.Arena[V]
	cmp     Cmp[V]
	onEvict func(*V)
}

// New creates an empty map. cmp must not be nil. grow is the arena's
// allocator callback; with nil the arena never grows past its sentinel
// slot, so Reserve(n) with n > 0 reports result.NoAllocationFunction and
// every insert of a new key reports InsertError. onEvict, if non-nil, is invoked once per record
// during Clear/ClearAndFree only — never from a single-element
// Remove/Erase — so the cost of evicting a record is amortised over a
// bulk clear rather than charged to every individual removal.
func New[V any](cmp Cmp[V], grow arena.GrowFunc, onEvict func(*V)) *Map[V] {
	return &Map[V]{
		a:       arena.New[V](grow),
		cmp:     cmp,
		onEvict: onEvict,
	}
}

// Count returns the number of live user records (the internal sentinel
// slot is never counted).
func (m *Map[V]) Count() int { return m.a.Live() - 1 }

// IsEmpty reports whether the map holds no records.
func (m *Map[V]) IsEmpty() bool { return m.Count() == 0 }

// Capacity returns the total slot capacity, including the sentinel.
func (m *Map[V]) Capacity() int { return m.a.Cap() }

// Reserve ensures capacity for n additional inserts without a further
// grow, subject to the map's allocator contract.
func (m *Map[V]) Reserve(n int) result.Result { return m.a.Reserve(n) }

// At returns a pointer to the record at a handle's index. The sentinel
// index (0) and any index outside the live range are the caller's own
// responsibility to avoid; callers normally only ever hold indices
// returned by a Handle with Occupied set.
func (m *Map[V]) At(idx int32) *V { return m.a.At(idx) }

// Validate checks the map's invariants: arena structural consistency,
// plus in-order ascending traversal and a count match.
func (m *Map[V]) Validate() bool {
	if !m.a.Validate() {
		return false
	}
	n := 0
	var prev *V
	for i := m.Begin(); i != arena.Nil; i = m.Next(i) {
		cur := m.a.At(i)
		if prev != nil && m.cmp(*prev, *cur) > 0 {
			return false
		}
		prev = cur
		n++
	}
	return n == m.Count()
}

// Clear removes every record, invoking onEvict (if set) once per record
// in ascending key order, then resets the arena to empty without
// releasing its backing storage.
func (m *Map[V]) Clear() {
	if m.onEvict != nil {
		for i := m.Begin(); i != arena.Nil; i = m.Next(i) {
			m.onEvict(m.a.At(i))
		}
	}
	m.a.Clear()
}

// ClearAndFree is Clear plus releasing the backing storage.
func (m *Map[V]) ClearAndFree() {
	if m.onEvict != nil {
		for i := m.Begin(); i != arena.Nil; i = m.Next(i) {
			m.onEvict(m.a.At(i))
		}
	}
	m.a.ClearAndFree()
}

// Contains splays key to the root and reports whether it is present.
// Because search mutates the tree, repeated lookups of the same key (or
// neighbouring keys) are cheap afterwards: the splay already moved the
// hot key to the root, so the next access starts with a single
// comparison.
func (m *Map[V]) Contains(key V) bool {
	h := m.Get(key)
	return h.Status.Has(result.Occupied)
}

// Get splays key to the root and returns a handle: Occupied with the
// live index if found, Vacant otherwise.
func (m *Map[V]) Get(key V) result.Handle[int32] {
	m.splay(key)
	root := m.a.Root()
	if root == arena.Nil {
		return result.Handle[int32]{Status: result.Vacant}
	}
	if m.cmp(key, *m.a.At(root)) != 0 {
		return result.Handle[int32]{Status: result.Vacant}
	}
	return result.Handle[int32]{Index: root, Status: result.Occupied}
}

// Insert inserts value if no equal key is present. It returns the handle
// of the resulting record (the existing one on a duplicate, the new one
// otherwise) and whether a new record was created. On allocator failure
// it returns a handle with InsertError set and inserted=false; the map
// is left unmodified.
func (m *Map[V]) Insert(value V) (result.Handle[int32], bool) {
	return m.insert(value, insertLeaveExisting)
}

// TryInsert is an alias for Insert, naming the insertion mode that
// exposes the existing record on a duplicate key rather than overwriting
// it.
func (m *Map[V]) TryInsert(value V) (result.Handle[int32], bool) {
	return m.insert(value, insertLeaveExisting)
}

// InsertOrAssign inserts value, or overwrites the existing record in
// place (keeping its node links) if key is already present.
func (m *Map[V]) InsertOrAssign(value V) result.Handle[int32] {
	h, _ := m.insert(value, insertOverwrite)
	return h
}

// SwapHandle exchanges *value with the stored record if key(*value) is
// present (the caller's stack buffer and the slot trade contents), or
// inserts *value as a new record otherwise. It returns the resulting
// handle; *value holds the previous record's contents only in the
// swap case (an insert leaves *value as the caller provided it, since
// there was nothing to trade it for).
func (m *Map[V]) SwapHandle(value *V) result.Handle[int32] {
	m.splay(*value)
	root := m.a.Root()
	if root != arena.Nil && m.cmp(*value, *m.a.At(root)) == 0 {
		rec := m.a.At(root)
		*rec, *value = *value, *rec
		return result.Handle[int32]{Index: root, Status: result.Occupied}
	}
	h, _ := m.insert(*value, insertLeaveExisting)
	return h
}

// Remove splays key to the root and, if present, erases it, returning
// the removed record and true. Returns the zero value and false if key
// was absent. The single-element remove path does not invoke onEvict —
// see the New doc comment.
func (m *Map[V]) Remove(key V) (V, bool) {
	m.splay(key)
	root := m.a.Root()
	var zero V
	if root == arena.Nil || m.cmp(key, *m.a.At(root)) != 0 {
		return zero, false
	}
	removed := *m.a.At(root)
	m.eraseRoot()
	return removed, true
}

// Erase is Remove without returning the removed value.
func (m *Map[V]) Erase(key V) bool {
	_, ok := m.Remove(key)
	return ok
}

package bitset

import "github.com/agl-alexglopez/ccc/result"

// minBlocks returns the number of blocks common to both sets.
func minBlocks(a, b *Set) int {
	n := len(a.blocks)
	if len(b.blocks) < n {
		n = len(b.blocks)
	}
	return n
}

// Or sets each bit of s to the logical OR of s and other. The sets need
// not share a length: other is treated as zero-extended past its own
// length, which leaves any blocks of s beyond other's unchanged.
func (s *Set) Or(other *Set) result.Result {
	nb := minBlocks(s, other)
	for i := 0; i < nb; i++ {
		s.blocks[i] |= other.blocks[i]
	}
	s.fixTail()
	return result.Ok
}

// And sets each bit of s to the logical AND of s and other, zero-extending
// other past its own length — so any blocks of s beyond other's length
// are cleared, since other contributes 0 there.
func (s *Set) And(other *Set) result.Result {
	nb := minBlocks(s, other)
	for i := 0; i < nb; i++ {
		s.blocks[i] &= other.blocks[i]
	}
	for i := nb; i < len(s.blocks); i++ {
		s.blocks[i] = 0
	}
	return result.Ok
}

// Xor sets each bit of s to the logical XOR of s and other, zero-extending
// other past its own length, which leaves any blocks of s beyond other's
// unchanged.
func (s *Set) Xor(other *Set) result.Result {
	nb := minBlocks(s, other)
	for i := 0; i < nb; i++ {
		s.blocks[i] ^= other.blocks[i]
	}
	s.fixTail()
	return result.Ok
}

// Not flips every addressable bit in place (the unary complement;
// FlipAll is its underlying implementation, kept as a separate exported
// name to mirror Or/And/Xor's binary-operator naming).
func (s *Set) Not() { s.FlipAll() }

// Equals reports whether s and other hold the same length and the same
// bits.
func (s *Set) Equals(other *Set) bool {
	if s.count != other.count {
		return false
	}
	for i := range s.blocks {
		if s.blocks[i] != other.blocks[i] {
			return false
		}
	}
	return true
}

// IsSubset reports whether every bit set in s is also set in other
// (s & other == s), with other zero-extended past its own length: any
// bit of s beyond other's length makes s&^other non-zero there, so s is
// not a subset unless s itself has no bits set past other's length.
func (s *Set) IsSubset(other *Set) result.Tribool {
	nb := minBlocks(s, other)
	for i := 0; i < nb; i++ {
		if s.blocks[i]&^other.blocks[i] != 0 {
			return result.False
		}
	}
	for i := nb; i < len(s.blocks); i++ {
		if s.blocks[i] != 0 {
			return result.False
		}
	}
	return result.True
}

// IsProperSubset reports whether s is a subset of other and strictly
// shorter than it — length, not content equality, distinguishes a proper
// subset from an equal set.
func (s *Set) IsProperSubset(other *Set) result.Tribool {
	sub := s.IsSubset(other)
	if sub != result.True {
		return sub
	}
	if s.count < other.count {
		return result.True
	}
	return result.False
}

// ShiftLeft shifts every bit toward higher indices by n positions,
// filling vacated low bits with 0 and discarding bits that shift past
// the logical length.
func (s *Set) ShiftLeft(n int) result.Result {
	if n < 0 {
		return result.ArgumentError
	}
	if n == 0 || s.count == 0 {
		return result.Ok
	}
	if n >= s.count {
		s.Clear()
		return result.Ok
	}
	blockShift := n >> wordShift
	bitShift := n & wordMask
	nb := len(s.blocks)
	for i := nb - 1; i >= 0; i-- {
		srcIdx := i - blockShift
		var v uint
		if srcIdx >= 0 {
			v = s.blocks[srcIdx] << uint(bitShift)
			if bitShift > 0 && srcIdx-1 >= 0 {
				v |= s.blocks[srcIdx-1] >> uint(wordBits-bitShift)
			}
		}
		s.blocks[i] = v
	}
	s.fixTail()
	return result.Ok
}

// ShiftRight shifts every bit toward lower indices by n positions,
// filling vacated high bits with 0.
func (s *Set) ShiftRight(n int) result.Result {
	if n < 0 {
		return result.ArgumentError
	}
	if n == 0 || s.count == 0 {
		return result.Ok
	}
	if n >= s.count {
		s.Clear()
		return result.Ok
	}
	blockShift := n >> wordShift
	bitShift := n & wordMask
	nb := len(s.blocks)
	for i := 0; i < nb; i++ {
		srcIdx := i + blockShift
		var v uint
		if srcIdx < nb {
			v = s.blocks[srcIdx] >> uint(bitShift)
			if bitShift > 0 && srcIdx+1 < nb {
				v |= s.blocks[srcIdx+1] << uint(wordBits-bitShift)
			}
		}
		s.blocks[i] = v
	}
	s.fixTail()
	return result.Ok
}

// PushBack appends one bit to the logical end of the set, growing the
// backing storage through GrowFunc if the current capacity is exhausted
// — the set's analogue of a dynamic array's push_back/pop_back.
func (s *Set) PushBack(v bool) result.Result {
	needBlocks := blocksFor(s.count + 1)
	if needBlocks > len(s.blocks) {
		if needBlocks > cap(s.blocks) {
			if s.grow == nil {
				return result.NoAllocationFunction
			}
			newBlocks, err := s.grow(cap(s.blocks), needBlocks)
			if err != nil || newBlocks < needBlocks {
				return result.AllocatorError
			}
			grown := make([]uint, len(s.blocks), newBlocks)
			copy(grown, s.blocks)
			s.blocks = grown
		}
		s.blocks = s.blocks[:needBlocks]
	}
	s.count++
	return s.SetBit(s.count-1, v)
}

// PopBack removes and returns the last bit, or reports result.Fail if the
// set is empty.
func (s *Set) PopBack() (bool, result.Result) {
	if s.count == 0 {
		return false, result.Fail
	}
	last := s.count - 1
	v := s.Test(last) == result.True
	s.ResetBit(last)
	s.count--
	s.blocks = s.blocks[:blocksFor(s.count)]
	return v, result.Ok
}

package bitset

import (
	"math/bits"

	"github.com/agl-alexglopez/ccc/result"
)

// maxTrailingOnes scans a single block for the first run of at least
// needed contiguous ones: masked is the block with every bit outside the
// caller's window already cleared, each remaining bit at its own position
// in the block.
//
// It returns one of three outcomes:
//  1. (idx, count) with count >= needed: a satisfying run begins at idx.
//  2. (idx, count) with 0 < count < needed: no satisfying run exists, but
//     a suffix of ones ends at the block's most significant bit
//     (idx+count == wordBits). The caller may extend count into the next
//     block.
//  3. (wordBits, 0): nothing usable in this block at all.
func maxTrailingOnes(masked uint, needed int) (idx, count int) {
	if masked == 0 {
		return wordBits, 0
	}
	pos := 0
	for pos < wordBits {
		shifted := masked >> uint(pos)
		if shifted == 0 {
			return wordBits, 0
		}
		pos += bits.TrailingZeros(shifted)
		if pos >= wordBits {
			return wordBits, 0
		}
		run := bits.TrailingZeros(^(masked >> uint(pos)))
		if run >= needed {
			return pos, run
		}
		pos += run
	}
	leadOnes := bits.LeadingZeros(^masked)
	if leadOnes == 0 {
		return wordBits, 0
	}
	return wordBits - leadOnes, leadOnes
}

// maxLeadingOnes is maxTrailingOnes's mirror for the descending direction,
// built by running the trailing scan over the bit-reversed word. A count
// of 0 (returned with index -1) means nothing usable in this word; a
// count with 0 < count < needed is a run that reaches bit 0, which the
// caller may carry into the next-lower block.
func maxLeadingOnes(masked uint, needed int) (idx, count int) {
	rev := bits.Reverse(masked)
	ridx, cnt := maxTrailingOnes(rev, needed)
	if cnt == 0 {
		return -1, 0
	}
	return wordBits - 1 - ridx, cnt
}

func extractBits(raw uint, lo, hiExclusive int) uint {
	width := hiExclusive - lo
	shifted := raw >> uint(lo)
	if width >= wordBits {
		return shifted
	}
	return shifted & ((uint(1) << uint(width)) - 1)
}

// scanOnesAscending finds the first run of n contiguous set bits (if
// ones is true) or clear bits (if ones is false) within [start,
// start+length), scanning forward. It is the general engine behind both
// the single-bit and fixed-count-group trailing scans: n=1 collapses to
// "first set/clear bit".
func (s *Set) scanOnesAscending(start, length, n int, ones bool) (int, bool) {
	if n <= 0 || n > length {
		return 0, false
	}
	end := start + length
	numFound := 0
	bitsStart := 0
	pos := start
	for pos < end {
		block := blockIndex(pos)
		blockStart := block * wordBits
		blockEnd := blockStart + wordBits
		hi := end
		if blockEnd < hi {
			hi = blockEnd
		}
		raw := s.blocks[block]
		if !ones {
			raw = ^raw
		}
		// Window bits stay at their own block positions, so a run reaching
		// the block's top is reported as a suffix even when the window
		// starts mid-block.
		lo := pos - blockStart
		masked := extractBits(raw, lo, hi-blockStart) << uint(lo)
		width := hi - pos

		if numFound > 0 && masked&1 == 1 {
			runAt0 := bits.TrailingZeros(^masked)
			if runAt0 > width {
				runAt0 = width
			}
			total := numFound + runAt0
			if total >= n {
				return bitsStart, true
			}
			if runAt0 == width {
				numFound = total
				pos = hi
				continue
			}
			numFound = 0
		} else {
			numFound = 0
		}

		idx, cnt := maxTrailingOnes(masked, n)
		if cnt == 0 {
			pos = hi
			continue
		}
		if cnt >= n {
			return blockStart + idx, true
		}
		bitsStart = blockStart + idx
		numFound = cnt
		pos = hi
	}
	return 0, false
}

// scanOnesDescending mirrors scanOnesAscending for the leading direction:
// it finds the first run of n contiguous set/clear bits within [start,
// start+length) scanning backward from the high end, returning the
// highest index of the run, using the same single-bit convention as the
// rest of this file: the returned index is block*wordBits + (wordBits -
// clz - 1).
func (s *Set) scanOnesDescending(start, length, n int, ones bool) (int, bool) {
	if n <= 0 || n > length {
		return 0, false
	}
	numFound := 0
	bitsTop := 0
	pos := start + length // exclusive upper edge, descending
	for pos > start {
		block := blockIndex(pos - 1)
		blockStart := block * wordBits
		lo := start
		if blockStart > lo {
			lo = blockStart
		}
		width := pos - lo
		raw := s.blocks[block]
		if !ones {
			raw = ^raw
		}
		masked := extractBits(raw, lo-blockStart, pos-blockStart)
		// Back at their own block positions, so a run reaching bit 0 is a
		// carry candidate even when the window ends below the block's top.
		aligned := masked << uint(lo-blockStart)

		if numFound > 0 {
			topBit := uint(1) << uint(wordBits-1)
			if aligned&topBit != 0 {
				runAtTop := bits.LeadingZeros(^aligned)
				if runAtTop > width {
					runAtTop = width
				}
				total := numFound + runAtTop
				if total >= n {
					return bitsTop, true
				}
				if runAtTop == width {
					numFound = total
					pos = lo
					continue
				}
			}
			numFound = 0
		}

		idxFull, cnt := maxLeadingOnes(aligned, n)
		if cnt == 0 {
			pos = lo
			continue
		}
		top := blockStart + idxFull
		if cnt >= n {
			return top, true
		}
		bitsTop = top
		numFound = cnt
		pos = lo
	}
	return 0, false
}

func checkRange(count, start, length int) bool {
	if start < 0 || length < 0 {
		return false
	}
	if length == 0 && start >= count {
		return false
	}
	return start+length <= count
}

// FirstTrailingOneInRange returns the index of the first set bit in
// [start, start+length), ascending.
func (s *Set) FirstTrailingOneInRange(start, length int) (int, result.Result) {
	return firstOf(s, start, length, 1, true, true)
}

// FirstLeadingOneInRange returns the index of the last set bit in
// [start, start+length), i.e. the first one found scanning from the top.
func (s *Set) FirstLeadingOneInRange(start, length int) (int, result.Result) {
	return firstOf(s, start, length, 1, true, false)
}

// FirstTrailingZeroInRange returns the index of the first clear bit in
// [start, start+length), ascending.
func (s *Set) FirstTrailingZeroInRange(start, length int) (int, result.Result) {
	return firstOf(s, start, length, 1, false, true)
}

// FirstLeadingZeroInRange returns the index of the last clear bit in
// [start, start+length).
func (s *Set) FirstLeadingZeroInRange(start, length int) (int, result.Result) {
	return firstOf(s, start, length, 1, false, false)
}

// FirstTrailingOnesInRange returns the start index of the first run of n
// contiguous set bits within [start, start+length), ascending. This is
// the hardest routine in the package: a block-by-block scan that skips a
// block without a usable run in one step and otherwise visits each run of
// ones in it once via maxTrailingOnes, instead of testing every bit
// individually.
func (s *Set) FirstTrailingOnesInRange(start, length, n int) (int, result.Result) {
	return firstOf(s, start, length, n, true, true)
}

// FirstLeadingOnesInRange returns the top index of the first run of n
// contiguous set bits within [start, start+length), scanning from the
// high end.
func (s *Set) FirstLeadingOnesInRange(start, length, n int) (int, result.Result) {
	return firstOf(s, start, length, n, true, false)
}

// FirstTrailingZerosInRange returns the start index of the first run of
// n contiguous clear bits within [start, start+length), ascending.
func (s *Set) FirstTrailingZerosInRange(start, length, n int) (int, result.Result) {
	return firstOf(s, start, length, n, false, true)
}

// FirstLeadingZerosInRange returns the top index of the first run of n
// contiguous clear bits within [start, start+length), scanning from the
// high end.
func (s *Set) FirstLeadingZerosInRange(start, length, n int) (int, result.Result) {
	return firstOf(s, start, length, n, false, false)
}

func firstOf(s *Set, start, length, n int, ones, ascending bool) (int, result.Result) {
	if !checkRange(s.count, start, length) || n <= 0 {
		return 0, result.ArgumentError
	}
	var idx int
	var found bool
	if ascending {
		idx, found = s.scanOnesAscending(start, length, n, ones)
	} else {
		idx, found = s.scanOnesDescending(start, length, n, ones)
	}
	if !found {
		return 0, result.Fail
	}
	return idx, result.Ok
}

// Whole-set convenience wrappers that scan the full [0, Len()) range
// without requiring the caller to pass explicit start/length arguments.

func (s *Set) FirstTrailingOne() (int, result.Result)  { return s.FirstTrailingOneInRange(0, s.count) }
func (s *Set) FirstLeadingOne() (int, result.Result)   { return s.FirstLeadingOneInRange(0, s.count) }
func (s *Set) FirstTrailingZero() (int, result.Result) { return s.FirstTrailingZeroInRange(0, s.count) }
func (s *Set) FirstLeadingZero() (int, result.Result)  { return s.FirstLeadingZeroInRange(0, s.count) }

func (s *Set) FirstTrailingOnes(n int) (int, result.Result) {
	return s.FirstTrailingOnesInRange(0, s.count, n)
}
func (s *Set) FirstLeadingOnes(n int) (int, result.Result) {
	return s.FirstLeadingOnesInRange(0, s.count, n)
}
func (s *Set) FirstTrailingZeros(n int) (int, result.Result) {
	return s.FirstTrailingZerosInRange(0, s.count, n)
}
func (s *Set) FirstLeadingZeros(n int) (int, result.Result) {
	return s.FirstLeadingZerosInRange(0, s.count, n)
}

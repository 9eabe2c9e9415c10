package bitset

import (
	"testing"

	"github.com/agl-alexglopez/ccc/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstTrailingAndLeadingOne(t *testing.T) {
	s := newTestSet(t, 128)
	s.SetBit(40, true)
	s.SetBit(90, true)

	idx, res := s.FirstTrailingOne()
	require.Equal(t, result.Ok, res)
	assert.Equal(t, 40, idx)

	idx, res = s.FirstLeadingOne()
	require.Equal(t, result.Ok, res)
	assert.Equal(t, 90, idx)
}

func TestFirstTrailingOneNoneFound(t *testing.T) {
	s := newTestSet(t, 64)
	_, res := s.FirstTrailingOne()
	assert.Equal(t, result.Fail, res)
}

func TestFirstTrailingZerosGroup(t *testing.T) {
	s := newTestSet(t, 128)
	s.SetRange(0, 128, true)
	s.ResetRange(40, 5) // bits 40..44 are a run of 5 zeros

	idx, res := s.FirstTrailingZeros(3)
	require.Equal(t, result.Ok, res)
	assert.Equal(t, 40, idx)
}

func TestFirstLeadingZerosGroup(t *testing.T) {
	s := newTestSet(t, 128)
	s.SetRange(0, 128, true)
	s.ResetRange(70, 2) // bits 70,71 are zero

	idx, res := s.FirstLeadingZeros(2)
	require.Equal(t, result.Ok, res)
	assert.Equal(t, 71, idx, "leading scan returns the top index of the found run")
}

func TestFirstTrailingOnesCrossesBlockBoundary(t *testing.T) {
	s := newTestSet(t, 140)
	// A run of 10 ones straddling the word boundary at bit 64.
	s.SetRange(60, 10, true)

	idx, res := s.FirstTrailingOnes(10)
	require.Equal(t, result.Ok, res)
	assert.Equal(t, 60, idx)

	_, res = s.FirstTrailingOnes(11)
	assert.Equal(t, result.Fail, res)
}

func TestFirstLeadingOnesCrossesBlockBoundary(t *testing.T) {
	s := newTestSet(t, 140)
	s.SetRange(60, 10, true)

	idx, res := s.FirstLeadingOnes(10)
	require.Equal(t, result.Ok, res)
	assert.Equal(t, 69, idx)
}

func TestGroupScanExactlyRangeSize(t *testing.T) {
	s := newTestSet(t, 64)
	s.SetRange(0, 64, true)
	idx, res := s.FirstTrailingOnes(64)
	require.Equal(t, result.Ok, res)
	assert.Equal(t, 0, idx)

	_, res = s.FirstTrailingOnes(65)
	assert.Equal(t, result.Fail, res)
}

func TestFirstTrailingOnesInRangeRespectsBounds(t *testing.T) {
	s := newTestSet(t, 128)
	s.SetRange(0, 128, true)
	s.ResetBit(50)

	// Bits 0..49 form a run of 50 ones and bits 51..127 a run of 77;
	// check that a request confined to [51,128) only sees the second run.
	idx, res := s.FirstTrailingOnesInRange(51, 128-51, 20)
	require.Equal(t, result.Ok, res)
	assert.Equal(t, 51, idx)
}

func TestMaxTrailingOnesContract(t *testing.T) {
	// Case 1: a satisfying run begins mid-word.
	idx, cnt := maxTrailingOnes(0b0011110, 4)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 4, cnt)

	// Case 2: insufficient, but a suffix reaches the top.
	top3 := ^(^uint(0) >> 3)
	idx, cnt = maxTrailingOnes(top3, 10)
	assert.Equal(t, wordBits-3, idx)
	assert.Equal(t, 3, cnt)

	// Case 3: nothing at all.
	idx, cnt = maxTrailingOnes(0, 1)
	assert.Equal(t, wordBits, idx)
	assert.Equal(t, 0, cnt)
}

func TestScanZerosSymmetricWithOnes(t *testing.T) {
	s := newTestSet(t, 100)
	s.SetRange(0, 100, true)
	s.ResetBit(20)

	idx, res := s.FirstTrailingZero()
	require.Equal(t, result.Ok, res)
	assert.Equal(t, 20, idx)

	idx, res = s.FirstLeadingZero()
	require.Equal(t, result.Ok, res)
	assert.Equal(t, 20, idx)
}

func TestInvalidRangeScanIsArgumentError(t *testing.T) {
	s := newTestSet(t, 10)
	_, res := s.FirstTrailingOneInRange(-1, 5)
	assert.Equal(t, result.ArgumentError, res)

	_, res = s.FirstTrailingOneInRange(5, 10)
	assert.Equal(t, result.ArgumentError, res)
}

package bitset

import (
	"testing"

	"github.com/agl-alexglopez/ccc/result"
	"pgregory.net/rapid"
)

// TestBitOpsMatchBoolSliceModel is a universal-invariant property check:
// every mutating operation on a Set must agree, bit for bit, with the
// same sequence of operations applied to a plain []bool reference model.
func TestBitOpsMatchBoolSliceModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 300).Draw(t, "n")
		s, res := New(n, DoublingGrowth)
		if res != result.Ok {
			t.Fatalf("New(%d) failed: %v", n, res)
		}
		model := make([]bool, n)

		numOps := rapid.IntRange(0, 100).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			start := rapid.IntRange(0, n-1).Draw(t, "start")
			length := rapid.IntRange(0, n-start).Draw(t, "length")
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				s.SetRange(start, length, true)
				for i := start; i < start+length; i++ {
					model[i] = true
				}
			case 1:
				s.ResetRange(start, length)
				for i := start; i < start+length; i++ {
					model[i] = false
				}
			case 2:
				s.FlipRange(start, length)
				for i := start; i < start+length; i++ {
					model[i] = !model[i]
				}
			}
		}

		for i := 0; i < n; i++ {
			want := result.False
			if model[i] {
				want = result.True
			}
			if got := s.Test(i); got != want {
				t.Fatalf("bit %d: got %v, want %v", i, got, want)
			}
		}
		if !s.Validate() {
			t.Fatal("Validate() failed")
		}

		wantPop := 0
		for _, b := range model {
			if b {
				wantPop++
			}
		}
		if s.PopCount() != wantPop {
			t.Fatalf("PopCount()=%d, want %d", s.PopCount(), wantPop)
		}
	})
}

// TestFirstTrailingOnesAgreesWithLinearScan checks the hardest scan
// routine against a naive O(n) reference scan for contiguous groups.
func TestFirstTrailingOnesAgreesWithLinearScan(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 260).Draw(t, "n")
		s, _ := New(n, DoublingGrowth)
		density := rapid.IntRange(2, 5).Draw(t, "density")
		for i := 0; i < n; i++ {
			if rapid.IntRange(0, density).Draw(t, "bit") == 0 {
				s.SetBit(i, true)
			}
		}
		groupLen := rapid.IntRange(1, 8).Draw(t, "groupLen")

		want := linearFirstRun(s, 0, n, groupLen, true)
		got, res := s.FirstTrailingOnes(groupLen)
		if want < 0 {
			if res != result.Fail {
				t.Fatalf("expected Fail, got idx=%d res=%v", got, res)
			}
			return
		}
		if res != result.Ok || got != want {
			t.Fatalf("FirstTrailingOnes(%d): got (%d,%v), want %d", groupLen, got, res, want)
		}
	})
}

// TestFirstLeadingZerosAgreesWithLinearScan mirrors the previous property
// for the descending-zero direction.
func TestFirstLeadingZerosAgreesWithLinearScan(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 260).Draw(t, "n")
		s, _ := New(n, DoublingGrowth)
		density := rapid.IntRange(2, 5).Draw(t, "density")
		for i := 0; i < n; i++ {
			if rapid.IntRange(0, density).Draw(t, "bit") != 0 {
				s.SetBit(i, true)
			}
		}
		groupLen := rapid.IntRange(1, 8).Draw(t, "groupLen")

		want := linearFirstRunFromTop(s, 0, n, groupLen, false)
		got, res := s.FirstLeadingZeros(groupLen)
		if want < 0 {
			if res != result.Fail {
				t.Fatalf("expected Fail, got idx=%d res=%v", got, res)
			}
			return
		}
		if res != result.Ok || got != want {
			t.Fatalf("FirstLeadingZeros(%d): got (%d,%v), want %d", groupLen, got, res, want)
		}
	})
}

func linearFirstRun(s *Set, start, end, n int, ones bool) int {
	run := 0
	for i := start; i < end; i++ {
		bit := s.Test(i) == result.True
		if bit == ones {
			run++
			if run >= n {
				return i - n + 1
			}
		} else {
			run = 0
		}
	}
	return -1
}

func linearFirstRunFromTop(s *Set, start, end, n int, ones bool) int {
	run := 0
	for i := end - 1; i >= start; i-- {
		bit := s.Test(i) == result.True
		if bit == ones {
			run++
			if run >= n {
				return i + n - 1
			}
		} else {
			run = 0
		}
	}
	return -1
}

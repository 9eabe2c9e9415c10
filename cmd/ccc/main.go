// Command ccc is a small smoke-test / demonstration harness for the
// omap and bitset packages: it builds a map, walks it in order, and
// exercises a few bitset scans, printing what it finds.
package main

import (
	"fmt"
	"os"

	"github.com/agl-alexglopez/ccc/arena"
	"github.com/agl-alexglopez/ccc/bitset"
	"github.com/agl-alexglopez/ccc/omap"
)

func intCmp(key, candidate int) int { return key - candidate }

func main() {
	m := omap.New(intCmp, arena.DoublingGrowth, nil)
	for _, v := range []int{42, 7, 19, 3, 57, 11} {
		m.Insert(v)
	}
	if !m.Validate() {
		fmt.Fprintln(os.Stderr, "map failed validation")
		os.Exit(1)
	}

	fmt.Print("map in order:")
	for i := m.Begin(); i != arena.Nil; i = m.Next(i) {
		fmt.Printf(" %d", *m.At(i))
	}
	fmt.Println()

	s, res := bitset.New(128, bitset.DoublingGrowth)
	if !res.Succeeded() {
		fmt.Fprintf(os.Stderr, "bitset.New failed: %v\n", res)
		os.Exit(1)
	}
	s.SetRange(10, 20, true)
	s.ResetBit(15)

	fmt.Println("bits:", s.String())
	if idx, r := s.FirstTrailingZeros(3); r.Succeeded() {
		fmt.Printf("first run of 3 zeros starts at %d\n", idx)
	}
	fmt.Println("popcount:", s.PopCount())
}

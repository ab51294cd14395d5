package combin

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(e *Enumerator) [][]uint32 {
	var out [][]uint32
	for e.Next() {
		c := append([]uint32(nil), e.Combination()...)
		out = append(out, c)
	}
	return out
}

func allCombinations(m, k int) map[string]bool {
	set := map[string]bool{}
	var rec func(start int, c []int)
	rec = func(start int, c []int) {
		if len(c) == k {
			cc := append([]int(nil), c...)
			set[fmt.Sprint(cc)] = true
			return
		}
		for i := start; i < m; i++ {
			rec(i+1, append(c, i))
		}
	}
	rec(0, nil)
	return set
}

func key(c []uint32) string {
	ints := make([]int, len(c))
	for i, v := range c {
		ints[i] = int(v)
	}
	return fmt.Sprint(ints)
}

func TestAscendingIndices(t *testing.T) {
	e := New(20, 3, 1, 0).Enumerator()
	for e.Next() {
		c := e.Combination()
		for i := 1; i < len(c); i++ {
			require.Less(t, c[i-1], c[i])
		}
	}
}

func TestEnumeratorCoverage(t *testing.T) {
	// spec.md §8 property 4, scenario S4: the union of a fully layered
	// round-robin split visits every combination exactly once.
	m, k, ranks, threads := 30, 3, 3, 4
	want := allCombinations(m, k)
	seen := map[string]int{}
	for r := 0; r < ranks; r++ {
		for th := 0; th < threads; th++ {
			d := New(m, k, ranks, r).Layer(threads, th)
			for _, c := range collect(d.Enumerator()) {
				seen[key(c)]++
			}
		}
	}
	require.Equal(t, len(want), len(seen))
	for k := range want {
		require.Equalf(t, 1, seen[k], "combination %s", k)
	}
	for k, n := range seen {
		require.Equalf(t, 1, n, "combination %s seen %d times", k, n)
	}
}

func TestEnumeratorMatchesBruteForce(t *testing.T) {
	m, k := 10, 3
	want := allCombinations(m, k)
	got := collect(New(m, k, 1, 0).Enumerator())
	assert.Equal(t, len(want), len(got))
	seen := map[string]bool{}
	for _, c := range got {
		require.False(t, seen[key(c)], "duplicate %v", c)
		seen[key(c)] = true
		require.True(t, want[key(c)], "unexpected combination %v", c)
	}
}

func TestLayerComposition(t *testing.T) {
	d := New(50, 2, 3, 1)
	layered := d.Layer(5, 2)
	assert.Equal(t, 15, layered.Step)
	assert.Equal(t, 1*5+2, layered.Offset)
}

func TestKEqualsOneDegenerate(t *testing.T) {
	e := New(5, 1, 1, 0).Enumerator()
	var got []uint32
	for e.Next() {
		got = append(got, e.Combination()[0])
	}
	assert.Equal(t, []uint32{0, 1, 2, 3, 4}, got)
}

package rank

import (
	"math/rand"
	"testing"

	"github.com/grailbio/epistasis/combin"
	"github.com/grailbio/epistasis/genotype"
	"github.com/grailbio/epistasis/search"
	"github.com/stretchr/testify/require"
)

func randomDataset(t *testing.T, rng *rand.Rand, m int, cases, ctrls uint64) *genotype.Dataset {
	ds, err := genotype.NewDataset(cases, ctrls, m)
	require.NoError(t, err)
	for s := 0; s < m; s++ {
		for i := uint64(0); i < cases; i++ {
			ds.SetGenotype(s, true, i, rng.Intn(3))
		}
		for i := uint64(0); i < ctrls; i++ {
			ds.SetGenotype(s, false, i, rng.Intn(3))
		}
	}
	return ds
}

func TestMergeAndTruncateMatchesSingleRank(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const m, k, n = 16, 3, 10
	ds := randomDataset(t, rng, m, 20, 20)

	// Single rank (R=1): the whole (K-1)-prefix space, local search only.
	single, err := search.RunLocal(ds, k, 2, n, 0, combin.New(m, k-1, 1, 0))
	require.NoError(t, err)
	search.SortResults(single)

	// Three ranks, each searching its own stride of (K-1)-prefixes, merged
	// by rank.MergeAndTruncate: spec.md §8 property 7 (determinism) extended
	// across R.
	const ranks = 3
	ts := NewLocalTransports(ranks)
	merged := make([][]search.Result, ranks)
	errs := make([]error, ranks)
	done := make(chan int, ranks)
	for r := 0; r < ranks; r++ {
		go func(r int) {
			local, err := search.RunLocal(ds, k, 2, n, 0, combin.New(m, k-1, ranks, r))
			if err != nil {
				errs[r] = err
				done <- r
				return
			}
			merged[r], errs[r] = MergeAndTruncate(ts[r], local, n)
			done <- r
		}(r)
	}
	for i := 0; i < ranks; i++ {
		<-done
	}
	for r := 0; r < ranks; r++ {
		require.NoError(t, errs[r])
	}
	for r := 1; r < ranks; r++ {
		require.Empty(t, merged[r])
	}
	require.Len(t, merged[0], len(single))
	for i := range single {
		require.Equal(t, single[i].Combination, merged[0][i].Combination)
		require.InDelta(t, single[i].Score, merged[0][i].Score, 1e-6)
	}
}

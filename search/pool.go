package search

import (
	"sort"

	"github.com/grailbio/base/traverse"
	"github.com/grailbio/epistasis/combin"
	"github.com/grailbio/epistasis/genotype"
	"github.com/grailbio/epistasis/mutinfo"
	"github.com/pkg/errors"
)

// RunLocal implements the thread pool and partitioner of spec.md §4.8: it
// fans prefixDist out across t worker goroutines, each with its own
// Distribution prefixDist.Layer(t, i), its own scratch state, and its own
// TopN buffer; joins; then concatenates, sorts descending by
// (score, combination) and truncates to topCapacity entries. It follows
// the teacher's traverse.Each fan-out idiom (pileup/snp/pileup.go) rather
// than hand-rolled goroutines+sync.WaitGroup.
func RunLocal(ds *genotype.Dataset, k, t, topCapacity, segment int, prefixDist combin.Distribution) ([]Result, error) {
	scorer := mutinfo.NewScorerFromDataset(ds)
	workers := make([]*Worker, t)
	if err := traverse.Each(t, func(i int) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("search: worker %d setup panic: %v", i, r)
			}
		}()
		w := NewWorker(ds, k, scorer, topCapacity, segment)
		workers[i] = w
		return w.Run(prefixDist.Layer(t, i))
	}); err != nil {
		return nil, err
	}
	var all []Result
	for _, w := range workers {
		all = append(all, w.TopN().Items()...)
	}
	SortResults(all)
	if len(all) > topCapacity {
		all = all[:topCapacity]
	}
	return all, nil
}

// SortResults orders results descending by score, breaking ties by
// ascending lexicographic combination order, per spec.md §3's Result
// total order and §8 property 6/7 (top-N correctness, determinism).
func SortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return lexLess(results[i].Combination, results[j].Combination)
	})
}

func lexLess(a, b []uint32) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Package search implements the depth-first combinatorial search loop
// (spec.md §4.6), the bounded top-n buffer (§4.7), and the thread pool
// that fans a search out across workers (§4.8).
package search

import (
	"github.com/grailbio/epistasis/combin"
	"github.com/grailbio/epistasis/genotype"
	"github.com/grailbio/epistasis/mutinfo"
	"github.com/pkg/errors"
)

// defaultSegment returns the recommended contingency-table bank size of
// spec.md §4.6: B = max(1, floor(16384 / 3^K)), sized to fit a segment of
// contingency tables in L1. Callers may pass any B >= 1 to Worker instead;
// the loop's result is identical either way, per the same section's
// "tuning knob, not a semantic one" requirement.
func defaultSegment(k int) int {
	b := 16384 / genotype.Rows(k)
	if b < 1 {
		return 1
	}
	return b
}

// Worker holds the per-worker scratch state of spec.md §4.6: the chain of
// reused intermediate prefix tables (gts), a segmented bank of
// contingency tables and parallel combination scratch, and the worker's
// own TopN buffer. One Worker is owned by exactly one goroutine; nothing
// here is safe for concurrent use.
type Worker struct {
	ds      *genotype.Dataset
	k       int
	scorer  mutinfo.Scorer
	gts     []genotype.GenotypeTable
	ctBank  []*genotype.ContingencyTable
	combs   [][]uint32
	segment int
	top     *TopN
}

// NewWorker allocates a Worker for order k, scoring against scorer, with a
// TopN buffer of the given capacity. segment is the contingency-table
// bank size B; pass 0 to use defaultSegment(k).
func NewWorker(ds *genotype.Dataset, k int, scorer mutinfo.Scorer, topCapacity, segment int) *Worker {
	if segment <= 0 {
		segment = defaultSegment(k)
	}
	w := &Worker{
		ds:      ds,
		k:       k,
		scorer:  scorer,
		segment: segment,
		top:     NewTopN(topCapacity),
	}
	for o := 0; o <= k-3; o++ {
		w.gts = append(w.gts, genotype.NewGenotypeTable(o+2, ds.CasesWords(), ds.CtrlsWords()))
	}
	w.ctBank = make([]*genotype.ContingencyTable, segment)
	w.combs = make([][]uint32, segment)
	for i := range w.ctBank {
		w.ctBank[i] = genotype.NewContingencyTable(k)
		w.combs[i] = make([]uint32, k)
	}
	return w
}

// TopN returns the worker's result buffer, valid once Run has returned.
func (w *Worker) TopN() *TopN { return w.top }

// Run sweeps every K-combination reachable from prefixDist, a Distribution
// over (K-1)-prefixes (spec.md §4.9's "distribution is over (K-1)-prefixes,
// not full K-combinations"). It recovers any panic raised during the sweep
// and reports it as an error instead of crashing the process; a panic from
// the scratch allocation in NewWorker is recovered the same way by
// RunLocal's per-worker goroutine (spec.md §5, new).
func (w *Worker) Run(prefixDist combin.Distribution) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("search: worker panic: %v", r)
		}
	}()
	e := prefixDist.Enumerator()
	j := 0
	m := w.ds.Snps()
	for e.Next() {
		prefix := e.Combination()
		last := int(prefix[len(prefix)-1])
		prefixTable := w.buildPrefix(prefix)
		for i := last + 1; i < m; i++ {
			comb := w.combs[j]
			copy(comb, prefix)
			comb[len(comb)-1] = uint32(i)
			genotype.CombineAndPopcount(prefixTable, w.ds.Snp(i), w.ctBank[j])
			j++
			if j == w.segment {
				w.flush(j)
				j = 0
			}
		}
	}
	if j > 0 {
		w.flush(j)
	}
	return nil
}

// buildPrefix builds (or, for K=2, looks up) the genotype table for
// prefix[0:K-1], following spec.md §4.6 step 1: combine(dataset[c0],
// dataset[c1]) into gts[0], then chain each remaining prefix index into
// gts[o]. For K=2 there is no intermediate table; the prefix degenerates
// to dataset[c[0]].
func (w *Worker) buildPrefix(prefix []uint32) genotype.GenotypeTable {
	if w.k == 2 {
		return w.ds.Snp(int(prefix[0]))
	}
	t0 := w.ds.Snp(int(prefix[0]))
	t1 := w.ds.Snp(int(prefix[1]))
	genotype.Combine(t0, t1, &w.gts[0])
	for o := 1; o <= w.k-3; o++ {
		next := w.ds.Snp(int(prefix[o+1]))
		genotype.Combine(w.gts[o-1], next, &w.gts[o])
	}
	return w.gts[w.k-3]
}

// flush scores the first n entries of the contingency/combination banks
// and offers each to the TopN buffer (spec.md §4.6 step 2's "if j == B,
// flush").
func (w *Worker) flush(n int) {
	for b := 0; b < n; b++ {
		score := w.scorer.Score(w.ctBank[b])
		w.top.Add(Result{Combination: w.combs[b], Score: score})
	}
}

// Package mutinfo implements the mutual-information scorer (spec.md §4.4):
// from a 2×3^K contingency table, it computes I(X;Y) between the joint
// genotype X and the binary phenotype Y, in single precision.
package mutinfo

import (
	"math"

	"github.com/grailbio/epistasis/genotype"
)

// Scorer holds the dataset-wide quantities the source precomputes once
// (inv_N and H_Y) so that scoring one combination never recomputes them.
type Scorer struct {
	invN float32
	hY   float32
}

// NewScorer builds a Scorer for a dataset with the given case/control
// sample counts.
func NewScorer(cases, ctrls uint64) Scorer {
	n := float64(cases + ctrls)
	pCase := float64(cases) / n
	pCtrl := float64(ctrls) / n
	hy := -pCase*logOrZero(pCase) - pCtrl*logOrZero(pCtrl)
	return Scorer{invN: float32(1 / n), hY: float32(hy)}
}

// NewScorerFromDataset is a convenience wrapper for the common case of
// scoring combinations drawn from a single genotype.Dataset.
func NewScorerFromDataset(ds *genotype.Dataset) Scorer {
	return NewScorer(ds.Cases, ds.Ctrls)
}

func logOrZero(p float64) float64 {
	if p == 0 {
		return 0
	}
	return math.Log(p)
}

// contribution computes f(p) = -p*log(p), with f(0) := 0, as a mask-blend
// rather than a branch: it substitutes 1 for p before taking the log (so
// log never sees a zero argument) and then zeroes the result where p was
// actually zero. spec.md §4.4 requires this shape specifically so a SIMD
// port can keep every lane active; in the scalar Go code below the only
// test on p is the comparison that builds the mask, and the log and the
// product always run.
func contribution(p float32) float32 {
	isZero := float32(0)
	if p == 0 {
		isZero = 1
	}
	guarded := p + isZero
	return -p * float32(math.Log(float64(guarded))) * (1 - isZero)
}

// Score computes I(X;Y) for the given contingency table. The two
// accumulators (hXY and hX) are summed in a single fixed left-to-right
// pass over the cells, per spec.md §4.4's determinism requirement:
// "accumulators MUST all be summed at the end ... in a fixed order."
func (s Scorer) Score(ct *genotype.ContingencyTable) float32 {
	var hXY, hX float32
	for i := 0; i < ct.Rows; i++ {
		pc := float32(ct.Cases[i]) * s.invN
		pt := float32(ct.Ctrls[i]) * s.invN
		pj := pc + pt
		hXY += contribution(pc) + contribution(pt)
		hX += contribution(pj)
	}
	return hX + s.hY - hXY
}

package mutinfo

import (
	"math"
	"testing"

	"github.com/grailbio/epistasis/genotype"
	"github.com/stretchr/testify/assert"
)

func ctFromCounts(k int, cases, ctrls []uint32) *genotype.ContingencyTable {
	ct := genotype.NewContingencyTable(k)
	copy(ct.Cases, cases)
	copy(ct.Ctrls, ctrls)
	return ct
}

func TestMIBoundaryZeroWhenProportional(t *testing.T) {
	// spec.md §8 property 8: equal cases:ctrls ratio in every cell gives
	// I == 0 up to float32 rounding.
	s := NewScorer(600, 600)
	ct := ctFromCounts(2, []uint32{100, 100, 100, 100, 100, 100, 0, 0, 0},
		[]uint32{100, 100, 100, 100, 100, 100, 0, 0, 0})
	got := s.Score(ct)
	assert.InDelta(t, 0, got, 1e-5)
}

func TestMISeparationEqualsHY(t *testing.T) {
	// spec.md §8 property 9: a cell assignment that perfectly separates
	// cases from controls gives I == H_Y exactly (up to float32 rounding).
	cases, ctrls := uint64(400), uint64(900)
	s := NewScorer(cases, ctrls)
	ct := genotype.NewContingencyTable(2)
	ct.Cases[0] = uint32(cases)
	ct.Ctrls[1] = uint32(ctrls)
	got := s.Score(ct)

	n := float64(cases + ctrls)
	pCase, pCtrl := float64(cases)/n, float64(ctrls)/n
	hy := float32(-pCase*math.Log(pCase) - pCtrl*math.Log(pCtrl))
	assert.InDelta(t, hy, got, 1e-4)
}

func TestPerfectMarkerScenario(t *testing.T) {
	// spec.md §8 scenario S3: a SNP that is a perfect proxy for phenotype,
	// combined with a uniform SNP, scores H_Y ~= log(2).
	cases, ctrls := uint64(8), uint64(8)
	s := NewScorer(cases, ctrls)
	// SNP0 is the phenotype: class 0 -> all cases, class 1 -> all ctrls.
	snp0 := genotype.NewGenotypeTable(1, genotype.WordsForSamples(cases), genotype.WordsForSamples(ctrls))
	for i := uint64(0); i < cases; i++ {
		snp0.SetCase(0, i)
	}
	for i := uint64(0); i < ctrls; i++ {
		snp0.SetCtrl(1, i)
	}
	// SNP1 is uniform across classes, independent of phenotype.
	snp1 := genotype.NewGenotypeTable(1, genotype.WordsForSamples(cases), genotype.WordsForSamples(ctrls))
	for i := uint64(0); i < cases; i++ {
		snp1.SetCase(int(i%3), i)
	}
	for i := uint64(0); i < ctrls; i++ {
		snp1.SetCtrl(int(i%3), i)
	}

	ct := genotype.NewContingencyTable(2)
	genotype.CombineAndPopcount(snp0, snp1, ct)
	got := s.Score(ct)
	assert.InDelta(t, math.Log(2), got, 1e-3)
}

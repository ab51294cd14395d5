// Package genotype implements the packed bit representation of genotype
// data used by the epistasis search: the arena allocator, the per-SNP and
// per-combination genotype tables, the AND-based combine kernels, and the
// contingency tables the combine-and-popcount kernel produces.
package genotype

import "github.com/pkg/errors"

// WordBits is the width, in bits, of one storage word. The search packs
// genotype bitsets into uint64 words so that math/bits.OnesCount64 and the
// word-blocked kernels below operate on native machine words.
const WordBits = 64

// WordsForSamples returns the number of WordBits-wide words needed to hold
// one bitset row over n samples, with the trailing bits of the last word
// left for the caller to keep at zero.
func WordsForSamples(n uint64) int {
	return int((n + WordBits - 1) / WordBits)
}

// Rows returns 3^k, the row count of a GenotypeTable or ContingencyTable of
// order k.
func Rows(k int) int {
	r := 1
	for i := 0; i < k; i++ {
		r *= 3
	}
	return r
}

// Arena is a single backing allocation sliced into n logical GenotypeTables
// of the same order k, so that traversing the n tables in order walks
// memory with a predictable stride. This is the make_array(N, K, Wc, Wt)
// factory of the source design: one allocation serves every table,
// avoiding per-table fragmentation and keeping the dataset's SNP tables
// contiguous for the L2-cache streaming the depth-first search relies on.
type Arena struct {
	k          int
	rows       int
	casesWords int
	ctrlsWords int
	cases      []uint64
	ctrls      []uint64
}

// NewArena allocates storage for n GenotypeTables of order k, each with the
// given per-row word counts. It returns an error rather than panicking on
// an unreasonable request, so that callers at the edge of the system
// (notably the dataset loader, on attacker- or typo-controlled input) can
// report a clean diagnostic instead of crashing the process.
func NewArena(n, k, casesWords, ctrlsWords int) (*Arena, error) {
	if n < 0 || k < 0 || casesWords < 0 || ctrlsWords < 0 {
		return nil, errors.Errorf("genotype: invalid arena shape n=%d k=%d casesWords=%d ctrlsWords=%d", n, k, casesWords, ctrlsWords)
	}
	rows := Rows(k)
	casesLen := int64(n) * int64(rows) * int64(casesWords)
	ctrlsLen := int64(n) * int64(rows) * int64(ctrlsWords)
	if casesLen < 0 || ctrlsLen < 0 || casesLen > maxArenaWords || ctrlsLen > maxArenaWords {
		return nil, errors.Errorf("genotype: arena allocation too large (n=%d k=%d)", n, k)
	}
	a := &Arena{k: k, rows: rows, casesWords: casesWords, ctrlsWords: ctrlsWords}
	a.cases = make([]uint64, casesLen)
	a.ctrls = make([]uint64, ctrlsLen)
	return a, nil
}

// maxArenaWords bounds a single arena allocation so that a pathological
// shape fails with a reportable error instead of exhausting memory; it is
// far above any realistic dataset (spec.md's own worked example, M=1e4
// N=1e3 K=5, is several orders of magnitude below this).
const maxArenaWords = 1 << 40

// Len returns the number of tables the arena holds.
func (a *Arena) Len() int {
	if a.rows == 0 || (a.casesWords == 0 && a.ctrlsWords == 0) {
		return 0
	}
	perTable := a.rows * (a.casesWords + a.ctrlsWords)
	if perTable == 0 {
		return 0
	}
	return (len(a.cases) + len(a.ctrls)) / perTable
}

// Table returns a non-owning GenotypeTable view of the i'th table in the
// arena. The returned table borrows rows from the arena; its lifetime must
// not outlive the arena (see spec.md §9's note on arena ownership).
func (a *Arena) Table(i int) GenotypeTable {
	caseOff := i * a.rows * a.casesWords
	ctrlOff := i * a.rows * a.ctrlsWords
	return GenotypeTable{
		K:          a.k,
		Rows:       a.rows,
		CasesWords: a.casesWords,
		CtrlsWords: a.ctrlsWords,
		Cases:      a.cases[caseOff : caseOff+a.rows*a.casesWords],
		Ctrls:      a.ctrls[ctrlOff : ctrlOff+a.rows*a.ctrlsWords],
	}
}

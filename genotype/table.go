package genotype

// GenotypeTable is the packed bit representation of the joint genotype
// distribution for an ordered K-tuple of SNPs: Rows (= 3^K) bitset rows,
// each split into a cases segment and a controls segment. A SnpTable is
// simply a GenotypeTable of order 1.
//
// A table either borrows its Cases/Ctrls slices from an Arena (the dataset's
// per-SNP tables all come from one Arena, per make_array) or owns them
// outright (the per-worker intermediate prefix tables allocated by
// NewGenotypeTable). Go's garbage collector keeps the backing array alive
// for as long as any table descriptor references it, which is the role the
// source's shared_ptr-held arena plays explicitly.
type GenotypeTable struct {
	K          int
	Rows       int // 3^K
	CasesWords int
	CtrlsWords int
	Cases      []uint64
	Ctrls      []uint64
}

// SnpTable is the K=1 case: one SNP's three genotype-class bitsets.
type SnpTable = GenotypeTable

// NewGenotypeTable allocates a single, independently-owned table of order k.
// This is used for the per-worker intermediate prefix tables of the
// depth-first search (spec.md §4.6's gts), which are reused across many
// combinations and so are not worth carving from a shared Arena.
func NewGenotypeTable(k, casesWords, ctrlsWords int) GenotypeTable {
	rows := Rows(k)
	return GenotypeTable{
		K:          k,
		Rows:       rows,
		CasesWords: casesWords,
		CtrlsWords: ctrlsWords,
		Cases:      make([]uint64, rows*casesWords),
		Ctrls:      make([]uint64, rows*ctrlsWords),
	}
}

// CaseRow returns the i'th row of the cases segment.
func (t GenotypeTable) CaseRow(i int) []uint64 {
	off := i * t.CasesWords
	return t.Cases[off : off+t.CasesWords]
}

// CtrlRow returns the i'th row of the controls segment.
func (t GenotypeTable) CtrlRow(i int) []uint64 {
	off := i * t.CtrlsWords
	return t.Ctrls[off : off+t.CtrlsWords]
}

// SetCase sets sample bit idx (0-based within the cases segment) to 1 in
// row class. It is used only by dataset loaders, never in the hot search
// path.
func (t GenotypeTable) SetCase(class int, idx uint64) {
	row := t.CaseRow(class)
	row[idx/WordBits] |= 1 << (idx % WordBits)
}

// SetCtrl is the controls-segment analogue of SetCase.
func (t GenotypeTable) SetCtrl(class int, idx uint64) {
	row := t.CtrlRow(class)
	row[idx/WordBits] |= 1 << (idx % WordBits)
}

// RowSum returns popcount(b[0])+popcount(b[1])+popcount(b[2]) for the
// cases segment when cases is true, or the controls segment otherwise.
// Meaningful for a SnpTable (K=1, one row per genotype class); it is the
// direct implementation of spec.md §8 property 1 (row sum invariant) and
// is cheap enough to call from loader validation as well as tests.
func (t GenotypeTable) RowSum(cases bool) int {
	sum := 0
	for i := 0; i < t.Rows; i++ {
		var row []uint64
		if cases {
			row = t.CaseRow(i)
		} else {
			row = t.CtrlRow(i)
		}
		sum += popcountAnd(row, row)
	}
	return sum
}

package genotype

// ContingencyTable is the 2×3^K integer reduction of a GenotypeTable of
// order K: one case count and one control count per joint-genotype cell.
// Rows is the logical row count (3^K); PaddedRows may be larger so the
// backing arrays are a multiple of a SIMD width, with the extra cells kept
// at zero by CombineAndPopcount.
type ContingencyTable struct {
	K          int
	Rows       int
	PaddedRows int
	Cases      []uint32
	Ctrls      []uint32
}

// NewContingencyTable allocates a table of order k with no padding beyond
// the natural 3^k row count.
func NewContingencyTable(k int) *ContingencyTable {
	return NewPaddedContingencyTable(k, Rows(k))
}

// NewPaddedContingencyTable allocates a table of order k whose backing
// arrays hold paddedRows cells (paddedRows must be >= 3^k); the extra
// cells are zeroed and CombineAndPopcount keeps them that way.
func NewPaddedContingencyTable(k, paddedRows int) *ContingencyTable {
	rows := Rows(k)
	if paddedRows < rows {
		paddedRows = rows
	}
	return &ContingencyTable{
		K:          k,
		Rows:       rows,
		PaddedRows: paddedRows,
		Cases:      make([]uint32, paddedRows),
		Ctrls:      make([]uint32, paddedRows),
	}
}

// SumCases returns the sum of the real (unpadded) case cells; used by
// tests to check spec.md §8 property 2 (contingency sum).
func (ct *ContingencyTable) SumCases() uint64 {
	var sum uint64
	for i := 0; i < ct.Rows; i++ {
		sum += uint64(ct.Cases[i])
	}
	return sum
}

// SumCtrls is the controls-segment analogue of SumCases.
func (ct *ContingencyTable) SumCtrls() uint64 {
	var sum uint64
	for i := 0; i < ct.Rows; i++ {
		sum += uint64(ct.Ctrls[i])
	}
	return sum
}

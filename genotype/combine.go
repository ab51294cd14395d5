package genotype

// Combine implements the C2 combine kernel: out[i*3+j] = t1[i] AND snp2[j]
// over every row of t1 (order K1) and every one of snp2's 3 rows,
// producing a table of order K1+1. out must already be sized for that
// order (Rows == t1.Rows*3) with matching CasesWords/CtrlsWords; callers
// reuse the same out across many combinations (spec.md §4.6's gts), so
// Combine never allocates.
func Combine(t1, snp2 GenotypeTable, out *GenotypeTable) {
	for i := 0; i < t1.Rows; i++ {
		t1Case := t1.CaseRow(i)
		t1Ctrl := t1.CtrlRow(i)
		for j := 0; j < 3; j++ {
			row := i*3 + j
			andInto(out.CaseRow(row), t1Case, snp2.CaseRow(j))
			andInto(out.CtrlRow(row), t1Ctrl, snp2.CtrlRow(j))
		}
	}
}

// andInto computes dst[w] = a[w] & b[w] for every word. It is the
// non-reducing counterpart of popcountAnd: the combine kernel (C2) needs
// the full AND result, not just its popcount (that's C3, CombineAndPopcount
// below). Word-blocking it four at a time matches popcountAndUnrolled's
// loop shape so the compiler schedules both consistently.
func andInto(dst, a, b []uint64) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = a[i] & b[i]
		dst[i+1] = a[i+1] & b[i+1]
		dst[i+2] = a[i+2] & b[i+2]
		dst[i+3] = a[i+3] & b[i+3]
	}
	for ; i < n; i++ {
		dst[i] = a[i] & b[i]
	}
}

// CombineAndPopcount implements the C3 kernel: for every row i of t1 (order
// K1) and every row j of snp2 (a SnpTable), it reduces AND(t1[i], snp2[j])
// to a population count and writes it into out.Cases[i*3+j] /
// out.Ctrls[i*3+j]. Padding cells beyond the real 3^(K1+1) rows (if out was
// allocated with padding) are zeroed. out is scratch reused across the
// leaf sweep (spec.md §4.6's ct_bank), so this never allocates either.
func CombineAndPopcount(t1, snp2 GenotypeTable, out *ContingencyTable) {
	for i := 0; i < t1.Rows; i++ {
		t1Case := t1.CaseRow(i)
		t1Ctrl := t1.CtrlRow(i)
		for j := 0; j < 3; j++ {
			row := i*3 + j
			out.Cases[row] = uint32(popcountAnd(t1Case, snp2.CaseRow(j)))
			out.Ctrls[row] = uint32(popcountAnd(t1Ctrl, snp2.CtrlRow(j)))
		}
	}
	for row := t1.Rows * 3; row < out.PaddedRows; row++ {
		out.Cases[row] = 0
		out.Ctrls[row] = 0
	}
}

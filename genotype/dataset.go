package genotype

import "github.com/pkg/errors"

// MaxSnps is the largest SNP count the search accepts (spec.md §7, §8 S6):
// NewDataset rejects any larger count as input too large.
const MaxSnps = 1<<31 - 1

// Dataset is the immutable, shared input to the search: a sample count
// split into cases/controls, and the packed per-SNP genotype tables those
// samples were called at. It is constructed once (by a loader in the
// dataset package) and then read-only for the lifetime of the search,
// shared by reference across every worker thread within a process and
// independently re-loaded on every rank (spec.md §5).
type Dataset struct {
	Cases uint64
	Ctrls uint64
	arena *Arena
	snps  int
}

// NewDataset allocates a Dataset for the given sample counts and SNP
// count, ready for a loader to fill in with SetGenotype.
func NewDataset(cases, ctrls uint64, snps int) (*Dataset, error) {
	if snps < 0 {
		return nil, errors.Errorf("genotype: negative snp count %d", snps)
	}
	if snps > MaxSnps {
		return nil, errors.Errorf("genotype: input too large: %d snps exceeds the %d limit", snps, MaxSnps)
	}
	arena, err := NewArena(snps, 1, WordsForSamples(cases), WordsForSamples(ctrls))
	if err != nil {
		return nil, errors.Wrap(err, "genotype: allocating dataset arena")
	}
	return &Dataset{Cases: cases, Ctrls: ctrls, arena: arena, snps: snps}, nil
}

// Snps returns the number of SNPs (M in spec.md's notation).
func (d *Dataset) Snps() int { return d.snps }

// CasesWords and CtrlsWords return the per-row word counts of every SNP
// table in this dataset; search workers use them to size prefix tables
// and contingency tables without re-deriving ceil(N/64) everywhere.
func (d *Dataset) CasesWords() int { return d.arena.casesWords }
func (d *Dataset) CtrlsWords() int { return d.arena.ctrlsWords }

// Snp returns the i'th SNP's packed genotype table.
func (d *Dataset) Snp(i int) SnpTable { return d.arena.Table(i) }

// SetGenotype records that sample idx (0-based within its case/control
// segment) has genotype class (0, 1, or 2) at SNP snp. Loaders call this
// once per (snp, sample) pair while filling in a freshly-allocated
// Dataset; the search itself never mutates a Dataset.
func (d *Dataset) SetGenotype(snp int, cases bool, idx uint64, class int) {
	t := d.Snp(snp)
	if cases {
		t.SetCase(class, idx)
	} else {
		t.SetCtrl(class, idx)
	}
}

package dataset

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/grailbio/epistasis/genotype"
	"github.com/pkg/errors"
)

// sample is one TFAM row: only the phenotype column matters to the search,
// so it is the only column kept; the other TFAM columns are read past and
// discarded.
type sample struct {
	ph int // 1 = control, 2 = case
}

func readSamples(path string) ([]sample, int, int, error) {
	f, err := openMaybeGzip(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	var samples []sample
	cases, ctrls := 0, 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) < 6 {
			return nil, 0, 0, errors.Wrapf(ErrBadPhenotype, "%s:%d: expected 6 columns, got %d", path, line, len(fields))
		}
		ph, err := strconv.Atoi(fields[5])
		if err != nil || (ph != 1 && ph != 2) {
			return nil, 0, 0, errors.Wrapf(ErrBadPhenotype, "%s:%d: phenotype %q is not 1 (control) or 2 (case)", path, line, fields[5])
		}
		samples = append(samples, sample{ph: ph})
		if ph == 1 {
			ctrls++
		} else {
			cases++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, 0, errors.Wrapf(err, "%s: reading samples", path)
	}
	return samples, cases, ctrls, nil
}

// LoadTPED builds a Dataset from a PLINK TPED/TFAM pair
// (https://www.cog-genomics.org/plink/1.9/formats#tped), following
// original_source/include/fiuncho/dataset/TPEDFile.hpp: the TFAM supplies
// one phenotype-bearing row per sample, the TPED supplies one row per SNP
// with two allele characters per sample; the minor allele (the one with
// the lower total count) becomes the 1-allele when counting each sample's
// genotype class in {0, 1, 2}.
func LoadTPED(tpedPath, tfamPath string) (*genotype.Dataset, error) {
	samples, cases, ctrls, err := readSamples(tfamPath)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.Wrapf(ErrCountMismatch, "%s: no samples", tfamPath)
	}

	f, err := openMaybeGzip(tpedPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Buffer every variant line so the dataset's arena can be allocated
	// once the total SNP count is known; gzip-compressed input isn't
	// seekable, so a two-pass count-then-rewind isn't an option here.
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			lines = append(lines, scanner.Text())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: reading variants", tpedPath)
	}

	ds, err := genotype.NewDataset(uint64(cases), uint64(ctrls), len(lines))
	if err != nil {
		return nil, err
	}

	for snpIdx, rawLine := range lines {
		fields := strings.Fields(rawLine)
		alleles := fields[4:]
		if len(alleles) != 2*len(samples) {
			return nil, errors.Wrapf(ErrCountMismatch, "%s:%d: %d alleles, expected %d for %d samples", tpedPath, snpIdx+1, len(alleles), 2*len(samples), len(samples))
		}
		minor, err := minorAllele(alleles)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", tpedPath, snpIdx+1)
		}
		caseIdx, ctrlIdx := uint64(0), uint64(0)
		for i, s := range samples {
			class := 0
			if alleles[2*i] == minor {
				class++
			}
			if alleles[2*i+1] == minor {
				class++
			}
			if s.ph == 1 {
				ds.SetGenotype(snpIdx, false, ctrlIdx, class)
				ctrlIdx++
			} else {
				ds.SetGenotype(snpIdx, true, caseIdx, class)
				caseIdx++
			}
		}
	}
	return ds, nil
}

// minorAllele picks the allele character with the lower total count across
// alleles (ties broken by the lexicographically smaller character, for a
// deterministic result independent of map iteration order, which the
// original's std::map-based count happens to not guarantee).
func minorAllele(alleles []string) (string, error) {
	counts := map[string]int{}
	for _, a := range alleles {
		switch a {
		case "A", "C", "G", "T":
		default:
			return "", errors.Wrapf(ErrBadNucleotide, "invalid nucleotide %q", a)
		}
		counts[a]++
	}
	var best string
	bestCount := -1
	for a, c := range counts {
		if bestCount == -1 || c < bestCount || (c == bestCount && a < best) {
			best, bestCount = a, c
		}
	}
	return best, nil
}

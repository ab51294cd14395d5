package dataset

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/grailbio/epistasis/genotype"
	"github.com/pkg/errors"
)

// LoadRAW builds a Dataset from a single whitespace-separated file, one
// row per sample, following original_source/include/fiuncho/dataset/RAWFile.hpp:
// an optional leading FID/IID/PAT/MAT/SEX sample-information block, one
// phenotype column (named PHENOTYPE, PLINK convention: 1=control,
// 2=case; or Class, GAMETES convention: 0=control, 1=case), and one
// integer genotype column per SNP.
func LoadRAW(path string) (*genotype.Dataset, error) {
	f, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	if !scanner.Scan() {
		return nil, errors.Wrapf(ErrCountMismatch, "%s: empty file", path)
	}
	header := strings.Fields(scanner.Text())
	hasInfo, phenoCol, gametes, err := parseRawHeader(header)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	firstDataCol := 0
	if hasInfo {
		firstDataCol = 5
	}
	numVariants := len(header) - firstDataCol - 1 // minus the phenotype column

	type row struct {
		ph        int
		genotypes []int
	}
	var rows []row
	cases, ctrls := 0, 0
	line := 1
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) != len(header) {
			return nil, errors.Wrapf(ErrCountMismatch, "%s:%d: %d columns, expected %d", path, line, len(fields), len(header))
		}
		rawPh, err := strconv.Atoi(fields[phenoCol])
		if err != nil {
			return nil, errors.Wrapf(ErrBadPhenotype, "%s:%d: phenotype %q", path, line, fields[phenoCol])
		}
		ph := rawPh
		if gametes {
			ph++ // GAMETES: 0=control,1=case -> PLINK 1=control,2=case
		}
		if ph != 1 && ph != 2 {
			return nil, errors.Wrapf(ErrBadPhenotype, "%s:%d: phenotype %q out of range", path, line, fields[phenoCol])
		}
		genotypes := make([]int, 0, numVariants)
		for i := firstDataCol; i < len(fields); i++ {
			if i == phenoCol {
				continue
			}
			g, err := strconv.Atoi(fields[i])
			if err != nil || g < 0 || g > 2 {
				return nil, errors.Wrapf(ErrCountMismatch, "%s:%d: genotype %q is not in {0,1,2}", path, line, fields[i])
			}
			genotypes = append(genotypes, g)
		}
		if len(genotypes) != numVariants {
			return nil, errors.Wrapf(ErrCountMismatch, "%s:%d: %d genotypes, expected %d", path, line, len(genotypes), numVariants)
		}
		rows = append(rows, row{ph: ph, genotypes: genotypes})
		if ph == 1 {
			ctrls++
		} else {
			cases++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: reading samples", path)
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(ErrCountMismatch, "%s: no samples", path)
	}

	ds, err := genotype.NewDataset(uint64(cases), uint64(ctrls), numVariants)
	if err != nil {
		return nil, err
	}
	caseIdx, ctrlIdx := uint64(0), uint64(0)
	for _, r := range rows {
		var idx uint64
		isCase := r.ph == 2
		if isCase {
			idx = caseIdx
			caseIdx++
		} else {
			idx = ctrlIdx
			ctrlIdx++
		}
		for snp, g := range r.genotypes {
			ds.SetGenotype(snp, isCase, idx, g)
		}
	}
	return ds, nil
}

// parseRawHeader identifies the sample-information block (present iff the
// first five columns are FID, IID, PAT, MAT, SEX), locates the phenotype
// column (named PHENOTYPE for PLINK raw files, Class for GAMETES), and
// reports which convention applies.
func parseRawHeader(header []string) (hasInfo bool, phenoCol int, gametes bool, err error) {
	infoCols := []string{"FID", "IID", "PAT", "MAT", "SEX"}
	hasInfo = len(header) >= 5
	for i := 0; hasInfo && i < 5; i++ {
		if header[i] != infoCols[i] {
			hasInfo = false
		}
	}
	found := false
	for i, h := range header {
		switch h {
		case "PHENOTYPE":
			if found {
				return false, 0, false, errors.New("dataset: multiple phenotype columns")
			}
			phenoCol, gametes, found = i, false, true
		case "Class":
			if found {
				return false, 0, false, errors.New("dataset: multiple phenotype columns")
			}
			phenoCol, gametes, found = i, true, true
		}
	}
	if !found {
		return false, 0, false, errors.New("dataset: no PHENOTYPE or Class column found")
	}
	return hasInfo, phenoCol, gametes, nil
}

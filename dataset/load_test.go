package dataset

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/epistasis/genotype"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tempDir follows the teacher's markduplicates/testutils.go convention
// of grailbio/testutil.TempDir over the stdlib t.TempDir(), registering
// the returned cleanup with t.Cleanup.
func tempDir(t *testing.T) string {
	dir, cleanup := testutil.TempDir(t, "", "")
	t.Cleanup(cleanup)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzipFile(t *testing.T, dir, name, content string) string {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestLoadRAWPlinkConvention(t *testing.T) {
	dir := tempDir(t)
	content := "FID IID PAT MAT SEX rs1 rs2 PHENOTYPE\n" +
		"1 1 0 0 1 0 1 2\n" +
		"1 2 0 0 2 2 0 1\n" +
		"1 3 0 0 1 1 1 2\n"
	path := writeFile(t, dir, "data.raw", content)

	ds, err := LoadRAW(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), ds.Cases)
	assert.Equal(t, uint64(1), ds.Ctrls)
	assert.Equal(t, 2, ds.Snps())
}

func TestLoadRAWGametesConvention(t *testing.T) {
	dir := tempDir(t)
	content := "N0 N1 Class\n0 1 1\n1 1 0\n0 0 1\n"
	path := writeFile(t, dir, "data.raw", content)

	ds, err := LoadRAW(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), ds.Cases)
	assert.Equal(t, uint64(1), ds.Ctrls)
	assert.Equal(t, 2, ds.Snps())
}

func TestLoadRAWBadPhenotype(t *testing.T) {
	dir := tempDir(t)
	content := "rs1 PHENOTYPE\n0 9\n"
	path := writeFile(t, dir, "bad.raw", content)
	_, err := LoadRAW(path)
	require.ErrorIs(t, err, ErrBadPhenotype)
}

func TestLoadTPED(t *testing.T) {
	dir := tempDir(t)
	tfam := writeFile(t, dir, "d.tfam", "1 1 0 0 1 2\n1 2 0 0 2 1\n1 3 0 0 1 2\n1 4 0 0 1 1\n")
	// Two SNPs, four samples (8 alleles each row).
	tped := writeFile(t, dir, "d.tped",
		"1 rs1 0 100 A A A C C C A A\n"+
			"1 rs2 0 200 G G G G T T G G\n")
	ds, err := LoadTPED(tped, tfam)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), ds.Cases)
	assert.Equal(t, uint64(2), ds.Ctrls)
	assert.Equal(t, 2, ds.Snps())

	// spec.md §8 property 1: row sum invariant.
	snp0 := ds.Snp(0)
	assert.Equal(t, 2, snp0.RowSum(true))
	assert.Equal(t, 2, snp0.RowSum(false))
}

func TestLoadTPEDBadNucleotide(t *testing.T) {
	dir := tempDir(t)
	tfam := writeFile(t, dir, "d.tfam", "1 1 0 0 1 2\n1 2 0 0 2 1\n")
	tped := writeFile(t, dir, "d.tped", "1 rs1 0 100 A X A A\n")
	_, err := LoadTPED(tped, tfam)
	require.ErrorIs(t, err, ErrBadNucleotide)
}

func TestLoadRAWGzipped(t *testing.T) {
	dir := tempDir(t)
	content := "FID IID PAT MAT SEX rs1 rs2 PHENOTYPE\n" +
		"1 1 0 0 1 0 1 2\n" +
		"1 2 0 0 2 2 0 1\n" +
		"1 3 0 0 1 1 1 2\n"
	path := writeGzipFile(t, dir, "data.raw.gz", content)

	ds, err := LoadRAW(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), ds.Cases)
	assert.Equal(t, uint64(1), ds.Ctrls)
	assert.Equal(t, 2, ds.Snps())
}

func TestLoadTPEDGzipped(t *testing.T) {
	dir := tempDir(t)
	tfam := writeGzipFile(t, dir, "d.tfam.gz", "1 1 0 0 1 2\n1 2 0 0 2 1\n1 3 0 0 1 2\n1 4 0 0 1 1\n")
	tped := writeGzipFile(t, dir, "d.tped.gz",
		"1 rs1 0 100 A A A C C C A A\n"+
			"1 rs2 0 200 G G G G T T G G\n")
	ds, err := LoadTPED(tped, tfam)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), ds.Cases)
	assert.Equal(t, uint64(2), ds.Ctrls)
	assert.Equal(t, 2, ds.Snps())
}

func TestLoadDispatchGzipped(t *testing.T) {
	dir := tempDir(t)
	tfam := writeGzipFile(t, dir, "d.tfam.gz", "1 1 0 0 1 2\n1 2 0 0 2 1\n")
	tped := writeGzipFile(t, dir, "d.tped.gz", "1 rs1 0 100 A A A A\n")

	ds, err := Load(tped, tfam)
	require.NoError(t, err)
	require.IsType(t, &genotype.Dataset{}, ds)
}

func TestLoadDispatch(t *testing.T) {
	dir := tempDir(t)
	tfam := writeFile(t, dir, "d.tfam", "1 1 0 0 1 2\n1 2 0 0 2 1\n")
	tped := writeFile(t, dir, "d.tped", "1 rs1 0 100 A A A A\n")

	ds, err := Load(tped, tfam)
	require.NoError(t, err)
	require.IsType(t, &genotype.Dataset{}, ds)

	ds, err = Load(tfam, tped) // order-independent
	require.NoError(t, err)
	require.IsType(t, &genotype.Dataset{}, ds)

	_, err = Load("x.vcf")
	require.ErrorIs(t, err, ErrUnrecognisedExtension)
}

package genotype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetArenaStride(t *testing.T) {
	ds, err := NewDataset(10, 20, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Snps())
	for i := 0; i < ds.Snps(); i++ {
		ds.SetGenotype(i, true, 0, i%3)
	}
	for i := 0; i < ds.Snps(); i++ {
		row := ds.Snp(i).CaseRow(i % 3)
		assert.NotZero(t, row[0], "snp %d row %d should have bit 0 set", i, i%3)
	}
}

func TestLargeMRejected(t *testing.T) {
	// spec.md §8 scenario S6: M = 2^31 is rejected at construction.
	_, err := NewDataset(1, 1, 1<<31)
	require.Error(t, err)
}

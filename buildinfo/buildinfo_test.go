package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectReportsPopcountKernel(t *testing.T) {
	info := Collect()
	assert.Equal(t, 64, info.WordBits)
	assert.NotEmpty(t, info.PopcountKernel)
	assert.Contains(t, info.String(), info.PopcountKernel)
}

func TestDatasetFingerprintDeterministic(t *testing.T) {
	a := DatasetFingerprint(600, 1300, 10)
	b := DatasetFingerprint(600, 1300, 10)
	c := DatasetFingerprint(600, 1300, 11)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

// Package buildinfo reports process identity and library version
// diagnostics, the Go-idiomatic stand-in for original_source's
// Cpu_node_information / Node_information startup banner
// (original_source/src/utils/Cpu_node_information.cpp,
// Node_information.cpp): word width, SIMD kernel dispatch choice, thread
// count, and module version, minus the MPI rank/hostname enumeration
// those files do (rank.MergeAndTruncate's caller logs the rank id and
// rank count instead, see cmd/epifind).
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/dgryski/go-farm"
	"github.com/grailbio/epistasis/genotype"
)

// Info is the set of diagnostics reported on -version and logged once at
// process start.
type Info struct {
	Version        string
	WordBits       int
	PopcountKernel string
	GOMAXPROCS     int
}

// Collect gathers the current process's diagnostics.
func Collect() Info {
	version := "(unknown)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		version = bi.Main.Version
	}
	return Info{
		Version:        version,
		WordBits:       genotype.WordBits,
		PopcountKernel: genotype.KernelName(),
		GOMAXPROCS:     runtime.GOMAXPROCS(0),
	}
}

// String renders Info as the single diagnostic line cmd/epifind logs at
// startup.
func (i Info) String() string {
	return fmt.Sprintf("epifind %s: word=%d popcount=%s GOMAXPROCS=%d", i.Version, i.WordBits, i.PopcountKernel, i.GOMAXPROCS)
}

// DatasetFingerprint returns a stable 64-bit fingerprint of a dataset's
// shape, logged alongside Info so that a run can be cross-checked for
// reproducibility across ranks (every rank loads the dataset
// independently, spec.md §5): two ranks that log different fingerprints
// for the "same" input diverged somewhere in the loader or the input
// files themselves. Uses FarmHash (github.com/dgryski/go-farm), the
// non-cryptographic hash the teacher's corpus reaches for when it needs a
// fast, stable fingerprint rather than collision-resistance.
func DatasetFingerprint(cases, ctrls uint64, snps int) uint64 {
	var buf [20]byte
	putUint64(buf[0:8], cases)
	putUint64(buf[8:16], ctrls)
	putUint64(buf[16:20], uint64(snps))
	return farm.Hash64(buf[:])
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < len(b) && i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

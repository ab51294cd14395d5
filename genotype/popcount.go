package genotype

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

// andPopcountFunc reduces the bitwise AND of two equal-length word rows to
// a population count: the total number of set bits in a[w]&b[w] over every
// word w. Every implementation
// below must agree bit-for-bit (see combine_test.go); they differ only in
// how many words they accumulate before reducing to a popcount, which is a
// performance knob per spec.md §4.3, not a semantic one.
type andPopcountFunc func(a, b []uint64) int

// popcountAnd is the kernel the rest of the package calls. It is chosen
// once, at package init, by CPU feature detection — never branched on
// per-call — per spec.md §9's "isolate [the hot kernels] behind a
// trait/capability with uniform semantics so higher layers never branch on
// variant."
var popcountAnd andPopcountFunc

// kernelName records which kernel SelectPopcountKernel chose, for
// diagnostics (buildinfo reports it alongside the word width).
var kernelName string

func init() {
	SelectPopcountKernel()
}

// SelectPopcountKernel re-runs the capability probe and installs the
// fastest available kernel. It runs automatically at package init, and is
// exported so tests can force a specific kernel and compare results.
func SelectPopcountKernel() {
	switch {
	case cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD:
		popcountAnd = popcountAndHarleySeal
		kernelName = "harley-seal"
	case cpu.X86.HasPOPCNT:
		popcountAnd = popcountAndUnrolled
		kernelName = "unrolled"
	default:
		popcountAnd = popcountAndScalar
		kernelName = "scalar"
	}
}

// KernelName reports the name of the currently installed popcount kernel.
func KernelName() string { return kernelName }

// UsePopcountKernel forces a specific kernel by name, for tests that need
// to verify all variants agree. It panics on an unrecognised name, since
// that indicates a test bug rather than a runtime condition.
func UsePopcountKernel(name string) {
	switch name {
	case "scalar":
		popcountAnd = popcountAndScalar
	case "unrolled":
		popcountAnd = popcountAndUnrolled
	case "harley-seal":
		popcountAnd = popcountAndHarleySeal
	default:
		panic("genotype: unknown popcount kernel " + name)
	}
	kernelName = name
}

// popcountAndScalar is the portable correctness oracle: one
// bits.OnesCount64 per word. Every other kernel is a performance variant of
// this one.
func popcountAndScalar(a, b []uint64) int {
	sum := 0
	for i := range a {
		sum += bits.OnesCount64(a[i] & b[i])
	}
	return sum
}

// popcountAndUnrolled accumulates four words per iteration in independent
// registers before reducing, trading a little extra code for fewer
// loop-carried dependencies; analogous to the source's
// gt_popcnt_native_unrolled_errata.cpp.
func popcountAndUnrolled(a, b []uint64) int {
	n := len(a)
	var c0, c1, c2, c3 int
	i := 0
	for ; i+4 <= n; i += 4 {
		c0 += bits.OnesCount64(a[i] & b[i])
		c1 += bits.OnesCount64(a[i+1] & b[i+1])
		c2 += bits.OnesCount64(a[i+2] & b[i+2])
		c3 += bits.OnesCount64(a[i+3] & b[i+3])
	}
	sum := c0 + c1 + c2 + c3
	for ; i < n; i++ {
		sum += bits.OnesCount64(a[i] & b[i])
	}
	return sum
}

// csa is a 3-input, 2-output carry-save adder over one bit position,
// applied here bitwise across a whole word: h holds the carry (weight 2)
// and l the sum (weight 1) of a+b+c in each bit lane.
func csa(a, b, c uint64) (h, l uint64) {
	u := a ^ b
	h = (a & b) | (u & c)
	l = u ^ c
	return
}

// popcountAndHarleySeal is the Harley-Seal popcount-of-AND reduction:
// groups of 16 words are folded through a carry-save-adder tree so that
// only a handful of popcounts (weighted by power-of-two bit-lane
// position) are needed per 16 words, instead of one popcount per word.
// This is the portable-Go rendition of the source's
// src/avx2/gt_popcnt_avx2_hs.cpp; on amd64 the Go compiler's SSA backend
// turns the word-parallel XOR/AND/OR chain into vector instructions
// without any assembly on our part (see DESIGN.md for why this project
// does not hand-write AVX2/AVX-512 assembly).
func popcountAndHarleySeal(a, b []uint64) int {
	n := len(a)
	var ones, twos, fours, eights, sixteens uint64
	total := 0
	i := 0
	and := func(idx int) uint64 { return a[idx] & b[idx] }
	for ; i+16 <= n; i += 16 {
		var twosA, twosB, foursA, foursB, eightsA, eightsB uint64

		twosA, ones = csa(ones, and(i), and(i+1))
		twosB, ones = csa(ones, and(i+2), and(i+3))
		foursA, twos = csa(twos, twosA, twosB)

		twosA, ones = csa(ones, and(i+4), and(i+5))
		twosB, ones = csa(ones, and(i+6), and(i+7))
		foursB, twos = csa(twos, twosA, twosB)
		eightsA, fours = csa(fours, foursA, foursB)

		twosA, ones = csa(ones, and(i+8), and(i+9))
		twosB, ones = csa(ones, and(i+10), and(i+11))
		foursA, twos = csa(twos, twosA, twosB)

		twosA, ones = csa(ones, and(i+12), and(i+13))
		twosB, ones = csa(ones, and(i+14), and(i+15))
		foursB, twos = csa(twos, twosA, twosB)
		eightsB, fours = csa(fours, foursA, foursB)

		sixteens, eights = csa(eights, eightsA, eightsB)
		total += bits.OnesCount64(sixteens)
	}
	total *= 16
	total += 8 * bits.OnesCount64(eights)
	total += 4 * bits.OnesCount64(fours)
	total += 2 * bits.OnesCount64(twos)
	total += bits.OnesCount64(ones)
	for ; i < n; i++ {
		total += bits.OnesCount64(a[i] & b[i])
	}
	return total
}

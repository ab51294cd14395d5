// Package combin implements the lazy combination enumerator of spec.md
// §4.5: a restartable iterator over K-combinations of {0..M-1} in
// reverse-colexicographic order, parameterised by a round-robin
// (step, offset) stride so that the same enumeration can be split across
// any number of workers or ranks without two workers ever visiting the
// same combination.
package combin

// Distribution names a (M, K, step, offset) partition of the C(M, K)
// combinations: the offset-th, (offset+step)-th, (offset+2*step)-th, ...
// combinations in colex order. It is a value, not an iterator; call
// Enumerator to walk it.
type Distribution struct {
	M, K        int
	Step, Offset int
}

// New builds the base Distribution for the whole combination space, before
// any layering.
func New(m, k, step, offset int) Distribution {
	return Distribution{M: m, K: k, Step: step, Offset: offset}
}

// Layer composes a second (step, offset) stride on top of this one,
// following spec.md §4.5: step := step*step2, offset := offset*step2+offset2.
// This is how the rank orchestrator's per-rank Distribution over
// (K-1)-prefixes is further split across that rank's worker threads,
// without either layer knowing about the other.
func (d Distribution) Layer(step2, offset2 int) Distribution {
	return Distribution{
		M:      d.M,
		K:      d.K,
		Step:   d.Step * step2,
		Offset: d.Offset*step2 + offset2,
	}
}

// Enumerator returns a fresh, restartable iterator over this Distribution.
func (d Distribution) Enumerator() *Enumerator {
	return newEnumerator(d.M, d.K, d.Step, d.Offset)
}

// Enumerator is a lazy, restartable input iterator over one Distribution's
// combinations, yielded in colex order. It is not safe for concurrent use;
// each worker owns its own Enumerator.
type Enumerator struct {
	m, k, step int
	c          []uint32
	exhausted  bool
	primed     bool
}

func newEnumerator(m, k, step, offset int) *Enumerator {
	e := &Enumerator{m: m, k: k, step: step}
	e.c = make([]uint32, k)
	for i := range e.c {
		e.c[i] = uint32(i)
	}
	if k > 0 && offset > 0 {
		e.exhausted = !e.advance(offset)
	} else if k > 0 && e.c[k-1] >= uint32(m) {
		e.exhausted = true
	}
	return e
}

// Next advances to the next combination (to the Distribution's first
// combination, on the initial call) and reports whether one exists. Once
// it returns false, it always returns false.
func (e *Enumerator) Next() bool {
	if e.exhausted || e.k == 0 {
		return false
	}
	if !e.primed {
		e.primed = true
		return true
	}
	return e.advance(e.step)
}

// Combination returns the current combination, ascending indices into
// [0, M). The returned slice is owned by the Enumerator and is overwritten
// by the next call to Next; callers that need to retain it must copy it.
func (e *Enumerator) Combination() []uint32 { return e.c }

// advance moves the combination forward by x colex steps (spec.md §4.5's
// "advance by x" operation) and reports whether the result is still a
// valid combination (false means the enumerator ran past {0..M-1} and is
// now exhausted).
func (e *Enumerator) advance(x int) bool {
	k, m := e.k, uint32(e.m)
	e.c[k-1] += uint32(x)
	for e.c[k-1] >= m && e.c[0] < m {
		p := -1
		for i := k - 2; i >= 0; i-- {
			if e.c[i] < m-uint32(k-1-i) {
				p = i
				break
			}
		}
		if p < 0 {
			e.c[0] = m
			break
		}
		e.c[p]++
		for i := p + 1; i < k-1; i++ {
			e.c[i] = e.c[i-1] + 1
		}
		e.c[k-1] += e.c[k-2] + 1 - m
	}
	if e.c[0] >= m {
		e.exhausted = true
		return false
	}
	return true
}

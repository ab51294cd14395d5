// Package resultio implements the output contract of spec.md §6: one
// combination per line, ascending space-separated SNP indices followed
// by the score, already sorted descending by score by the caller.
package resultio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/grailbio/epistasis/search"
	"github.com/pkg/errors"
)

// Write emits results to w, one line per Result, in the order given
// (callers sort with search.SortResults beforehand; Write does not
// re-sort). Exactly len(results) lines are written.
func Write(w io.Writer, results []search.Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		for _, idx := range r.Combination {
			if _, err := fmt.Fprintf(bw, "%d ", idx); err != nil {
				return errors.Wrap(err, "resultio: writing combination")
			}
		}
		if _, err := fmt.Fprintf(bw, "%g\n", r.Score); err != nil {
			return errors.Wrap(err, "resultio: writing score")
		}
	}
	return errors.Wrap(bw.Flush(), "resultio: flushing output")
}

package rank

import (
	"bytes"

	"github.com/grailbio/epistasis/search"
	"github.com/pkg/errors"
)

// MergeAndTruncate implements the tail of spec.md §4.9: serialise local
// (this rank's already-sorted TopN) over t.Gather, and at rank 0
// deserialise every rank's payload, concatenate, sort descending, and
// truncate to n. Every other rank returns (nil, nil), per the section's
// "other ranks return an empty list".
func MergeAndTruncate(t Transport, local []search.Result, n int) ([]search.Result, error) {
	var buf bytes.Buffer
	if err := EncodeResults(&buf, local); err != nil {
		return nil, errors.Wrap(err, "rank: encoding local results")
	}
	payloads, err := t.Gather(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "rank: gathering results")
	}
	if t.Rank() != 0 {
		return nil, nil
	}
	var all []search.Result
	for i, p := range payloads {
		rs, err := DecodeResults(bytes.NewReader(p))
		if err != nil {
			return nil, errors.Wrapf(err, "rank: decoding payload from rank %d", i)
		}
		all = append(all, rs...)
	}
	search.SortResults(all)
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

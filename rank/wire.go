// Package rank implements the rank orchestrator of spec.md §4.9: the
// outer stride across distributed-memory ranks, each running a local
// search.RunLocal over a (K-1)-prefix Distribution, and the gather/merge
// that combines every rank's sorted results into the final top-n.
package rank

import (
	"encoding/binary"
	"io"

	"github.com/grailbio/epistasis/search"
	"github.com/pkg/errors"
)

// EncodeResults writes results to w in the exact wire format of spec.md
// §6: one record per result, `len:u64_le · indices:u32_le[len] ·
// score:f32_le`. This is intentionally plain encoding/binary rather than
// a general serialization library (gob, protobuf, ...): the format is
// externally mandated byte-for-byte, and encoding/binary reproduces it
// more directly than any encoder that owns its own framing.
func EncodeResults(w io.Writer, results []search.Result) error {
	for _, r := range results {
		if err := binary.Write(w, binary.LittleEndian, uint64(len(r.Combination))); err != nil {
			return errors.Wrap(err, "rank: writing record length")
		}
		if err := binary.Write(w, binary.LittleEndian, r.Combination); err != nil {
			return errors.Wrap(err, "rank: writing combination")
		}
		if err := binary.Write(w, binary.LittleEndian, r.Score); err != nil {
			return errors.Wrap(err, "rank: writing score")
		}
	}
	return nil
}

// DecodeResults reads a stream of records written by EncodeResults until
// r is exhausted (io.EOF at a record boundary ends the stream cleanly;
// any other error, or an EOF mid-record, is reported).
func DecodeResults(r io.Reader) ([]search.Result, error) {
	var out []search.Result
	for {
		var n uint64
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, errors.Wrap(err, "rank: reading record length")
		}
		comb := make([]uint32, n)
		if err := binary.Read(r, binary.LittleEndian, comb); err != nil {
			return nil, errors.Wrap(err, "rank: reading combination")
		}
		var score float32
		if err := binary.Read(r, binary.LittleEndian, &score); err != nil {
			return nil, errors.Wrap(err, "rank: reading score")
		}
		out = append(out, search.Result{Combination: comb, Score: score})
	}
}

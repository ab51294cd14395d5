package dataset

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// openMaybeGzip opens path, transparently decompressing it if its name
// ends in ".gz" — the search itself only ever sees a plain io.Reader, so
// a gzip-compressed TPED/TFAM/RAW input reads identically to an
// uncompressed one. Uses klauspost/compress/gzip, the teacher's own
// drop-in gzip implementation (encoding/converter, encoding/pam use it
// throughout for exactly this reason: a faster decompressor behind the
// same io.Reader contract as compress/gzip).
func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrFileUnreadable, "%s: %v", path, err)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(ErrFileUnreadable, "%s: %v", path, err)
	}
	return &gzipReadCloser{gz: gz, f: f}, nil
}

// gzipReadCloser closes both the gzip reader and the underlying file.
type gzipReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	fErr := g.f.Close()
	if gzErr != nil {
		return gzErr
	}
	return fErr
}

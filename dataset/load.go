// Package dataset implements the loader contract of spec.md §6: recognise
// an input file's extension, parse it into a populated genotype.Dataset,
// and surface the five named error kinds as sentinel errors (errors.go).
package dataset

import (
	"path/filepath"
	"strings"

	"github.com/grailbio/epistasis/genotype"
	"github.com/pkg/errors"
)

// Load dispatches on the extensions of paths: a ".tped"+".tfam" pair (in
// either order) selects LoadTPED; a single ".raw" path selects LoadRAW. A
// trailing ".gz" is stripped before matching, and each loader transparently
// decompresses such inputs (see gzip.go). Any other combination of paths
// is an ErrUnrecognisedExtension.
func Load(paths ...string) (*genotype.Dataset, error) {
	switch len(paths) {
	case 1:
		if strings.EqualFold(ext(paths[0]), ".raw") {
			return LoadRAW(paths[0])
		}
		return nil, errors.Wrapf(ErrUnrecognisedExtension, "%s", paths[0])
	case 2:
		tped, tfam, err := orderTPEDPair(paths[0], paths[1])
		if err != nil {
			return nil, err
		}
		return LoadTPED(tped, tfam)
	default:
		return nil, errors.Wrapf(ErrUnrecognisedExtension, "expected 1 (.raw) or 2 (.tped+.tfam) input paths, got %d", len(paths))
	}
}

// ext returns path's extension, ignoring a trailing ".gz" suffix.
func ext(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}
	return filepath.Ext(path)
}

func orderTPEDPair(a, b string) (tped, tfam string, err error) {
	extA, extB := strings.ToLower(ext(a)), strings.ToLower(ext(b))
	switch {
	case extA == ".tped" && extB == ".tfam":
		return a, b, nil
	case extA == ".tfam" && extB == ".tped":
		return b, a, nil
	default:
		return "", "", errors.Wrapf(ErrUnrecognisedExtension, "%s, %s: expected one .tped and one .tfam", a, b)
	}
}

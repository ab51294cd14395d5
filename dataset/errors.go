package dataset

import "github.com/pkg/errors"

// Sentinel errors for the five loader error kinds named in spec.md §6,
// following the teacher's encoding/fastq scanner error convention
// (package-level vars so callers can errors.Is against them even though
// the loaders wrap each with file/line context via errors.Wrap).
var (
	// ErrUnrecognisedExtension is returned when Load is given a path whose
	// extension does not match any supported input format.
	ErrUnrecognisedExtension = errors.New("dataset: unrecognised file extension")
	// ErrFileUnreadable is returned when an input file cannot be opened.
	ErrFileUnreadable = errors.New("dataset: file unreadable")
	// ErrCountMismatch is returned when a TPED row's nucleotide count
	// doesn't match twice the TFAM sample count, or a RAW row's genotype
	// count doesn't match the header's variant count.
	ErrCountMismatch = errors.New("dataset: sample/variant count mismatch")
	// ErrBadPhenotype is returned when a phenotype column fails to parse as
	// one of the two supported case/control codes.
	ErrBadPhenotype = errors.New("dataset: bad phenotype value")
	// ErrBadNucleotide is returned when a TPED allele character is not one
	// of A, C, G, T.
	ErrBadNucleotide = errors.New("dataset: bad nucleotide value")
)

package fofanov

import (
	"github.com/grailbio/base/errors"
)

// ErrKind is the closed set of per-sequence failure kinds from §7. It is
// deliberately not expressed purely as opaque errors.E(...) chains (the
// teacher's usual style) because the error report the driver produces needs
// to switch on kind and tally counts per kind (Stats.Failures); see
// SPEC_FULL.md §7 EXPANSION.
type ErrKind int

const (
	// ErrNone is the zero value; never attached to a real SeqError.
	ErrNone ErrKind = iota
	// ErrGap: sequence contains '-' (§4.1, §7).
	ErrGap
	// ErrPolyN: sequence contains a run of N's of length >= k (§4.2, §7).
	ErrPolyN
	// ErrAmbigDisallowed: ambiguity code present while that side's
	// AllowUnknowns is false (§4.1, §7).
	ErrAmbigDisallowed
	// ErrExceeded: mutation search found no neighbour within m_max (§4.4,
	// §7).
	ErrExceeded
	// ErrCatalogMiss: the catalog has no entry for the accession (§6, §7).
	ErrCatalogMiss
	// ErrIO: load/store failure on an input or output path (§7).
	ErrIO

	numErrKinds
)

func (k ErrKind) String() string {
	switch k {
	case ErrGap:
		return "E_GAP"
	case ErrPolyN:
		return "E_POLY_N"
	case ErrAmbigDisallowed:
		return "E_AMBIG_DISALLOWED"
	case ErrExceeded:
		return "E_EXCEEDED"
	case ErrCatalogMiss:
		return "E_CATALOG_MISS"
	case ErrIO:
		return "E_IO"
	default:
		return "E_NONE"
	}
}

// SeqError is a per-sequence failure (§7): a closed Kind plus a
// human-readable cause built with the teacher's usual errors.E(...).
type SeqError struct {
	Accession string
	Kind      ErrKind
	Err       error
}

func (e *SeqError) Error() string {
	return e.Err.Error()
}

// Unwrap lets callers use errors.As/errors.Is against the wrapped cause.
func (e *SeqError) Unwrap() error { return e.Err }

func newSeqError(accession string, kind ErrKind, args ...interface{}) *SeqError {
	return &SeqError{
		Accession: accession,
		Kind:      kind,
		Err:       errors.E(args...),
	}
}

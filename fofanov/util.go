package fofanov

import (
	gunsafe "github.com/grailbio/base/unsafe"

	"github.com/fofanovdist/fdist/biosimd"
)

// reverseComplement computes the reverse complement of seq using the same
// lookup-table routine the teacher's fusion package used for its own
// kmerizer and fragment stitching (fusion/util.go, fusion/kmer.go).
//
// biosimd.ReverseComp8NoValidate always emits upper-case letters regardless
// of input case; the result is lower-cased here so it matches this
// package's canonical lower-case form (alphabet.go's tables are all keyed
// on lower-case bytes) and so the revcomp-involution invariant holds
// byte-for-byte rather than only up to case.
//
// TODO(kept from teacher): reverse in place instead of allocating.
func reverseComplement(seq string) string {
	buf := make([]byte, len(seq))
	biosimd.ReverseComp8NoValidate(buf, gunsafe.StringToBytes(seq))
	// U is interchangeable with T (alphabet.go), so it complements to A;
	// biosimd's table only knows ACGTN and would emit N for it.
	for i := range buf {
		if c := seq[len(seq)-1-i]; c == 'u' || c == 'U' {
			buf[i] = 'A'
		}
	}
	return string(lowerBytes(gunsafe.BytesToString(buf)))
}

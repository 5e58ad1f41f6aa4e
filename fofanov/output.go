package fofanov

import (
	"fmt"
	"strconv"

	"github.com/minio/highwayhash"
)

// FormatLine renders one Record as the tilde-separated output line (§6):
// accession~length~forward_total~forward_score~reverse_total~reverse_score.
// Forward/reverse digit strings are not part of this summary line, matching
// §6's field list exactly.
func FormatLine(r Record) string {
	return fmt.Sprintf("%s~%d~%d~%s~%d~%s",
		r.Accession, r.Length, r.ForwardTotal, formatScore(r.ForwardScore),
		r.ReverseTotal, formatScore(r.ReverseScore))
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// groupKeyZero is the highwayhash key used for grouping output records by
// content (SPEC_FULL.md §4.6 EXPANSION): grouping is a reporting
// convenience, not a security boundary, so a fixed all-zero key is
// sufficient, matching the teacher's own use of a fixed zero key for
// groupCandidatesByGenePair in fusion/postprocess.go.
var groupKeyZero = make([]byte, 32)

// GroupKey returns a content-hash grouping key for a Record's two digit
// strings, letting a caller (e.g. the CLI) collapse foreground sequences
// that produced identical digit output, the same grouping idea as the
// teacher's groupCandidatesByGenePair (fusion/postprocess.go), generalised
// from "candidates sharing a gene pair" to "sequences sharing a digit
// string pair".
func GroupKey(r Record) uint64 {
	buf := make([]byte, 0, len(r.ForwardDigits)+len(r.ReverseDigits)+1)
	buf = append(buf, r.ForwardDigits...)
	buf = append(buf, '|')
	buf = append(buf, r.ReverseDigits...)
	sum := highwayhash.Sum(buf, groupKeyZero)
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(sum[i]) << uint(8*i)
	}
	return v
}

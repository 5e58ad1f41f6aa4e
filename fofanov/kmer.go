package fofanov

import (
	"bytes"
)

// Kmer is a k-mer's 2-bit-per-base encoding (§3), most-significant two bits
// first. It holds up to 32 bases; this package only ever uses 8 or 16 (§9).
type Kmer uint64

// The poly-N guard (§4.2, §7 E_POLY_N) has no fixed run length of its own:
// it fires at a run of 'n' of length >= k, so containsPolyN takes k from
// the caller.

// encodeExact 2-bit-encodes bases, which must already be lower-case. It
// returns ok=false if any byte is not a plain A/C/G/T/U (i.e. it's an
// ambiguity code or the gap character) — encodeExact never itself applies
// ambiguity policy; that's §4.1's job, done by the caller before encoding.
func encodeExact(bases []byte) (Kmer, bool) {
	var v Kmer
	for _, ch := range bases {
		code := asciiToBaseMap[ch]
		if code == invalidBase {
			return 0, false
		}
		v = (v << 2) | Kmer(code)
	}
	return v, true
}

// containsGap reports whether seq contains the gap character anywhere (§4.2
// step 1, §7 E_GAP).
func containsGap(seq []byte) bool {
	return bytes.IndexByte(seq, '-') >= 0
}

// containsPolyN reports whether seq contains a run of 'n' of length >= k
// (§4.2 step 2, §7 E_POLY_N). Per spec.md §9's Open Question resolution,
// this check runs against the raw input, before ambiguity collapse or
// expansion.
func containsPolyN(seq []byte, k int) bool {
	run := 0
	for _, ch := range seq {
		if ch == 'n' {
			run++
			if run >= k {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// circularize appends the first k-1 bases of seq to its end, implementing
// §4.2's "conceptually appended" circular-topology windowing. It is a no-op
// (returns seq unmodified) if len(seq) < k-1.
func circularize(seq []byte, k int) []byte {
	wrap := k - 1
	if wrap <= 0 || len(seq) < wrap {
		return seq
	}
	out := make([]byte, len(seq)+wrap)
	copy(out, seq)
	copy(out[len(seq):], seq[:wrap])
	return out
}

// window is one sliding-window observation from a kmerBuilder: its start
// position and its raw (lower-case) bases. Bases is a sub-slice of the
// sequence the builder was created over; it is not a copy.
type window struct {
	pos   int
	bases []byte
}

// kmerBuilder produces the ordered, non-restartable sequence of sliding
// windows of length k over a prepared (gap/poly-N checked, optionally
// circularised) sequence (§4.2). It performs no ambiguity policy itself —
// callers (background.go, foreground.go) inspect each window's bases and
// apply expansion or collapse as appropriate for their side.
type kmerBuilder struct {
	k   int
	seq []byte
	pos int
}

// newKmerBuilder creates a builder over seq (already lower-cased, gap/poly-N
// checked, and circularised if applicable).
func newKmerBuilder(seq []byte, k int) *kmerBuilder {
	return &kmerBuilder{k: k, seq: seq, pos: 0}
}

// numWindows returns the number of windows this builder will yield.
func (b *kmerBuilder) numWindows() int {
	n := len(b.seq) - b.k + 1
	if n < 0 {
		return 0
	}
	return n
}

// next returns the next window and advances the builder, or ok=false once
// the sequence is exhausted. Window processing is strictly left-to-right
// (§5's rolling-update invariant), enforced simply by pos only increasing.
func (b *kmerBuilder) next() (w window, ok bool) {
	if b.pos+b.k > len(b.seq) {
		return window{}, false
	}
	w = window{pos: b.pos, bases: b.seq[b.pos : b.pos+b.k]}
	b.pos++
	return w, true
}

// kmerMask returns the k*2-bit-wide mask used to discard the two bits that
// fall off the top on each rolling shift (§3).
func kmerMask(k int) Kmer {
	return (Kmer(1) << uint(k*2)) - 1
}

// rollKmer advances prev by one base, in the rolling-update style of the
// teacher's kmerizer.Scan fast path (fusion/kmer.go): shift left by 2 bits,
// mask to the k-mer width, OR in the new base's code. This is the function
// the "shift identity" invariant (spec.md §8) is stated against; background
// loading's fast path (background.go) uses it directly instead of
// re-encoding each window from scratch.
func rollKmer(prev Kmer, nextCode uint8, mask Kmer) Kmer {
	return ((prev << 2) | Kmer(nextCode)) & mask
}

// hasAmbiguity reports whether any byte in bases is an IUPAC ambiguity code
// (gap/invalid bytes are assumed already rejected by containsGap upstream).
func hasAmbiguity(bases []byte) bool {
	for _, ch := range bases {
		if isAmbiguity(ch) {
			return true
		}
	}
	return false
}

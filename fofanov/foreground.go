package fofanov

import "strconv"

// scanStrand runs the mutation search over every window of bases and
// returns the digit string plus the (total, score) aggregate for that
// strand (§3, §4.4, §4.6). A window that exceeds m_max fails the whole
// sequence with ErrExceeded — per §4.4, there is no partial/best-effort
// digit for that window.
func scanStrand(table *PresenceTable, bases []byte, opts Opts, allowUnknowns bool) (digits string, total int, score float64, err error) {
	k := opts.K
	mMax := opts.MMax()
	buf := allocDigitBuf()
	defer freeDigitBuf(buf)

	b := newKmerBuilder(bases, k)
	for {
		w, ok := b.next()
		if !ok {
			break
		}

		if hasAmbiguity(w.bases) {
			if !allowUnknowns {
				return "", 0, 0, newSeqError("", ErrAmbigDisallowed,
					"ambiguity code in foreground window at position", w.pos)
			}
		}

		q, ok := collapseForeground(w.bases)
		if !ok {
			return "", 0, 0, newSeqError("", ErrAmbigDisallowed,
				"unrecognised byte in foreground window at position", w.pos)
		}

		h, found := Search(table, q, k, mMax)
		if !found {
			return "", 0, 0, newSeqError("", ErrExceeded,
				"no background neighbour within m_max at position", w.pos)
		}

		buf.b = strconv.AppendInt(buf.b, int64(h), 10)
		total += h
	}

	digits = string(buf.b)
	if len(digits) > 0 {
		score = float64(total) / float64(len(digits))
	}
	return digits, total, score, nil
}

// scan turns one loaded foreground sequence into a Record (§4.6, §6): the
// stitcher.Stitch analog from the teacher (fusion/stitcher.go), reworked
// from "assemble a read pair into a Fragment" to "assemble a sequence's
// windows into a Record".
func scan(table *PresenceTable, seq LoadedSequence, catRec CatalogRecord, opts Opts) (Record, *SeqError, int) {
	bases := lowerBytes(seq.Bases)

	if containsGap(bases) {
		return Record{}, newSeqError(seq.Accession, ErrGap, "sequence contains gap character"), 0
	}
	if containsPolyN(bases, opts.K) {
		return Record{}, newSeqError(seq.Accession, ErrPolyN, "sequence contains poly-N run >= k"), 0
	}
	if !opts.AllowUnknownsForeground && hasAmbiguity(bases) {
		return Record{}, newSeqError(seq.Accession, ErrAmbigDisallowed, "ambiguity code present, AllowUnknownsForeground is false"), 0
	}

	prepared := bases
	if catRec.Topology == Circular {
		prepared = circularize(bases, opts.K)
	}

	rec := Record{Accession: seq.Accession, Length: catRec.Length}
	windows := newKmerBuilder(prepared, opts.K).numWindows()

	fwd, fwdTotal, fwdScore, err := scanStrand(table, prepared, opts, opts.AllowUnknownsForeground)
	if err != nil {
		se := err.(*SeqError)
		se.Accession = seq.Accession
		return Record{}, se, 0
	}
	rec.ForwardDigits, rec.ForwardTotal, rec.ForwardScore = fwd, fwdTotal, fwdScore

	if opts.BidirectionalForeground {
		revBases := []byte(reverseComplement(string(prepared)))
		rev, revTotal, revScore, err := scanStrand(table, revBases, opts, opts.AllowUnknownsForeground)
		if err != nil {
			se := err.(*SeqError)
			se.Accession = seq.Accession
			return Record{}, se, 0
		}
		rec.ReverseDigits, rec.ReverseTotal, rec.ReverseScore = rev, revTotal, revScore
	}

	return rec, nil, windows
}

// lowerBytes returns an ASCII-lowercased copy of s as a byte slice. The
// alphabet tables (alphabet.go) already accept both cases, but downstream
// comparisons ('-', 'n', ambiguity-code lookups) are written against
// lower-case bytes for a single canonical form, matching the teacher's own
// convention of normalising case once at the edge of the package.
func lowerBytes(s string) []byte {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}

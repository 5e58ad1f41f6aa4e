package fofanov

// expandBackground returns every concrete Kmer value a window's raw bases
// expand to under IUPAC ambiguity rules (§4.1, §4.5): the Cartesian product
// of each position's candidate base set, unambiguous positions contributing
// a singleton. The running value is built incrementally (digit by digit)
// rather than via intermediate strings, per §4.5's cost-bound guidance for
// background loading, where a window may expand to up to 4^(#ambiguous
// positions) values.
//
// bases must already have passed containsGap/containsPolyN; any byte that
// is neither a plain base nor a recognised ambiguity code aborts expansion
// with ok=false (treated by the caller as an unmarkable window, not a fatal
// sequence error — §4.5 doesn't single out stray garbage bytes for a
// dedicated error kind beyond what containsGap/poly-N already screen for).
func expandBackground(bases []byte, out []Kmer) ([]Kmer, bool) {
	out = out[:0]
	var rec func(i int, acc Kmer) bool
	rec = func(i int, acc Kmer) bool {
		if i == len(bases) {
			out = append(out, acc)
			return true
		}
		ch := bases[i]
		if code := asciiToBaseMap[ch]; code != invalidBase {
			return rec(i+1, (acc<<2)|Kmer(code))
		}
		codes, ok := ambiguitySet[ch]
		if !ok {
			return false
		}
		for _, code := range codes {
			if !rec(i+1, (acc<<2)|Kmer(code)) {
				return false
			}
		}
		return true
	}
	if !rec(0, 0) {
		return nil, false
	}
	return out, true
}

// collapseForeground applies the fixed, deliberately asymmetric
// foregroundCollapse table (§4.1, §9) to reduce a window's bases to a
// single concrete Kmer, one ambiguity code at a time. Unlike
// expandBackground, this never branches: every position yields exactly one
// code, so a foreground window always contributes exactly one query k-mer.
func collapseForeground(bases []byte) (Kmer, bool) {
	var v Kmer
	for _, ch := range bases {
		if code := asciiToBaseMap[ch]; code != invalidBase {
			v = (v << 2) | Kmer(code)
			continue
		}
		code, ok := foregroundCollapse[ch]
		if !ok {
			return 0, false
		}
		v = (v << 2) | Kmer(code)
	}
	return v, true
}

package fofanov

// Base code: A=0b00, C=0b01, G=0b10, T/U=0b11 (§4.1). asciiToBaseMap maps a
// lower- or upper-case input byte to its 2-bit code, or to invalidBase if the
// byte is an IUPAC ambiguity code, the gap character, or garbage.
var asciiToBaseMap [256]uint8

// asciiToComplementMap maps a base to the 2-bit code of its Watson-Crick
// complement (A<->T, C<->G). Nothing reads it: the reverse strand is built
// on ASCII bytes by reverseComplement (util.go).
var asciiToComplementMap [256]uint8

const invalidBase = uint8(255)

// ambiguitySet lists the concrete bases an IUPAC ambiguity code expands to,
// in the order given in §4.1. Only background loading uses the expansion;
// foreground collapse uses foregroundCollapse instead.
var ambiguitySet = map[byte][]uint8{
	'r': {0, 2},    // R -> A,G
	'y': {1, 3},    // Y -> C,T
	'k': {2, 3},    // K -> G,T
	'm': {0, 1},    // M -> A,C
	's': {1, 2},    // S -> C,G
	'w': {0, 3},    // W -> A,T
	'b': {1, 2, 3}, // B -> C,G,T
	'd': {0, 2, 3}, // D -> A,G,T
	'h': {0, 1, 3}, // H -> A,C,T
	'v': {0, 1, 2}, // V -> A,C,G
	'n': {0, 1, 2, 3},
}

// foregroundCollapse is the fixed, intentionally asymmetric table from §4.1
// that maps each ambiguity code to a single canonical base for foreground
// collapse. It must be reproduced bit-for-bit (§9); do not "fix" it.
var foregroundCollapse = map[byte]uint8{
	'r': 0, // R -> A
	'y': 1, // Y -> C
	'k': 2, // K -> G
	'm': 0, // M -> A
	's': 1, // S -> C
	'w': 0, // W -> A
	'b': 1, // B -> C
	'd': 0, // D -> A
	'h': 0, // H -> A
	'v': 0, // V -> A
	'n': 0, // N -> A
}

func init() {
	for i := range asciiToBaseMap {
		asciiToBaseMap[i] = invalidBase
		asciiToComplementMap[i] = invalidBase
	}
	set := func(base byte, code, comp uint8) {
		asciiToBaseMap[base] = code
		asciiToComplementMap[base] = comp
		// Upper-case variants too; §3 requires input be normalised to
		// lower-case before encoding, but accepting both here means callers
		// don't have to remember to lower-case single bytes everywhere.
		if base >= 'a' && base <= 'z' {
			asciiToBaseMap[base-32] = code
			asciiToComplementMap[base-32] = comp
		}
	}
	set('a', 0, 3)
	set('c', 1, 2)
	set('g', 2, 1)
	set('t', 3, 0)
	set('u', 3, 0) // U is interchangeable with T (§3).
}

// isAmbiguity reports whether ch (already lower-cased) is one of the 11
// IUPAC ambiguity codes from §4.1.
func isAmbiguity(ch byte) bool {
	_, ok := ambiguitySet[ch]
	return ok
}

// isGap reports whether ch is the gap character, which is never encodable
// (§4.1) and causes the containing sequence to be rejected (§7, E_GAP).
func isGap(ch byte) bool { return ch == '-' }

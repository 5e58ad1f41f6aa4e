package fofanov

import "math/bits"

// digitShift returns the bit offset of the i-th base-pair digit within a
// Kmer, i=0 being the least significant pair. Which end of the k-mer a given
// digit index corresponds to is immaterial here: the mutation search treats
// a Kmer as an opaque k-digit base-4 number and exhaustively considers every
// subset of digit positions, so any consistent numbering is correct.
func digitShift(i int) uint {
	return uint(2 * i)
}

// digitAt extracts the 2-bit code at digit position i.
func digitAt(v Kmer, i int) uint8 {
	return uint8((v >> digitShift(i)) & 3)
}

// withDigit returns v with digit position i replaced by code.
func withDigit(v Kmer, i int, code uint8) Kmer {
	shift := digitShift(i)
	return (v &^ (Kmer(3) << shift)) | (Kmer(code) << shift)
}

// otherCodes returns the three 2-bit codes other than orig, in ascending
// order — the radix-3 alphabet a single substituted position cycles through.
func otherCodes(orig uint8) [3]uint8 {
	var out [3]uint8
	j := 0
	for c := uint8(0); c < 4; c++ {
		if c != orig {
			out[j] = c
			j++
		}
	}
	return out
}

// nextSubset returns the next k-bit value with the same population count as
// s, in the standard Gosper's-hack ordering. s must be nonzero.
func nextSubset(s uint64) uint64 {
	c := s & (-s)
	r := s + c
	return (((r ^ s) >> 2) / c) | r
}

// positionsOf returns the digit indices set in mask, lowest first.
func positionsOf(mask uint64) []int {
	positions := make([]int, 0, bits.OnesCount64(mask))
	for m := mask; m != 0; {
		p := bits.TrailingZeros64(m)
		positions = append(positions, p)
		m &= m - 1
	}
	return positions
}

// pow3 returns 3^h, the size of the substitution alphabet for an h-digit
// subset (§4.4).
func pow3(h int) int {
	n := 1
	for i := 0; i < h; i++ {
		n *= 3
	}
	return n
}

// searchLevel enumerates every k-mer at Hamming distance exactly h from q
// (§4.4: C(k,h) position subsets, 3^h substitutions per subset) and reports
// whether any is present in table, via PresenceTable.AnyOf (§4.3 any_of). It
// always enumerates the full level before returning a miss — a level is only
// declared insufficient once every candidate at that exact distance has been
// tried (§4.4 edge case).
func searchLevel(table *PresenceTable, q Kmer, k, h int) (hit Kmer, found bool) {
	if h == 0 {
		return table.AnyOf([]Kmer{q})
	}

	full := (uint64(1) << uint(k)) - 1
	mask := (uint64(1) << uint(h)) - 1 // lowest h bits set: first subset
	for {
		positions := positionsOf(mask)
		alphabets := make([][3]uint8, h)
		originals := make([]uint8, h)
		for i, p := range positions {
			originals[i] = digitAt(q, p)
			alphabets[i] = otherCodes(originals[i])
		}

		// Odometer over h digits, each ranging over the 3 substitute codes
		// for its position — the "radix-3 enumeration" of §4.4. The whole
		// subset's candidates are built up front so they can be tested in
		// one any_of batch instead of one table lookup at a time.
		candidates := make([]Kmer, 0, pow3(h))
		counters := make([]int, h)
		for {
			cand := q
			for i, p := range positions {
				cand = withDigit(cand, p, alphabets[i][counters[i]])
			}
			candidates = append(candidates, cand)

			i := h - 1
			for i >= 0 {
				counters[i]++
				if counters[i] < 3 {
					break
				}
				counters[i] = 0
				i--
			}
			if i < 0 {
				break // exhausted all 3^h substitutions for this subset
			}
		}

		if hit, ok := table.AnyOf(candidates); ok {
			return hit, true
		}

		next := nextSubset(mask)
		if next > full {
			break
		}
		mask = next
	}
	return 0, false
}

// Search finds the minimum Hamming distance from q to any k-mer present in
// table, trying h=0,1,...,mMax in order and returning the first level with a
// hit (§4.4). found=false means no present neighbour exists within mMax
// substitutions (§7 E_EXCEEDED).
func Search(table *PresenceTable, q Kmer, k, mMax int) (h int, found bool) {
	for level := 0; level <= mMax; level++ {
		if _, ok := searchLevel(table, q, k, level); ok {
			return level, true
		}
	}
	return mMax, false
}

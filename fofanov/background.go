package fofanov

import (
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
)

// loadOne marks every k-mer (and IUPAC expansion) of one background
// sequence into table (§4.5). It is the gene_db.go/ReadTranscriptome
// analog: where the teacher built a GeneDB's exon/transcript index from a
// transcriptome file, this builds the presence table's bits from one
// sequence at a time.
func loadOne(table *PresenceTable, seq LoadedSequence, catRec CatalogRecord, opts Opts, seen map[uint64]struct{}) (marked int64, dup bool, serr *SeqError) {
	bases := lowerBytes(seq.Bases)

	if containsGap(bases) {
		return 0, false, newSeqError(seq.Accession, ErrGap, "sequence contains gap character")
	}
	if containsPolyN(bases, opts.K) {
		return 0, false, newSeqError(seq.Accession, ErrPolyN, "sequence contains poly-N run >= k")
	}
	if !opts.AllowUnknownsBackground && hasAmbiguity(bases) {
		return 0, false, newSeqError(seq.Accession, ErrAmbigDisallowed, "ambiguity code present, AllowUnknownsBackground is false")
	}

	// Whole-sequence dedup (SPEC_FULL.md §4.5 EXPANSION), grounded on the
	// teacher's use of farm.Hash64 for shard selection in
	// fusion/kmer_index.go — repurposed here as a content fingerprint
	// rather than a bucket key.
	h := farm.Hash64(bases)
	if _, ok := seen[h]; ok {
		return 0, true, nil
	}
	seen[h] = struct{}{}

	prepared := bases
	if catRec.Topology == Circular {
		prepared = circularize(bases, opts.K)
	}

	n := markStrand(table, prepared, opts.K)
	marked += n

	if opts.BidirectionalBackground {
		revBases := []byte(reverseComplement(string(prepared)))
		marked += markStrand(table, revBases, opts.K)
	}

	return marked, false, nil
}

// markStrand marks every window of bases into table, expanding IUPAC
// ambiguity codes into their full Cartesian product (§4.1, §4.5). It
// returns the number of Mark calls issued.
func markStrand(table *PresenceTable, bases []byte, k int) int64 {
	var marked int64
	var scratch []Kmer

	b := newKmerBuilder(bases, k)
	mask := kmerMask(k)
	var rolled Kmer
	rolledValid := false

	for {
		w, ok := b.next()
		if !ok {
			break
		}

		if !hasAmbiguity(w.bases) {
			// Fast path: try the rolling update first (grounded on the
			// teacher's kmerizer.Scan, fusion/kmer.go), falling back to a
			// full re-encode whenever the roll isn't valid for this
			// window (first window, or directly after an ambiguous one).
			if rolledValid {
				code := asciiToBaseMap[w.bases[len(w.bases)-1]]
				if code == invalidBase {
					rolledValid = false
					continue
				}
				rolled = rollKmer(rolled, code, mask)
			} else if v, ok := encodeExact(w.bases); ok {
				rolled = v
				rolledValid = true
			} else {
				rolledValid = false
				continue
			}
			table.Mark(rolled)
			marked++
			continue
		}

		rolledValid = false
		values, ok := expandBackground(w.bases, scratch)
		if !ok {
			log.Printf("background: window with unrecognised byte skipped at pos %d", w.pos)
			continue
		}
		scratch = values
		for _, v := range values {
			table.Mark(v)
			marked++
		}
	}
	return marked
}

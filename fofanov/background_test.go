package fofanov

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestMarkStrandMarksEveryWindow(t *testing.T) {
	table := NewPresenceTable(8)
	marked := markStrand(table, []byte("acgtacgt"), 8)
	expect.EQ(t, marked, int64(1))
	expect.True(t, table.Test(kmerOf(t, "acgtacgt")))
}

func TestMarkStrandExpandsAmbiguityWindow(t *testing.T) {
	table := NewPresenceTable(8)
	marked := markStrand(table, []byte("acgtacgn"), 8)
	expect.EQ(t, marked, int64(4))
	for _, base := range []byte{'a', 'c', 'g', 't'} {
		bases := []byte("acgtacg" + string(base))
		expect.True(t, table.Test(kmerOf(t, string(bases))))
	}
}

func TestLoadOneSkipsExactDuplicateSequence(t *testing.T) {
	table := NewPresenceTable(8)
	seen := map[uint64]struct{}{}
	opts := DefaultOpts
	opts.K = 8
	cat := CatalogRecord{Length: 8, Topology: Linear}

	marked, dup, serr := loadOne(table, LoadedSequence{Accession: "a", Bases: "ACGTACGT"}, cat, opts, seen)
	expect.Nil(t, serr)
	expect.False(t, dup)
	expect.EQ(t, marked, int64(1))

	marked, dup, serr = loadOne(table, LoadedSequence{Accession: "b", Bases: "acgtacgt"}, cat, opts, seen)
	expect.Nil(t, serr)
	expect.True(t, dup)
	expect.EQ(t, marked, int64(0))
}

func TestLoadOneRejectsAmbiguityWhenDisallowed(t *testing.T) {
	table := NewPresenceTable(8)
	seen := map[uint64]struct{}{}
	opts := DefaultOpts
	opts.K = 8
	opts.AllowUnknownsBackground = false
	cat := CatalogRecord{Length: 8, Topology: Linear}

	_, _, serr := loadOne(table, LoadedSequence{Accession: "a", Bases: "ACGTACGN"}, cat, opts, seen)
	expect.NotNil(t, serr)
	expect.EQ(t, serr.Kind, ErrAmbigDisallowed)
}

func TestLoadOneRejectsGap(t *testing.T) {
	table := NewPresenceTable(8)
	seen := map[uint64]struct{}{}
	opts := DefaultOpts
	opts.K = 8
	cat := CatalogRecord{Length: 8, Topology: Linear}

	_, _, serr := loadOne(table, LoadedSequence{Accession: "a", Bases: "ACGT-CGT"}, cat, opts, seen)
	expect.NotNil(t, serr)
	expect.EQ(t, serr.Kind, ErrGap)
}

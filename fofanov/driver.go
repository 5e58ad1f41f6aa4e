package fofanov

import (
	"runtime"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// Result is one failed or succeeded foreground sequence, position-indexed
// against the input slice so callers can correlate output with input order
// even though workers run out of order (§5, §7).
type Result struct {
	Record Record
	Err    *SeqError
}

// Analyze runs the full two-phase pipeline of §5/§6: load every background
// sequence and mark its k-mers (write phase), then scan every foreground
// sequence against the now-immutable table (read phase). It is the
// fusion.go analog: where the teacher's top-level Fusion() orchestrated
// stitching+classification over read pairs with a channel/WaitGroup pool,
// this uses grailbio/base/traverse.Each's fixed worker pool over a static
// index partition, which more directly matches §5's "fixed worker pool,
// static per-sequence partition" requirement.
func Analyze(background, foreground []SequenceInput, loader SequenceLoader, catalog Catalog, opts Opts) ([]Result, Stats, error) {
	table := NewPresenceTable(opts.K)
	defer table.Release()

	workers := opts.NWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	bgStats := make([]Stats, len(background))

	// Background phase: traverse.Each hands jobIdx to a dynamic goroutine
	// pool with no stable per-goroutine identity (the library gives no such
	// guarantee), so — exactly like the teacher's own callers
	// (pileup/snp/pileup.go's pileupSNPMain, encoding/converter/convert.go)
	// — the closure itself carves len(background) into workers contiguous
	// shards up front. Each jobIdx therefore owns one shard and one private
	// dedup map for the lifetime of the call, with no risk of two jobIdx
	// values ever touching the same map concurrently.
	bgWorkers := workers
	if bgWorkers > len(background) {
		bgWorkers = len(background)
	}
	if bgWorkers < 1 {
		bgWorkers = 1
	}

	err := traverse.Each(bgWorkers, func(jobIdx int) error {
		startIdx := (jobIdx * len(background)) / bgWorkers
		endIdx := ((jobIdx + 1) * len(background)) / bgWorkers
		seen := make(map[uint64]struct{})

		for i := startIdx; i < endIdx; i++ {
			input := background[i]
			seq, loadErr := loader.Load(input)
			if loadErr != nil {
				log.Printf("background: %s: %v", input.Accession, newSeqError(input.Accession, ErrIO, loadErr))
				bgStats[i].Failures[ErrIO]++
				continue
			}
			catRec, ok := catalog.Lookup(seq.Accession)
			if !ok {
				log.Printf("background: %s: accession not found in catalog", seq.Accession)
				bgStats[i].Failures[ErrCatalogMiss]++
				continue
			}
			marked, dup, serr := loadOne(table, seq, catRec, opts, seen)
			if serr != nil {
				log.Printf("background: %s: %v", seq.Accession, serr)
				bgStats[i].Failures[serr.Kind]++
				continue
			}
			if dup {
				bgStats[i].BackgroundDuplicatesSkipped++
				continue
			}
			bgStats[i].BackgroundSequences++
			bgStats[i].BackgroundKmersMarked += marked
			if opts.ProgressEvery > 0 && (i+1)%opts.ProgressEvery == 0 {
				log.Printf("background: %d/%d sequences processed", i+1, len(background))
			}
		}
		return nil
	})
	if err != nil {
		return nil, Stats{}, err
	}

	var stats Stats
	for _, s := range bgStats {
		stats = stats.Merge(s)
	}
	log.Printf("background phase complete: %d sequences, %d k-mers marked, checksum=%x",
		stats.BackgroundSequences, stats.BackgroundKmersMarked, table.Checksum())

	// §5's happens-before barrier: every background mark() above has
	// returned before any foreground test()/any_of() below begins. Go's
	// memory model guarantees this because traverse.Each does not return
	// until all of its goroutines have completed.

	results := make([]Result, len(foreground))
	fgStats := make([]Stats, len(foreground))

	err = traverse.Each(len(foreground), func(i int) error {
		input := foreground[i]
		seq, loadErr := loader.Load(input)
		if loadErr != nil {
			results[i] = Result{Err: newSeqError(input.Accession, ErrIO, loadErr)}
			fgStats[i].Failures[ErrIO]++
			return nil
		}
		catRec, ok := catalog.Lookup(seq.Accession)
		if !ok {
			results[i] = Result{Err: newSeqError(seq.Accession, ErrCatalogMiss, "accession not found in catalog")}
			fgStats[i].Failures[ErrCatalogMiss]++
			return nil
		}
		rec, serr, windows := scan(table, seq, catRec, opts)
		if serr != nil {
			results[i] = Result{Err: serr}
			fgStats[i].Failures[serr.Kind]++
			return nil
		}
		results[i] = Result{Record: rec}
		fgStats[i].ForegroundSequences++
		fgStats[i].ForegroundWindows += int64(windows)
		if opts.BidirectionalForeground {
			fgStats[i].ForegroundWindows += int64(windows)
		}
		if opts.ProgressEvery > 0 && (i+1)%opts.ProgressEvery == 0 {
			log.Printf("foreground: %d/%d sequences processed", i+1, len(foreground))
		}
		return nil
	})
	if err != nil {
		return nil, Stats{}, err
	}

	for _, s := range fgStats {
		stats = stats.Merge(s)
	}
	log.Printf("foreground phase complete: %d sequences, %d windows, %d failures",
		stats.ForegroundSequences, stats.ForegroundWindows, stats.TotalFailures())

	return results, stats, nil
}

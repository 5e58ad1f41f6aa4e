// Command fofanov-distance computes, for every window of a set of
// foreground sequences, the minimum Hamming distance to any k-mer observed
// in a set of background sequences (the "Fofanov distance"), and reports a
// per-sequence digit string and aggregate score on each requested strand.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/fofanovdist/fdist/catalog"
	"github.com/fofanovdist/fdist/encoding/fasta"
	"github.com/fofanovdist/fdist/fofanov"
)

type cmdFlags struct {
	backgroundPath string
	foregroundPath string
	catalogPath    string
	outputPath     string
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: fofanov-distance [flags]

Computes the Fofanov distance of every foreground sequence window against a
background k-mer set.
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage

	flags := cmdFlags{}
	opts := fofanov.DefaultOpts
	flag.StringVar(&flags.backgroundPath, "background", "", "FASTA file of background sequences")
	flag.StringVar(&flags.foregroundPath, "foreground", "", "FASTA file of foreground sequences")
	flag.StringVar(&flags.catalogPath, "catalog", "", "TSV catalog file (accession, length, topology)")
	flag.StringVar(&flags.outputPath, "output", "-", "Output path ('-' for stdout)")
	flag.IntVar(&opts.K, "k", fofanov.DefaultOpts.K, "k-mer length (8 or 16)")
	flag.BoolVar(&opts.BidirectionalBackground, "bidirectional-background", fofanov.DefaultOpts.BidirectionalBackground,
		"Also load the reverse complement of each background sequence")
	flag.BoolVar(&opts.BidirectionalForeground, "bidirectional-foreground", fofanov.DefaultOpts.BidirectionalForeground,
		"Also scan the reverse complement of each foreground sequence")
	flag.BoolVar(&opts.AllowUnknownsBackground, "allow-unknowns-background", fofanov.DefaultOpts.AllowUnknownsBackground,
		"Expand IUPAC ambiguity codes in background sequences instead of failing them")
	flag.BoolVar(&opts.AllowUnknownsForeground, "allow-unknowns-foreground", fofanov.DefaultOpts.AllowUnknownsForeground,
		"Collapse IUPAC ambiguity codes in foreground sequences instead of failing them")
	flag.IntVar(&opts.NWorkers, "workers", fofanov.DefaultOpts.NWorkers, "Worker pool size (0 = runtime.NumCPU())")
	flag.IntVar(&opts.ProgressEvery, "progress-every", fofanov.DefaultOpts.ProgressEvery, "Log a progress line every N sequences")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if flags.backgroundPath == "" || flags.foregroundPath == "" || flags.catalogPath == "" {
		log.Fatal("-background, -foreground and -catalog are all required")
	}

	cat, err := catalog.Load(ctx, flags.catalogPath)
	if err != nil {
		log.Panicf("load catalog %s: %v", flags.catalogPath, err)
	}

	bgLoader, bgInputs := openFastaLoader(ctx, flags.backgroundPath, "bg")
	fgLoader, fgInputs := openFastaLoader(ctx, flags.foregroundPath, "fg")
	loader := multiLoader{bgLoader, fgLoader}

	results, stats, err := fofanov.Analyze(bgInputs, fgInputs, loader, cat, opts)
	if err != nil {
		log.Panicf("analyze: %v", err)
	}

	out, err := file.Create(ctx, flags.outputPath)
	if err != nil {
		log.Panicf("create %s: %v", flags.outputPath, err)
	}
	w := out.Writer(ctx)
	for i, r := range results {
		if r.Err != nil {
			log.Printf("foreground: %s: %v", fgInputs[i].Accession, r.Err)
			continue
		}
		if _, err := io.WriteString(w, fofanov.FormatLine(r.Record)+"\n"); err != nil {
			log.Panicf("write output: %v", err)
		}
	}
	if err := out.Close(ctx); err != nil {
		log.Panicf("close %s: %v", flags.outputPath, err)
	}

	log.Printf("done: %d background sequences, %d foreground sequences, %d failures",
		stats.BackgroundSequences, stats.ForegroundSequences, stats.TotalFailures())
}

// fastaLoader adapts an already-parsed FASTA file to fofanov.SequenceLoader:
// Load ignores input.ID and simply reads the named sequence's full extent,
// the same "reference implementation of an external collaborator" role
// SPEC_FULL.md assigns to encoding/fasta.
type fastaLoader struct {
	fa fasta.Fasta
}

func (l fastaLoader) Load(input fofanov.SequenceInput) (fofanov.LoadedSequence, error) {
	n, err := l.fa.Len(input.Accession)
	if err != nil {
		return fofanov.LoadedSequence{}, err
	}
	bases, err := l.fa.Get(input.Accession, 0, n)
	if err != nil {
		return fofanov.LoadedSequence{}, err
	}
	return fofanov.LoadedSequence{Accession: input.Accession, Bases: bases}, nil
}

// multiLoader dispatches Load to whichever of its loaders was built from the
// file the accession actually belongs to. Background and foreground
// sequences may come from different FASTA files (or even the same one with
// overlapping accessions for denovo-style runs), so each input carries its
// loader selection in SequenceInput.ID instead of multiLoader guessing; see
// openFastaLoader for how bgInputs/fgInputs are tagged "bg"/"fg".
type multiLoader [2]fastaLoader

func (l multiLoader) Load(input fofanov.SequenceInput) (fofanov.LoadedSequence, error) {
	// input.ID carries which side this input came from ("bg" or "fg"),
	// set by openFastaLoader below.
	if input.ID == "fg" {
		return l[1].Load(input)
	}
	return l[0].Load(input)
}

func openFastaLoader(ctx context.Context, path, side string) (fastaLoader, []fofanov.SequenceInput) {
	in, err := file.Open(ctx, path)
	if err != nil {
		log.Panicf("open %s: %v", path, err)
	}
	fa, err := fasta.New(in.Reader(ctx))
	if err != nil {
		log.Panicf("parse fasta %s: %v", path, err)
	}
	if err := in.Close(ctx); err != nil {
		log.Panicf("close %s: %v", path, err)
	}

	names := fa.SeqNames()
	inputs := make([]fofanov.SequenceInput, len(names))
	for i, name := range names {
		inputs[i] = fofanov.SequenceInput{ID: side, Accession: name}
	}
	return fastaLoader{fa: fa}, inputs
}

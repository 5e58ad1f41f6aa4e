// Package catalog provides a flat-file accession catalog: a TSV mapping
// each accession to its sequence length and strand topology, implementing
// fofanov.Catalog. It is grounded on the teacher's GeneDB flat-file reader
// (fusion/gene_db.go's ReadFusionEvents/ReadTranscriptome), generalised
// from gene-pair/transcript records to the simpler {accession, length,
// topology} shape this spec needs.
package catalog

import (
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"

	"github.com/fofanovdist/fdist/fofanov"
)

// Flat is a read-only, in-memory accession catalog loaded from a TSV file.
type Flat struct {
	records map[string]fofanov.CatalogRecord
}

// Lookup implements fofanov.Catalog.
func (c *Flat) Lookup(accession string) (fofanov.CatalogRecord, bool) {
	rec, ok := c.records[accession]
	return rec, ok
}

// flatRow is the TSV row shape: header "accession\tlength\ttopology", one
// row per sequence. topology is "linear" or "circular", written all
// lower-case, Capitalised or all upper-case; an empty topology reads as
// linear. A row with any other topology is logged and skipped at load time.
type flatRow struct {
	Accession string
	Length    int
	Topology  string
}

// Load reads a TSV catalog file from path (any scheme grailbio/base/file
// supports, e.g. a local path or an s3:// URL), matching the teacher's own
// use of file.Open+tsv.NewReader in GeneDB.ReadFusionEvents.
func Load(ctx context.Context, path string) (*Flat, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil {
			log.Printf("catalog: close %s: %v", path, cerr)
		}
	}()

	r := tsv.NewReader(in.Reader(ctx))
	r.HasHeaderRow = true
	r.ValidateHeader = true

	c := &Flat{records: map[string]fofanov.CatalogRecord{}}
	for {
		var row flatRow
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		topo, ok := parseTopology(row.Topology)
		if !ok {
			log.Printf("catalog: %s: unrecognised topology %q, skipping", row.Accession, row.Topology)
			continue
		}
		c.records[row.Accession] = fofanov.CatalogRecord{Length: row.Length, Topology: topo}
	}
	return c, nil
}

func parseTopology(s string) (fofanov.Topology, bool) {
	switch s {
	case "linear", "Linear", "LINEAR", "":
		return fofanov.Linear, true
	case "circular", "Circular", "CIRCULAR":
		return fofanov.Circular, true
	default:
		return 0, false
	}
}

package fasta_test

import (
	"flag"
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/fofanovdist/fdist/encoding/fasta"
)

var fastaData string

func init() {
	fastaData = ">seq1\n" + "ACGTA\nCGTAC\nGT\n" + ">seq2 A viral sequence\n" + "ACGT\n" + "ACGT\n"
}

func TestGet(t *testing.T) {
	tests := []struct {
		seq   string
		start uint64
		end   uint64
		want  string
		err   error
	}{
		{"seq1", 1, 2, "C", nil},
		{"seq1", 1, 6, "CGTAC", nil},
		{"seq1", 0, 12, "ACGTACGTACGT", nil},
		{"seq1", 10, 12, "GT", nil},
		{"seq2", 0, 8, "ACGTACGT", nil},
		{"seq2", 2, 5, "GTA", nil},
		{"seq0", 0, 1, "", fmt.Errorf("sequence not found: seq0")},
		{"seq1", 10, 13, "", fmt.Errorf("invalid query range 10 - 13 for sequence seq1 with length 12")},
		{"seq1", 4, 3, "", fmt.Errorf("start must be less than end")},
	}
	fa, err := fasta.New(strings.NewReader(fastaData))
	if err != nil {
		t.Errorf("couldn't create Fasta: %v", err)
	}
	for _, tt := range tests {
		got, err := fa.Get(tt.seq, tt.start, tt.end)
		if (err == nil && tt.err != nil) || (err != nil && tt.err == nil) {
			t.Errorf("unexpected error: want %v, got %v", tt.err, err)
		}
		if got != tt.want {
			t.Errorf("unexpected sequence: want %s, got %s", tt.want, got)
		}
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		seq  string
		want uint64
		err  error
	}{
		{"seq1", 12, nil},
		{"seq2", 8, nil},
		{"seq0", 0, fmt.Errorf("sequence not found: seq0")},
	}
	fa, err := fasta.New(strings.NewReader(fastaData))
	if err != nil {
		t.Errorf("couldn't create Fasta: %v", err)
	}
	for _, tt := range tests {
		got, err := fa.Len(tt.seq)
		if (err == nil && tt.err != nil) || (err != nil && tt.err == nil) {
			t.Errorf("unexpected error: want %v, got %v", tt.err, err)
		}
		if got != tt.want {
			t.Errorf("unexpected length: want %v, got %v", tt.want, got)
		}
	}
}

func TestSeqNames(t *testing.T) {
	fa, err := fasta.New(strings.NewReader(fastaData))
	if err != nil {
		t.Errorf("couldn't create Fasta: %v", err)
	}
	want := sort.StringSlice([]string{"seq1", "seq2"})
	want.Sort()
	got := sort.StringSlice(fa.SeqNames())
	got.Sort()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOptClean(t *testing.T) {
	fa, err := fasta.New(strings.NewReader(">seq1\nacgtn\nNNNNacgt\n"), fasta.OptClean)
	if err != nil {
		t.Errorf("couldn't create Fasta: %v", err)
	}
	got, err := fa.Get("seq1", 0, 13)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if want := "ACGTNNNNNACGT"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

var pathFlag = flag.String("path", "", "FASTA file used by benchmarks")

func BenchmarkRead(b *testing.B) {
	if *pathFlag == "" {
		b.Skip("--path not set")
	}
	for i := 0; i < b.N; i++ {
		ctx := vcontext.Background()
		in, err := file.Open(ctx, *pathFlag)
		if err != nil {
			b.Fatal(err)
		}
		fin, err := fasta.New(in.Reader(ctx))
		if err != nil {
			b.Fatal(err)
		}
		seqNames := append([]string{}, fin.SeqNames()...)
		rand.Shuffle(len(seqNames), func(i, j int) {
			seqNames[i], seqNames[j] = seqNames[j], seqNames[i]
		})
		for _, seq := range seqNames {
			n, err := fin.Len(seq)
			if err != nil {
				b.Fatal(err)
			}
			if _, err := fin.Get(seq, 0, n); err != nil {
				b.Fatal(err)
			}
		}
		if err := in.Close(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

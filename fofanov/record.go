package fofanov

import "sync"

// Record is the per-foreground-sequence result (§3, §6): one digit per
// window on each scanned strand, plus the aggregate total/score pair for
// that strand. Reverse* fields are zero-valued when Opts.BidirectionalForeground
// is false.
type Record struct {
	Accession string
	Length    int

	ForwardDigits string
	ForwardTotal  int
	ForwardScore  float64

	ReverseDigits string
	ReverseTotal  int
	ReverseScore  float64
}

// digitBuf is a scratch buffer for building one strand's digit string.
// Workers run concurrently (§5), so the free list is a sync.Pool rather
// than the teacher's bare allocFragment/FreeFragment slice
// (fusion/stitcher.go), which relied on single-goroutine-per-shard
// ownership that doesn't hold here.
type digitBuf struct {
	b []byte
}

var digitBufPool = sync.Pool{New: func() interface{} { return &digitBuf{} }}

func allocDigitBuf() *digitBuf {
	d := digitBufPool.Get().(*digitBuf)
	d.b = d.b[:0]
	return d
}

func freeDigitBuf(d *digitBuf) {
	digitBufPool.Put(d)
}

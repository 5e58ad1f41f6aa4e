package fofanov

// Opts holds the tunables for one analysis run (§6's analyze(...) call).
type Opts struct {
	// K is the k-mer length. The core is monomorphic over K (§9); only 8 and
	// 16 are supported, selecting the heap []uint64 or mmap-backed uint64
	// presence-table representation respectively (presence.go).
	K int

	// BidirectionalBackground, when true, loads both the background
	// sequences and their reverse complements into the presence table (§4.5).
	BidirectionalBackground bool
	// BidirectionalForeground, when true, scans both a foreground sequence
	// and its reverse complement, producing reverse_digits/reverse_total/
	// reverse_score in the output record (§4.6, §3).
	BidirectionalForeground bool

	// AllowUnknownsBackground, when false, fails any background sequence
	// that contains an IUPAC ambiguity code (E_AMBIG_DISALLOWED); when true,
	// ambiguity codes are expanded per §4.1.
	AllowUnknownsBackground bool
	// AllowUnknownsForeground is the foreground-side counterpart: when
	// false, fails sequences with ambiguity codes; when true, applies the
	// fixed collapse table from §4.1.
	AllowUnknownsForeground bool

	// NWorkers is the size of the fixed worker pool (§5). Zero means "let
	// the driver pick" (runtime.NumCPU()).
	NWorkers int

	// ProgressEvery controls how often (in processed sequences) the driver
	// logs a progress line (§4.7: "every ~10000 items").
	ProgressEvery int
}

// MMax returns k/2, the maximum Hamming distance the mutation search will
// explore (§3).
func (o Opts) MMax() int { return o.K / 2 }

// DefaultOpts gives the defaults named in the spec: k=8, m_max=4,
// unidirectional, ambiguities disallowed on both sides, progress every 10000
// sequences, worker count left to the driver.
var DefaultOpts = Opts{
	K:                       8,
	BidirectionalBackground: false,
	BidirectionalForeground: false,
	AllowUnknownsBackground: false,
	AllowUnknownsForeground: false,
	NWorkers:                0,
	ProgressEvery:           10000,
}

package fofanov

import (
	"encoding/binary"
	"sync/atomic"
	"unsafe"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/log"
	"golang.org/x/sys/unix"
)

const wordBits = 64

// hugePageMmapThreshold is the k at or above which the presence table is
// backed by an anonymous mmap with MADV_HUGEPAGE instead of a plain slice,
// mirroring the teacher's kmerIndexShard.initShard (fusion/kmer_index.go),
// which only bothers with hugepages for its multi-hundred-megabyte shards.
const hugePageMmapThreshold = 12 // 4^12 bits = 2MiB, already worth it

// PresenceTable is the bitset of §3/§4.3: one bit per possible k-mer value,
// over the dense universe of N=4^k values. T[v]=1 iff the k-mer with value v
// has been observed (directly or via IUPAC expansion) in the background set.
//
// The universe is dense and closed (every Kmer value in [0, n) is a valid
// index), so unlike the teacher's kmer->genelist map (fusion/kmer_index.go,
// an open-ended, sparse map that needed farmhash sharding and linear
// probing), a k-mer's value *is* its bit index — no hashing required.
type PresenceTable struct {
	k      int
	n      uint64 // number of bits = 4^k
	nWords int
	words  []uint64       // backing store for k=8: a plain heap slice
	base   unsafe.Pointer // backing store for k=16: first word of an mmap'd region
	raw    []byte         // non-nil iff base is backed by an mmap, for Release
}

// NewPresenceTable allocates an all-zero table for the given k (§4.3
// init(k)). Only k in {8, 16} is meaningful for this spec, but the table
// itself works for any k small enough that 4^k bits fit in memory.
func NewPresenceTable(k int) *PresenceTable {
	n := uint64(1) << uint(2*k)
	nWords := int((n + wordBits - 1) / wordBits)
	nBytes := nWords * 8

	t := &PresenceTable{k: k, n: n, nWords: nWords}
	if k >= hugePageMmapThreshold {
		data, err := unix.Mmap(-1, 0, nBytes, unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_ANON|unix.MAP_PRIVATE)
		if err != nil {
			log.Panicf("presence: mmap %d bytes: %v", nBytes, err)
		}
		if err := unix.Madvise(data, unix.MADV_HUGEPAGE); err != nil {
			// Non-fatal: hugepages are a perf hint, not a correctness
			// requirement (matches the teacher's own treatment of
			// MADV_HUGEPAGE failures as non-fatal intent, not a hard
			// dependency).
			log.Printf("presence: madvise(MADV_HUGEPAGE) failed, continuing: %v", err)
		}
		t.raw = data
		t.base = unsafe.Pointer(&data[0])
	} else {
		t.words = make([]uint64, nWords)
	}
	return t
}

// wordAddr returns a pointer to word idx, in either backing mode. This is
// the same raw unsafe.Pointer-arithmetic style the teacher's
// kmerIndexShard uses to index its mmap'd hash table (fusion/kmer_index.go),
// rather than reslicing the mmap into a []uint64 header.
func (t *PresenceTable) wordAddr(idx uint64) *uint64 {
	if t.base != nil {
		return (*uint64)(unsafe.Pointer(uintptr(t.base) + 8*uintptr(idx)))
	}
	return &t.words[idx]
}

// Mark sets bit v (§4.3 mark(v)). It is safe for concurrent callers: each
// word is updated with a compare-and-swap retry loop rather than a global
// lock, per §5's preference for "per-word atomic or-set" over a single
// write mutex.
func (t *PresenceTable) Mark(v Kmer) {
	idx := uint64(v) / wordBits
	bit := uint64(1) << (uint64(v) % wordBits)
	addr := t.wordAddr(idx)
	for {
		old := atomic.LoadUint64(addr)
		if old&bit != 0 {
			return // already set; mark is idempotent (§8).
		}
		if atomic.CompareAndSwapUint64(addr, old, old|bit) {
			return
		}
	}
}

// Test reads bit v (§4.3 test(v)). Lock-free; valid during the read-only
// foreground phase, and also safe to call concurrently with Mark (the
// result is simply whichever side of the race won).
func (t *PresenceTable) Test(v Kmer) bool {
	idx := uint64(v) / wordBits
	bit := uint64(1) << (uint64(v) % wordBits)
	return atomic.LoadUint64(t.wordAddr(idx))&bit != 0
}

// AnyOf reports whether any of values has its bit set (§4.3 any_of), used by
// the mutation search (mutate.go) to test an entire level's candidate list.
func (t *PresenceTable) AnyOf(values []Kmer) (hit Kmer, found bool) {
	for _, v := range values {
		if t.Test(v) {
			return v, true
		}
	}
	return 0, false
}

// PolyTU reports presence of the all-T/U k-mer, value n-1. §3 specifies this
// as a distinguished scalar flag in the source; here it's simply T[n-1], so
// PolyTU is a thin alias kept for readers translating from the original
// design (§3's parenthetical).
func (t *PresenceTable) PolyTU() bool {
	return t.Test(Kmer(t.n - 1))
}

// Release frees the table's storage (§4.3 release()).
func (t *PresenceTable) Release() {
	if t.raw != nil {
		if err := unix.Munmap(t.raw); err != nil {
			log.Printf("presence: munmap: %v", err)
		}
		t.raw = nil
		t.base = nil
	}
	t.words = nil
}

// Checksum returns a seahash fingerprint of the table's raw bits, logged at
// the end of the background phase (driver.go) so two runs over the same
// background set can be diffed without re-scanning it. Grounded on the
// teacher's cmd/bio-pamtool/checksum.go, which sums record fields into a
// seahash-backed running checksum for the same "did two runs agree"
// purpose.
func (t *PresenceTable) Checksum() uint64 {
	buf := make([]byte, t.nWords*8)
	for i := 0; i < t.nWords; i++ {
		binary.LittleEndian.PutUint64(buf[i*8:], atomic.LoadUint64(t.wordAddr(uint64(i))))
	}
	return seahash.Sum64(buf)
}

// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd provides byte-array operations on raw nucleotide sequence
// data: reverse-complementing and cleaning non-ACGT noise to 'N'.
//
// This is the subset of the original package's lookup-table operations this
// module actually calls; the SIMD/assembly-dispatched pack/unpack,
// FASTQ-nibble, one-hot Seq8 encoding, and base-counting families it also
// offered have no caller here (k-mer encoding in this module goes straight
// from ASCII to 2-bit codes via fofanov/alphabet.go, never through biosimd's
// Seq8 nibble form) and were dropped rather than carried as unused surface.
package biosimd

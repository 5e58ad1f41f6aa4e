package fofanov

// Stats accumulates run-wide counters. The driver keeps one Stats per input
// sequence and folds them together with Merge once the phase completes,
// mirroring the teacher's Stats.Merge pattern.
type Stats struct {
	// BackgroundSequences and ForegroundSequences count sequences that
	// completed each phase without failure. Skipped background duplicates
	// are counted in BackgroundDuplicatesSkipped instead.
	BackgroundSequences int
	ForegroundSequences int

	// BackgroundKmersMarked is the total number of mark() calls issued during
	// the background phase, including ambiguity expansions.
	BackgroundKmersMarked int64
	// BackgroundDuplicatesSkipped counts background sequences skipped
	// because an identical sequence (by content hash) was already loaded
	// (SPEC_FULL.md §4.5 EXPANSION).
	BackgroundDuplicatesSkipped int

	// ForegroundWindows is the total number of windows scanned across all
	// foreground sequences (forward + reverse, when bidirectional).
	ForegroundWindows int64

	// Failures[kind] counts per-sequence failures by ErrKind (§7).
	Failures [numErrKinds]int
}

// Merge adds the field values of o into a copy of s and returns it.
func (s Stats) Merge(o Stats) Stats {
	s.BackgroundSequences += o.BackgroundSequences
	s.ForegroundSequences += o.ForegroundSequences
	s.BackgroundKmersMarked += o.BackgroundKmersMarked
	s.BackgroundDuplicatesSkipped += o.BackgroundDuplicatesSkipped
	s.ForegroundWindows += o.ForegroundWindows
	for i, n := range o.Failures {
		s.Failures[i] += n
	}
	return s
}

// TotalFailures returns the sum of all per-kind failure counts.
func (s Stats) TotalFailures() int {
	n := 0
	for _, c := range s.Failures {
		n += c
	}
	return n
}

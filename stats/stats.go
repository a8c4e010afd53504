// Package stats collects the summary record produced by one tree.Run or
// tree.RunParallel call, expanding spec.md §6's bare "statistics record
// carrying a flag" into the structured result a caller actually wants to
// inspect or export.
package stats

import (
	"time"

	"github.com/google/uuid"
)

// Flag values mirror the sign convention of the original library: 0 is
// success, a negative value reports a fatal error class.
const (
	FlagSuccess           = 0
	FlagNotPositiveDefine = -1
)

// Stats summarizes one factorization run.
type Stats struct {
	Flag            int
	FailedColumn    int
	NumDelayedTotal int
	MaxFrontSize    int
	Elapsed         time.Duration
	RunID           uuid.UUID
}

// New returns a zeroed Stats stamped with a fresh RunID, ready for a
// driver to accumulate into as it sweeps the tree.
func New() Stats {
	return Stats{RunID: uuid.New()}
}

// Accumulate folds one front's post-factorization counters into s.
func (s *Stats) Accumulate(ndelayOut, frontSize int) {
	s.NumDelayedTotal += ndelayOut
	if frontSize > s.MaxFrontSize {
		s.MaxFrontSize = frontSize
	}
}

// Fail marks the run as having aborted at the given column.
func (s *Stats) Fail(column int) {
	s.Flag = FlagNotPositiveDefine
	s.FailedColumn = column
}

package concurrency

import (
	"sync/atomic"

	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
)

// TerminationFlag is an atomic boolean workers poll at bounded intervals to detect
// cancellation (spec.md §4.2, §5). Cancellation is cooperative: in-flight work
// completes its current unit before observing the flag.
type TerminationFlag struct {
	cancelled atomic.Bool
}

func NewTerminationFlag() *TerminationFlag {
	return &TerminationFlag{}
}

func (t *TerminationFlag) Cancel() { t.cancelled.Store(true) }

func (t *TerminationFlag) IsCancelled() bool { return t.cancelled.Load() }

// Check returns a Cancelled kernel error (tagged with stage) if the flag is set, nil
// otherwise. Callers poll this at partition boundaries, superstep starts, and batch
// boundaries per spec.md §5.
func (t *TerminationFlag) Check(stage kernelerrors.Stage) error {
	if t.cancelled.Load() {
		return kernelerrors.Cancelled(stage)
	}
	return nil
}

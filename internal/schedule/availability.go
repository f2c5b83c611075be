package schedule

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/citasalud/mobile-core/pkg/logging"
)

// Messages surfaced when the backend cannot be asked. The check fails closed:
// an unreachable backend never reads as a free slot.
const (
	msgCheckFailed   = "No se pudo verificar la disponibilidad del horario"
	msgMissingDoctor = "Selecciona un doctor para verificar disponibilidad"
)

// Checker answers "is {doctor, date, time} free?" for the booking forms. The
// form re-checks on every input change, and responses can arrive out of
// order, so each check carries a sequence number; a result that has been
// superseded by a later check reports Stale and must not be applied.
type Checker struct {
	backend Backend
	logger  *logging.Logger
	seq     atomic.Uint64
}

func NewChecker(backend Backend, logger *logging.Logger) *Checker {
	if backend == nil {
		panic("schedule: backend required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Checker{backend: backend, logger: logger}
}

// CheckResult is a Verdict plus the bookkeeping the reactive form needs.
type CheckResult struct {
	Verdict
	Seq   uint64
	Stale bool
}

// Check validates the tuple against the backend. Input errors and transport
// failures both produce a negative verdict with a displayable message.
func (c *Checker) Check(ctx context.Context, doctorID string, date Date, t TimeOfDay) CheckResult {
	seq := c.seq.Add(1)

	if strings.TrimSpace(doctorID) == "" {
		return c.finish(seq, Verdict{Available: false, Message: msgMissingDoctor})
	}

	verdict, err := c.backend.VerifyAvailability(ctx, doctorID, date, t)
	if err != nil {
		c.logger.Warn("availability check failed",
			"doctor_id", doctorID, "fecha", date.String(), "hora", t.String(), "error", err)
		return c.finish(seq, Verdict{Available: false, Message: msgCheckFailed})
	}
	if strings.TrimSpace(verdict.Message) == "" {
		// The UI shows Message verbatim; backfill when the backend is terse.
		if verdict.Available {
			verdict.Message = "Horario disponible"
		} else {
			verdict.Message = "Horario no disponible"
		}
	}
	return c.finish(seq, verdict)
}

// Latest reports the sequence number of the most recently issued check. A
// CheckResult with an older Seq has been superseded and must not be applied.
func (c *Checker) Latest() uint64 {
	return c.seq.Load()
}

func (c *Checker) finish(seq uint64, v Verdict) CheckResult {
	return CheckResult{
		Verdict: v,
		Seq:     seq,
		Stale:   c.seq.Load() != seq,
	}
}

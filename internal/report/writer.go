// Package report delivers battle telemetry to output sinks.
package report

import "autoresolve-sim/internal/telemetry"

// Writer receives battle telemetry.
type Writer interface {
	WriteEvent(telemetry.EventRow) error
	WriteUnitState(telemetry.UnitStateRow) error
	WriteSummary(telemetry.SummaryRow) error
}

// Optional: writers may support batched unit snapshots
type batchWriter interface {
	WriteUnitStates([]telemetry.UnitStateRow) error
}

// Optional: writers may support batched events
type batchEventWriter interface {
	WriteEvents([]telemetry.EventRow) error
}

// WriteUnitStates sends rows to w, batching when w supports it.
func WriteUnitStates(w Writer, rows []telemetry.UnitStateRow) error {
	if bw, ok := w.(batchWriter); ok {
		return bw.WriteUnitStates(rows)
	}
	for _, r := range rows {
		if err := w.WriteUnitState(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvents sends rows to w, batching when w supports it.
func WriteEvents(w Writer, rows []telemetry.EventRow) error {
	if bw, ok := w.(batchEventWriter); ok {
		return bw.WriteEvents(rows)
	}
	for _, r := range rows {
		if err := w.WriteEvent(r); err != nil {
			return err
		}
	}
	return nil
}

type discard struct{}

func (discard) WriteEvent(telemetry.EventRow) error         { return nil }
func (discard) WriteUnitState(telemetry.UnitStateRow) error { return nil }
func (discard) WriteSummary(telemetry.SummaryRow) error     { return nil }

// Discard drops everything written to it.
var Discard Writer = discard{}

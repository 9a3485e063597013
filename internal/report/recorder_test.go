package report

import "autoresolve-sim/internal/telemetry"

// recorder captures rows in memory.
type recorder struct {
	events    []telemetry.EventRow
	units     []telemetry.UnitStateRow
	summaries []telemetry.SummaryRow
	batches   int
	err       error
}

func (r *recorder) WriteEvent(e telemetry.EventRow) error {
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) WriteUnitState(u telemetry.UnitStateRow) error {
	r.units = append(r.units, u)
	return r.err
}

func (r *recorder) WriteSummary(s telemetry.SummaryRow) error {
	r.summaries = append(r.summaries, s)
	return r.err
}

// batchRecorder also implements the batch interfaces.
type batchRecorder struct{ recorder }

func (b *batchRecorder) WriteUnitStates(rows []telemetry.UnitStateRow) error {
	b.batches++
	b.units = append(b.units, rows...)
	return b.err
}

func (b *batchRecorder) WriteEvents(rows []telemetry.EventRow) error {
	b.batches++
	b.events = append(b.events, rows...)
	return b.err
}

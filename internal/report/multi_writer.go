package report

import "autoresolve-sim/internal/telemetry"

// MultiWriter fans rows out to multiple writers.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...Writer) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// WriteEvent sends an event row to all writers.
func (mw *MultiWriter) WriteEvent(row telemetry.EventRow) error {
	for _, w := range mw.writers {
		if err := w.WriteEvent(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvents sends event rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteEvents(rows []telemetry.EventRow) error {
	for _, w := range mw.writers {
		if err := WriteEvents(w, rows); err != nil {
			return err
		}
	}
	return nil
}

// WriteUnitState sends a unit snapshot to all writers.
func (mw *MultiWriter) WriteUnitState(row telemetry.UnitStateRow) error {
	for _, w := range mw.writers {
		if err := w.WriteUnitState(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteUnitStates sends unit snapshots to all writers, using batch if supported.
func (mw *MultiWriter) WriteUnitStates(rows []telemetry.UnitStateRow) error {
	for _, w := range mw.writers {
		if err := WriteUnitStates(w, rows); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary sends the verdict to all writers.
func (mw *MultiWriter) WriteSummary(row telemetry.SummaryRow) error {
	for _, w := range mw.writers {
		if err := w.WriteSummary(row); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every writer that supports it and returns the first error.
func (mw *MultiWriter) Close() error {
	var first error
	for _, w := range mw.writers {
		if c, ok := w.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

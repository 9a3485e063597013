package report

import (
	"fmt"

	"autoresolve-sim/internal/telemetry"
)

// Log collects human-readable report entries during a phase and hands them
// to a Writer when the phase ends. A Log with a nil writer is suppressed:
// entries are dropped without being formatted.
type Log struct {
	gen     *telemetry.Generator
	w       Writer
	pending []string
	flushed int
}

// NewLog returns a Log writing through w.
func NewLog(gen *telemetry.Generator, w Writer) *Log {
	return &Log{gen: gen, w: w}
}

// Suppressed reports whether entries are being dropped.
func (l *Log) Suppressed() bool { return l == nil || l.w == nil }

// Addf appends a formatted entry.
func (l *Log) Addf(format string, args ...any) {
	if l.Suppressed() {
		return
	}
	l.pending = append(l.pending, fmt.Sprintf(format, args...))
}

// Pending returns entries not yet flushed.
func (l *Log) Pending() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.pending...)
}

// Flushed returns how many entries have been written.
func (l *Log) Flushed() int {
	if l == nil {
		return 0
	}
	return l.flushed
}

// Flush writes pending entries tagged with round and phase.
func (l *Log) Flush(round int, phase string) error {
	if l.Suppressed() || len(l.pending) == 0 {
		return nil
	}
	rows := make([]telemetry.EventRow, 0, len(l.pending))
	for _, text := range l.pending {
		rows = append(rows, l.gen.Event(round, phase, text))
	}
	l.pending = l.pending[:0]
	if err := WriteEvents(l.w, rows); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	l.flushed += len(rows)
	return nil
}

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"autoresolve-sim/internal/telemetry"
)

// JSONStdoutWriter prints rows as JSON lines to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

func (w *JSONStdoutWriter) emit(row telemetry.Row) error {
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// WriteEvent outputs a report entry.
func (w *JSONStdoutWriter) WriteEvent(e telemetry.EventRow) error {
	return w.emit(telemetry.Row{Kind: telemetry.KindEvent, Event: &e})
}

// WriteUnitState outputs a unit snapshot.
func (w *JSONStdoutWriter) WriteUnitState(u telemetry.UnitStateRow) error {
	return w.emit(telemetry.Row{Kind: telemetry.KindUnit, Unit: &u})
}

// WriteSummary outputs the verdict.
func (w *JSONStdoutWriter) WriteSummary(s telemetry.SummaryRow) error {
	return w.emit(telemetry.Row{Kind: telemetry.KindSummary, Summary: &s})
}

package report

import (
	"encoding/json"
	"os"

	"autoresolve-sim/internal/telemetry"
)

// FileWriter writes the battle log as JSONL. Each line is a telemetry.Row
// envelope so ReplayLog can restore every row kind. Unit snapshots go to a
// separate file when statePath is set.
type FileWriter struct {
	logFile   *os.File
	stateFile *os.File
	logEnc    *json.Encoder
	stateEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. statePath may be empty to keep unit
// snapshots in the main log.
func NewFileWriter(logPath, statePath string) (*FileWriter, error) {
	lf, err := os.Create(logPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{logFile: lf, logEnc: json.NewEncoder(lf)}
	fw.stateEnc = fw.logEnc
	if statePath != "" {
		sf, err := os.Create(statePath)
		if err != nil {
			lf.Close()
			return nil, err
		}
		fw.stateFile = sf
		fw.stateEnc = json.NewEncoder(sf)
	}
	return fw, nil
}

// WriteEvent logs a report entry.
func (f *FileWriter) WriteEvent(e telemetry.EventRow) error {
	return f.logEnc.Encode(telemetry.Row{Kind: telemetry.KindEvent, Event: &e})
}

// WriteEvents logs multiple report entries.
func (f *FileWriter) WriteEvents(rows []telemetry.EventRow) error {
	for _, r := range rows {
		if err := f.WriteEvent(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteUnitState logs a unit snapshot.
func (f *FileWriter) WriteUnitState(u telemetry.UnitStateRow) error {
	return f.stateEnc.Encode(telemetry.Row{Kind: telemetry.KindUnit, Unit: &u})
}

// WriteUnitStates logs multiple unit snapshots.
func (f *FileWriter) WriteUnitStates(rows []telemetry.UnitStateRow) error {
	for _, r := range rows {
		if err := f.WriteUnitState(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary logs the verdict.
func (f *FileWriter) WriteSummary(s telemetry.SummaryRow) error {
	return f.logEnc.Encode(telemetry.Row{Kind: telemetry.KindSummary, Summary: &s})
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.logFile != nil {
		if e := f.logFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.stateFile != nil {
		if e := f.stateFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

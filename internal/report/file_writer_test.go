package report

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"autoresolve-sim/internal/telemetry"
)

var errTest = errors.New("test error")

func TestFileWriterWritesEnvelopes(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "battle.jsonl")
	statePath := filepath.Join(dir, "units.jsonl")
	fw, err := NewFileWriter(logPath, statePath)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	ts := time.Unix(10, 0).UTC()
	if err := fw.WriteEvents([]telemetry.EventRow{{BattleID: "b", Text: "a", Timestamp: ts}}); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	if err := fw.WriteUnitStates([]telemetry.UnitStateRow{{UnitID: 4, Timestamp: ts}}); err != nil {
		t.Fatalf("WriteUnitStates: %v", err)
	}
	if err := fw.WriteSummary(telemetry.SummaryRow{Winner: 2, Timestamp: ts}); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := readLines(t, logPath)
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"kind":"event"`) || !strings.Contains(lines[1], `"kind":"summary"`) {
		t.Fatalf("unexpected log content: %v", lines)
	}
	states := readLines(t, statePath)
	if len(states) != 1 || !strings.Contains(states[0], `"unit_id":4`) {
		t.Fatalf("unexpected state content: %v", states)
	}
}

func TestFileWriterReplayRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.jsonl")
	fw, err := NewFileWriter(path, "")
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	ts := time.Unix(0, 0).UTC()
	fw.WriteEvent(telemetry.EventRow{Round: 1, Phase: "firing", Text: "hit", Timestamp: ts})
	fw.WriteUnitState(telemetry.UnitStateRow{UnitID: 9, Destroyed: true, Timestamp: ts})
	fw.WriteSummary(telemetry.SummaryRow{Winner: 1, Rounds: 3, Timestamp: ts})
	fw.Close()

	rec := &recorder{}
	if err := ReplayLogFile(path, rec, 0); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(rec.events) != 1 || rec.events[0].Text != "hit" {
		t.Fatalf("events not replayed: %+v", rec.events)
	}
	if len(rec.units) != 1 || !rec.units[0].Destroyed {
		t.Fatalf("units not replayed: %+v", rec.units)
	}
	if len(rec.summaries) != 1 || rec.summaries[0].Rounds != 3 {
		t.Fatalf("summary not replayed: %+v", rec.summaries)
	}
}

func TestReplayRejectsUnknownKind(t *testing.T) {
	err := ReplayLog(strings.NewReader(`{"kind":"mystery"}`+"\n"), &recorder{}, 0)
	if err == nil || !strings.Contains(err.Error(), "mystery") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestReplayLogFileMissing(t *testing.T) {
	if err := ReplayLogFile(filepath.Join(t.TempDir(), "nope.jsonl"), &recorder{}, 0); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

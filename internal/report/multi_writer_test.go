package report

import (
	"testing"

	"autoresolve-sim/internal/telemetry"
)

func TestMultiWriterFansOut(t *testing.T) {
	plain := &recorder{}
	batch := &batchRecorder{}
	mw := NewMultiWriter(plain, batch)

	rows := []telemetry.UnitStateRow{{UnitID: 1}, {UnitID: 2}}
	if err := mw.WriteUnitStates(rows); err != nil {
		t.Fatalf("WriteUnitStates: %v", err)
	}
	if len(plain.units) != 2 || len(batch.units) != 2 {
		t.Fatalf("rows not forwarded: %d %d", len(plain.units), len(batch.units))
	}
	if batch.batches != 1 {
		t.Fatalf("expected batch path, got %d batches", batch.batches)
	}

	if err := mw.WriteSummary(telemetry.SummaryRow{Winner: 1}); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if len(plain.summaries) != 1 || len(batch.summaries) != 1 {
		t.Fatalf("summary not forwarded")
	}
	if err := mw.WriteEvent(telemetry.EventRow{Text: "x"}); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	if len(plain.events) != 1 {
		t.Fatalf("event not forwarded")
	}
}

func TestMultiWriterStopsOnError(t *testing.T) {
	failing := &recorder{err: errTest}
	after := &recorder{}
	mw := NewMultiWriter(failing, after)
	if err := mw.WriteEvent(telemetry.EventRow{}); err != errTest {
		t.Fatalf("expected errTest, got %v", err)
	}
	if len(after.events) != 0 {
		t.Fatalf("writer after failure should not be called")
	}
}

type closer struct {
	recorder
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return nil
}

func TestMultiWriterClose(t *testing.T) {
	c := &closer{}
	mw := NewMultiWriter(&recorder{}, c)
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !c.closed {
		t.Fatalf("closer not closed")
	}
}

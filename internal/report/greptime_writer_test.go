package report

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"

	"autoresolve-sim/internal/telemetry"
)

type mockGreptimeClient struct {
	table *table.Table
	calls int
	err   error
}

func (m *mockGreptimeClient) Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error) {
	m.calls++
	if len(tables) > 0 {
		m.table = tables[0]
	}
	return &gpb.GreptimeResponse{}, m.err
}

func TestGreptimeWriterEvents(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, eventTable: "battle_events"}
	rows := []telemetry.EventRow{
		{BattleID: "b1", Round: 1, Phase: "firing", Seq: 1, Text: "hit", Timestamp: time.Unix(0, 0).UTC()},
		{BattleID: "b1", Round: 1, Phase: "firing", Seq: 2, Text: "miss", Timestamp: time.Unix(1, 0).UTC()},
	}
	if err := w.WriteEvents(rows); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	if m.table == nil || m.calls != 1 {
		t.Fatalf("expected one table write, got %d", m.calls)
	}
	got := m.table.GetRows()
	if len(got.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Rows))
	}
	if v := got.Rows[0].Values[0].GetStringValue(); v != "b1" {
		t.Fatalf("battle_id = %s, want b1", v)
	}
	if v := got.Rows[1].Values[4].GetStringValue(); v != "miss" {
		t.Fatalf("text = %s, want miss", v)
	}
}

func TestGreptimeWriterUnitStates(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, unitTable: "battle_unit_state"}
	row := telemetry.UnitStateRow{BattleID: "b1", UnitID: 7, Name: "Hunchback", Destroyed: true, Removal: "salvageable", Timestamp: time.Unix(0, 0).UTC()}
	if err := w.WriteUnitState(row); err != nil {
		t.Fatalf("WriteUnitState: %v", err)
	}
	vals := m.table.GetRows().Rows[0].Values
	if v := vals[2].GetStringValue(); v != "Hunchback" {
		t.Fatalf("name = %s, want Hunchback", v)
	}
	if v := vals[13].GetStringValue(); v != "salvageable" {
		t.Fatalf("removal = %s, want salvageable", v)
	}
}

func TestGreptimeWriterSummary(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, summaryTable: "battle_summary"}
	row := telemetry.SummaryRow{BattleID: "b1", Winner: 2, Rounds: 9, Teams: []telemetry.TeamSummary{{Team: 1, StartingUnits: 4}}}
	if err := w.WriteSummary(row); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	got := m.table.GetRows().Rows[0].Values[4].GetStringValue()
	want := `[{"team":1,"starting_units":4,"remaining":0,"casualty_pct":0}]`
	if got != want {
		t.Fatalf("teams = %s, want %s", got, want)
	}
}

func TestGreptimeWriterSkipsEmptyBatch(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, eventTable: "e"}
	if err := w.WriteEvents(nil); err != nil || m.calls != 0 {
		t.Fatalf("empty batch should not write")
	}
}

func TestGreptimeWriterLogsFailedTable(t *testing.T) {
	var buf bytes.Buffer
	down := errors.New("connection refused")
	m := &mockGreptimeClient{err: down}
	w := &GreptimeDBWriter{
		client:     m,
		eventTable: "battle_events",
		log:        slog.New(slog.NewTextHandler(&buf, nil)),
	}
	err := w.WriteEvent(telemetry.EventRow{BattleID: "b1", Text: "hit", Timestamp: time.Unix(0, 0).UTC()})
	if !errors.Is(err, down) {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
	if !strings.Contains(buf.String(), "table=battle_events") {
		t.Fatalf("log should name the table, got %q", buf.String())
	}
}

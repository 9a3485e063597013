package telemetry

import (
	"testing"
	"time"

	"autoresolve-sim/internal/unit"
)

func TestGenerateUnitState(t *testing.T) {
	ts := time.Unix(100, 0).UTC()
	gen := NewGenerator("battle-1").WithClock(func() time.Time { return ts })
	u := unit.NewMek(unit.Spec{ID: 3, Name: "Wolverine", Owner: 2, Tonnage: 55})
	u.SetArmor(unit.MekHead, 4)
	u.SetCrewHits(2)

	row := gen.UnitState(u, 7, 4)

	if row.BattleID != "battle-1" {
		t.Errorf("expected battle-1, got %s", row.BattleID)
	}
	if row.UnitID != 3 || row.FormationID != 7 || row.Round != 4 {
		t.Errorf("unexpected identity fields: %+v", row)
	}
	if row.Category != "mek" || row.Removal != "none" {
		t.Errorf("unexpected labels: %s %s", row.Category, row.Removal)
	}
	if row.MaxArmor-row.Armor != 5 {
		t.Errorf("expected 5 armor lost, got %d", row.MaxArmor-row.Armor)
	}
	if row.CrewHits != 2 {
		t.Errorf("expected 2 crew hits, got %d", row.CrewHits)
	}
	if !row.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", row.Timestamp, ts)
	}
}

func TestGenerateEventSequence(t *testing.T) {
	gen := NewGenerator("b")
	first := gen.Event(1, "firing", "a")
	second := gen.Event(1, "firing", "b")
	if second.Seq != first.Seq+1 {
		t.Errorf("expected increasing sequence, got %d then %d", first.Seq, second.Seq)
	}
	if time.Since(first.Timestamp) > time.Second {
		t.Errorf("timestamp too old: %v", first.Timestamp)
	}
}

func TestTableNames(t *testing.T) {
	if (EventRow{}).TableName() != "battle_events" {
		t.Errorf("unexpected event table %s", EventRow{}.TableName())
	}
	if (SummaryRow{}).TableName() != SummaryTableName {
		t.Errorf("summary table mismatch")
	}
}

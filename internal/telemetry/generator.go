package telemetry

import (
	"time"

	"autoresolve-sim/internal/unit"
)

// Generator builds telemetry rows for one battle.
type Generator struct {
	BattleID string
	now      func() time.Time
	seq      int
}

// NewGenerator creates a generator for battleID stamping rows with the
// wall clock.
func NewGenerator(battleID string) *Generator {
	return &Generator{BattleID: battleID, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the timestamp source.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Event returns a report row. Sequence numbers increase across the battle.
func (g *Generator) Event(round int, phase, text string) EventRow {
	g.seq++
	return EventRow{
		BattleID:  g.BattleID,
		Round:     round,
		Phase:     phase,
		Seq:       g.seq,
		Text:      text,
		Timestamp: g.now(),
	}
}

// UnitState snapshots u.
func (g *Generator) UnitState(u *unit.Unit, formationID, round int) UnitStateRow {
	row := UnitStateRow{
		BattleID:    g.BattleID,
		UnitID:      u.ID,
		Name:        u.Name,
		Owner:       u.Owner,
		FormationID: formationID,
		Category:    u.Category.String(),
		Round:       round,
		Troopers:    u.Troopers,
		Destroyed:   u.Destroyed,
		Removal:     u.Removal.String(),
		Timestamp:   g.now(),
	}
	for _, l := range u.Locations {
		row.Armor += l.Armor
		row.MaxArmor += l.MaxArmor
		row.Internal += l.Internal
		row.MaxInternal += l.MaxInternal
	}
	if u.Crew != nil {
		row.CrewHits = u.Crew.Hits
		row.Ejected = u.Crew.Ejected
	}
	return row
}

// Summary returns the verdict row.
func (g *Generator) Summary(winner, rounds int, forced bool, teams []TeamSummary) SummaryRow {
	return SummaryRow{
		BattleID:  g.BattleID,
		Winner:    winner,
		Rounds:    rounds,
		Forced:    forced,
		Teams:     teams,
		Timestamp: g.now(),
	}
}

package sim

import (
	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/telemetry"
)

// Result is the outcome of a finished battle.
type Result struct {
	BattleID string
	// Winner is the winning team, or -1 for a draw.
	Winner int
	Rounds int
	Forced bool
	Reason string
	Teams  []telemetry.TeamSummary
	// Graveyard lists removed units in removal order.
	Graveyard []battle.GraveRecord
}

func (m *Manager) result() *Result {
	res := &Result{
		BattleID:  m.cfg.BattleID,
		Winner:    -1,
		Rounds:    m.rounds,
		Graveyard: m.state.Graveyard(),
	}
	if m.verdict != nil {
		res.Winner = m.verdict.Winner
		res.Forced = m.verdict.Forced
		res.Reason = m.verdict.Reason
	}
	for _, t := range m.state.Teams() {
		start, remaining := teamCounts(m.state, t.ID)
		ts := telemetry.TeamSummary{Team: t.ID, StartingUnits: start, Remaining: remaining}
		if start > 0 {
			ts.CasualtyPct = 100 * float64(start-remaining) / float64(start)
		}
		res.Teams = append(res.Teams, ts)
	}
	return res
}

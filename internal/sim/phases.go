package sim

import (
	"context"
	"strings"

	"autoresolve-sim/internal/action"
	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/logging"
	"autoresolve-sim/internal/tactics"
	"autoresolve-sim/internal/unit"
)

func (m *Manager) rollInitiative(ctx context.Context) error {
	m.order = RollInitiative(m.state, m.tactics)
	m.state.SetTurns(m.order)
	names := make([]string, 0, len(m.order))
	for _, t := range m.order {
		if f, ok := m.state.Formation(t.FormationID); ok {
			names = append(names, f.Name)
		}
	}
	m.report.Addf("Round %d initiative: %s", m.state.Round(), strings.Join(names, ", "))
	return nil
}

func (m *Manager) deploy(ctx context.Context) error {
	log := logging.FromContext(ctx)
	for _, id := range m.state.DueForDeployment(m.state.Round()) {
		u, ok := m.state.Entity(id)
		if !ok {
			continue
		}
		u.Deployed = true
		fid, ok := m.state.FormationOfUnit(id)
		if !ok {
			log.Debug("deployed unit has no formation", "unit", id)
			continue
		}
		f, _ := m.state.Formation(fid)
		if f.Deployed {
			m.report.Addf("%s joins %s", u.Name, f.Name)
			continue
		}
		f.Deployed = true
		m.state.SetFormationAt(fid, f.Home)
		m.report.Addf("%s deploys at position %d", f.Name, f.Home)
	}
	m.state.SetupDeployment()
	return nil
}

// processQueue resolves everything the phase's planners queued.
func (m *Manager) processQueue(ctx context.Context) error {
	outcomes, err := m.proc.Process(ctx)
	if err != nil {
		return err
	}
	log := logging.FromContext(ctx)
	for _, o := range outcomes {
		if o.Status == Skipped {
			log.Debug("action skipped", "action", o.Action.String(), "reason", o.Reason)
		}
	}
	return nil
}

func (m *Manager) planMovement(ctx context.Context) error {
	for t, ok := m.state.ChangeToNextTurn(); ok; t, ok = m.state.ChangeToNextTurn() {
		f, ok := m.state.Formation(t.FormationID)
		if !ok {
			continue
		}
		self, ok := m.force(f)
		if !ok {
			continue
		}
		if dest := m.tactics.Destination(self, m.enemies(f.ID)); dest != f.Position {
			m.state.AddAction(action.Move{FormationID: f.ID, Destination: dest})
		}
	}
	return nil
}

func (m *Manager) planFiring(ctx context.Context) error {
	for t, ok := m.state.ChangeToNextTurn(); ok; t, ok = m.state.ChangeToNextTurn() {
		f, ok := m.state.Formation(t.FormationID)
		if !ok {
			continue
		}
		self, ok := m.force(f)
		if !ok {
			continue
		}
		if target, ok := m.tactics.ChooseTarget(self, m.enemies(f.ID)); ok {
			m.state.AddAction(action.Attack{FormationID: f.ID, TargetID: target})
		}
	}
	return nil
}

// planEndOfRound queues morale checks for formations hit this round, nerve
// recovery for shaken ones and withdrawal for crippled ones.
func (m *Manager) planEndOfRound(ctx context.Context) error {
	for _, t := range m.order {
		f, ok := m.state.Formation(t.FormationID)
		if !ok || !m.state.FormationAlive(f.ID) {
			continue
		}
		switch {
		case f.DamagedThisRound:
			m.state.AddAction(action.MoraleCheck{FormationID: f.ID, Modifier: m.lost(f)})
		case f.Morale > battle.MoraleNormal:
			m.state.AddAction(action.NerveRecovery{FormationID: f.ID})
		}
		if self, ok := m.force(f); ok && self.Health < m.cfg.WithdrawHealthFraction {
			m.state.AddAction(action.Withdraw{FormationID: f.ID, Reason: "crippled"})
		}
	}
	return nil
}

// fielded returns the formation's deployed units still in play.
func (m *Manager) fielded(formationID int) []*unit.Unit {
	var out []*unit.Unit
	for _, u := range m.state.FormationUnits(formationID) {
		if u.Deployed && !u.Destroyed {
			out = append(out, u)
		}
	}
	return out
}

// force summarizes a formation for the tactics engine. It returns false
// when nothing of the formation is on the field.
func (m *Manager) force(f *battle.Formation) (tactics.Force, bool) {
	units := m.fielded(f.ID)
	if !f.Deployed || len(units) == 0 {
		return tactics.Force{}, false
	}
	fc := tactics.Force{ID: f.ID, Position: f.Position, Home: f.Home, Movement: units[0].Movement}
	cur, total := 0, 0
	for _, u := range units {
		fc.Movement = min(fc.Movement, u.Movement)
		fc.Range = max(fc.Range, u.Range)
		cur += u.CurrentHealth()
		total += u.MaxHealth()
	}
	if total > 0 {
		fc.Health = float64(cur) / float64(total)
	}
	return fc, true
}

// enemies returns every fielded formation on another team.
func (m *Manager) enemies(formationID int) []tactics.Force {
	team := m.state.TeamOf(formationID)
	var out []tactics.Force
	for _, f := range m.state.Formations() {
		if f.ID == formationID || m.state.TeamOf(f.ID) == team || !m.state.FormationAlive(f.ID) {
			continue
		}
		if fc, ok := m.force(f); ok {
			out = append(out, fc)
		}
	}
	return out
}

// lost counts the formation's units no longer in play.
func (m *Manager) lost(f *battle.Formation) int {
	return len(f.UnitIDs) - len(m.state.FormationUnits(f.ID))
}

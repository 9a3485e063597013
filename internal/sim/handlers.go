package sim

import (
	"context"
	"fmt"

	"autoresolve-sim/internal/action"
	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/damage"
	"autoresolve-sim/internal/logging"
	"autoresolve-sim/internal/tactics"
	"autoresolve-sim/internal/unit"
)

func (m *Manager) actor(a action.Action) (*battle.Formation, error) {
	f, ok := m.state.Formation(a.Actor())
	if !ok {
		return nil, fmt.Errorf("unknown formation %d", a.Actor())
	}
	return f, nil
}

func (m *Manager) handleMove(ctx context.Context, a action.Action) (ActionOutcome, error) {
	mv := a.(action.Move)
	f, err := m.actor(a)
	if err != nil {
		return ActionOutcome{}, err
	}
	if !f.Deployed {
		return skipped(a, "formation not deployed"), nil
	}
	from := f.Position
	m.state.SetFormationAt(f.ID, mv.Destination)
	m.report.Addf("%s moves from %d to %d", f.Name, from, mv.Destination)
	return resolved(a), nil
}

func (m *Manager) handleAttack(ctx context.Context, a action.Action) (ActionOutcome, error) {
	atk := a.(action.Attack)
	f, err := m.actor(a)
	if err != nil {
		return ActionOutcome{}, err
	}
	target, ok := m.state.Formation(atk.TargetID)
	if !ok || !m.state.FormationAlive(target.ID) || len(m.fielded(target.ID)) == 0 {
		return skipped(a, "target no longer in play"), nil
	}

	distance := tactics.Distance(f.Position, target.Position)
	for _, u := range m.fielded(f.ID) {
		victims := m.fielded(target.ID)
		if len(victims) == 0 {
			break
		}
		victim := victims[m.tactics.Pick(len(victims))]
		tn, inRange := tactics.TargetNumber(u.Gunnery, distance, u.Range, victim.Movement)
		if !inRange {
			continue
		}
		roll, hit := m.tactics.ToHit(tn)
		if !hit {
			m.report.Addf("%s misses %s (rolled %d, needed %d)", u.Name, victim.Name, roll, tn)
			continue
		}
		dmg := u.EffectiveFirepower()
		if dmg <= 0 {
			continue
		}
		out := m.chooser.Applier().Apply(victim, damage.Request{Damage: dmg, FinalState: damage.AnyFate})
		target.DamagedThisRound = true
		m.report.Addf("%s hits %s for %d damage (rolled %d, needed %d)", u.Name, victim.Name, out.Applied, roll, tn)
		if out.Ejected {
			m.report.Addf("%s's crew ejects", victim.Name)
		}
		if victim.Destroyed {
			m.unitDestroyed(ctx, victim)
		}
	}
	return resolved(a), nil
}

// unitDestroyed moves a unit killed in combat to the graveyard and purges
// its formation's queued actions once nothing of it is left.
func (m *Manager) unitDestroyed(ctx context.Context, u *unit.Unit) {
	if !m.state.AddUnitToGraveyard(u.ID, u.Removal) {
		return
	}
	m.report.Addf("%s is destroyed (%s)", u.Name, u.Removal)
	fid, ok := m.state.FormationOfUnit(u.ID)
	if !ok || m.state.FormationAlive(fid) {
		return
	}
	n := m.state.RemoveActionsFor(fid)
	logging.FromContext(ctx).Debug("formation eliminated", "formation", fid, "purged_actions", n)
	if f, ok := m.state.Formation(fid); ok {
		m.report.Addf("%s has been eliminated", f.Name)
	}
}

func (m *Manager) handleMoraleCheck(ctx context.Context, a action.Action) (ActionOutcome, error) {
	mc := a.(action.MoraleCheck)
	f, err := m.actor(a)
	if err != nil {
		return ActionOutcome{}, err
	}
	tn := m.cfg.MoraleTarget + mc.Modifier
	roll := m.tactics.Roll2D6()
	if roll >= tn {
		m.report.Addf("%s holds its nerve (rolled %d, needed %d)", f.Name, roll, tn)
		return resolved(a), nil
	}
	f.Morale = f.Morale.Worsen()
	m.report.Addf("%s morale falls to %s (rolled %d, needed %d)", f.Name, f.Morale, roll, tn)
	if f.Morale == battle.MoraleRouted {
		m.state.AddAction(action.Withdraw{FormationID: f.ID, Reason: "routed"})
	}
	return resolved(a), nil
}

func (m *Manager) handleNerveRecovery(ctx context.Context, a action.Action) (ActionOutcome, error) {
	f, err := m.actor(a)
	if err != nil {
		return ActionOutcome{}, err
	}
	if f.Morale == battle.MoraleNormal {
		return skipped(a, "morale already normal"), nil
	}
	roll := m.tactics.Roll2D6()
	if roll < m.cfg.NerveRecoveryTarget {
		return resolved(a), nil
	}
	f.Morale = f.Morale.Improve()
	m.report.Addf("%s steadies to %s", f.Name, f.Morale)
	return resolved(a), nil
}

func (m *Manager) handleWithdraw(ctx context.Context, a action.Action) (ActionOutcome, error) {
	w := a.(action.Withdraw)
	f, err := m.actor(a)
	if err != nil {
		return ActionOutcome{}, err
	}
	for _, u := range m.state.FormationUnits(f.ID) {
		RemoveUnit(m.state, m.chooser, u.ID, unit.RemovalRetreating)
	}
	f.Withdrawn = true
	n := m.state.RemoveActionsFor(f.ID)
	logging.FromContext(ctx).Debug("formation withdrew", "formation", f.ID, "reason", w.Reason, "purged_actions", n)
	m.report.Addf("%s withdraws from the field (%s)", f.Name, w.Reason)
	return resolved(a), nil
}

// Package sim drives a battle through its phase state machine until a
// victory policy declares it over.
package sim

import (
	"context"
	"sync/atomic"

	"autoresolve-sim/internal/action"
	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/damage"
	"autoresolve-sim/internal/logging"
	"autoresolve-sim/internal/report"
	"autoresolve-sim/internal/tactics"
	"autoresolve-sim/internal/telemetry"
)

// Config tunes one battle.
type Config struct {
	BattleID  string
	MaxRounds int
	// MoraleTarget is the 2d6 roll a damaged formation needs to hold.
	MoraleTarget int
	// NerveRecoveryTarget is the 2d6 roll a shaken formation needs to
	// improve by one step.
	NerveRecoveryTarget int
	// WithdrawHealthFraction is the remaining health share under which a
	// formation leaves the field.
	WithdrawHealthFraction float64
	Tuning                 damage.Tuning
	Victory                VictoryPolicy
	// Writer receives report entries and unit snapshots. Nil suppresses
	// all reporting.
	Writer    report.Writer
	Generator *telemetry.Generator
}

// DefaultConfig returns the stock battle settings.
func DefaultConfig() Config {
	return Config{
		BattleID:               "battle",
		MaxRounds:              1000,
		MoraleTarget:           6,
		NerveRecoveryTarget:    8,
		WithdrawHealthFraction: 0.25,
		Tuning:                 damage.DefaultTuning(),
		Victory:                LastTeamStanding{},
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BattleID == "" {
		c.BattleID = d.BattleID
	}
	if c.MaxRounds <= 0 {
		c.MaxRounds = d.MaxRounds
	}
	if c.MoraleTarget <= 0 {
		c.MoraleTarget = d.MoraleTarget
	}
	if c.NerveRecoveryTarget <= 0 {
		c.NerveRecoveryTarget = d.NerveRecoveryTarget
	}
	if c.WithdrawHealthFraction <= 0 {
		c.WithdrawHealthFraction = d.WithdrawHealthFraction
	}
	if c.Victory == nil {
		c.Victory = d.Victory
	}
	if c.Generator == nil {
		c.Generator = telemetry.NewGenerator(c.BattleID)
	}
	return c
}

// PhaseHandler runs during one phase after it has been prepared.
type PhaseHandler func(ctx context.Context) error

// Manager simulates exactly one battle. Create it after the battle state
// has been populated and discard it after Run returns.
type Manager struct {
	state    *battle.State
	cfg      Config
	tactics  *tactics.Engine
	chooser  *damage.Chooser
	proc     *Processor
	report   *report.Log
	writer   report.Writer
	handlers map[battle.Phase][]PhaseHandler

	order   []battle.Turn
	verdict *Verdict
	rounds  int
	ran     bool
	snap    atomic.Pointer[battle.Snapshot]
}

// NewManager wires the default phase and action handlers around state.
// Every random decision draws from state.Rand().
func NewManager(state *battle.State, cfg Config) *Manager {
	cfg = cfg.withDefaults()
	m := &Manager{
		state:    state,
		cfg:      cfg,
		tactics:  tactics.NewEngine(state.Rand()),
		chooser:  damage.NewChooser(damage.NewApplier(state.Rand(), cfg.Tuning)),
		proc:     NewProcessor(state),
		report:   report.NewLog(cfg.Generator, cfg.Writer),
		writer:   cfg.Writer,
		handlers: make(map[battle.Phase][]PhaseHandler),
	}
	if m.writer == nil {
		m.writer = report.Discard
	}

	m.proc.Register(action.KindMove, m.handleMove)
	m.proc.Register(action.KindAttack, m.handleAttack)
	m.proc.Register(action.KindMoraleCheck, m.handleMoraleCheck)
	m.proc.Register(action.KindNerveRecovery, m.handleNerveRecovery)
	m.proc.Register(action.KindWithdraw, m.handleWithdraw)

	m.RegisterPhaseHandler(battle.PhaseInitiative, m.rollInitiative)
	m.RegisterPhaseHandler(battle.PhaseDeployment, m.deploy, m.processQueue)
	m.RegisterPhaseHandler(battle.PhaseMovement, m.planMovement, m.processQueue)
	m.RegisterPhaseHandler(battle.PhaseFiring, m.planFiring, m.processQueue)
	m.RegisterPhaseHandler(battle.PhaseEnd, m.planEndOfRound, m.processQueue)
	return m
}

// RegisterPhaseHandler appends handlers run, in order, during phase p.
func (m *Manager) RegisterPhaseHandler(p battle.Phase, hs ...PhaseHandler) {
	m.handlers[p] = append(m.handlers[p], hs...)
}

// Processor returns the action processor so callers can replace handlers.
func (m *Manager) Processor() *Processor { return m.proc }

// Chooser returns the damage chooser used for removals.
func (m *Manager) Chooser() *damage.Chooser { return m.chooser }

// Snapshot returns the state as of the last phase boundary. It is safe to
// call from any goroutine while Run is in progress.
func (m *Manager) Snapshot() (battle.Snapshot, bool) {
	s := m.snap.Load()
	if s == nil {
		return battle.Snapshot{}, false
	}
	return *s, true
}

func (m *Manager) publish() {
	s := m.state.Snapshot()
	m.snap.Store(&s)
}

// Run drives the battle to the victory phase and returns the result.
// Cancelling ctx stops the battle between phases with ctx's error.
func (m *Manager) Run(ctx context.Context) (*Result, error) {
	if m.ran {
		return nil, ErrAlreadyRun
	}
	m.ran = true
	log := logging.FromContext(ctx).With("battle", m.cfg.BattleID)
	ctx = logging.NewContext(ctx, log)

	if err := m.checkSetup(); err != nil {
		return nil, &StepError{Phase: m.state.Phase(), Kind: KindSetup, Err: err}
	}
	log.Info("battle starting", "units", len(m.state.Units()),
		"formations", len(m.state.Formations()), "max_rounds", m.cfg.MaxRounds)

	m.state.SetupDeployment()
	m.publish()
	for m.state.Phase() != battle.PhaseVictory {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := m.runRound(ctx); err != nil {
			log.Error("battle aborted", "round", m.state.Round(), "err", err)
			return nil, err
		}
	}

	res := m.result()
	if err := m.writer.WriteSummary(m.cfg.Generator.Summary(res.Winner, res.Rounds, res.Forced, res.Teams)); err != nil {
		log.Error("summary write failed", "err", err)
	}
	log.Info("battle finished", "winner", res.Winner, "rounds", res.Rounds, "forced", res.Forced)
	return res, nil
}

func (m *Manager) checkSetup() error {
	if len(m.state.Units()) == 0 {
		return ErrNoForces
	}
	if len(teamsStanding(m.state)) < 2 {
		return ErrNoOpposition
	}
	return nil
}

// runRound walks one round from initiative to the end phase, stopping
// early when a phase end declares victory.
func (m *Manager) runRound(ctx context.Context) error {
	for p := battle.PhaseInitiative; ; p = p.Next() {
		if err := m.changePhase(ctx, p); err != nil {
			return err
		}
		m.endPhase(ctx, p)
		if m.state.Phase() == battle.PhaseVictory || p == battle.PhaseEnd {
			return nil
		}
	}
}

func (m *Manager) changePhase(ctx context.Context, p battle.Phase) error {
	logging.FromContext(ctx).Debug("phase change", "round", m.state.Round(), "phase", p.String())
	m.state.SetPhase(p)
	m.prepare(p)
	for _, h := range m.handlers[p] {
		if err := h(ctx); err != nil {
			return asStepError(p, err)
		}
	}
	return nil
}

// prepare resets eligibility and builds the turn order for p.
func (m *Manager) prepare(p battle.Phase) {
	if p == battle.PhaseInitiative {
		m.state.ResetPlayersDone()
		m.state.ResetFormationsDone()
		for _, f := range m.state.Formations() {
			f.DamagedThisRound = false
		}
		return
	}
	if !p.UsesTurns() {
		return
	}
	m.state.ResetPlayersDone()
	m.state.ResetFormationsDone()
	var turns []battle.Turn
	for _, t := range m.order {
		if f, ok := m.state.Formation(t.FormationID); ok && f.Deployed && m.state.FormationAlive(f.ID) {
			turns = append(turns, t)
		}
	}
	m.state.SetTurns(turns)
}

// endPhase flushes the report, evaluates victory and, after the end
// phase, closes the round.
func (m *Manager) endPhase(ctx context.Context, p battle.Phase) {
	log := logging.FromContext(ctx)
	round := m.state.Round()
	if err := m.report.Flush(round, p.String()); err != nil {
		log.Error("report write failed", "phase", p.String(), "err", err)
	}
	m.state.SetTurns(nil)
	if p == battle.PhaseEnd {
		m.writeUnitStates(ctx, round)
		m.rounds = round
	}

	forced := p == battle.PhaseEnd && round >= m.cfg.MaxRounds
	v, ok := m.cfg.Victory.Evaluate(m.state, forced)
	if forced && !ok {
		v, ok = Verdict{Winner: -1, Forced: true, Reason: "round limit"}, true
	}
	if ok {
		m.verdict = &v
		m.rounds = round
		m.state.ClearActions()
		m.state.SetPhase(battle.PhaseVictory)
		if v.Winner < 0 {
			m.report.Addf("The battle ends in a draw after %d rounds (%s)", round, v.Reason)
		} else {
			m.report.Addf("Team %d is victorious after %d rounds (%s)", v.Winner, round, v.Reason)
		}
		if err := m.report.Flush(round, battle.PhaseVictory.String()); err != nil {
			log.Error("report write failed", "phase", battle.PhaseVictory.String(), "err", err)
		}
	} else if p == battle.PhaseEnd {
		m.state.IncrementRound()
		m.state.SetupDeployment()
	}
	m.publish()
}

func (m *Manager) writeUnitStates(ctx context.Context, round int) {
	var rows []telemetry.UnitStateRow
	for _, u := range m.state.Units() {
		fid, _ := m.state.FormationOfUnit(u.ID)
		rows = append(rows, m.cfg.Generator.UnitState(u, fid, round))
	}
	for _, g := range m.state.Graveyard() {
		if g.Round != round {
			continue
		}
		if u, ok := m.state.GraveyardUnit(g.UnitID); ok {
			fid, _ := m.state.FormationOfUnit(u.ID)
			rows = append(rows, m.cfg.Generator.UnitState(u, fid, round))
		}
	}
	if len(rows) == 0 {
		return
	}
	if err := report.WriteUnitStates(m.writer, rows); err != nil {
		logging.FromContext(ctx).Error("unit state write failed", "round", round, "err", err)
	}
}

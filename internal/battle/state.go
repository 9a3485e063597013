// Package battle holds the state of one running battle: units, players,
// formations, the pending action queue, turn order and the graveyard.
//
// Lookups and inserts are safe for concurrent readers. Mutating sequences
// are expected from a single driving goroutine.
package battle

import (
	"io"
	"log/slog"
	"math/rand"
	"slices"
	"sync"

	"autoresolve-sim/internal/action"
	"autoresolve-sim/internal/unit"
)

type status int

const (
	statusActive status = iota
	statusGraveyard
)

type entry struct {
	unit   *unit.Unit
	status status
}

// GraveRecord notes when and why a unit left the battle.
type GraveRecord struct {
	UnitID  int
	Round   int
	Removal unit.Removal
}

// State is the battle container.
type State struct {
	mu  sync.RWMutex
	log *slog.Logger
	rng *rand.Rand

	// units live in a dense arena; ids index into it through byID
	arena     []entry
	byID      map[int]int
	graveyard []GraveRecord
	starting  map[int]int

	players    map[int]*Player
	teams      map[int]*Team
	formations map[int]*Formation
	formOrder  []int
	board      map[int][]int

	actions []action.Action

	turns      []Turn
	turnIndex  int
	phase      Phase
	round      int
	deployment map[int][]int
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger used for bookkeeping messages.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) { s.log = l }
}

// WithSeed seeds the battle's random source.
func WithSeed(seed int64) Option {
	return func(s *State) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand uses r as the battle's random source.
func WithRand(r *rand.Rand) Option {
	return func(s *State) { s.rng = r }
}

// New returns an empty battle in the starting phase.
func New(opts ...Option) *State {
	s := &State{
		byID:       make(map[int]int),
		starting:   make(map[int]int),
		players:    make(map[int]*Player),
		teams:      make(map[int]*Team),
		formations: make(map[int]*Formation),
		board:      make(map[int][]int),
		deployment: make(map[int][]int),
		turnIndex:  -1,
		round:      1,
		phase:      PhaseStartingScenario,
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}
	return s
}

// Rand returns the battle's random source. Every random decision in a
// battle draws from it so a seed reproduces the run.
func (s *State) Rand() *rand.Rand { return s.rng }

// Logger returns the bookkeeping logger.
func (s *State) Logger() *slog.Logger { return s.log }

// AddUnit inserts u into the active table and returns its id. Ids that are
// unset or already taken, by an active or a graveyard unit, are replaced
// with the next free id.
func (s *State) AddUnit(u *unit.Unit) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byID[u.ID]; taken || u.ID <= 0 {
		old := u.ID
		u.ID = s.nextIDLocked()
		s.log.Debug("reassigned unit id", "unit", u.Name, "requested", old, "assigned", u.ID)
	}
	s.byID[u.ID] = len(s.arena)
	s.arena = append(s.arena, entry{unit: u, status: statusActive})
	s.starting[u.Owner]++
	return u.ID
}

func (s *State) nextIDLocked() int {
	id := 0
	for k := range s.byID {
		id = max(id, k)
	}
	return id + 1
}

// Entity returns the active unit with id. Graveyard units are not returned.
func (s *State) Entity(id int) (*unit.Unit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok || s.arena[i].status != statusActive {
		return nil, false
	}
	return s.arena[i].unit, true
}

// Units returns the active units in insertion order.
func (s *State) Units() []*unit.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*unit.Unit, 0, len(s.arena))
	for _, e := range s.arena {
		if e.status == statusActive {
			out = append(out, e.unit)
		}
	}
	return out
}

// StartingUnits returns how many units owner brought to the battle.
func (s *State) StartingUnits(owner int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.starting[owner]
}

// AddUnitToGraveyard removes the active unit id from play. It logs and
// returns false when id is not active.
func (s *State) AddUnitToGraveyard(id int, removal unit.Removal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok || s.arena[i].status != statusActive {
		s.log.Debug("graveyard request for inactive unit", "unit", id)
		return false
	}
	e := &s.arena[i]
	e.status = statusGraveyard
	if removal != unit.RemovalNone && e.unit.Removal == unit.RemovalNone {
		e.unit.Removal = removal
	}
	s.graveyard = append(s.graveyard, GraveRecord{UnitID: id, Round: s.round, Removal: e.unit.Removal})
	return true
}

// InGraveyard reports whether id has been removed from play.
func (s *State) InGraveyard(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	return ok && s.arena[i].status == statusGraveyard
}

// GraveyardUnit returns a removed unit for reporting.
func (s *State) GraveyardUnit(id int) (*unit.Unit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok || s.arena[i].status != statusGraveyard {
		return nil, false
	}
	return s.arena[i].unit, true
}

// Graveyard returns the removal records in the order units were removed.
func (s *State) Graveyard() []GraveRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.graveyard)
}

// AddPlayer registers a player and its team.
func (s *State) AddPlayer(p Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.ID] = &p
	if _, ok := s.teams[p.Team]; !ok {
		s.teams[p.Team] = &Team{ID: p.Team}
	}
}

// AddTeam registers or renames a team.
func (s *State) AddTeam(t Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[t.ID] = &t
}

// Player returns the player with id.
func (s *State) Player(id int) (*Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	return p, ok
}

// Players returns all players ordered by id.
func (s *State) Players() []*Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Player) int { return a.ID - b.ID })
	return out
}

// Teams returns all teams ordered by id.
func (s *State) Teams() []*Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *Team) int { return a.ID - b.ID })
	return out
}

// AddFormation registers f and returns its id, reassigned like unit ids.
func (s *State) AddFormation(f *Formation) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.formations[f.ID]; taken || f.ID <= 0 {
		id := 0
		for k := range s.formations {
			id = max(id, k)
		}
		f.ID = id + 1
	}
	s.formations[f.ID] = f
	s.formOrder = append(s.formOrder, f.ID)
	return f.ID
}

// Formation returns the formation with id.
func (s *State) Formation(id int) (*Formation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.formations[id]
	return f, ok
}

// Formations returns every formation in registration order.
func (s *State) Formations() []*Formation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Formation, 0, len(s.formOrder))
	for _, id := range s.formOrder {
		out = append(out, s.formations[id])
	}
	return out
}

// FormationUnits returns the formation's units still in play.
func (s *State) FormationUnits(id int) []*unit.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.formations[id]
	if !ok {
		return nil
	}
	var out []*unit.Unit
	for _, uid := range f.UnitIDs {
		if i, ok := s.byID[uid]; ok && s.arena[i].status == statusActive {
			out = append(out, s.arena[i].unit)
		}
	}
	return out
}

// FormationAlive reports whether the formation still has a unit in play
// and has not withdrawn.
func (s *State) FormationAlive(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.formationAliveLocked(id)
}

func (s *State) formationAliveLocked(id int) bool {
	f, ok := s.formations[id]
	if !ok || f.Withdrawn {
		return false
	}
	for _, uid := range f.UnitIDs {
		if i, ok := s.byID[uid]; ok && s.arena[i].status == statusActive {
			return true
		}
	}
	return false
}

// RefreshPlayerDone marks the player done once every formation it still
// has in play has acted, and returns the flag.
func (s *State) RefreshPlayerDone(playerID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[playerID]
	if !ok {
		return false
	}
	done := true
	for _, fid := range s.formOrder {
		f := s.formations[fid]
		if f.Owner == playerID && !f.Done && s.formationAliveLocked(fid) {
			done = false
			break
		}
	}
	p.Done = done
	return done
}

// TeamOf returns the team owning the formation.
func (s *State) TeamOf(formationID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.formations[formationID]
	if !ok {
		return -1
	}
	if p, ok := s.players[f.Owner]; ok {
		return p.Team
	}
	return -1
}

// FormationOfUnit returns the id of the formation holding unitID.
func (s *State) FormationOfUnit(unitID int) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fid := range s.formOrder {
		if slices.Contains(s.formations[fid].UnitIDs, unitID) {
			return fid, true
		}
	}
	return 0, false
}

// SetFormationAt moves a formation to position on the one-dimensional board.
func (s *State) SetFormationAt(formationID, position int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.formations[formationID]
	if !ok {
		s.log.Debug("position update for unknown formation", "formation", formationID)
		return
	}
	if bucket, ok := s.board[f.Position]; ok {
		bucket = slices.DeleteFunc(bucket, func(id int) bool { return id == formationID })
		if len(bucket) == 0 {
			delete(s.board, f.Position)
		} else {
			s.board[f.Position] = bucket
		}
	}
	f.Position = position
	s.board[position] = append(s.board[position], formationID)
}

// FormationsAt returns the formations occupying position.
func (s *State) FormationsAt(position int) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.board[position])
}

// ResetPlayersDone clears every player's done flag.
func (s *State) ResetPlayersDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.players {
		p.Done = false
	}
}

// ResetFormationsDone clears every formation's done flag.
func (s *State) ResetFormationsDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.formations {
		f.Done = false
	}
}

package battle

import (
	"maps"
	"slices"

	"autoresolve-sim/internal/action"
)

// AddAction appends a to the pending queue.
func (s *State) AddAction(a action.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, a)
}

// Actions returns a copy of the pending queue in enqueue order.
func (s *State) Actions() []action.Action {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.actions)
}

// NextAction pops the oldest pending action.
func (s *State) NextAction() (action.Action, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.actions) == 0 {
		return nil, false
	}
	a := s.actions[0]
	s.actions[0] = nil
	s.actions = s.actions[1:]
	return a, true
}

// RemoveActionsFor drops every pending action whose actor is formationID
// and returns how many were removed.
func (s *State) RemoveActionsFor(formationID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.actions)
	s.actions = slices.DeleteFunc(s.actions, func(a action.Action) bool {
		return a.Actor() == formationID
	})
	return n - len(s.actions)
}

// ClearActions empties the pending queue.
func (s *State) ClearActions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = nil
}

// SetTurns replaces the turn order and rewinds the cursor.
func (s *State) SetTurns(turns []Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = slices.Clone(turns)
	s.turnIndex = -1
}

// Turns returns the current turn order.
func (s *State) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.turns)
}

// TurnIndex returns the cursor; -1 means no turn has been taken yet.
func (s *State) TurnIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turnIndex
}

// ChangeToNextTurn advances the cursor and returns the new turn, or false
// once the order is exhausted.
func (s *State) ChangeToNextTurn() (Turn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.turnIndex+1 >= len(s.turns) {
		s.turnIndex = len(s.turns)
		return Turn{}, false
	}
	s.turnIndex++
	return s.turns[s.turnIndex], true
}

// CurrentTurn returns the turn under the cursor.
func (s *State) CurrentTurn() (Turn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.turnIndex < 0 || s.turnIndex >= len(s.turns) {
		return Turn{}, false
	}
	return s.turns[s.turnIndex], true
}

// Phase returns the current phase.
func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// SetPhase records the current phase.
func (s *State) SetPhase(p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p
}

// Round returns the current round, starting at 1.
func (s *State) Round() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.round
}

// IncrementRound advances to the next round.
func (s *State) IncrementRound() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.round++
	return s.round
}

// SetupDeployment rebuilds the deployment table from every undeployed
// unit's deploy round. Units due at round 0 or 1 enter in round 1.
func (s *State) SetupDeployment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	table := make(map[int][]int)
	for _, e := range s.arena {
		if e.status != statusActive || e.unit.Deployed {
			continue
		}
		r := max(e.unit.DeployRound, 1)
		table[r] = append(table[r], e.unit.ID)
	}
	s.deployment = table
}

// DeploymentTable returns a copy of the deployment table.
func (s *State) DeploymentTable() map[int][]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int][]int, len(s.deployment))
	for r, ids := range s.deployment {
		out[r] = slices.Clone(ids)
	}
	return out
}

// DueForDeployment returns the units scheduled for round, sorted by id.
func (s *State) DueForDeployment(round int) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := slices.Clone(s.deployment[round])
	slices.Sort(ids)
	return ids
}

// PendingDeploymentRounds returns the rounds that still have units waiting.
func (s *State) PendingDeploymentRounds() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.deployment))
}

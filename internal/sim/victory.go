package sim

import (
	"slices"

	"autoresolve-sim/internal/battle"
)

// Verdict is the outcome of a finished battle.
type Verdict struct {
	// Winner is the winning team, or -1 for a draw.
	Winner int
	Forced bool
	Reason string
}

// VictoryPolicy decides whether the battle is over. It is asked at every
// phase boundary and should answer when forced is true; a forced
// evaluation that declines ends the battle as a draw.
type VictoryPolicy interface {
	Evaluate(state *battle.State, forced bool) (Verdict, bool)
}

// LastTeamStanding ends the battle once at most one team still has a
// formation in play. A forced evaluation awards the team keeping the
// largest share of its starting units.
type LastTeamStanding struct{}

// Evaluate implements VictoryPolicy.
func (LastTeamStanding) Evaluate(state *battle.State, forced bool) (Verdict, bool) {
	standing := teamsStanding(state)
	switch {
	case len(standing) == 0:
		return Verdict{Winner: -1, Forced: forced, Reason: "mutual destruction"}, true
	case len(standing) == 1:
		return Verdict{Winner: standing[0], Forced: forced, Reason: "last team standing"}, true
	case !forced:
		return Verdict{}, false
	}

	winner, best, tie := -1, -1.0, false
	for _, team := range standing {
		share := survivingShare(state, team)
		switch {
		case share > best:
			winner, best, tie = team, share, false
		case share == best:
			tie = true
		}
	}
	if tie {
		return Verdict{Winner: -1, Forced: true, Reason: "round limit, even losses"}, true
	}
	return Verdict{Winner: winner, Forced: true, Reason: "round limit, fewest losses"}, true
}

func teamsStanding(state *battle.State) []int {
	var teams []int
	for _, f := range state.Formations() {
		if !state.FormationAlive(f.ID) {
			continue
		}
		if team := state.TeamOf(f.ID); team >= 0 && !slices.Contains(teams, team) {
			teams = append(teams, team)
		}
	}
	slices.Sort(teams)
	return teams
}

func survivingShare(state *battle.State, team int) float64 {
	start, remaining := teamCounts(state, team)
	if start == 0 {
		return 0
	}
	return float64(remaining) / float64(start)
}

// teamCounts returns how many units the team brought and how many are
// still in play.
func teamCounts(state *battle.State, team int) (start, remaining int) {
	for _, p := range state.Players() {
		if p.Team == team {
			start += state.StartingUnits(p.ID)
		}
	}
	for _, u := range state.Units() {
		if p, ok := state.Player(u.Owner); ok && p.Team == team {
			remaining++
		}
	}
	return start, remaining
}

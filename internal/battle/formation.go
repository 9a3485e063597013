package battle

// Morale is a formation's place on the morale ladder.
type Morale int

const (
	MoraleNormal Morale = iota
	MoraleShaken
	MoraleUnsteady
	MoraleBroken
	MoraleRouted
)

func (m Morale) String() string {
	switch m {
	case MoraleNormal:
		return "normal"
	case MoraleShaken:
		return "shaken"
	case MoraleUnsteady:
		return "unsteady"
	case MoraleBroken:
		return "broken"
	default:
		return "routed"
	}
}

// Worsen moves one step down the ladder.
func (m Morale) Worsen() Morale {
	if m >= MoraleRouted {
		return MoraleRouted
	}
	return m + 1
}

// Improve moves one step up the ladder.
func (m Morale) Improve() Morale {
	if m <= MoraleNormal {
		return MoraleNormal
	}
	return m - 1
}

// Player is one side's commander.
type Player struct {
	ID   int
	Name string
	Team int
	Done bool
}

// Team groups allied players.
type Team struct {
	ID   int
	Name string
}

// Formation is a group of units taking turns as one.
type Formation struct {
	ID       int
	Name     string
	Owner    int
	UnitIDs  []int
	Position int
	// Home is the board position the formation deploys to and withdraws
	// toward.
	Home             int
	Deployed         bool
	Done             bool
	Morale           Morale
	Withdrawn        bool
	Initiative       int
	DamagedThisRound bool
}

func (f *Formation) clone() *Formation {
	c := *f
	c.UnitIDs = append([]int(nil), f.UnitIDs...)
	return &c
}

// Turn is one entry in the phase's turn order.
type Turn struct {
	FormationID int
	PlayerID    int
}

// Phase is a step of the battle state machine.
type Phase int

const (
	PhaseStartingScenario Phase = iota
	PhaseInitiative
	PhaseDeployment
	PhaseMovement
	PhaseFiring
	PhaseEnd
	PhaseVictory
)

func (p Phase) String() string {
	switch p {
	case PhaseStartingScenario:
		return "starting_scenario"
	case PhaseInitiative:
		return "initiative"
	case PhaseDeployment:
		return "deployment"
	case PhaseMovement:
		return "movement"
	case PhaseFiring:
		return "firing"
	case PhaseEnd:
		return "end"
	case PhaseVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Next returns the phase following p within a round. End wraps to
// Initiative. Victory is terminal.
func (p Phase) Next() Phase {
	switch p {
	case PhaseStartingScenario, PhaseEnd:
		return PhaseInitiative
	case PhaseVictory:
		return PhaseVictory
	default:
		return p + 1
	}
}

// UsesTurns reports whether the phase hands out formation turns.
func (p Phase) UsesTurns() bool {
	return p == PhaseMovement || p == PhaseFiring
}

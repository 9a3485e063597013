package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/unit"
)

// BuiltinPrefix marks a scenario reference that names a built-in scenario
// instead of a file.
const BuiltinPrefix = "builtin:"

// Scenario describes the forces taking part in one battle.
type Scenario struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	Teams       []Team `yaml:"teams"`
}

// Team groups allied players.
type Team struct {
	ID      int      `yaml:"id"`
	Name    string   `yaml:"name,omitempty"`
	Players []Player `yaml:"players"`
}

// Player is one commander and the formations it fields.
type Player struct {
	ID         int         `yaml:"id"`
	Name       string      `yaml:"name,omitempty"`
	Formations []Formation `yaml:"formations"`
}

// Formation is a group of units deploying to Home.
type Formation struct {
	Name  string     `yaml:"name"`
	Home  int        `yaml:"home,omitempty"`
	Units []UnitSpec `yaml:"units"`
}

// UnitSpec is the scenario form of a unit.
type UnitSpec struct {
	ID          int     `yaml:"id,omitempty"`
	Name        string  `yaml:"name"`
	Category    string  `yaml:"category"`
	Tonnage     int     `yaml:"tonnage,omitempty"`
	Gunnery     int     `yaml:"gunnery,omitempty"`
	Movement    int     `yaml:"movement,omitempty"`
	Firepower   int     `yaml:"firepower,omitempty"`
	Range       int     `yaml:"range,omitempty"`
	DeployRound int     `yaml:"deploy_round,omitempty"`
	ArmorFactor float64 `yaml:"armor_factor,omitempty"`
	Troopers    int     `yaml:"troopers,omitempty"`
}

// Load reads a YAML scenario definition from disk.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(b)
}

// Parse decodes and checks a YAML scenario.
func Parse(b []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Resolve returns the scenario named by ref: builtin:<name> or a file path.
func Resolve(ref string) (*Scenario, error) {
	name, ok := strings.CutPrefix(ref, BuiltinPrefix)
	if !ok {
		return Load(ref)
	}
	s, ok := BuiltIn()[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in scenario %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return &s, nil
}

// Validate checks that the scenario can be built into a battle.
func (s *Scenario) Validate() error {
	var errs []error
	if len(s.Teams) < 2 {
		errs = append(errs, fmt.Errorf("scenario needs at least two teams, has %d", len(s.Teams)))
	}
	players := make(map[int]bool)
	for _, t := range s.Teams {
		if t.ID <= 0 {
			errs = append(errs, fmt.Errorf("team %q: id must be positive", t.Name))
		}
		for _, p := range t.Players {
			if p.ID <= 0 || players[p.ID] {
				errs = append(errs, fmt.Errorf("team %d: player id %d is missing or duplicated", t.ID, p.ID))
			}
			players[p.ID] = true
			for _, f := range p.Formations {
				if len(f.Units) == 0 {
					errs = append(errs, fmt.Errorf("formation %q has no units", f.Name))
				}
				for _, u := range f.Units {
					if _, ok := unit.ParseCategory(u.Category); !ok {
						errs = append(errs, fmt.Errorf("unit %q: unknown category %q", u.Name, u.Category))
					}
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Build populates state with the scenario's teams, players, formations and
// units. Crewed units get crewDeathThreshold as their pilot's death
// threshold when it is positive.
func (s *Scenario) Build(state *battle.State, crewDeathThreshold int) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, t := range s.Teams {
		state.AddTeam(battle.Team{ID: t.ID, Name: t.Name})
		for _, p := range t.Players {
			state.AddPlayer(battle.Player{ID: p.ID, Name: p.Name, Team: t.ID})
			for _, f := range p.Formations {
				ids := make([]int, 0, len(f.Units))
				for _, us := range f.Units {
					u := us.build(p.ID)
					if u.Crew != nil && crewDeathThreshold > 0 {
						u.Crew.DeathThreshold = crewDeathThreshold
					}
					ids = append(ids, state.AddUnit(u))
				}
				state.AddFormation(&battle.Formation{Name: f.Name, Owner: p.ID, UnitIDs: ids, Home: f.Home})
			}
		}
	}
	return nil
}

// Units returns how many units the scenario fields.
func (s *Scenario) Units() int {
	n := 0
	for _, t := range s.Teams {
		for _, p := range t.Players {
			for _, f := range p.Formations {
				n += len(f.Units)
			}
		}
	}
	return n
}

func (u UnitSpec) build(owner int) *unit.Unit {
	c, _ := unit.ParseCategory(u.Category)
	return unit.New(c, unit.Spec{
		ID:          u.ID,
		Name:        u.Name,
		Owner:       owner,
		Tonnage:     u.Tonnage,
		Gunnery:     u.Gunnery,
		Movement:    u.Movement,
		Firepower:   u.Firepower,
		Range:       u.Range,
		DeployRound: u.DeployRound,
		ArmorFactor: u.ArmorFactor,
		Troopers:    u.Troopers,
	})
}

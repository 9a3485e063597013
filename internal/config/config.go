// YAML battle config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"autoresolve-sim/internal/damage"
	"autoresolve-sim/internal/unit"
)

// Policy holds the tunable constants of the damage and morale model.
type Policy struct {
	CrewDeathThreshold     int                `yaml:"crew_death_threshold"`
	CrewSurvivalMargin     int                `yaml:"crew_survival_margin"`
	ClusterSize            int                `yaml:"cluster_size"`
	RemovalDamage          map[string]float64 `yaml:"removal_damage"`
	MoraleTarget           int                `yaml:"morale_target"`
	NerveRecoveryTarget    int                `yaml:"nerve_recovery_target"`
	WithdrawHealthFraction float64            `yaml:"withdraw_health_fraction"`
}

// BattleConfig is the root configuration for one battle run
type BattleConfig struct {
	BattleID  string `yaml:"battle_id"`
	Seed      int64  `yaml:"seed"`
	MaxRounds int    `yaml:"max_rounds"`
	// Scenario is either builtin:<name> or a path to a scenario YAML file.
	Scenario string `yaml:"scenario"`
	LogLevel string `yaml:"log_level"`
	Policy   Policy `yaml:"policy"`
}

// Default returns a fully populated config.
func Default() *BattleConfig {
	cfg := &BattleConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *BattleConfig) ApplyDefaults() {
	if c.BattleID == "" {
		c.BattleID = uuid.NewString()
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.MaxRounds <= 0 {
		c.MaxRounds = 1000
	}
	if c.Scenario == "" {
		c.Scenario = "builtin:duel"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	p := &c.Policy
	if p.CrewDeathThreshold <= 0 {
		p.CrewDeathThreshold = unit.DefaultCrewDeathThreshold
	}
	if p.CrewSurvivalMargin <= 0 {
		p.CrewSurvivalMargin = 1
	}
	if p.ClusterSize <= 0 {
		p.ClusterSize = 5
	}
	if p.MoraleTarget <= 0 {
		p.MoraleTarget = 6
	}
	if p.NerveRecoveryTarget <= 0 {
		p.NerveRecoveryTarget = 8
	}
	if p.WithdrawHealthFraction <= 0 {
		p.WithdrawHealthFraction = 0.25
	}
}

// Tuning converts the policy block into damage model constants. Removal
// multipliers not named in the config keep their stock values.
func (c *BattleConfig) Tuning() (damage.Tuning, error) {
	t := damage.DefaultTuning()
	t.CrewSurvivalMargin = c.Policy.CrewSurvivalMargin
	t.ClusterSize = c.Policy.ClusterSize
	keys := make([]string, 0, len(c.Policy.RemovalDamage))
	for k := range c.Policy.RemovalDamage {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		r, ok := unit.ParseRemoval(k)
		if !ok || r == unit.RemovalNone {
			return damage.Tuning{}, fmt.Errorf("unknown removal condition %q", k)
		}
		rule := t.Removal[r]
		rule.Multiplier = c.Policy.RemovalDamage[k]
		t.Removal[r] = rule
	}
	return t, nil
}

// Load loads YAML config and validates it against a CUE schema
func Load(configPath, cueSchemaPath string) (*BattleConfig, error) {
	// Validate with CUE first
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg BattleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyDefaults()
	if _, err := cfg.Tuning(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Battle telemetry rows with greptime tags
package telemetry

import (
	"os"
	"time"
)

// EventRow is one human-readable battle report entry.
type EventRow struct {
	BattleID  string    `json:"battle_id"` // TAG
	Round     int       `json:"round"`     // FIELD
	Phase     string    `json:"phase"`     // TAG
	Seq       int       `json:"seq"`       // FIELD
	Text      string    `json:"text"`      // FIELD
	Timestamp time.Time `json:"ts"`        // TIME INDEX
}

// UnitStateRow is an end-of-round snapshot of one unit.
type UnitStateRow struct {
	BattleID    string    `json:"battle_id"` // TAG
	UnitID      int       `json:"unit_id"`   // TAG
	Name        string    `json:"name"`
	Owner       int       `json:"owner"`
	FormationID int       `json:"formation_id"`
	Category    string    `json:"category"`
	Round       int       `json:"round"`
	Armor       int       `json:"armor"`
	MaxArmor    int       `json:"max_armor"`
	Internal    int       `json:"internal"`
	MaxInternal int       `json:"max_internal"`
	Troopers    int       `json:"troopers,omitempty"`
	CrewHits    int       `json:"crew_hits"`
	Ejected     bool      `json:"ejected"`
	Destroyed   bool      `json:"destroyed"`
	Removal     string    `json:"removal"`
	Timestamp   time.Time `json:"ts"`
}

// TeamSummary reports one team's losses.
type TeamSummary struct {
	Team          int     `json:"team"`
	StartingUnits int     `json:"starting_units"`
	Remaining     int     `json:"remaining"`
	CasualtyPct   float64 `json:"casualty_pct"`
}

// SummaryRow is the battle verdict.
type SummaryRow struct {
	BattleID  string        `json:"battle_id"` // TAG
	Winner    int           `json:"winner"`    // -1 for a draw
	Rounds    int           `json:"rounds"`
	Forced    bool          `json:"forced"`
	Teams     []TeamSummary `json:"teams"`
	Timestamp time.Time     `json:"ts"`
}

// Row is any telemetry row. Replay decodes into it.
type Row struct {
	Kind    string        `json:"kind"`
	Event   *EventRow     `json:"event,omitempty"`
	Unit    *UnitStateRow `json:"unit,omitempty"`
	Summary *SummaryRow   `json:"summary,omitempty"`
}

// Row kinds.
const (
	KindEvent   = "event"
	KindUnit    = "unit_state"
	KindSummary = "summary"
)

func tableName(env, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// Table names used when writing to GreptimeDB. Each can be overridden via
// an environment variable.
var (
	EventTableName     = tableName("GREPTIMEDB_EVENT_TABLE", "battle_events")
	UnitStateTableName = tableName("GREPTIMEDB_UNIT_TABLE", "battle_unit_state")
	SummaryTableName   = tableName("GREPTIMEDB_SUMMARY_TABLE", "battle_summary")
)

func (EventRow) TableName() string     { return EventTableName }
func (UnitStateRow) TableName() string { return UnitStateTableName }
func (SummaryRow) TableName() string   { return SummaryTableName }

package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"autoresolve-sim/internal/telemetry"
)

type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes battle telemetry to GreptimeDB as time-series
// tables.
type GreptimeDBWriter struct {
	client       greptimeClient
	eventTable   string
	unitTable    string
	summaryTable string
	log          *slog.Logger
}

// NewGreptimeDBWriter connects to GreptimeDB over gRPC.
func NewGreptimeDBWriter(host string, port int, database string, log *slog.Logger) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &GreptimeDBWriter{
		client:       client,
		eventTable:   telemetry.EventTableName,
		unitTable:    telemetry.UnitStateTableName,
		summaryTable: telemetry.SummaryTableName,
		log:          log,
	}, nil
}

func (w *GreptimeDBWriter) logger() *slog.Logger {
	if w.log == nil {
		return slog.Default()
	}
	return w.log
}

func (w *GreptimeDBWriter) write(tbl *table.Table, name string, rows int) error {
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		w.logger().Error("greptime write failed", "table", name, "err", err)
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.logger().Debug("greptime write", "table", name, "rows", rows)
	return nil
}

// WriteEvent inserts a single report entry.
func (w *GreptimeDBWriter) WriteEvent(row telemetry.EventRow) error {
	return w.WriteEvents([]telemetry.EventRow{row})
}

// WriteEvents inserts multiple report entries.
func (w *GreptimeDBWriter) WriteEvents(rows []telemetry.EventRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.eventTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("battle_id", types.STRING)
	tbl.AddTagColumn("phase", types.STRING)
	tbl.AddFieldColumn("round", types.INT64)
	tbl.AddFieldColumn("seq", types.INT64)
	tbl.AddFieldColumn("text", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)
	for _, r := range rows {
		if err := tbl.AddRow(r.BattleID, r.Phase, int64(r.Round), int64(r.Seq), r.Text, r.Timestamp); err != nil {
			return err
		}
	}
	return w.write(tbl, w.eventTable, len(rows))
}

// WriteUnitState inserts a single unit snapshot.
func (w *GreptimeDBWriter) WriteUnitState(row telemetry.UnitStateRow) error {
	return w.WriteUnitStates([]telemetry.UnitStateRow{row})
}

// WriteUnitStates inserts multiple unit snapshots.
func (w *GreptimeDBWriter) WriteUnitStates(rows []telemetry.UnitStateRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.unitTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("battle_id", types.STRING)
	tbl.AddTagColumn("unit_id", types.INT64)
	tbl.AddFieldColumn("name", types.STRING)
	tbl.AddFieldColumn("category", types.STRING)
	tbl.AddFieldColumn("owner", types.INT64)
	tbl.AddFieldColumn("formation_id", types.INT64)
	tbl.AddFieldColumn("round", types.INT64)
	tbl.AddFieldColumn("armor", types.INT64)
	tbl.AddFieldColumn("internal", types.INT64)
	tbl.AddFieldColumn("troopers", types.INT64)
	tbl.AddFieldColumn("crew_hits", types.INT64)
	tbl.AddFieldColumn("ejected", types.BOOLEAN)
	tbl.AddFieldColumn("destroyed", types.BOOLEAN)
	tbl.AddFieldColumn("removal", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)
	for _, r := range rows {
		err := tbl.AddRow(r.BattleID, int64(r.UnitID), r.Name, r.Category, int64(r.Owner),
			int64(r.FormationID), int64(r.Round), int64(r.Armor), int64(r.Internal),
			int64(r.Troopers), int64(r.CrewHits), r.Ejected, r.Destroyed, r.Removal, r.Timestamp)
		if err != nil {
			return err
		}
	}
	return w.write(tbl, w.unitTable, len(rows))
}

// WriteSummary inserts the verdict. Team breakdowns are stored as JSON text.
func (w *GreptimeDBWriter) WriteSummary(row telemetry.SummaryRow) error {
	teams, err := json.Marshal(row.Teams)
	if err != nil {
		return err
	}
	tbl, err := table.New(w.summaryTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("battle_id", types.STRING)
	tbl.AddFieldColumn("winner", types.INT64)
	tbl.AddFieldColumn("rounds", types.INT64)
	tbl.AddFieldColumn("forced", types.BOOLEAN)
	tbl.AddFieldColumn("teams", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)
	if err := tbl.AddRow(row.BattleID, int64(row.Winner), int64(row.Rounds), row.Forced, string(teams), row.Timestamp); err != nil {
		return err
	}
	return w.write(tbl, w.summaryTable, 1)
}

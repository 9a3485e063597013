package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"autoresolve-sim/internal/telemetry"
)

// ReplayLog replays a JSONL battle log from r to writer. A speed >0 paces
// playback by the recorded timestamps, accelerated by speed. If speed <= 0,
// no artificial delay is inserted.
func ReplayLog(r io.Reader, writer Writer, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	for {
		var row telemetry.Row
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		ts := rowTime(row)
		if !prev.IsZero() && speed > 0 {
			diff := ts.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				time.Sleep(diff)
			}
		}
		if err := dispatch(row, writer); err != nil {
			return err
		}
		prev = ts
	}
}

func rowTime(row telemetry.Row) time.Time {
	switch {
	case row.Event != nil:
		return row.Event.Timestamp
	case row.Unit != nil:
		return row.Unit.Timestamp
	case row.Summary != nil:
		return row.Summary.Timestamp
	}
	return time.Time{}
}

func dispatch(row telemetry.Row, w Writer) error {
	switch {
	case row.Kind == telemetry.KindEvent && row.Event != nil:
		return w.WriteEvent(*row.Event)
	case row.Kind == telemetry.KindUnit && row.Unit != nil:
		return w.WriteUnitState(*row.Unit)
	case row.Kind == telemetry.KindSummary && row.Summary != nil:
		return w.WriteSummary(*row.Summary)
	default:
		return fmt.Errorf("unknown row kind %q", row.Kind)
	}
}

// ReplayLogFile opens a file and replays its rows.
func ReplayLogFile(path string, writer Writer, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}

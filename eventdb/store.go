package eventdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/gridevents/frame"
	"github.com/banshee-data/gridevents/grid"
	"github.com/banshee-data/gridevents/scalar"
)

// Event is the persisted form of one event-table row: its identity
// (row label), category, inclusive span and any extra attributes.
type Event struct {
	Index int64          `json:"event_index"`
	Type  string         `json:"event_type"`
	Start int64          `json:"start_value"`
	End   int64          `json:"end_value"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// EventsFromFrame converts an event table to persistable rows. typeCol,
// startCol and endCol name the category and span columns; every other
// column lands in Attrs.
func EventsFromFrame(f *frame.Frame, typeCol, startCol, endCol string) ([]Event, error) {
	for _, col := range []string{typeCol, startCol, endCol} {
		if !f.HasColumn(col) {
			return nil, fmt.Errorf("no column %q", col)
		}
	}

	out := make([]Event, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		row := f.Row(i)

		typ, ok := row[typeCol].(string)
		if !ok {
			return nil, fmt.Errorf("column %q: row %d is %T, want string", typeCol, i, row[typeCol])
		}
		start, ok := scalar.Float(row[startCol])
		if !ok {
			return nil, fmt.Errorf("column %q: row %d is not numeric", startCol, i)
		}
		end, ok := scalar.Float(row[endCol])
		if !ok {
			return nil, fmt.Errorf("column %q: row %d is not numeric", endCol, i)
		}

		attrs := make(map[string]any)
		for name, v := range row {
			if name == typeCol || name == startCol || name == endCol {
				continue
			}
			attrs[name] = v
		}
		if len(attrs) == 0 {
			attrs = nil
		}

		out[i] = Event{
			Index: int64(f.Labels()[i]),
			Type:  typ,
			Start: int64(start),
			End:   int64(end),
			Attrs: attrs,
		}
	}
	return out, nil
}

// SaveEventSet stores a named set of events and returns its generated ID.
func (db *DB) SaveEventSet(name string, events []Event) (string, error) {
	setID := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO event_sets (set_id, name, created_unix) VALUES (?, ?, ?)",
		setID, name, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert event set: %w", err)
	}

	for _, ev := range events {
		var attrsJSON sql.NullString
		if len(ev.Attrs) > 0 {
			b, err := json.Marshal(ev.Attrs)
			if err != nil {
				return "", fmt.Errorf("failed to marshal attrs for event %d: %w", ev.Index, err)
			}
			attrsJSON = sql.NullString{String: string(b), Valid: true}
		}

		_, err = tx.Exec(
			`INSERT INTO events (set_id, event_index, event_type, start_value, end_value, attrs_json)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			setID, ev.Index, ev.Type, ev.Start, ev.End, attrsJSON,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert event %d: %w", ev.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit event set: %w", err)
	}
	return setID, nil
}

// LoadEventSet retrieves the events of a set ordered by identity.
func (db *DB) LoadEventSet(setID string) ([]Event, error) {
	rows, err := db.Query(
		`SELECT event_index, event_type, start_value, end_value, attrs_json
		 FROM events WHERE set_id = ? ORDER BY event_index`,
		setID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var attrsJSON sql.NullString
		if err := rows.Scan(&ev.Index, &ev.Type, &ev.Start, &ev.End, &attrsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if attrsJSON.Valid {
			if err := json.Unmarshal([]byte(attrsJSON.String), &ev.Attrs); err != nil {
				return nil, fmt.Errorf("failed to unmarshal attrs for event %d: %w", ev.Index, err)
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event iteration failed: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no event set %s", setID)
	}

	return out, nil
}

// Run is one persisted aggregation: a statistic of a data variable
// reduced per event.
type Run struct {
	RunID     string            `json:"run_id"`
	SetID     string            `json:"set_id"`
	Variable  string            `json:"variable"`
	Statistic string            `json:"statistic"`
	Values    map[int64]float64 `json:"values"`
}

// RunFromArray converts a 1-D reduced array (one value per event
// identity, as returned by GroupBy reductions) into a Run.
func RunFromArray(setID, statistic string, reduced *grid.DataArray) (*Run, error) {
	if len(reduced.Dims()) != 1 {
		return nil, fmt.Errorf("reduced array %q has dims %v, want exactly one", reduced.Name(), reduced.Dims())
	}
	coord, _ := reduced.Coord(reduced.Dims()[0])

	values := make(map[int64]float64, reduced.Len())
	for i, v := range reduced.Data() {
		if math.IsNaN(v) {
			continue
		}
		id, ok := scalar.Float(coord.Label(i))
		if !ok {
			return nil, fmt.Errorf("group label %v is not an event identity", coord.Label(i))
		}
		values[int64(id)] = v
	}

	return &Run{
		SetID:     setID,
		Variable:  reduced.Name(),
		Statistic: statistic,
		Values:    values,
	}, nil
}

// SaveRun stores an aggregation run. A missing RunID is generated.
func (db *DB) SaveRun(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO aggregation_runs (run_id, set_id, variable, statistic, created_unix) VALUES (?, ?, ?, ?, ?)",
		run.RunID, run.SetID, run.Variable, run.Statistic, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for idx, v := range run.Values {
		_, err = tx.Exec(
			"INSERT INTO aggregation_results (run_id, event_index, value) VALUES (?, ?, ?)",
			run.RunID, idx, v,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result for event %d: %w", idx, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// LoadRun retrieves an aggregation run with its per-event values.
func (db *DB) LoadRun(runID string) (*Run, error) {
	run := &Run{RunID: runID, Values: make(map[int64]float64)}

	err := db.QueryRow(
		"SELECT set_id, variable, statistic FROM aggregation_runs WHERE run_id = ?",
		runID,
	).Scan(&run.SetID, &run.Variable, &run.Statistic)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	rows, err := db.Query(
		"SELECT event_index, value FROM aggregation_results WHERE run_id = ? ORDER BY event_index",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var idx int64
		var v float64
		if err := rows.Scan(&idx, &v); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		run.Values[idx] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("result iteration failed: %w", err)
	}

	return run, nil
}

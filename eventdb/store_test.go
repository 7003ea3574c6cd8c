package eventdb

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/gridevents/grid"
	"github.com/banshee-data/gridevents/internal/testutil"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "analysis.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.MigrateUp("migrations"))
	return db
}

func TestMigrateVersion(t *testing.T) {
	db := openTestDB(t)

	version, dirty, err := db.MigrateVersion("migrations")
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), version)

	// Up again is a no-op.
	require.NoError(t, db.MigrateUp("migrations"))

	require.NoError(t, db.MigrateDown("migrations"))
	version, dirty, err = db.MigrateVersion("migrations")
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(0), version)
}

func TestEventsFromFrame(t *testing.T) {
	table := testutil.MatchEvents(t)

	events, err := EventsFromFrame(table, "event_type", "start_frame", "end_frame")
	require.NoError(t, err)
	require.Len(t, events, 10)

	require.Equal(t, Event{
		Index: 5,
		Type:  "penalty",
		Start: 1280,
		End:   1889,
		Attrs: map[string]any{"player_id": int64(2)},
	}, events[5])

	_, err = EventsFromFrame(table, "event_type", "kickoff", "end_frame")
	require.Error(t, err)
}

func TestEventSetRoundTrip(t *testing.T) {
	db := openTestDB(t)
	table := testutil.MatchEvents(t)

	events, err := EventsFromFrame(table, "event_type", "start_frame", "end_frame")
	require.NoError(t, err)

	setID, err := db.SaveEventSet("match-12", events)
	require.NoError(t, err)
	require.NotEmpty(t, setID)

	loaded, err := db.LoadEventSet(setID)
	require.NoError(t, err)
	require.Len(t, loaded, len(events))
	for i := range events {
		require.Equal(t, events[i].Index, loaded[i].Index)
		require.Equal(t, events[i].Type, loaded[i].Type)
		require.Equal(t, events[i].Start, loaded[i].Start)
		require.Equal(t, events[i].End, loaded[i].End)
	}
	// Attrs pass through JSON, so ints come back as float64.
	require.Equal(t, float64(79), loaded[0].Attrs["player_id"])

	_, err = db.LoadEventSet("no-such-set")
	require.Error(t, err)
}

func TestRunRoundTrip(t *testing.T) {
	db := openTestDB(t)

	events, err := EventsFromFrame(testutil.SmallEvents(t), "event_type", "start_frame", "end_frame")
	require.NoError(t, err)
	setID, err := db.SaveEventSet("small", events)
	require.NoError(t, err)

	ids, err := grid.IntCoord("event_index", []int64{0, 1, 2})
	require.NoError(t, err)
	reduced, err := grid.NewDataArray("ball_trajectory", []*grid.Coord{ids},
		[]float64{87.5, 212.5, math.NaN()})
	require.NoError(t, err)

	run, err := RunFromArray(setID, "mean", reduced)
	require.NoError(t, err)
	require.Equal(t, "ball_trajectory", run.Variable)
	require.Equal(t, "mean", run.Statistic)
	// NaN groups are not persisted.
	require.Len(t, run.Values, 2)

	require.NoError(t, db.SaveRun(run))
	require.NotEmpty(t, run.RunID)

	loaded, err := db.LoadRun(run.RunID)
	require.NoError(t, err)
	require.Equal(t, run.SetID, loaded.SetID)
	require.Equal(t, run.Variable, loaded.Variable)
	require.Equal(t, run.Statistic, loaded.Statistic)
	require.Equal(t, run.Values, loaded.Values)

	_, err = db.LoadRun("no-such-run")
	require.Error(t, err)
}

func TestRunFromArrayRejectsMultiDim(t *testing.T) {
	ids, err := grid.IntCoord("event_index", []int64{0, 1})
	require.NoError(t, err)
	axes, err := grid.StringCoord("cartesian_coords", "x", "y")
	require.NoError(t, err)
	arr, err := grid.NewDataArray("ball_trajectory", []*grid.Coord{ids, axes},
		make([]float64, 4))
	require.NoError(t, err)

	_, err = RunFromArray("set", "mean", arr)
	require.Error(t, err)
}

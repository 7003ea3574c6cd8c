// Command events-analyse loads a trajectory CSV and an event table,
// correlates them, reduces the trajectory per event and emits the
// results as text plus optional PNG/HTML charts. Results can also be
// persisted to a SQLite analysis database.
//
// The trajectory CSV's first column is the coordinate (e.g. frame);
// every further numeric column becomes one component of the data
// variable. The events CSV carries category, span and attribute
// columns. With -save-db both the events and the reduction are stored
// in the analysis database for later comparison.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/banshee-data/gridevents/eventdb"
	"github.com/banshee-data/gridevents/events"
	"github.com/banshee-data/gridevents/frame"
	"github.com/banshee-data/gridevents/grid"
	"github.com/banshee-data/gridevents/report"
)

func main() {
	var (
		dataPath   = flag.String("data", "", "trajectory CSV (first column = coordinate, rest = components)")
		varName    = flag.String("var", "ball_trajectory", "name of the data variable")
		eventsPath = flag.String("events", "", "events CSV")
		typeCol    = flag.String("type-col", "event_type", "event category column")
		startCol   = flag.String("start-col", "start_frame", "span start column")
		endCol     = flag.String("end-col", "end_frame", "span end column")
		eventType  = flag.String("event-type", "", "only analyse events of this category")
		statistic  = flag.String("stat", "mean", "reduction: mean, median, min, max, sum or count")
		pngPath    = flag.String("png", "", "write a bar chart PNG to this path")
		htmlPath   = flag.String("html", "", "write an HTML chart to this path")
		dbPath     = flag.String("save-db", "", "persist events and results to this SQLite file")
		migrations = flag.String("migrations", "eventdb/migrations", "migrations directory for -save-db")
		setName    = flag.String("set-name", "events", "name for the persisted event set")
	)
	flag.Parse()

	if *dataPath == "" || *eventsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ds, coordName, err := loadDataset(*dataPath, *varName)
	if err != nil {
		log.Fatalf("failed to load trajectory: %v", err)
	}

	table, err := frame.OpenCSV(*eventsPath)
	if err != nil {
		log.Fatalf("failed to load events: %v", err)
	}
	log.Printf("loaded %d events against %d coordinate labels", table.NumRows(), mustCoord(ds, coordName).Len())

	c, err := events.Load(ds, table, events.Mapping{
		coordName: events.Span(*startCol, *endCol),
	})
	if err != nil {
		log.Fatalf("failed to correlate: %v", err)
	}

	if *eventType != "" {
		c, err = c.Sel(map[string]events.Constraint{
			*typeCol: events.Eq(*eventType),
		})
		if err != nil {
			log.Fatalf("selection failed: %v", err)
		}
		log.Printf("%d events of type %q", c.Table().NumRows(), *eventType)
	}

	groups, err := c.GroupByEvents(*varName)
	if err != nil {
		log.Fatalf("grouping failed: %v", err)
	}

	reduced, err := groups.Reduce(*statistic)
	if err != nil {
		log.Fatalf("reduction failed: %v", err)
	}

	printSummary(c.Table(), *typeCol, reduced, *statistic)

	title := fmt.Sprintf("%s of %s per event", *statistic, *varName)
	if *pngPath != "" {
		if err := report.SavePNG(reduced, title, *pngPath); err != nil {
			log.Fatalf("failed to write %s: %v", *pngPath, err)
		}
		log.Printf("wrote %s", *pngPath)
	}
	if *htmlPath != "" {
		if err := report.SaveHTML(reduced, title, *htmlPath); err != nil {
			log.Fatalf("failed to write %s: %v", *htmlPath, err)
		}
		log.Printf("wrote %s", *htmlPath)
	}

	if *dbPath != "" {
		if err := persist(*dbPath, *migrations, *setName, c.Table(), *typeCol, *startCol, *endCol, *statistic, reduced); err != nil {
			log.Fatalf("failed to persist results: %v", err)
		}
	}
}

// loadDataset builds a dataset from a trajectory CSV. The first column
// supplies the coordinate; the remaining columns become one component
// each of a variable indexed by (coordinate, component).
func loadDataset(path, varName string) (*grid.Dataset, string, error) {
	f, err := frame.OpenCSV(path)
	if err != nil {
		return nil, "", err
	}
	cols := f.Columns()
	if len(cols) < 2 {
		return nil, "", fmt.Errorf("%s needs a coordinate column and at least one component", path)
	}

	coordName := cols[0]
	labels, err := f.Values(coordName)
	if err != nil {
		return nil, "", err
	}
	coord, err := grid.NewCoord(coordName, labels)
	if err != nil {
		return nil, "", err
	}

	components := cols[1:]
	componentCoord, err := grid.StringCoord("component", components...)
	if err != nil {
		return nil, "", err
	}

	data := make([]float64, 0, f.NumRows()*len(components))
	columns := make([][]float64, len(components))
	for i, name := range components {
		columns[i], err = f.Floats(name)
		if err != nil {
			return nil, "", err
		}
	}
	for row := 0; row < f.NumRows(); row++ {
		for i := range components {
			data = append(data, columns[i][row])
		}
	}

	arr, err := grid.NewDataArray(varName, []*grid.Coord{coord, componentCoord}, data)
	if err != nil {
		return nil, "", err
	}

	ds := grid.NewDataset()
	if err := ds.AddCoord(coord); err != nil {
		return nil, "", err
	}
	if err := ds.AddCoord(componentCoord); err != nil {
		return nil, "", err
	}
	if err := ds.AddVar(arr); err != nil {
		return nil, "", err
	}
	return ds, coordName, nil
}

func mustCoord(ds *grid.Dataset, name string) *grid.Coord {
	c, ok := ds.Coord(name)
	if !ok {
		log.Fatalf("no coordinate %q", name)
	}
	return c
}

func printSummary(table *frame.Frame, typeCol string, reduced *grid.DataArray, statistic string) {
	coord, _ := reduced.Coord(reduced.Dims()[0])

	fmt.Printf("%-8s %-12s %12s\n", "event", "type", statistic)
	for i, v := range reduced.Data() {
		id := coord.Label(i)
		category := ""
		for row := 0; row < table.NumRows(); row++ {
			f, ok := id.(int64)
			if ok && table.Labels()[row] == int(f) {
				if s, ok := table.Row(row)[typeCol].(string); ok {
					category = s
				}
				break
			}
		}
		if math.IsNaN(v) {
			fmt.Printf("%-8v %-12s %12s\n", id, category, "n/a")
			continue
		}
		fmt.Printf("%-8v %-12s %12.3f\n", id, category, v)
	}
}

func persist(dbPath, migrations, setName string, table *frame.Frame, typeCol, startCol, endCol, statistic string, reduced *grid.DataArray) error {
	db, err := eventdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.MigrateUp(migrations); err != nil {
		return err
	}

	evs, err := eventdb.EventsFromFrame(table, typeCol, startCol, endCol)
	if err != nil {
		return err
	}
	setID, err := db.SaveEventSet(setName, evs)
	if err != nil {
		return err
	}

	run, err := eventdb.RunFromArray(setID, statistic, reduced)
	if err != nil {
		return err
	}
	if err := db.SaveRun(run); err != nil {
		return err
	}

	log.Printf("saved event set %s and run %s to %s", setID, run.RunID, dbPath)
	return nil
}

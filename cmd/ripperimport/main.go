package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"ripper-core/attribute"
	"ripper-core/dataset"
	"ripper-core/pkg/logging"
	"ripper-core/ripper"
)

// importDataset dispatches to the CSV or DB adapter depending on which flag
// was supplied; exactly one of csvPath/dbDSN is expected to be non-empty.
func importDataset(csvPath, dbDSN, table, classColumn string, cols []ColumnSpec) (*dataset.Dataset, error) {
	switch {
	case csvPath != "":
		return ImportCSV(csvPath, classColumn, cols)
	case dbDSN != "":
		if table == "" {
			return nil, fmt.Errorf("ripperimport: -table is required with -db")
		}
		return ImportTable(dbDSN, table, classColumn, cols)
	default:
		return nil, fmt.Errorf("ripperimport: one of -csv or -db is required")
	}
}

func parseContinuousFlag(spec string) []ColumnSpec {
	if spec == "" {
		return nil
	}
	var cols []ColumnSpec
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cols = append(cols, ColumnSpec{Name: name, Continuous: true, Subtype: attribute.SubtypeFloat})
	}
	return cols
}

func main() {
	csvPath := flag.String("csv", "", "path to a CSV file to import")
	dbDSN := flag.String("db", "", "sqlite DSN to import a table from")
	table := flag.String("table", "", "table name, required with -db")
	classColumn := flag.String("class", "", "name of the class column")
	continuous := flag.String("continuous", "", "comma-separated list of continuous column names")
	train := flag.Bool("train", false, "train a ruleset on the imported dataset and print it")
	flag.Parse()

	if *classColumn == "" {
		fmt.Fprintln(os.Stderr, "ripperimport: -class is required")
		os.Exit(2)
	}

	logger, err := logging.New(logging.Config{ModuleName: "ripperimport"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "ripperimport: logger init failed:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cols := parseContinuousFlag(*continuous)

	ds, buildErr := importDataset(*csvPath, *dbDSN, *table, *classColumn, cols)
	if buildErr != nil {
		logger.Sugar().Fatalf("import failed: %v", buildErr)
	}

	fmt.Printf("imported %d rows over %d attributes\n", ds.NumInstances(), ds.NumAttributes())

	if !*train {
		return
	}

	learner := ripper.New(ripper.DefaultConfig(), logger)
	m, err := learner.Train(ds)
	if err != nil {
		logger.Sugar().Fatalf("train failed: %v", err)
	}
	fmt.Println(m.String())
}

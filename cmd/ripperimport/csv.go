package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"ripper-core/dataset"
)

// ImportCSV reads path's header row as column names and every subsequent row
// as a record, then hands the result to buildDataset. Grounded on the
// teacher's utils/csv_util.go GetCsvData/GetCsvCls shape (header-then-rows,
// encoding/csv.Reader.ReadAll), generalized to route through ColumnSpec
// instead of the teacher's skip-column map.
func ImportCSV(path, classColumn string, cols []ColumnSpec) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ripperimport: open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ripperimport: read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ripperimport: %s has no rows", path)
	}

	table := rawTable{Columns: records[0], Rows: records[1:]}
	return buildDataset(table, classColumn, cols)
}

package main

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ripper-core/dataset"
)

// ImportTable opens dsn with gorm and reads every row of table as a generic
// record, then hands the result to buildDataset. Grounded on the teacher's
// utils/db_util/db_util.go gorm.DB usage, generalized from the teacher's
// fixed po.Rule schema to an arbitrary table read through gorm's raw *sql.Rows
// path (Rows()/Columns()), since the learner's input schema is not known
// to the adapter ahead of time.
func ImportTable(dsn, table, classColumn string, cols []ColumnSpec) (*dataset.Dataset, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("ripperimport: open %s: %w", dsn, err)
	}

	rows, err := db.Table(table).Rows()
	if err != nil {
		return nil, fmt.Errorf("ripperimport: query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("ripperimport: read columns of %s: %w", table, err)
	}

	var records [][]string
	for rows.Next() {
		raw := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("ripperimport: scan row of %s: %w", table, err)
		}
		record := make([]string, len(columns))
		for i, v := range raw {
			record[i] = renderCell(v)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ripperimport: iterate %s: %w", table, err)
	}

	return buildDataset(rawTable{Columns: columns, Rows: records}, classColumn, cols)
}

func renderCell(v interface{}) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case []byte:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

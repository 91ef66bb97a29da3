// Command ripperimport demonstrates spec.md's ingestion adapter contract:
// read raw rows from a relational table or a CSV file, force categorical
// typing, and hand back a *dataset.Dataset. The core package never parses
// text or opens a database connection itself — that is this adapter's job,
// grounded on the teacher's utils/csv_util.go and utils/db_util/db_util.go.
package main

import (
	"fmt"
	"strconv"

	"github.com/bovinae/common/util"

	"ripper-core/attribute"
	"ripper-core/dataset"
)

// ColumnSpec describes how one raw column should be typed when building the
// schema: continuous columns are parsed as numbers, everything else is
// treated as a discrete label and its domain is collected from the data.
type ColumnSpec struct {
	Name       string
	Continuous bool
	Subtype    attribute.NumericSubtype
}

// rawTable is the adapter-agnostic shape both the CSV and DB readers
// converge on: column names plus string-rendered cell values, one row per
// record, in table order. The class column is named explicitly rather than
// assumed to be column zero, since neither CSV headers nor DB column order
// guarantee that — buildDataset reorders it to schema index 0.
type rawTable struct {
	Columns []string
	Rows    [][]string
}

// buildDataset converts a rawTable into a *dataset.Dataset, forcing
// classColumn to be the discrete class attribute at schema index 0 and
// typing the remaining columns per cols (columns not named in cols default
// to discrete, with their domain inferred from distinct values seen).
func buildDataset(table rawTable, classColumn string, cols []ColumnSpec) (*dataset.Dataset, error) {
	specByName := make(map[string]ColumnSpec, len(cols))
	for _, c := range cols {
		specByName[c.Name] = c
	}

	classIdx := -1
	for i, name := range table.Columns {
		if name == classColumn {
			classIdx = i
			break
		}
	}
	if classIdx < 0 {
		return nil, fmt.Errorf("ripperimport: class column %q not found", classColumn)
	}

	order := make([]int, 0, len(table.Columns))
	order = append(order, classIdx)
	for i := range table.Columns {
		if i != classIdx {
			order = append(order, i)
		}
	}

	domains := make([][]string, len(order))
	seen := make([]map[string]struct{}, len(order))
	isContinuous := make([]bool, len(order))
	subtype := make([]attribute.NumericSubtype, len(order))
	for pos, colIdx := range order {
		spec, ok := specByName[table.Columns[colIdx]]
		// pos 0 is the class column, which stays discrete whatever cols says.
		isContinuous[pos] = ok && spec.Continuous && pos != 0
		subtype[pos] = spec.Subtype
		seen[pos] = make(map[string]struct{})
	}

	// First pass: collect each discrete column's domain in order of first
	// appearance, the way the teacher's GetCsvCls walks a CSV's header/body.
	for _, row := range table.Rows {
		for pos, colIdx := range order {
			if isContinuous[pos] {
				continue
			}
			v := row[colIdx]
			if util.IsEmpty(v) {
				continue
			}
			if _, ok := seen[pos][v]; !ok {
				seen[pos][v] = struct{}{}
				domains[pos] = append(domains[pos], v)
			}
		}
	}

	schema := make([]*attribute.Attribute, len(order))
	for pos, colIdx := range order {
		name := table.Columns[colIdx]
		if isContinuous[pos] {
			schema[pos] = attribute.NewContinuous(name, subtype[pos], "")
			continue
		}
		a, err := attribute.NewDiscrete(name, domains[pos])
		if err != nil {
			return nil, err
		}
		schema[pos] = a
	}

	d, err := dataset.New(schema)
	if err != nil {
		return nil, err
	}

	for rowIdx, row := range table.Rows {
		vals := make([]float64, len(order))
		for pos, colIdx := range order {
			raw := row[colIdx]
			if util.IsEmpty(raw) {
				vals[pos] = dataset.Missing
				continue
			}
			if isContinuous[pos] {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("ripperimport: row %d column %q: %w", rowIdx, table.Columns[colIdx], err)
				}
				vals[pos] = v
				continue
			}
			idx := schema[pos].IndexOf(raw)
			if idx < 0 {
				return nil, fmt.Errorf("ripperimport: row %d column %q: value %q missing from its own collected domain", rowIdx, table.Columns[colIdx], raw)
			}
			vals[pos] = float64(idx)
		}
		if err := d.PushInstance(dataset.Row{Values: vals, Weight: 1}); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Package wire holds the JSON schema/dataset DTOs used by cmd/ripperserver's
// request bodies, mirroring model/persist.go's YAML DTOs but over the wire
// rather than to disk.
package wire

import (
	"fmt"
	"strconv"

	"ripper-core/attribute"
	"ripper-core/dataset"
)

// AttrSpec describes one schema column for a /train or /predict request.
type AttrSpec struct {
	Name        string   `json:"name" binding:"required"`
	Kind        string   `json:"kind" binding:"required"` // "discrete" | "continuous"
	Domain      []string `json:"domain,omitempty"`        // discrete only
	Subtype     string   `json:"subtype,omitempty"`        // "int" | "float" | "date", continuous only
	DatePattern string   `json:"date_pattern,omitempty"`
}

// Row is one request row: one raw value per schema column, always JSON
// strings so discrete labels and numeric text share one wire shape.
type Row struct {
	Values []string `json:"values" binding:"required"`
	Weight float64  `json:"weight"`
}

// DatasetSpec is the full wire shape for a labeled dataset: schema (class
// attribute first, per spec.md §4.C) plus rows.
type DatasetSpec struct {
	Schema []AttrSpec `json:"schema" binding:"required"`
	Rows   []Row      `json:"rows"`
}

func subtypeFromWire(s string) attribute.NumericSubtype {
	switch s {
	case "date":
		return attribute.SubtypeDate
	case "int":
		return attribute.SubtypeInt
	default:
		return attribute.SubtypeFloat
	}
}

// BuildSchema converts the wire schema into attribute.Attribute values.
func BuildSchema(specs []AttrSpec) ([]*attribute.Attribute, error) {
	schema := make([]*attribute.Attribute, 0, len(specs))
	for _, s := range specs {
		switch s.Kind {
		case "discrete":
			a, err := attribute.NewDiscrete(s.Name, s.Domain)
			if err != nil {
				return nil, err
			}
			schema = append(schema, a)
		case "continuous":
			schema = append(schema, attribute.NewContinuous(s.Name, subtypeFromWire(s.Subtype), s.DatePattern))
		default:
			return nil, fmt.Errorf("wire: attribute %q: unknown kind %q", s.Name, s.Kind)
		}
	}
	return schema, nil
}

// BuildDataset decodes a DatasetSpec into a *dataset.Dataset, resolving
// discrete labels through each attribute's domain and parsing continuous
// values as float64. Weight defaults to 1 when zero.
func BuildDataset(spec DatasetSpec) (*dataset.Dataset, error) {
	schema, err := BuildSchema(spec.Schema)
	if err != nil {
		return nil, err
	}
	d, err := dataset.New(schema)
	if err != nil {
		return nil, err
	}
	for rowIdx, row := range spec.Rows {
		if len(row.Values) != len(schema) {
			return nil, fmt.Errorf("wire: row %d: got %d values, schema has %d columns", rowIdx, len(row.Values), len(schema))
		}
		vals := make([]float64, len(schema))
		for i, a := range schema {
			raw := row.Values[i]
			if a.IsDiscrete() {
				if raw == "" {
					vals[i] = dataset.Missing
					continue
				}
				idx := a.IndexOf(raw)
				if idx < 0 {
					return nil, fmt.Errorf("wire: row %d: %q is not in %s's domain", rowIdx, raw, a.Name())
				}
				vals[i] = float64(idx)
				continue
			}
			v, err := parseFloat(raw)
			if err != nil {
				return nil, fmt.Errorf("wire: row %d: attribute %s: %w", rowIdx, a.Name(), err)
			}
			vals[i] = v
		}
		weight := row.Weight
		if weight == 0 {
			weight = 1
		}
		if err := d.PushInstance(dataset.Row{Values: vals, Weight: weight}); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return dataset.Missing, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

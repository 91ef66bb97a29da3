// Package dataset implements the in-memory weighted instance table (MODULE C):
// an ordered sequence of rows over a fixed Attribute schema, with stable
// sorting, stratified splitting, slicing and filtered-subset materialization.
package dataset

import (
	"math"
	"math/rand"
	"sort"

	"github.com/yourbasic/bit"
	"golang.org/x/exp/slices"

	"ripper-core/attribute"
	"ripper-core/rerrors"
)

// Missing is the sentinel value representing an absent attribute value,
// distinct from any in-domain discrete index or continuous real.
var Missing = math.NaN()

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Row is one weighted, schema-ordered tuple of values.
type Row struct {
	Values []float64
	Weight float64
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	v := make([]float64, len(r.Values))
	copy(v, r.Values)
	return Row{Values: v, Weight: r.Weight}
}

// Dataset is a schema plus an ordered sequence of rows. The class attribute
// is always schema[0] and must be discrete with a non-empty domain.
type Dataset struct {
	Schema []*attribute.Attribute
	Rows   []Row
}

// New validates the schema's class-attribute invariant and builds an empty
// Dataset over it.
func New(schema []*attribute.Attribute) (*Dataset, error) {
	if len(schema) == 0 {
		return nil, rerrors.ErrSchemaMismatch
	}
	if !schema[0].IsDiscrete() {
		return nil, rerrors.ErrClassNotDiscrete
	}
	if schema[0].NumValues() == 0 {
		return nil, rerrors.ErrEmptyClassDomain
	}
	return &Dataset{Schema: schema}, nil
}

// CreateEmpty returns a new, row-less Dataset sharing this schema.
func (d *Dataset) CreateEmpty() *Dataset {
	return &Dataset{Schema: d.Schema}
}

// PushInstance appends row, defaulting its weight to 1.0 if unset and
// validating its width against the schema.
func (d *Dataset) PushInstance(row Row) error {
	if len(row.Values) != len(d.Schema) {
		return rerrors.ErrRowLengthMismatch
	}
	if row.Weight == 0 {
		row.Weight = 1.0
	}
	d.Rows = append(d.Rows, row)
	return nil
}

func (d *Dataset) NumInstances() int  { return len(d.Rows) }
func (d *Dataset) NumAttributes() int { return len(d.Schema) }
func (d *Dataset) NumClasses() int    { return d.Schema[0].NumValues() }

// SumOfWeights sums every row's weight using Kahan summation, the way
// decision_tree/util/add's FloatAdder accumulates weighted counts.
func (d *Dataset) SumOfWeights() float64 {
	var sum, c float64
	for _, r := range d.Rows {
		y := r.Weight + c
		t := sum + y
		c = y - (t - sum)
		sum = t
	}
	return sum
}

func (d *Dataset) ClassValue(i int) float64        { return d.Rows[i].Values[0] }
func (d *Dataset) ValueOfAttr(i, a int) float64     { return d.Rows[i].Values[a] }
func (d *Dataset) IsMissing(i, a int) bool          { return IsMissing(d.Rows[i].Values[a]) }
func (d *Dataset) Weight(i int) float64             { return d.Rows[i].Weight }

// SortByAttr stably sorts rows ascending by their value of attribute a,
// with missing values sorted last.
func (d *Dataset) SortByAttr(a int) {
	slices.SortStableFunc(d.Rows, func(x, y Row) bool {
		xv, yv := x.Values[a], y.Values[a]
		xm, ym := IsMissing(xv), IsMissing(yv)
		if xm && ym {
			return false
		}
		if xm {
			return false
		}
		if ym {
			return true
		}
		return xv < yv
	})
}

// Slice returns a new Dataset containing length rows starting at from,
// sharing this Dataset's schema. Rows are copied.
func (d *Dataset) Slice(from, length int) *Dataset {
	out := d.CreateEmpty()
	end := from + length
	if end > len(d.Rows) {
		end = len(d.Rows)
	}
	if from < 0 || from > end {
		return out
	}
	out.Rows = make([]Row, end-from)
	copy(out.Rows, d.Rows[from:end])
	return out
}

// Filter returns a new Dataset containing exactly the rows for which keep
// returns true, preserving relative order.
func (d *Dataset) Filter(keep func(i int) bool) *Dataset {
	out := d.CreateEmpty()
	for i := range d.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, d.Rows[i])
		}
	}
	return out
}

// RowSet materializes the indices for which keep is true as a bitset,
// mirroring execute_rule.go's bit.Set row-id bookkeeping. No other package
// in this module calls it; Filter and Slice copy rows rather than use it.
func (d *Dataset) RowSet(keep func(i int) bool) *bit.Set {
	s := bit.New()
	for i := range d.Rows {
		if keep(i) {
			s = s.Add(i)
		}
	}
	return s
}

// RemoveUselessInsts drops every row whose class value is missing.
func (d *Dataset) RemoveUselessInsts() *Dataset {
	return d.Filter(func(i int) bool { return !d.IsMissing(i, 0) })
}

// ResortClassesByCount renumbers the class attribute's domain indices in
// ascending order of weighted count (ties broken by original index),
// mutating both the domain order and every row's class index. Returns the
// new count-per-index array.
func (d *Dataset) ResortClassesByCount() []float64 {
	numClasses := d.NumClasses()
	counts := make([]float64, numClasses)
	for i := range d.Rows {
		if !d.IsMissing(i, 0) {
			counts[int(d.ClassValue(i))] += d.Rows[i].Weight
		}
	}

	order := make([]int, numClasses)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] < counts[order[b]]
	})

	// oldToNew[old class index] = new class index
	oldToNew := make([]int, numClasses)
	newDomain := make([]string, numClasses)
	oldDomain := d.Schema[0].Domain()
	newCounts := make([]float64, numClasses)
	for newIdx, oldIdx := range order {
		oldToNew[oldIdx] = newIdx
		newDomain[newIdx] = oldDomain[oldIdx]
		newCounts[newIdx] = counts[oldIdx]
	}

	newClassAttr, _ := attribute.NewDiscrete(d.Schema[0].Name(), newDomain)
	newSchema := make([]*attribute.Attribute, len(d.Schema))
	copy(newSchema, d.Schema)
	newSchema[0] = newClassAttr
	d.Schema = newSchema

	for i := range d.Rows {
		if !d.IsMissing(i, 0) {
			d.Rows[i].Values[0] = float64(oldToNew[int(d.Rows[i].Values[0])])
		}
	}

	return newCounts
}

// Shuffle randomizes row order in place using rng, the way the original
// RIPPER randomizes instances before stratifying so that a seeded RNG
// produces a reproducible fold assignment.
func (d *Dataset) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Rows), func(i, j int) { d.Rows[i], d.Rows[j] = d.Rows[j], d.Rows[i] })
}

// Stratify reorders rows so classes are evenly distributed across k folds:
// rows are grouped by class (preserving within-class order), then k cursors
// interleave round-robin, emitting one row per class per pass. Deterministic
// given the input order.
func (d *Dataset) Stratify(k int) {
	if k <= 0 {
		k = 1
	}
	byClass := make(map[int][]Row)
	var classOrder []int
	seen := make(map[int]bool)
	for _, r := range d.Rows {
		c := int(r.Values[0])
		if !seen[c] {
			seen[c] = true
			classOrder = append(classOrder, c)
		}
		byClass[c] = append(byClass[c], r)
	}

	out := make([]Row, 0, len(d.Rows))
	cursors := make(map[int]int, len(classOrder))
	for {
		emittedAny := false
		for pass := 0; pass < k; pass++ {
			for _, c := range classOrder {
				rows := byClass[c]
				idx := cursors[c]
				if idx >= len(rows) {
					continue
				}
				out = append(out, rows[idx])
				cursors[c] = idx + 1
				emittedAny = true
			}
		}
		if !emittedAny {
			break
		}
	}
	d.Rows = out
}

// Partition splits a dataset (already stratified by the caller) into grow
// and prune folds at position ceil(n*(k-1)/k).
func (d *Dataset) Partition(k int) (grow, prune *Dataset) {
	n := len(d.Rows)
	if k <= 0 {
		k = 1
	}
	pos := (n*(k-1) + k - 1) / k
	grow = d.Slice(0, pos)
	prune = d.Slice(pos, n-pos)
	return grow, prune
}

// SortAttrsAs permutes this dataset's columns to match reference, failing if
// the attribute sets differ (by name).
func (d *Dataset) SortAttrsAs(reference []*attribute.Attribute) error {
	if len(reference) != len(d.Schema) {
		return rerrors.ErrSchemaMismatch
	}
	perm := make([]int, len(reference))
	byName := make(map[string]int, len(d.Schema))
	for i, a := range d.Schema {
		byName[a.Name()] = i
	}
	for i, ref := range reference {
		idx, ok := byName[ref.Name()]
		if !ok {
			return rerrors.ErrAttributeMissing
		}
		perm[i] = idx
	}
	newSchema := make([]*attribute.Attribute, len(reference))
	for i, idx := range perm {
		newSchema[i] = d.Schema[idx]
	}
	for ri := range d.Rows {
		newValues := make([]float64, len(perm))
		for i, idx := range perm {
			newValues[i] = d.Rows[ri].Values[idx]
		}
		d.Rows[ri].Values = newValues
	}
	d.Schema = newSchema
	return nil
}

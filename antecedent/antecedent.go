// Package antecedent implements MODULE B: a single test on one attribute,
// either a discrete-equality test or a continuous-threshold test, together
// with the information-gain search (split_data) that scores and selects it.
package antecedent

import (
	"fmt"
	"math"

	"ripper-core/attribute"
	"ripper-core/dataset"
)

// Direction is the comparison direction of a continuous antecedent.
type Direction uint8

const (
	LessOrEqual    Direction = 0
	GreaterOrEqual Direction = 1
)

// Kind tags which variant an Antecedent is.
type Kind uint8

const (
	DiscreteKind Kind = iota
	ContinuousKind
)

// Antecedent is a test bound to one attribute, carrying mutable scoring
// fields populated by SplitData and consumed by Rule.grow.
type Antecedent struct {
	Kind      Kind
	AttrIndex int
	attr      *attribute.Attribute

	// Discrete: target domain index. Continuous: split point and direction.
	TargetValue float64
	SplitPoint  float64
	Direction   Direction

	// Scoring fields, set by SplitData.
	MaxInfoGain float64
	AccuRate    float64
	Cover       float64
	Accu        float64
}

// NewDiscrete constructs an unset discrete antecedent over attr.
func NewDiscrete(attrIndex int, attr *attribute.Attribute) *Antecedent {
	return &Antecedent{
		Kind:        DiscreteKind,
		AttrIndex:   attrIndex,
		attr:        attr,
		TargetValue: math.NaN(),
		MaxInfoGain: math.NaN(),
	}
}

// NewContinuous constructs an unset continuous antecedent over attr.
func NewContinuous(attrIndex int, attr *attribute.Attribute) *Antecedent {
	return &Antecedent{
		Kind:        ContinuousKind,
		AttrIndex:   attrIndex,
		attr:        attr,
		SplitPoint:  math.NaN(),
		MaxInfoGain: math.NaN(),
	}
}

func log2(x float64) float64 { return math.Log2(x) }

// SplitData scores and (on success) binds this antecedent against data,
// given the running default-accuracy rate and the target class index.
// Returns the resulting bags/partitions, or ok=false if no split exists
// (a continuous attribute with zero non-missing rows).
func (a *Antecedent) SplitData(data *dataset.Dataset, defAccuRate float64, targetClass float64) ([]*dataset.Dataset, bool) {
	if a.Kind == DiscreteKind {
		return a.splitDiscrete(data, defAccuRate, targetClass), true
	}
	return a.splitContinuous(data, defAccuRate, targetClass)
}

func (a *Antecedent) splitDiscrete(data *dataset.Dataset, defAccuRate float64, targetClass float64) []*dataset.Dataset {
	numBags := a.attr.NumValues()
	bags := make([]*dataset.Dataset, numBags)
	for i := range bags {
		bagIdx := i
		bags[i] = data.Filter(func(r int) bool {
			return !data.IsMissing(r, a.AttrIndex) && int(data.ValueOfAttr(r, a.AttrIndex)) == bagIdx
		})
	}

	bestGain := math.Inf(-1)
	bestIdx := -1
	var bestAccuRate, bestCover, bestAccu float64
	for i, bag := range bags {
		bagW := bag.SumOfWeights()
		if bagW == 0 {
			continue
		}
		var classMatchesW float64
		for r := 0; r < bag.NumInstances(); r++ {
			if bag.ClassValue(r) == targetClass {
				classMatchesW += bag.Weight(r)
			}
		}
		p := classMatchesW + 1
		tt := bagW + 1
		infoGain := classMatchesW * (log2(p/tt) - log2(defAccuRate))
		if infoGain > bestGain {
			bestGain = infoGain
			bestIdx = i
			bestAccuRate = p / tt
			bestCover = bagW
			bestAccu = classMatchesW
		}
	}

	if bestIdx >= 0 {
		a.TargetValue = float64(bestIdx)
		a.MaxInfoGain = bestGain
		a.AccuRate = bestAccuRate
		a.Cover = bestCover
		a.Accu = bestAccu
	}
	return bags
}

func (a *Antecedent) splitContinuous(data *dataset.Dataset, defAccuRate float64, targetClass float64) ([]*dataset.Dataset, bool) {
	sorted := data.CreateEmpty()
	sorted.Rows = append(sorted.Rows, data.Rows...)
	sorted.SortByAttr(a.AttrIndex)

	total := 0
	for total < sorted.NumInstances() && !sorted.IsMissing(total, a.AttrIndex) {
		total++
	}
	if total == 0 {
		return nil, false
	}

	cumWeight := make([]float64, total+1)
	cumMatch := make([]float64, total+1)
	for i := 0; i < total; i++ {
		cumWeight[i+1] = cumWeight[i] + sorted.Weight(i)
		if sorted.ClassValue(i) == targetClass {
			cumMatch[i+1] = cumMatch[i] + sorted.Weight(i)
		} else {
			cumMatch[i+1] = cumMatch[i]
		}
	}

	bestGain := math.Inf(-1)
	bestSplitRow := -1
	var bestDir Direction
	var bestAccuRate, bestCover, bestAccu float64

	for s := 1; s <= total; s++ {
		if s < total && sorted.ValueOfAttr(s, a.AttrIndex) == sorted.ValueOfAttr(s-1, a.AttrIndex) {
			continue
		}

		// direction LessOrEqual: covers rows [0, s)
		leCover := cumWeight[s]
		leAccu := cumMatch[s]
		leRate := (leAccu + 1) / (leCover + 1)
		leGain := leAccu * (log2(leRate) - log2(defAccuRate))
		if leGain > bestGain {
			bestGain = leGain
			bestSplitRow = s
			bestDir = LessOrEqual
			bestAccuRate = leRate
			bestCover = leCover
			bestAccu = leAccu
		}

		// direction GreaterOrEqual: covers rows [s, total)
		geCover := cumWeight[total] - cumWeight[s]
		geAccu := cumMatch[total] - cumMatch[s]
		geRate := (geAccu + 1) / (geCover + 1)
		geGain := geAccu * (log2(geRate) - log2(defAccuRate))
		if geGain > bestGain {
			bestGain = geGain
			bestSplitRow = s
			bestDir = GreaterOrEqual
			bestAccuRate = geRate
			bestCover = geCover
			bestAccu = geAccu
		}
	}

	if bestSplitRow < 0 {
		return nil, false
	}

	// The split point sits midway between the last row of the lower side and
	// the first row of the upper side, so that Covers (<= or >=) selects
	// exactly the rows that were scored for the chosen direction.
	splitPoint := sorted.ValueOfAttr(bestSplitRow-1, a.AttrIndex)
	if bestSplitRow < total {
		splitPoint = (splitPoint + sorted.ValueOfAttr(bestSplitRow, a.AttrIndex)) / 2
	}
	a.SplitPoint = splitPoint
	if bestDir == LessOrEqual {
		a.Direction = LessOrEqual
	} else {
		a.Direction = GreaterOrEqual
	}
	a.MaxInfoGain = bestGain
	a.AccuRate = bestAccuRate
	a.Cover = bestCover
	a.Accu = bestAccu

	le := data.Filter(func(r int) bool {
		return !data.IsMissing(r, a.AttrIndex) && data.ValueOfAttr(r, a.AttrIndex) <= splitPoint
	})
	gt := data.Filter(func(r int) bool {
		return !data.IsMissing(r, a.AttrIndex) && data.ValueOfAttr(r, a.AttrIndex) > splitPoint
	})
	return []*dataset.Dataset{le, gt}, true
}

// Covers reports whether row i of data satisfies this antecedent. Missing
// values never satisfy a test.
func (a *Antecedent) Covers(data *dataset.Dataset, i int) bool {
	if data.IsMissing(i, a.AttrIndex) {
		return false
	}
	v := data.ValueOfAttr(i, a.AttrIndex)
	if a.Kind == DiscreteKind {
		return int(v) == int(a.TargetValue)
	}
	if a.Direction == LessOrEqual {
		return v <= a.SplitPoint
	}
	return v >= a.SplitPoint
}

// String renders the antecedent as a human-readable "attr op value" clause.
func (a *Antecedent) String() string {
	if a.Kind == DiscreteKind {
		return fmt.Sprintf("%s == %s", a.attr.Name(), a.attr.ReprVal(a.TargetValue))
	}
	op := "<="
	if a.Direction == GreaterOrEqual {
		op = ">="
	}
	return fmt.Sprintf("%s %s %s", a.attr.Name(), op, a.attr.ReprVal(a.SplitPoint))
}

// Attr returns the attribute this antecedent is bound to.
func (a *Antecedent) Attr() *attribute.Attribute { return a.attr }

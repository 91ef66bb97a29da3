// Package rule implements MODULE D: a RIPPER rule, a conjunction of
// antecedents predicting a class index, with greedy growth, reduced-error
// pruning and post-hoc redundancy cleanup.
package rule

import (
	"math"
	"strings"

	mapset "github.com/deckarep/golang-set"

	"ripper-core/antecedent"
	"ripper-core/dataset"
	"ripper-core/rerrors"
)

// Rule is a consequent (class index) plus an ordered list of antecedents,
// interpreted as a conjunction. An empty antecedent list covers every row
// (the "default rule").
type Rule struct {
	Consequent  int
	Antecedents []*antecedent.Antecedent
}

// New builds a rule for the given consequent class with no antecedents yet.
func New(consequent int) *Rule {
	return &Rule{Consequent: consequent}
}

// Clone copies the antecedent list so the clone can be grown/pruned
// independently of the original; the antecedent values themselves are shared.
func (r *Rule) Clone() *Rule {
	cp := make([]*antecedent.Antecedent, len(r.Antecedents))
	copy(cp, r.Antecedents)
	return &Rule{Consequent: r.Consequent, Antecedents: cp}
}

// Covers reports whether row i of data satisfies every antecedent. An empty
// rule covers everything.
func (r *Rule) Covers(data *dataset.Dataset, i int) bool {
	for _, a := range r.Antecedents {
		if !a.Covers(data, i) {
			return false
		}
	}
	return true
}

// CoversDataset filters data down to the rows this rule covers.
func (r *Rule) CoversDataset(data *dataset.Dataset) *dataset.Dataset {
	return data.Filter(func(i int) bool { return r.Covers(data, i) })
}

func weightedClassMatch(data *dataset.Dataset, consequent int) float64 {
	var sum float64
	for i := 0; i < data.NumInstances(); i++ {
		if int(data.ClassValue(i)) == consequent {
			sum += data.Weight(i)
		}
	}
	return sum
}

// Grow greedily hill-climbs antecedents onto the rule from growData, never
// revisiting a discrete attribute already used by one of this rule's
// antecedents (continuous attributes are always reusable), stopping when no
// antecedent clears minNo weighted accurate coverage.
func (r *Rule) Grow(growData *dataset.Dataset, minNo float64) {
	used := mapset.NewSet()
	for _, a := range r.Antecedents {
		if a.Kind == antecedent.DiscreteKind {
			used.Add(a.AttrIndex)
		}
	}

	data := growData
	schema := growData.Schema

	for {
		if data.NumInstances() == 0 {
			break
		}

		hasContinuous := false
		hasUnusedDiscrete := false
		for i := 1; i < len(schema); i++ {
			if schema[i].IsDiscrete() {
				if !used.Contains(i) {
					hasUnusedDiscrete = true
				}
			} else {
				hasContinuous = true
			}
		}
		if !hasContinuous && !hasUnusedDiscrete {
			break
		}

		defAccu := weightedClassMatch(data, r.Consequent)
		defAccuRate := (defAccu + 1) / (data.SumOfWeights() + 1)
		if defAccuRate >= 1 {
			break
		}

		var bestAnt *antecedent.Antecedent
		var bestBags []*dataset.Dataset
		bestGain := math.Inf(-1)
		for i := 1; i < len(schema); i++ {
			if schema[i].IsDiscrete() && used.Contains(i) {
				continue
			}
			var cand *antecedent.Antecedent
			if schema[i].IsDiscrete() {
				cand = antecedent.NewDiscrete(i, schema[i])
			} else {
				cand = antecedent.NewContinuous(i, schema[i])
			}
			bags, ok := cand.SplitData(data, defAccuRate, float64(r.Consequent))
			if !ok {
				continue
			}
			if cand.MaxInfoGain > bestGain {
				bestGain = cand.MaxInfoGain
				bestAnt = cand
				bestBags = bags
			}
		}

		if bestAnt == nil || bestAnt.Accu < minNo {
			break
		}

		r.Antecedents = append(r.Antecedents, bestAnt)
		if bestAnt.Kind == antecedent.DiscreteKind {
			used.Add(bestAnt.AttrIndex)
			data = bestBags[int(bestAnt.TargetValue)]
		} else if bestAnt.Direction == antecedent.LessOrEqual {
			data = bestBags[0]
		} else {
			data = bestBags[1]
		}
	}
}

// Prune truncates the antecedent list to the prefix length that maximizes a
// worth-rate score over pruneData. useWhole selects the "whole data" worth
// formula (incorporating true negatives) used during the optimization stage;
// otherwise the simpler Laplace-style formula from the initial build stage
// is used.
func (r *Rule) Prune(pruneData *dataset.Dataset, useWhole bool) {
	n := len(r.Antecedents)
	if n == 0 {
		return
	}

	total := pruneData.SumOfWeights()
	defAccu := weightedClassMatch(pruneData, r.Consequent)
	maxValue := (defAccu + 1) / (total + 2)

	maxIndex := -1
	maxWorthRate := math.Inf(-1)

	for x := 0; x < n; x++ {
		prefix := r.Antecedents[:x+1]
		covered := pruneData.Filter(func(i int) bool {
			for _, a := range prefix {
				if !a.Covers(pruneData, i) {
					return false
				}
			}
			return true
		})
		coverage := covered.SumOfWeights()
		worthValue := weightedClassMatch(covered, r.Consequent)

		var worthRate float64
		if useWhole {
			notCovered := pruneData.Filter(func(i int) bool {
				for _, a := range prefix {
					if !a.Covers(pruneData, i) {
						return true
					}
				}
				return false
			})
			var tn float64
			for i := 0; i < notCovered.NumInstances(); i++ {
				if int(notCovered.ClassValue(i)) != r.Consequent {
					tn += notCovered.Weight(i)
				}
			}
			worthRate = (worthValue + tn) / total
		} else {
			worthRate = (worthValue + 1) / (coverage + 2)
		}

		if worthRate > maxWorthRate && worthRate > maxValue {
			maxWorthRate = worthRate
			maxIndex = x
		}
	}

	r.Antecedents = r.Antecedents[:maxIndex+1]
}

// CleanUp removes redundant continuous antecedents: scanning from the last
// antecedent to the first, a ≤-antecedent on attribute j survives only if
// its split point is strictly lower than every ≤-antecedent on j seen so
// far (symmetric for ≥ with a running maximum). Discrete antecedents are
// untouched.
func (r *Rule) CleanUp() {
	minSeen := make(map[int]float64)
	maxSeen := make(map[int]float64)
	keep := make([]bool, len(r.Antecedents))

	for i := len(r.Antecedents) - 1; i >= 0; i-- {
		a := r.Antecedents[i]
		if a.Kind != antecedent.ContinuousKind {
			keep[i] = true
			continue
		}
		if a.Direction == antecedent.LessOrEqual {
			if cur, ok := minSeen[a.AttrIndex]; !ok || a.SplitPoint < cur {
				minSeen[a.AttrIndex] = a.SplitPoint
				keep[i] = true
			}
		} else {
			if cur, ok := maxSeen[a.AttrIndex]; !ok || a.SplitPoint > cur {
				maxSeen[a.AttrIndex] = a.SplitPoint
				keep[i] = true
			}
		}
	}

	kept := r.Antecedents[:0:0]
	for i, k := range keep {
		if k {
			kept = append(kept, r.Antecedents[i])
		}
	}
	r.Antecedents = kept
}

// String renders the rule as "(a1) AND (a2) => class" or "=> class" for a
// default rule. classRepr renders the consequent's domain label.
func (r *Rule) String(classRepr string) string {
	if len(r.Antecedents) == 0 {
		return "=> " + classRepr
	}
	parts := make([]string, len(r.Antecedents))
	for i, a := range r.Antecedents {
		parts[i] = "(" + a.String() + ")"
	}
	return strings.Join(parts, " AND ") + " => " + classRepr
}

// ValidateGrowable returns rerrors.ErrRuleNoConsequent if the rule has no
// usable consequent (negative class index), the spec.md §7 state-error
// contract for "growing a rule without a consequent."
func (r *Rule) ValidateGrowable() error {
	if r.Consequent < 0 {
		return rerrors.ErrRuleNoConsequent
	}
	return nil
}

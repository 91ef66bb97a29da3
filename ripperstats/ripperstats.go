// Package ripperstats implements MODULE E: per-ruleset accounting of
// coverage/accuracy counts and description-length bookkeeping that drives
// RIPPER's stopping and optimization decisions.
package ripperstats

import (
	"math"
	"sort"

	"ripper-core/dataset"
	"ripper-core/rerrors"
	"ripper-core/rule"
)

// SixTuple is the per-rule weighted-count accounting against the residual
// dataset at the point the rule was pushed: covered + uncovered ==
// residual weight, and coveredPos + coveredNeg == covered.
type SixTuple struct {
	Covered      float64
	Uncovered    float64
	CoveredPos   float64
	CoveredNeg   float64
	UncoveredPos float64
	UncoveredNeg float64
}

// RuleStats is bound to a base dataset snapshot and a ruleset prefix built
// up via PushRule/PopRule. It owns the rule slice itself (the caller's
// ordered ruleset and this stats tracker stay in lockstep via Push/Pop, the
// same way the teacher's decision tree keeps node and statistic arrays
// parallel) rather than reaching back into a shared ruleset by pointer.
type RuleStats struct {
	Data             *dataset.Dataset
	Rules            []*rule.Rule
	Stats            []SixTuple
	Filtered         [][2]*dataset.Dataset // [i] = (covered_by_i, not_covered_by_i)
	NumAllConditions float64
}

// New builds an empty RuleStats bound to data, precomputing num_all_conditions.
func New(data *dataset.Dataset) *RuleStats {
	return &RuleStats{Data: data, NumAllConditions: numAllConditions(data)}
}

func numAllConditions(data *dataset.Dataset) float64 {
	var total float64
	for a := 1; a < len(data.Schema); a++ {
		attr := data.Schema[a]
		if attr.IsDiscrete() {
			total += float64(attr.NumValues())
			continue
		}
		values := make([]float64, 0, data.NumInstances())
		for i := 0; i < data.NumInstances(); i++ {
			if !data.IsMissing(i, a) {
				values = append(values, data.ValueOfAttr(i, a))
			}
		}
		sort.Float64s(values)
		distinct := 0
		for i := range values {
			if i == 0 || values[i] != values[i-1] {
				distinct++
			}
		}
		if distinct > 0 {
			total += float64(distinct - 1)
		}
	}
	return total
}

// residualAt returns the dataset not yet covered by any rule before index i.
func (rs *RuleStats) residualAt(i int) *dataset.Dataset {
	if i == 0 {
		return rs.Data
	}
	return rs.Filtered[i-1][1]
}

func compute6Tuple(covered, uncovered *dataset.Dataset, consequent int) SixTuple {
	var st SixTuple
	st.Covered = covered.SumOfWeights()
	st.Uncovered = uncovered.SumOfWeights()
	for i := 0; i < covered.NumInstances(); i++ {
		if int(covered.ClassValue(i)) == consequent {
			st.CoveredPos += covered.Weight(i)
		} else {
			st.CoveredNeg += covered.Weight(i)
		}
	}
	for i := 0; i < uncovered.NumInstances(); i++ {
		if int(uncovered.ClassValue(i)) == consequent {
			st.UncoveredPos += uncovered.Weight(i)
		} else {
			st.UncoveredNeg += uncovered.Weight(i)
		}
	}
	return st
}

// PushRule splits the current residual dataset by r.Covers, caches the two
// halves, and computes the new rule's stats.
func (rs *RuleStats) PushRule(r *rule.Rule) {
	residual := rs.residualAt(len(rs.Rules))
	covered := r.CoversDataset(residual)
	uncovered := residual.Filter(func(i int) bool { return !r.Covers(residual, i) })

	rs.Rules = append(rs.Rules, r)
	rs.Filtered = append(rs.Filtered, [2]*dataset.Dataset{covered, uncovered})
	rs.Stats = append(rs.Stats, compute6Tuple(covered, uncovered, r.Consequent))
}

// PopRule discards the last pushed rule's filtered datasets and stats.
func (rs *RuleStats) PopRule() {
	n := len(rs.Rules)
	if n == 0 {
		return
	}
	rs.Rules = rs.Rules[:n-1]
	rs.Filtered = rs.Filtered[:n-1]
	rs.Stats = rs.Stats[:n-1]
}

// GetFiltered returns (covered_by_rule_i, uncovered_by_rule_i).
func (rs *RuleStats) GetFiltered(i int) (covered, uncovered *dataset.Dataset) {
	return rs.Filtered[i][0], rs.Filtered[i][1]
}

func log2(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Log2(x)
}

// theoryDL is the "subset code length" cost of a k-antecedent rule chosen
// from numAllConditions candidate tests, plus a term encoding the rule's
// own length, discounted by RIPPER's 0.5 redundancy factor.
func theoryDL(k, numAllConditions float64) float64 {
	if k <= 0 || numAllConditions <= 0 {
		return 0
	}
	first := k * log2(numAllConditions/k)
	var second float64
	if numAllConditions > k {
		second = (numAllConditions - k) * log2(numAllConditions/(numAllConditions-k))
	}
	third := log2(k)
	return 0.5 * (first + second + third)
}

// binaryCodeLength is L(n, k, p) = -k*log2(p) - (n-k)*log2(1-p): the bits
// needed to communicate which k of n covered items are the "wrong" class,
// given an expected rate p.
func binaryCodeLength(n, k, p float64) float64 {
	if n <= 0 {
		return 0
	}
	if p <= 0 {
		p = 1e-9
	}
	if p >= 1 {
		p = 1 - 1e-9
	}
	return -k*log2(p) - (n-k)*log2(1-p)
}

// dataDL is the standard RIPPER data-description-length term: the binary
// coding cost of the covered side's false positives plus the uncovered
// side's false negatives, each combined with the self-cost of encoding the
// side's own count.
func dataDL(expFpRate, covered, uncovered, coveredPos, uncoveredPos float64) float64 {
	fp := covered - coveredPos
	fn := uncoveredPos
	coverDL := binaryCodeLength(covered, fp, expFpRate) + log2(covered+1)
	uncoverDL := binaryCodeLength(uncovered, fn, expFpRate) + log2(uncovered+1)
	return coverDL + uncoverDL
}

// DataDL exposes the standalone data-DL formula for a default (no-rule)
// ruleset — used by the learner to compute def_dl before building any rules.
func DataDL(expFpRate, covered, uncovered, coveredPos, uncoveredPos float64) float64 {
	return dataDL(expFpRate, covered, uncovered, coveredPos, uncoveredPos)
}

// TheoryDL exposes the standalone theory-DL formula for scoring optimization
// variants against a fixed num_all_conditions.
func TheoryDL(k, numAllConditions float64) float64 {
	return theoryDL(k, numAllConditions)
}

// CurrentResidual returns the dataset not yet covered by any pushed rule.
func (rs *RuleStats) CurrentResidual() *dataset.Dataset {
	return rs.residualAt(len(rs.Rules))
}

// RelativeDL is rule i's own marginal description-length contribution:
// theory cost of its antecedent count plus the data cost of the residual at
// i with the rule in place, minus the data cost of that same residual left
// wholly uncovered. If checkErr and the rule is worse than chance
// (covered_neg/covered >= 0.5), it is penalized to +Inf so reduce_dl always
// wants it gone.
func (rs *RuleStats) RelativeDL(i int, expFpRate float64, checkErr bool) float64 {
	st := rs.Stats[i]
	if checkErr && st.Covered > 0 && st.CoveredNeg/st.Covered >= 0.5 {
		return math.Inf(1)
	}
	k := float64(len(rs.Rules[i].Antecedents))
	withRule := dataDL(expFpRate, st.Covered, st.Uncovered, st.CoveredPos, st.UncoveredPos)
	withoutRule := dataDL(expFpRate, 0, st.Covered+st.Uncovered, 0, st.CoveredPos+st.UncoveredPos)
	return theoryDL(k, rs.NumAllConditions) + withRule - withoutRule
}

func (rs *RuleStats) totalDL(expFpRate float64, checkErr bool) float64 {
	var sum float64
	for i := range rs.Rules {
		sum += rs.RelativeDL(i, expFpRate, checkErr)
	}
	return sum
}

func (rs *RuleStats) withoutRule(idx int) *RuleStats {
	out := New(rs.Data)
	out.NumAllConditions = rs.NumAllConditions
	for i, r := range rs.Rules {
		if i == idx {
			continue
		}
		out.PushRule(r)
	}
	return out
}

// ReduceDL repeatedly drops the single rule whose removal most decreases
// total description length, stopping when no removal helps.
func (rs *RuleStats) ReduceDL(expFpRate float64, checkErr bool) {
	for {
		if len(rs.Rules) == 0 {
			return
		}
		currentDL := rs.totalDL(expFpRate, checkErr)
		bestDelta := 0.0
		bestIdx := -1
		for i := range rs.Rules {
			candidate := rs.withoutRule(i)
			delta := currentDL - candidate.totalDL(expFpRate, checkErr)
			if delta > bestDelta {
				bestDelta = delta
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			return
		}
		*rs = *rs.withoutRule(bestIdx)
	}
}

// CountData recomputes the 6-tuple for a variant rule at position i by
// replaying freshData through priorRules (0..i-1), then through variant.
func CountData(variant *rule.Rule, freshData *dataset.Dataset, priorRules []*rule.Rule) SixTuple {
	residual := freshData
	for _, r := range priorRules {
		residual = residual.Filter(func(i int) bool { return !r.Covers(residual, i) })
	}
	covered := variant.CoversDataset(residual)
	uncovered := residual.Filter(func(i int) bool { return !variant.Covers(residual, i) })
	return compute6Tuple(covered, uncovered, variant.Consequent)
}

// RemoveCoveredBySuccessives removes from data every row covered by any rule
// at index > position, used when scoring a revision variant for the rule at
// position.
func RemoveCoveredBySuccessives(data *dataset.Dataset, rules []*rule.Rule, position int) *dataset.Dataset {
	return data.Filter(func(i int) bool {
		for idx := position + 1; idx < len(rules); idx++ {
			if rules[idx].Covers(data, i) {
				return false
			}
		}
		return true
	})
}

// ValidateFinite guards against the numeric-anomaly error class (spec §7):
// a NaN or infinite description length indicates an implementation bug.
func ValidateFinite(dl float64) error {
	if math.IsNaN(dl) {
		return rerrors.ErrNaNDescriptionLength
	}
	if math.IsInf(dl, 0) {
		return rerrors.ErrInfDescriptionLength
	}
	return nil
}

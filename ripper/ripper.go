// Package ripper implements MODULE F: RipperLearner, the Cohen-1995
// build/optimize/reduce orchestration that turns a labeled Dataset into an
// ordered RuleBasedModel.
package ripper

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"ripper-core/dataset"
	"ripper-core/model"
	"ripper-core/ripperstats"
	"ripper-core/rule"
)

// maxDLSurplus is the description-length slack (in bits) the building stage
// tolerates before giving up on a class, per Cohen 1995.
const maxDLSurplus = 64.0

// Config holds RipperLearner's tunables, all defaulted.
type Config struct {
	NumOptimizations int
	Seed             int64
	NumFolds         int
	MinNo            float64
	CheckErr         bool
	UsePruning       bool
}

// DefaultConfig returns the spec's documented defaults. Seed defaults to the
// wall clock if left zero by the caller after DefaultConfig is copied.
func DefaultConfig() Config {
	return Config{
		NumOptimizations: 2,
		Seed:             1,
		NumFolds:         3,
		MinNo:            2.0,
		CheckErr:         true,
		UsePruning:       true,
	}
}

// Learner runs the training algorithm against a fixed Config and an
// injected logger.
type Learner struct {
	Config Config
	Logger *zap.Logger
}

// New builds a Learner, resolving a zero Seed to the wall clock and a nil
// Logger to zap's no-op logger.
func New(cfg Config, logger *zap.Logger) *Learner {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Learner{Config: cfg, Logger: logger}
}

// Train implements the full build/optimize/reduce algorithm and returns an
// ordered RuleBasedModel over data's schema.
func (l *Learner) Train(data *dataset.Dataset) (*model.RuleBasedModel, error) {
	clean := data.RemoveUselessInsts()
	rng := rand.New(rand.NewSource(l.Config.Seed))
	classCounts := clean.ResortClassesByCount()
	numClasses := len(classCounts)
	totalW := clean.SumOfWeights()

	// An empty dataset (or one where every class has zero weight) can't
	// support any rule growth: the model degenerates to the default rule,
	// per spec.md §8's boundary cases rather than an error.
	if clean.NumInstances() == 0 || totalW == 0 {
		defaultClass := numClasses - 1
		if defaultClass < 0 {
			defaultClass = 0
		}
		return model.New(clean.Schema, []*rule.Rule{rule.New(defaultClass)}), nil
	}

	var ruleset []*rule.Rule
	residual := clean

	for c := 0; c < numClasses-1; c++ {
		if classCounts[c] == 0 {
			continue
		}
		var denom float64
		for i := c; i < numClasses; i++ {
			denom += classCounts[i]
		}
		expFpRate := classCounts[c] / denom
		classW := classCounts[c]
		if classW == 0 {
			continue
		}
		defDL := ripperstats.DataDL(expFpRate, 0, totalW, 0, classW)

		l.Logger.Debug("building ruleset for class",
			zap.Int("class", c), zap.Float64("exp_fp_rate", expFpRate), zap.Float64("def_dl", defDL))

		classRules, numAllConditions, newResidual := l.buildRulesetForClass(residual, expFpRate, c, defDL, rng)
		if l.Config.UsePruning {
			classRules, newResidual = l.optimizeRuleset(classRules, residual, expFpRate, c, numAllConditions, rng)
		}
		ruleset = append(ruleset, classRules...)
		residual = newResidual
	}

	for _, r := range ruleset {
		r.CleanUp()
	}

	defaultClass := numClasses - 1
	ruleset = append(ruleset, rule.New(defaultClass))

	return model.New(clean.Schema, ruleset), nil
}

// buildRulesetForClass implements stage (a): greedily grow, prune and push
// one rule at a time until check_stop fires, discarding the rule that
// triggered the stop.
func (l *Learner) buildRulesetForClass(residual *dataset.Dataset, expFpRate float64, class int, defDL float64, rng *rand.Rand) ([]*rule.Rule, float64, *dataset.Dataset) {
	rs := ripperstats.New(residual)
	dl := defDL
	minDL := defDL

	for {
		current := rs.CurrentResidual()
		if current.SumOfWeights() == 0 {
			break
		}

		strat := cloneDataset(current)
		strat.Shuffle(rng)
		strat.Stratify(l.Config.NumFolds)
		growData, pruneData := strat.Partition(l.Config.NumFolds)

		candidate := rule.New(class)
		candidate.Grow(growData, l.Config.MinNo)
		candidate.Prune(pruneData, false)

		rs.PushRule(candidate)
		idx := len(rs.Rules) - 1
		st := rs.Stats[idx]
		dl += rs.RelativeDL(idx, expFpRate, l.Config.CheckErr)

		if l.checkStop(st, minDL, dl) {
			rs.PopRule()
			break
		}
		if dl < minDL {
			minDL = dl
		}
	}

	rules := make([]*rule.Rule, len(rs.Rules))
	copy(rules, rs.Rules)
	return rules, rs.NumAllConditions, rs.CurrentResidual()
}

// checkStop implements check_stop(stats, min_dl, dl) from spec.md §4.F.
func (l *Learner) checkStop(st ripperstats.SixTuple, minDL, dl float64) bool {
	if dl > minDL+maxDLSurplus {
		return true
	}
	if st.CoveredPos <= 0 {
		return true
	}
	if l.Config.CheckErr && st.Covered > 0 && st.CoveredNeg/st.Covered >= 0.5 {
		return true
	}
	return false
}

// optimizeRuleset implements stage (b): num_optimizations rounds of
// Replace/Revise variant scoring per rule position, followed by filling in
// any remaining positives and a final reduce_dl pass.
func (l *Learner) optimizeRuleset(rules []*rule.Rule, classResidual *dataset.Dataset, expFpRate float64, class int, numAllConditions float64, rng *rand.Rand) ([]*rule.Rule, *dataset.Dataset) {
	for round := 0; round < l.Config.NumOptimizations; round++ {
		rs := ripperstats.New(classResidual)

		for i := 0; i < len(rules); i++ {
			current := rs.CurrentResidual()
			if current.NumInstances() == 0 {
				rules = rules[:i]
				break
			}

			strat := cloneDataset(current)
			strat.Shuffle(rng)
			strat.Stratify(l.Config.NumFolds)
			growData, pruneData := strat.Partition(l.Config.NumFolds)
			prunedSuccessors := ripperstats.RemoveCoveredBySuccessives(pruneData, rules, i)

			original := rules[i]

			replace := rule.New(class)
			replace.Grow(growData, l.Config.MinNo)
			replace.Prune(prunedSuccessors, true)

			revise := original.Clone()
			revise.Grow(original.CoversDataset(growData), l.Config.MinNo)
			revise.Prune(prunedSuccessors, true)

			chosen := l.selectVariant(original, revise, replace, current, rules[:i], expFpRate, numAllConditions)

			rules[i] = chosen
			rs.PushRule(chosen)
		}

		tail := rs.CurrentResidual()
		if tail.SumOfWeights() > 0 {
			tailClassW := classWeight(tail, class)
			tailDefDL := ripperstats.DataDL(expFpRate, 0, tail.SumOfWeights(), 0, tailClassW)
			more, _, _ := l.buildRulesetForClass(tail, expFpRate, class, tailDefDL, rng)
			rules = append(rules, more...)
		}

		full := ripperstats.New(classResidual)
		full.NumAllConditions = numAllConditions
		for _, r := range rules {
			full.PushRule(r)
		}
		full.ReduceDL(expFpRate, l.Config.CheckErr)
		rules = make([]*rule.Rule, len(full.Rules))
		copy(rules, full.Rules)
	}

	finalRS := ripperstats.New(classResidual)
	finalRS.NumAllConditions = numAllConditions
	for _, r := range rules {
		finalRS.PushRule(r)
	}
	return rules, finalRS.CurrentResidual()
}

// selectVariant scores keeping the original, Revise and Replace and returns
// the winner, tie-breaking Original <= Revise <= Replace (strict
// improvement required to switch).
func (l *Learner) selectVariant(original, revise, replace *rule.Rule, residualAtI *dataset.Dataset, priorRules []*rule.Rule, expFpRate, numAllConditions float64) *rule.Rule {
	originalDL := l.variantDL(original, residualAtI, priorRules, expFpRate, numAllConditions)
	best := original
	bestDL := originalDL

	reviseDL := l.variantDL(revise, residualAtI, priorRules, expFpRate, numAllConditions)
	if reviseDL < bestDL {
		best = revise
		bestDL = reviseDL
	}

	replaceDL := l.variantDL(replace, residualAtI, priorRules, expFpRate, numAllConditions)
	if replaceDL < bestDL {
		best = replace
	}

	return best
}

func (l *Learner) variantDL(candidate *rule.Rule, residualAtI *dataset.Dataset, priorRules []*rule.Rule, expFpRate, numAllConditions float64) float64 {
	st := ripperstats.CountData(candidate, residualAtI, priorRules)
	if l.Config.CheckErr && st.Covered > 0 && st.CoveredNeg/st.Covered >= 0.5 {
		return math.Inf(1)
	}
	k := float64(len(candidate.Antecedents))
	return ripperstats.TheoryDL(k, numAllConditions) + ripperstats.DataDL(expFpRate, st.Covered, st.Uncovered, st.CoveredPos, st.UncoveredPos)
}

func cloneDataset(d *dataset.Dataset) *dataset.Dataset {
	out := d.CreateEmpty()
	out.Rows = append(out.Rows, d.Rows...)
	return out
}

func classWeight(d *dataset.Dataset, class int) float64 {
	var w float64
	for i := 0; i < d.NumInstances(); i++ {
		if int(d.ClassValue(i)) == class {
			w += d.Weight(i)
		}
	}
	return w
}

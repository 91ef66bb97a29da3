package model

import (
	"fmt"
	"strings"

	"github.com/Knetic/govaluate"

	"ripper-core/antecedent"
	"ripper-core/rule"
)

// Explain compiles r's antecedents into a human-auditable boolean
// expression string ("outlook == \"sunny\" && humidity >= 77.5") and returns
// a compiled govaluate.EvaluableExpression that can be re-evaluated against
// a row supplied as a map[string]interface{}, mirroring how
// utils/train_data_util evaluated generated predicate expressions.
func (m *RuleBasedModel) Explain(r *rule.Rule) (*govaluate.EvaluableExpression, string, error) {
	exprStr := "true"
	if len(r.Antecedents) > 0 {
		clauses := make([]string, len(r.Antecedents))
		for i, a := range r.Antecedents {
			clauses[i] = explainAntecedent(a)
		}
		exprStr = strings.Join(clauses, " && ")
	}
	expr, err := govaluate.NewEvaluableExpression(exprStr)
	if err != nil {
		return nil, exprStr, err
	}
	return expr, exprStr, nil
}

func explainAntecedent(a *antecedent.Antecedent) string {
	name := a.Attr().Name()
	if a.Kind == antecedent.DiscreteKind {
		return fmt.Sprintf("%s == %q", name, a.Attr().ReprVal(a.TargetValue))
	}
	op := "<="
	if a.Direction == antecedent.GreaterOrEqual {
		op = ">="
	}
	return fmt.Sprintf("%s %s %s", name, op, a.Attr().ReprVal(a.SplitPoint))
}


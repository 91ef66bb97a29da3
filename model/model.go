// Package model implements MODULE G: RuleBasedModel, the ordered rule list
// produced by training, together with predict/test and the interpretability
// and persistence exports built on top of it.
package model

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"ripper-core/attribute"
	"ripper-core/dataset"
	"ripper-core/rerrors"
	"ripper-core/rule"
)

// RuleBasedModel is an ordered rule list over a fixed schema: at prediction
// time the first rule that covers a row wins, and the final rule (the
// default, with no antecedents) always covers.
type RuleBasedModel struct {
	Schema []*attribute.Attribute
	Rules  []*rule.Rule
}

// New builds a RuleBasedModel. The caller owns schema/rules; New does not copy.
func New(schema []*attribute.Attribute, rules []*rule.Rule) *RuleBasedModel {
	return &RuleBasedModel{Schema: schema, Rules: rules}
}

// alignSchema reorders data's columns to match m.Schema by attribute name,
// the spec.md §4.G "predict" contract for schema mismatch.
func (m *RuleBasedModel) alignSchema(data *dataset.Dataset) (*dataset.Dataset, error) {
	same := len(data.Schema) == len(m.Schema)
	if same {
		for i := range m.Schema {
			if data.Schema[i].Name() != m.Schema[i].Name() {
				same = false
				break
			}
		}
	}
	if same {
		return data, nil
	}
	aligned := data.CreateEmpty()
	aligned.Rows = append(aligned.Rows, data.Rows...)
	if err := aligned.SortAttrsAs(m.Schema); err != nil {
		return nil, err
	}
	return aligned, nil
}

// Predict returns, for each row of data in order, the consequent of the
// first rule that covers it. The default rule guarantees every row gets a
// prediction.
func (m *RuleBasedModel) Predict(data *dataset.Dataset) ([]int, error) {
	if len(m.Rules) == 0 {
		return nil, rerrors.ErrModelNotTrained
	}
	aligned, err := m.alignSchema(data)
	if err != nil {
		return nil, err
	}
	out := make([]int, aligned.NumInstances())
	for i := 0; i < aligned.NumInstances(); i++ {
		out[i] = m.predictRow(aligned, i)
	}
	return out, nil
}

func (m *RuleBasedModel) predictRow(data *dataset.Dataset, i int) int {
	for _, r := range m.Rules {
		if r.Covers(data, i) {
			return r.Consequent
		}
	}
	return m.Rules[len(m.Rules)-1].Consequent
}

// ClassMeasures is the per-class confusion-matrix tuple returned by Test.
type ClassMeasures struct {
	Class       string
	Positives   float64
	Negatives   float64
	TP          float64
	TN          float64
	FP          float64
	FN          float64
	Accuracy    float64
	Sensitivity float64
	Specificity float64
	PPV         float64
	NPV         float64
}

// EvaluationReport holds one ClassMeasures per class, or a single entry for
// the positive class (index 1) in the binary case, per spec.md §4.G.
type EvaluationReport struct {
	Measures []ClassMeasures
}

// Test scores predictions against data's true class labels and returns
// per-class measures (or, for a binary class domain, a single tuple for the
// positive class, index 1).
func (m *RuleBasedModel) Test(data *dataset.Dataset) (*EvaluationReport, error) {
	predicted, err := m.Predict(data)
	if err != nil {
		return nil, err
	}
	aligned, err := m.alignSchema(data)
	if err != nil {
		return nil, err
	}

	classAttr := m.Schema[0]
	numClasses := classAttr.NumValues()

	classesToReport := make([]int, 0, numClasses)
	if numClasses == 2 {
		classesToReport = append(classesToReport, 1)
	} else {
		for c := 0; c < numClasses; c++ {
			classesToReport = append(classesToReport, c)
		}
	}

	report := &EvaluationReport{}
	for _, c := range classesToReport {
		var tp, tn, fp, fn float64
		for i := 0; i < aligned.NumInstances(); i++ {
			actual := int(aligned.ClassValue(i))
			pred := predicted[i]
			w := aligned.Weight(i)
			switch {
			case actual == c && pred == c:
				tp += w
			case actual != c && pred != c:
				tn += w
			case actual != c && pred == c:
				fp += w
			case actual == c && pred != c:
				fn += w
			}
		}
		positives := tp + fn
		negatives := tn + fp
		total := positives + negatives

		cm := ClassMeasures{
			Class:     classAttr.ReprVal(float64(c)),
			Positives: positives,
			Negatives: negatives,
			TP:        tp,
			TN:        tn,
			FP:        fp,
			FN:        fn,
		}
		if total > 0 {
			cm.Accuracy = (tp + tn) / total
		}
		if positives > 0 {
			cm.Sensitivity = tp / positives
		}
		if negatives > 0 {
			cm.Specificity = tn / negatives
		}
		if tp+fp > 0 {
			cm.PPV = tp / (tp + fp)
		}
		if tn+fn > 0 {
			cm.NPV = tn / (tn + fn)
		}
		report.Measures = append(report.Measures, cm)
	}
	return report, nil
}

// String renders the ordered rule list as an aligned table, one row per rule
// in the order they are tried at prediction time.
func (m *RuleBasedModel) String() string {
	classAttr := m.Schema[0]
	t := table.NewWriter()
	t.SetTitle("RULE LIST")
	t.AppendHeader(table.Row{"#", "Rule"})
	for i, r := range m.Rules {
		t.AppendRow(table.Row{i, r.String(classAttr.ReprVal(float64(r.Consequent)))})
	}
	return t.Render()
}

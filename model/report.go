package model

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// String renders the evaluation report as an aligned table, one row per
// class (or the single positive-class row in the binary case).
func (r *EvaluationReport) String() string {
	t := table.NewWriter()
	t.SetTitle("CLASS EVALUATION REPORT")
	t.AppendHeader(table.Row{"Class", "Pos", "Neg", "TP", "TN", "FP", "FN", "Accuracy", "Sensitivity", "Specificity", "PPV", "NPV"})
	for _, cm := range r.Measures {
		t.AppendRow(table.Row{
			cm.Class,
			fmt.Sprintf("%.1f", cm.Positives),
			fmt.Sprintf("%.1f", cm.Negatives),
			fmt.Sprintf("%.1f", cm.TP),
			fmt.Sprintf("%.1f", cm.TN),
			fmt.Sprintf("%.1f", cm.FP),
			fmt.Sprintf("%.1f", cm.FN),
			fmt.Sprintf("%.3f", cm.Accuracy),
			fmt.Sprintf("%.3f", cm.Sensitivity),
			fmt.Sprintf("%.3f", cm.Specificity),
			fmt.Sprintf("%.3f", cm.PPV),
			fmt.Sprintf("%.3f", cm.NPV),
		})
	}
	return t.Render()
}

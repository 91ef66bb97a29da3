package model

import (
	"fmt"
	"os"

	"github.com/awalterschulze/gographviz"
)

// ExportDOT renders the ordered rule list as a decision-list digraph
// (rule0 -> rule1 -> ... -> default) into outPath, the same way the
// teacher's Tree.ToSimpleGraph renders a decision tree.
func (m *RuleBasedModel) ExportDOT(outPath string) error {
	graphAst, err := gographviz.Parse([]byte(`digraph G{}`))
	if err != nil {
		return err
	}
	graph := gographviz.NewGraph()
	if err := gographviz.Analyse(graphAst, graph); err != nil {
		return err
	}

	classAttr := m.Schema[0]
	for i, r := range m.Rules {
		label := fmt.Sprintf("<id = %d<br/>%s>", i, r.String(classAttr.ReprVal(float64(r.Consequent))))
		if err := graph.AddNode("G", fmt.Sprintf("%d", i), map[string]string{"label": label}); err != nil {
			return err
		}
	}
	for i := 0; i < len(m.Rules)-1; i++ {
		if err := graph.AddEdge(fmt.Sprintf("%d", i), fmt.Sprintf("%d", i+1), true, map[string]string{"label": "else"}); err != nil {
			return err
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.WriteString(graph.String())
	return err
}

package model

import (
	"os"

	"gopkg.in/yaml.v3"

	"ripper-core/antecedent"
	"ripper-core/attribute"
	"ripper-core/rerrors"
	"ripper-core/rule"
)

const magicTag = "ripper-core-model-v1"

type attrDoc struct {
	Kind        string   `yaml:"kind"`
	Name        string   `yaml:"name"`
	Domain      []string `yaml:"domain,omitempty"`
	Subtype     string   `yaml:"subtype,omitempty"`
	DatePattern string   `yaml:"date_pattern,omitempty"`
}

type antecedentDoc struct {
	Kind        string  `yaml:"kind"`
	AttrIndex   int     `yaml:"attr_index"`
	TargetValue float64 `yaml:"target_value,omitempty"`
	SplitPoint  float64 `yaml:"split_point,omitempty"`
	Direction   string  `yaml:"direction,omitempty"`
}

type ruleDoc struct {
	Consequent  int             `yaml:"consequent"`
	Antecedents []antecedentDoc `yaml:"antecedents"`
}

type modelDoc struct {
	Magic  string    `yaml:"magic"`
	Schema []attrDoc `yaml:"schema"`
	Rules  []ruleDoc `yaml:"rules"`
}

func subtypeName(s attribute.NumericSubtype) string {
	switch s {
	case attribute.SubtypeInt:
		return "int"
	case attribute.SubtypeDate:
		return "date"
	default:
		return "float"
	}
}

func subtypeFromName(s string) attribute.NumericSubtype {
	switch s {
	case "int":
		return attribute.SubtypeInt
	case "date":
		return attribute.SubtypeDate
	default:
		return attribute.SubtypeFloat
	}
}

// Save encodes the model as self-describing YAML (magic tag, schema, rule
// list) to path, per spec.md §6.4.
func (m *RuleBasedModel) Save(path string) error {
	doc := modelDoc{Magic: magicTag}
	for _, a := range m.Schema {
		ad := attrDoc{Name: a.Name()}
		if a.IsDiscrete() {
			ad.Kind = "discrete"
			ad.Domain = a.Domain()
		} else {
			ad.Kind = "continuous"
			ad.Subtype = subtypeName(a.Subtype())
			ad.DatePattern = a.DatePattern()
		}
		doc.Schema = append(doc.Schema, ad)
	}
	for _, r := range m.Rules {
		rd := ruleDoc{Consequent: r.Consequent}
		for _, a := range r.Antecedents {
			ant := antecedentDoc{AttrIndex: a.AttrIndex}
			if a.Kind == antecedent.DiscreteKind {
				ant.Kind = "discrete"
				ant.TargetValue = a.TargetValue
			} else {
				ant.Kind = "continuous"
				ant.SplitPoint = a.SplitPoint
				if a.Direction == antecedent.LessOrEqual {
					ant.Direction = "le"
				} else {
					ant.Direction = "ge"
				}
			}
			rd.Antecedents = append(rd.Antecedents, ant)
		}
		doc.Rules = append(doc.Rules, rd)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// Load decodes a model previously written by Save, validating the magic tag.
func Load(path string) (*RuleBasedModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc modelDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Magic != magicTag {
		return nil, rerrors.ErrSchemaMismatch
	}

	schema := make([]*attribute.Attribute, len(doc.Schema))
	for i, ad := range doc.Schema {
		if ad.Kind == "discrete" {
			attr, err := attribute.NewDiscrete(ad.Name, ad.Domain)
			if err != nil {
				return nil, err
			}
			schema[i] = attr
		} else {
			schema[i] = attribute.NewContinuous(ad.Name, subtypeFromName(ad.Subtype), ad.DatePattern)
		}
	}

	rules := make([]*rule.Rule, len(doc.Rules))
	for i, rd := range doc.Rules {
		r := rule.New(rd.Consequent)
		for _, ad := range rd.Antecedents {
			if ad.AttrIndex < 0 || ad.AttrIndex >= len(schema) {
				return nil, rerrors.ErrAttributeMissing
			}
			attr := schema[ad.AttrIndex]
			var a *antecedent.Antecedent
			if ad.Kind == "discrete" {
				a = antecedent.NewDiscrete(ad.AttrIndex, attr)
				a.TargetValue = ad.TargetValue
			} else {
				a = antecedent.NewContinuous(ad.AttrIndex, attr)
				a.SplitPoint = ad.SplitPoint
				if ad.Direction == "ge" {
					a.Direction = antecedent.GreaterOrEqual
				} else {
					a.Direction = antecedent.LessOrEqual
				}
			}
			r.Antecedents = append(r.Antecedents, a)
		}
		rules[i] = r
	}

	return New(schema, rules), nil
}

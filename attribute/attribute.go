// Package attribute implements the typed schema elements (MODULE A) of the
// ripper-core dataset model: discrete attributes with a finite string domain,
// and continuous attributes (numeric or date-valued) over real numbers.
package attribute

import (
	"fmt"
	"time"
)

// Kind tags which variant an Attribute is.
type Kind uint8

const (
	Discrete Kind = iota
	Continuous
)

// NumericSubtype distinguishes the rendering of a continuous attribute's
// values: plain int/float, or seconds-since-epoch date values.
type NumericSubtype uint8

const (
	SubtypeInt NumericSubtype = iota
	SubtypeFloat
	SubtypeDate
)

// Attribute is a tagged variant: exactly one of the Discrete or Continuous
// fields is meaningful, selected by Kind. Once built it is treated as
// immutable — the schema a Dataset is built over never changes shape.
type Attribute struct {
	kind Kind
	name string

	// discrete
	domain []string

	// continuous
	subtype    NumericSubtype
	datePattern string
}

// NewDiscrete builds a discrete attribute over domain, an ordered list of
// distinct string labels. Returns a plain (non-rerrors) error naming the
// duplicate label if domain has duplicates.
func NewDiscrete(name string, domain []string) (*Attribute, error) {
	seen := make(map[string]struct{}, len(domain))
	for _, v := range domain {
		if _, ok := seen[v]; ok {
			return nil, fmt.Errorf("attribute %q: duplicate domain label %q", name, v)
		}
		seen[v] = struct{}{}
	}
	cp := make([]string, len(domain))
	copy(cp, domain)
	return &Attribute{kind: Discrete, name: name, domain: cp}, nil
}

// NewContinuous builds a numeric or date-valued continuous attribute.
// datePattern is only meaningful (and only rendered) when subtype is
// SubtypeDate; it is a time.Format-style reference layout.
func NewContinuous(name string, subtype NumericSubtype, datePattern string) *Attribute {
	return &Attribute{kind: Continuous, name: name, subtype: subtype, datePattern: datePattern}
}

func (a *Attribute) Kind() Kind       { return a.kind }
func (a *Attribute) Name() string     { return a.name }
func (a *Attribute) IsDiscrete() bool { return a.kind == Discrete }

// Domain returns the discrete domain; nil for continuous attributes.
func (a *Attribute) Domain() []string {
	if a.kind != Discrete {
		return nil
	}
	return a.domain
}

// NumValues returns the discrete domain size, or 0 for continuous attributes.
func (a *Attribute) NumValues() int {
	if a.kind != Discrete {
		return 0
	}
	return len(a.domain)
}

func (a *Attribute) Subtype() NumericSubtype { return a.subtype }

// DatePattern returns the reference time.Format layout for a date-subtype
// continuous attribute; empty for every other attribute.
func (a *Attribute) DatePattern() string { return a.datePattern }

// IndexOf returns the domain index of label, or -1 if not found. Discrete only.
func (a *Attribute) IndexOf(label string) int {
	if a.kind != Discrete {
		return -1
	}
	for i, v := range a.domain {
		if v == label {
			return i
		}
	}
	return -1
}

// ReprVal renders an encoded value (domain index for discrete, real number
// for continuous) as a human-readable string. Date subtypes format the
// epoch-seconds value (UTC) with datePattern used directly as a Go reference
// layout, or "2006-01-02" when datePattern is empty.
func (a *Attribute) ReprVal(v float64) string {
	switch a.kind {
	case Discrete:
		idx := int(v)
		if idx < 0 || idx >= len(a.domain) {
			return "?"
		}
		return a.domain[idx]
	case Continuous:
		if a.subtype == SubtypeDate {
			t := time.Unix(int64(v), 0).UTC()
			layout := a.datePattern
			if layout == "" {
				layout = "2006-01-02"
			}
			return t.Format(layout)
		}
		if a.subtype == SubtypeInt {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	}
	return "?"
}

// Equivalent reports whether two attributes are the same variant, name, and
// (for discrete) domain, order-sensitive, or (for continuous) numeric subtype.
func Equivalent(a, b *Attribute) bool {
	if a.kind != b.kind || a.name != b.name {
		return false
	}
	if a.kind == Discrete {
		if len(a.domain) != len(b.domain) {
			return false
		}
		for i := range a.domain {
			if a.domain[i] != b.domain[i] {
				return false
			}
		}
		return true
	}
	return a.subtype == b.subtype
}

package rule

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"ripper-core/antecedent"
	"ripper-core/attribute"
	"ripper-core/dataset"
)

func xorSchema() []*attribute.Attribute {
	cls, _ := attribute.NewDiscrete("class", []string{"no", "yes"})
	x := attribute.NewContinuous("x", attribute.SubtypeFloat, "")
	return []*attribute.Attribute{cls, x}
}

func TestCleanUpRemovesRedundantContinuousAntecedent(t *testing.T) {
	Convey("a rule with two <= antecedents on the same attribute", t, func() {
		schema := xorSchema()
		r := New(1)
		coarse := antecedent.NewContinuous(1, schema[1])
		coarse.Direction = antecedent.LessOrEqual
		coarse.SplitPoint = 20
		tight := antecedent.NewContinuous(1, schema[1])
		tight.Direction = antecedent.LessOrEqual
		tight.SplitPoint = 10
		// grow() always appends progressively tighter bounds for a reused
		// continuous attribute, so the coarse bound comes first.
		r.Antecedents = []*antecedent.Antecedent{coarse, tight}

		r.CleanUp()

		Convey("only the tighter bound survives", func() {
			So(len(r.Antecedents), ShouldEqual, 1)
			So(r.Antecedents[0].SplitPoint, ShouldEqual, 10)
		})
	})

	Convey("opposing directions on the same attribute both survive", t, func() {
		schema := xorSchema()
		r := New(1)
		le := antecedent.NewContinuous(1, schema[1])
		le.Direction = antecedent.LessOrEqual
		le.SplitPoint = 10
		ge := antecedent.NewContinuous(1, schema[1])
		ge.Direction = antecedent.GreaterOrEqual
		ge.SplitPoint = 5
		r.Antecedents = []*antecedent.Antecedent{le, ge}

		r.CleanUp()
		So(len(r.Antecedents), ShouldEqual, 2)
	})
}

func TestGrowPerfectSeparation(t *testing.T) {
	Convey("growing on a perfectly linearly separable dataset", t, func() {
		schema := xorSchema()
		d, _ := dataset.New(schema)
		for i := 0; i <= 100; i++ {
			cls := 0.0
			if i > 50 {
				cls = 1.0
			}
			_ = d.PushInstance(dataset.Row{Values: []float64{cls, float64(i)}, Weight: 1})
		}

		r := New(1)
		r.Grow(d, 2)

		Convey("finds a single threshold antecedent", func() {
			So(len(r.Antecedents), ShouldBeGreaterThanOrEqualTo, 1)
			first := r.Antecedents[0]
			So(first.Kind, ShouldEqual, antecedent.ContinuousKind)
			So(first.Direction, ShouldEqual, antecedent.GreaterOrEqual)
			So(first.SplitPoint, ShouldBeBetween, 49, 52)
		})
	})
}

func TestGrowNeverReusesDiscreteAttribute(t *testing.T) {
	Convey("growing never revisits a discrete attribute already used", t, func() {
		cls, _ := attribute.NewDiscrete("class", []string{"no", "yes"})
		a, _ := attribute.NewDiscrete("a", []string{"0", "1"})
		schema := []*attribute.Attribute{cls, a}
		d, _ := dataset.New(schema)
		for i := 0; i < 20; i++ {
			c := 0.0
			if i%2 == 0 {
				c = 1.0
			}
			_ = d.PushInstance(dataset.Row{Values: []float64{c, float64(i % 2)}, Weight: 1})
		}
		r := New(1)
		r.Grow(d, 1)

		seen := map[int]bool{}
		for _, a := range r.Antecedents {
			if a.Kind == antecedent.DiscreteKind {
				So(seen[a.AttrIndex], ShouldBeFalse)
				seen[a.AttrIndex] = true
			}
		}
	})
}

func TestCovers(t *testing.T) {
	Convey("an empty rule covers every row", t, func() {
		schema := xorSchema()
		d, _ := dataset.New(schema)
		_ = d.PushInstance(dataset.Row{Values: []float64{0, 5}, Weight: 1})
		r := New(0)
		So(r.Covers(d, 0), ShouldBeTrue)
	})
}

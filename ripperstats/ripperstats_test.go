package ripperstats

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"ripper-core/antecedent"
	"ripper-core/attribute"
	"ripper-core/dataset"
	"ripper-core/rule"
)

func weatherSchema() []*attribute.Attribute {
	play, _ := attribute.NewDiscrete("play", []string{"no", "yes"})
	outlook, _ := attribute.NewDiscrete("outlook", []string{"sunny", "overcast", "rain"})
	humidity := attribute.NewContinuous("humidity", attribute.SubtypeFloat, "")
	return []*attribute.Attribute{play, outlook, humidity}
}

func TestNumAllConditions(t *testing.T) {
	Convey("num_all_conditions sums discrete domain sizes and distinct-minus-one for continuous", t, func() {
		d, _ := dataset.New(weatherSchema())
		_ = d.PushInstance(dataset.Row{Values: []float64{0, 0, 60}, Weight: 1})
		_ = d.PushInstance(dataset.Row{Values: []float64{0, 1, 70}, Weight: 1})
		_ = d.PushInstance(dataset.Row{Values: []float64{1, 2, 70}, Weight: 1}) // repeated 70
		_ = d.PushInstance(dataset.Row{Values: []float64{1, 0, 80}, Weight: 1})

		rs := New(d)

		// outlook: 3 discrete values. humidity: distinct {60,70,80} -> 3-1=2.
		So(rs.NumAllConditions, ShouldEqual, 5)
	})
}

func TestPushRuleThenPopRule(t *testing.T) {
	Convey("pushing a rule splits the residual and pop undoes it", t, func() {
		d, _ := dataset.New(weatherSchema())
		for i := 0; i < 10; i++ {
			cls := 0.0
			if i >= 5 {
				cls = 1.0
			}
			_ = d.PushInstance(dataset.Row{Values: []float64{cls, 0, float64(i)}, Weight: 1})
		}

		rs := New(d)
		r := rule.New(1)
		ant := antecedent.NewContinuous(2, d.Schema[2])
		ant.Direction = antecedent.GreaterOrEqual
		ant.SplitPoint = 5
		r.Antecedents = []*antecedent.Antecedent{ant}

		rs.PushRule(r)
		So(len(rs.Rules), ShouldEqual, 1)
		covered, uncovered := rs.GetFiltered(0)
		So(covered.NumInstances(), ShouldEqual, 5)
		So(uncovered.NumInstances(), ShouldEqual, 5)
		So(rs.Stats[0].CoveredPos, ShouldEqual, 5)
		So(rs.Stats[0].CoveredNeg, ShouldEqual, 0)

		rs.PopRule()
		So(len(rs.Rules), ShouldEqual, 0)
		So(len(rs.Stats), ShouldEqual, 0)
	})
}

func TestRelativeDLPenalizesWorseThanChance(t *testing.T) {
	Convey("a rule covering mostly the wrong class is penalized to +Inf under check_err", t, func() {
		d, _ := dataset.New(weatherSchema())
		for i := 0; i < 10; i++ {
			_ = d.PushInstance(dataset.Row{Values: []float64{0, 0, float64(i)}, Weight: 1})
		}
		rs := New(d)
		r := rule.New(1) // predicts class 1 but every row here is class 0
		rs.PushRule(r)

		dl := rs.RelativeDL(0, 0.5, true)
		So(math.IsInf(dl, 1), ShouldBeTrue)
	})
}

func TestReduceDLDropsUselessRule(t *testing.T) {
	Convey("reduce_dl removes a rule that only adds description length", t, func() {
		d, _ := dataset.New(weatherSchema())
		for i := 0; i < 20; i++ {
			cls := 0.0
			if i >= 10 {
				cls = 1.0
			}
			_ = d.PushInstance(dataset.Row{Values: []float64{cls, 0, float64(i)}, Weight: 1})
		}

		rs := New(d)
		good := rule.New(1)
		goodAnt := antecedent.NewContinuous(2, d.Schema[2])
		goodAnt.Direction = antecedent.GreaterOrEqual
		goodAnt.SplitPoint = 10
		good.Antecedents = []*antecedent.Antecedent{goodAnt}
		rs.PushRule(good)

		// Predicts class 1 on the residual rows 0..9, which are all class 0.
		useless := rule.New(1)
		rs.PushRule(useless)

		before := len(rs.Rules)
		rs.ReduceDL(0.5, true)
		So(len(rs.Rules), ShouldBeLessThanOrEqualTo, before)
		So(rs.Rules, ShouldNotContain, useless)
	})
}

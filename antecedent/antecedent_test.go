package antecedent

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"ripper-core/attribute"
	"ripper-core/dataset"
)

func buildSchema() []*attribute.Attribute {
	cls, _ := attribute.NewDiscrete("class", []string{"no", "yes"})
	outlook, _ := attribute.NewDiscrete("outlook", []string{"sunny", "overcast", "rain"})
	x := attribute.NewContinuous("x", attribute.SubtypeFloat, "")
	return []*attribute.Attribute{cls, outlook, x}
}

func TestSplitDataDiscretePicksBestInfoGainBag(t *testing.T) {
	Convey("a discrete antecedent scores the bag most enriched for the target class", t, func() {
		schema := buildSchema()
		d, _ := dataset.New(schema)
		rows := []struct {
			class, outlook int
			x              float64
		}{
			{1, 1, 0}, {1, 1, 0}, {1, 1, 0},
			{0, 0, 0}, {0, 0, 0}, {1, 0, 0},
			{0, 2, 0}, {1, 2, 0},
		}
		for _, r := range rows {
			_ = d.PushInstance(dataset.Row{Values: []float64{float64(r.class), float64(r.outlook), r.x}, Weight: 1})
		}

		a := NewDiscrete(1, schema[1])
		_, ok := a.SplitData(d, 0.5, 1)
		So(ok, ShouldBeTrue)
		So(a.TargetValue, ShouldEqual, 1) // overcast bag is pure positive
		So(a.Accu, ShouldEqual, 3)
		So(a.Cover, ShouldEqual, 3)
	})
}

func TestSplitDataContinuousFindsSeparatingThreshold(t *testing.T) {
	Convey("a continuous antecedent finds the threshold that best separates the target class", t, func() {
		schema := buildSchema()
		d, _ := dataset.New(schema)
		for i := 0; i <= 20; i++ {
			c := 0.0
			if i > 10 {
				c = 1.0
			}
			_ = d.PushInstance(dataset.Row{Values: []float64{c, 0, float64(i)}, Weight: 1})
		}

		a := NewContinuous(2, schema[2])
		_, ok := a.SplitData(d, 0.5, 1)
		So(ok, ShouldBeTrue)
		So(a.Direction, ShouldEqual, GreaterOrEqual)
		So(a.SplitPoint, ShouldEqual, 10.5)
		So(a.Accu, ShouldEqual, 10)
		So(a.Cover, ShouldEqual, 10)
	})
}

func TestCoversTreatsMissingAsNeverSatisfied(t *testing.T) {
	Convey("a missing value never satisfies either antecedent kind", t, func() {
		schema := buildSchema()
		d, _ := dataset.New(schema)
		_ = d.PushInstance(dataset.Row{Values: []float64{1, dataset.Missing, 5}, Weight: 1})
		_ = d.PushInstance(dataset.Row{Values: []float64{1, 0, dataset.Missing}, Weight: 1})

		disc := NewDiscrete(1, schema[1])
		disc.TargetValue = 0
		So(disc.Covers(d, 0), ShouldBeFalse)

		cont := NewContinuous(2, schema[2])
		cont.SplitPoint = 3
		cont.Direction = GreaterOrEqual
		So(cont.Covers(d, 0), ShouldBeTrue)  // x=5 is not missing
		So(cont.Covers(d, 1), ShouldBeFalse) // x is missing
	})
}

func TestStringRendersReadableClause(t *testing.T) {
	Convey("String renders attr/op/value using the attribute's own rendering", t, func() {
		schema := buildSchema()
		disc := NewDiscrete(1, schema[1])
		disc.TargetValue = 2
		So(disc.String(), ShouldEqual, "outlook == rain")

		cont := NewContinuous(2, schema[2])
		cont.SplitPoint = 70
		cont.Direction = LessOrEqual
		So(cont.String(), ShouldEqual, "x <= 70")
	})
}

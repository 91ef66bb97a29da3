package dataset

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"ripper-core/attribute"
)

func weatherSchema() []*attribute.Attribute {
	play, _ := attribute.NewDiscrete("play", []string{"no", "yes"})
	outlook, _ := attribute.NewDiscrete("outlook", []string{"sunny", "overcast", "rain"})
	humidity := attribute.NewContinuous("humidity", attribute.SubtypeFloat, "")
	return []*attribute.Attribute{play, outlook, humidity}
}

func TestSortByAttrMissingLast(t *testing.T) {
	Convey("sorting by a continuous attribute", t, func() {
		d, err := New(weatherSchema())
		So(err, ShouldBeNil)
		_ = d.PushInstance(Row{Values: []float64{0, 0, 70}})
		_ = d.PushInstance(Row{Values: []float64{1, 0, Missing}})
		_ = d.PushInstance(Row{Values: []float64{0, 0, 60}})

		d.SortByAttr(2)

		Convey("ascending with missing sorted last", func() {
			So(d.Rows[0].Values[2], ShouldEqual, 60)
			So(d.Rows[1].Values[2], ShouldEqual, 70)
			So(IsMissing(d.Rows[2].Values[2]), ShouldBeTrue)
		})
	})
}

func TestResortClassesByCount(t *testing.T) {
	Convey("resorting classes ascending by count", t, func() {
		d, _ := New(weatherSchema())
		// 5 "no", 2 "yes" before resort (domain index 0=no,1=yes)
		for i := 0; i < 5; i++ {
			_ = d.PushInstance(Row{Values: []float64{0, 0, 1}})
		}
		for i := 0; i < 2; i++ {
			_ = d.PushInstance(Row{Values: []float64{1, 0, 1}})
		}

		counts := d.ResortClassesByCount()

		Convey("yes (fewer) becomes index 0, no becomes index 1", func() {
			So(d.Schema[0].Domain(), ShouldResemble, []string{"yes", "no"})
			So(counts[0], ShouldEqual, 2)
			So(counts[1], ShouldEqual, 5)
		})

		Convey("every row's class index is remapped consistently", func() {
			yesCount, noCount := 0, 0
			for i := 0; i < d.NumInstances(); i++ {
				if int(d.ClassValue(i)) == 0 {
					yesCount++
				} else {
					noCount++
				}
			}
			So(yesCount, ShouldEqual, 2)
			So(noCount, ShouldEqual, 5)
		})
	})
}

func TestStratify(t *testing.T) {
	Convey("stratifying interleaves classes round-robin", t, func() {
		d, _ := New(weatherSchema())
		// classes: a a a b b (class 0 x3, class 1 x2), in original order
		classes := []float64{0, 0, 0, 1, 1}
		for _, c := range classes {
			_ = d.PushInstance(Row{Values: []float64{c, 0, 1}})
		}
		d.Stratify(1)

		var order []int
		for i := 0; i < d.NumInstances(); i++ {
			order = append(order, int(d.ClassValue(i)))
		}
		So(order, ShouldResemble, []int{0, 1, 0, 1, 0})
	})
}

func TestPartition(t *testing.T) {
	Convey("partition splits at ceil(n*(k-1)/k)", t, func() {
		d, _ := New(weatherSchema())
		for i := 0; i < 9; i++ {
			_ = d.PushInstance(Row{Values: []float64{0, 0, float64(i)}})
		}
		grow, prune := d.Partition(3)
		So(grow.NumInstances(), ShouldEqual, 6)
		So(prune.NumInstances(), ShouldEqual, 3)
	})
}

func TestRemoveUselessInsts(t *testing.T) {
	Convey("rows with a missing class are dropped", t, func() {
		d, _ := New(weatherSchema())
		_ = d.PushInstance(Row{Values: []float64{0, 0, 1}})
		_ = d.PushInstance(Row{Values: []float64{Missing, 0, 1}})
		clean := d.RemoveUselessInsts()
		So(clean.NumInstances(), ShouldEqual, 1)
	})
}

func TestSumOfWeights(t *testing.T) {
	Convey("sum of weights accumulates across all rows", t, func() {
		d, _ := New(weatherSchema())
		_ = d.PushInstance(Row{Values: []float64{0, 0, 1}, Weight: 2.5})
		_ = d.PushInstance(Row{Values: []float64{0, 0, 1}, Weight: 1.5})
		So(d.SumOfWeights(), ShouldEqual, 4.0)
	})
}

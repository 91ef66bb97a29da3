package ripper

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"ripper-core/attribute"
	"ripper-core/dataset"
)

func weatherSchema() []*attribute.Attribute {
	play, _ := attribute.NewDiscrete("play", []string{"no", "yes"})
	outlook, _ := attribute.NewDiscrete("outlook", []string{"sunny", "overcast", "rain"})
	temperature := attribute.NewContinuous("temperature", attribute.SubtypeFloat, "")
	humidity := attribute.NewContinuous("humidity", attribute.SubtypeFloat, "")
	windy, _ := attribute.NewDiscrete("windy", []string{"false", "true"})
	return []*attribute.Attribute{play, outlook, temperature, humidity, windy}
}

// weatherRows is Quinlan's classic 14-row weather-play table: outlook,
// temperature, humidity, windy -> play.
func weatherRows(schema []*attribute.Attribute) *dataset.Dataset {
	d, _ := dataset.New(schema)
	type row struct {
		play, outlook         string
		temperature, humidity float64
		windy                 string
	}
	rows := []row{
		{"no", "sunny", 85, 85, "false"},
		{"no", "sunny", 80, 90, "true"},
		{"yes", "overcast", 83, 86, "false"},
		{"yes", "rain", 70, 96, "false"},
		{"yes", "rain", 68, 80, "false"},
		{"no", "rain", 65, 70, "true"},
		{"yes", "overcast", 64, 65, "true"},
		{"no", "sunny", 72, 95, "false"},
		{"yes", "sunny", 69, 70, "false"},
		{"yes", "rain", 75, 80, "false"},
		{"yes", "sunny", 75, 70, "true"},
		{"yes", "overcast", 72, 90, "true"},
		{"yes", "overcast", 81, 75, "false"},
		{"no", "rain", 71, 91, "true"},
	}
	for _, r := range rows {
		play := float64(schema[0].IndexOf(r.play))
		outlook := float64(schema[1].IndexOf(r.outlook))
		windy := float64(schema[4].IndexOf(r.windy))
		_ = d.PushInstance(dataset.Row{Values: []float64{play, outlook, r.temperature, r.humidity, windy}, Weight: 1})
	}
	return d
}

func TestTrainWeatherPlay(t *testing.T) {
	Convey("training on the classic weather-play dataset", t, func() {
		schema := weatherSchema()
		d := weatherRows(schema)

		l := New(DefaultConfig(), nil)
		m, err := l.Train(d)
		So(err, ShouldBeNil)
		So(len(m.Rules), ShouldBeGreaterThanOrEqualTo, 1)

		preds, err := m.Predict(d)
		So(err, ShouldBeNil)
		correct := 0
		for i, p := range preds {
			if p == int(d.ClassValue(i)) {
				correct++
			}
		}
		So(correct, ShouldBeGreaterThanOrEqualTo, 12)
	})
}

func TestTrainPerfectLinearSeparation(t *testing.T) {
	Convey("training on a perfectly separable continuous attribute", t, func() {
		cls, _ := attribute.NewDiscrete("class", []string{"low", "high"})
		x := attribute.NewContinuous("x", attribute.SubtypeFloat, "")
		schema := []*attribute.Attribute{cls, x}
		d, _ := dataset.New(schema)
		for i := 0; i <= 100; i++ {
			c := 0.0
			if i > 50 {
				c = 1.0
			}
			_ = d.PushInstance(dataset.Row{Values: []float64{c, float64(i)}, Weight: 1})
		}

		l := New(DefaultConfig(), nil)
		m, err := l.Train(d)
		So(err, ShouldBeNil)

		preds, err := m.Predict(d)
		So(err, ShouldBeNil)
		correct := 0
		for i, p := range preds {
			if p == int(d.ClassValue(i)) {
				correct++
			}
		}
		So(correct, ShouldEqual, d.NumInstances())
	})
}

func TestTrainDeterministic(t *testing.T) {
	Convey("training twice with the same seed yields the same ruleset shape", t, func() {
		schema := weatherSchema()
		d1 := weatherRows(schema)
		d2 := weatherRows(weatherSchema())

		cfg := DefaultConfig()
		cfg.Seed = 42
		m1, err := New(cfg, nil).Train(d1)
		So(err, ShouldBeNil)
		m2, err := New(cfg, nil).Train(d2)
		So(err, ShouldBeNil)

		So(len(m1.Rules), ShouldEqual, len(m2.Rules))
		for i := range m1.Rules {
			So(len(m1.Rules[i].Antecedents), ShouldEqual, len(m2.Rules[i].Antecedents))
			So(m1.Rules[i].Consequent, ShouldEqual, m2.Rules[i].Consequent)
		}
	})
}

func TestTrainSingleClassFallsBackToDefaultRule(t *testing.T) {
	Convey("a dataset with a single class value trains only the default rule", t, func() {
		cls, _ := attribute.NewDiscrete("class", []string{"v"})
		x := attribute.NewContinuous("x", attribute.SubtypeFloat, "")
		schema := []*attribute.Attribute{cls, x}
		d, _ := dataset.New(schema)
		for i := 0; i < 10; i++ {
			_ = d.PushInstance(dataset.Row{Values: []float64{0, float64(i)}, Weight: 1})
		}

		l := New(DefaultConfig(), nil)
		m, err := l.Train(d)
		So(err, ShouldBeNil)
		So(len(m.Rules), ShouldEqual, 1)
		So(len(m.Rules[0].Antecedents), ShouldEqual, 0)

		preds, err := m.Predict(d)
		So(err, ShouldBeNil)
		for _, p := range preds {
			So(p, ShouldEqual, 0)
		}
	})
}

func TestTrainEmptyDatasetYieldsOnlyDefaultRule(t *testing.T) {
	Convey("an empty dataset trains only the default rule", t, func() {
		schema := weatherSchema()
		d, _ := dataset.New(schema)

		l := New(DefaultConfig(), nil)
		m, err := l.Train(d)
		So(err, ShouldBeNil)
		So(len(m.Rules), ShouldEqual, 1)
		So(len(m.Rules[0].Antecedents), ShouldEqual, 0)
	})
}

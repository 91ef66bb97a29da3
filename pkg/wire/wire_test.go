package wire

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"ripper-core/dataset"
)

func TestBuildDatasetDecodesDiscreteAndContinuous(t *testing.T) {
	Convey("a dataset spec with a discrete class and a continuous attribute decodes", t, func() {
		spec := DatasetSpec{
			Schema: []AttrSpec{
				{Name: "play", Kind: "discrete", Domain: []string{"no", "yes"}},
				{Name: "temperature", Kind: "continuous", Subtype: "float"},
			},
			Rows: []Row{
				{Values: []string{"yes", "70"}, Weight: 1},
				{Values: []string{"no", "85"}},
			},
		}

		d, err := BuildDataset(spec)
		So(err, ShouldBeNil)
		So(d.NumInstances(), ShouldEqual, 2)
		So(d.ClassValue(0), ShouldEqual, 1)
		So(d.ValueOfAttr(0, 1), ShouldEqual, 70)
		So(d.Weight(1), ShouldEqual, 1)
	})
}

func TestBuildDatasetRejectsUnknownLabel(t *testing.T) {
	Convey("a label outside the attribute's domain is an error", t, func() {
		spec := DatasetSpec{
			Schema: []AttrSpec{{Name: "play", Kind: "discrete", Domain: []string{"no", "yes"}}},
			Rows:   []Row{{Values: []string{"maybe"}}},
		}
		_, err := BuildDataset(spec)
		So(err, ShouldNotBeNil)
	})
}

func TestBuildDatasetTreatsBlankAsMissing(t *testing.T) {
	Convey("a blank continuous cell decodes to the missing sentinel", t, func() {
		spec := DatasetSpec{
			Schema: []AttrSpec{
				{Name: "play", Kind: "discrete", Domain: []string{"no", "yes"}},
				{Name: "x", Kind: "continuous", Subtype: "float"},
			},
			Rows: []Row{{Values: []string{"yes", ""}}},
		}
		d, err := BuildDataset(spec)
		So(err, ShouldBeNil)
		So(dataset.IsMissing(d.ValueOfAttr(0, 1)), ShouldBeTrue)
	})
}

package tier_test

import (
	"testing"

	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/tier"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultTable(t *testing.T) {
	Convey("Given the default tier table", t, func() {
		table := tier.Default()

		Convey("Then multipliers should match the published schedule", func() {
			expected := map[model.Tier]float64{"S": 10, "A": 7, "B": 5, "C": 3.5, "D": 2, "E": 1}
			for tr, want := range expected {
				got, ok := table.Multiplier(tr)
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, want)
			}
		})

		Convey("Then an absent or unknown tier should have no multiplier", func() {
			_, ok := table.Multiplier("")
			So(ok, ShouldBeFalse)
			_, ok = table.Multiplier("Z")
			So(ok, ShouldBeFalse)
		})

		Convey("Then scheduled places should earn their base points", func() {
			expected := []int{100, 80, 60, 50, 40, 30, 25, 20, 15, 10}
			for i, want := range expected {
				So(table.BasePoints(i+1), ShouldEqual, want)
			}
		})

		Convey("Then places past the schedule should decay by two per place", func() {
			So(table.BasePoints(11), ShouldEqual, 8)
			So(table.BasePoints(12), ShouldEqual, 6)
			So(table.BasePoints(14), ShouldEqual, 2)
			So(table.BasePoints(15), ShouldEqual, 0)
			So(table.BasePoints(40), ShouldEqual, 0)
		})

		Convey("Then malformed ranks should earn nothing", func() {
			So(table.BasePoints(0), ShouldEqual, 0)
			So(table.BasePoints(-3), ShouldEqual, 0)
		})
	})
}

func TestTableOptions(t *testing.T) {
	Convey("Given table options", t, func() {
		Convey("When overriding a multiplier", func() {
			table := tier.New(tier.WithMultiplier(model.TierS, 12))

			Convey("Then only that tier should change", func() {
				s, _ := table.Multiplier(model.TierS)
				a, _ := table.Multiplier(model.TierA)
				So(s, ShouldEqual, 12)
				So(a, ShouldEqual, 7)
			})
		})

		Convey("When overriding from a configuration map", func() {
			table := tier.New(tier.WithMultipliers(map[string]float64{"C": 4, "X": 99, "D": -1}))

			Convey("Then unknown tiers and non-positive values should be ignored", func() {
				c, _ := table.Multiplier(model.TierC)
				d, _ := table.Multiplier(model.TierD)
				_, ok := table.Multiplier("X")
				So(c, ShouldEqual, 4)
				So(d, ShouldEqual, 2)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When replacing the rank schedule", func() {
			table := tier.New(
				tier.WithRankPoints(map[int]int{1: 50, 2: 20, 3: 5}),
				tier.WithFallback(4, 1),
			)

			Convey("Then the decay should start after the new last place", func() {
				So(table.BasePoints(1), ShouldEqual, 50)
				So(table.BasePoints(3), ShouldEqual, 5)
				So(table.BasePoints(4), ShouldEqual, 3)
				So(table.BasePoints(7), ShouldEqual, 0)
			})
		})

		Convey("When the caller mutates the defaults it was given", func() {
			defaults := tier.DefaultMultipliers()
			defaults[model.TierS] = 1
			table := tier.Default()

			Convey("Then the table should be unaffected", func() {
				s, _ := table.Multiplier(model.TierS)
				So(s, ShouldEqual, 10)
			})
		})
	})
}

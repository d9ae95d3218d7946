package scoring_test

import (
	"testing"

	"github.com/okian/owarai/internal/domain/model"
	scoring "github.com/okian/owarai/internal/domain/scoring"
	"github.com/okian/owarai/internal/domain/tier"
	. "github.com/smartystreets/goconvey/convey"
)

func placed(rank int) model.Performance {
	return model.Performance{PerformerID: "p1", EventID: "e1", Rank: model.IntPtr(rank)}
}

func TestCalculator_PointsFor(t *testing.T) {
	Convey("Given a calculator with the default table", t, func() {
		calc := scoring.NewCalculator()

		Convey("When scoring an S-tier win", func() {
			pts := calc.PointsFor(placed(1), model.Event{Tier: model.TierS})

			Convey("Then it should be worth 1000 points", func() {
				So(pts, ShouldEqual, 1000)
			})
		})

		Convey("When scoring across every tier at second place", func() {
			expected := map[model.Tier]int{"S": 800, "A": 560, "B": 400, "C": 280, "D": 160, "E": 80}

			Convey("Then each tier should apply its multiplier", func() {
				for tr, want := range expected {
					So(calc.PointsFor(placed(2), model.Event{Tier: tr}), ShouldEqual, want)
				}
			})
		})

		Convey("When the product lands on a half point", func() {
			// 15 * 3.5 = 52.5 and 25 * 3.5 = 87.5
			ninth := calc.PointsFor(placed(9), model.Event{Tier: model.TierC})
			seventh := calc.PointsFor(placed(7), model.Event{Tier: model.TierC})

			Convey("Then it should round half up", func() {
				So(ninth, ShouldEqual, 53)
				So(seventh, ShouldEqual, 88)
			})
		})

		Convey("When scoring a place beyond tenth", func() {
			pts := calc.PointsFor(placed(12), model.Event{Tier: model.TierB})

			Convey("Then it should use the decaying fallback", func() {
				So(pts, ShouldEqual, 30)
			})
		})

		Convey("When the event has no tier", func() {
			pts := calc.PointsFor(placed(1), model.Event{})

			Convey("Then it should be worth nothing", func() {
				So(pts, ShouldEqual, 0)
			})
		})

		Convey("When the event has an unknown tier", func() {
			pts := calc.PointsFor(placed(1), model.Event{Tier: "SSS"})

			Convey("Then it should be worth nothing", func() {
				So(pts, ShouldEqual, 0)
			})
		})

		Convey("When the result is not finalized", func() {
			pts := calc.PointsFor(model.Performance{PerformerID: "p1"}, model.Event{Tier: model.TierS})

			Convey("Then there should be no partial credit", func() {
				So(pts, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a calculator with an injected table", t, func() {
		table := tier.New(tier.WithMultiplier(model.TierE, 1.5))
		calc := scoring.NewCalculator(scoring.WithTable(table))

		Convey("Then it should score with the injected multipliers", func() {
			So(calc.PointsFor(placed(3), model.Event{Tier: model.TierE}), ShouldEqual, 90)
			So(calc.Table(), ShouldEqual, table)
		})

		Convey("And a nil table option should keep the current table", func() {
			c := scoring.NewCalculator(scoring.WithTable(nil))
			So(c.PointsFor(placed(1), model.Event{Tier: model.TierE}), ShouldEqual, 100)
		})
	})
}

package odds_test

import (
	"testing"
	"time"

	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/odds"
	"github.com/okian/owarai/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

var evalDate = model.NewDate(2025, time.March, 1)

func ranked(performer, event string, rank int) model.Performance {
	return model.Performance{ID: performer + "@" + event, PerformerID: performer, EventID: event, Rank: model.IntPtr(rank)}
}

// field builds a ranking where a has 1000 points, b 800 and c 200, and the
// upcoming event "final" lists the given entrants without placings.
func field(entrants ...string) *ranking.Ranking {
	events := []model.Event{
		{ID: "s", Tier: model.TierS, Date: model.NewDate(2024, time.December, 1)},
		{ID: "a2", Tier: model.TierS, Date: model.NewDate(2024, time.December, 2)},
		{ID: "d", Tier: model.TierD, Date: model.NewDate(2024, time.December, 3)},
		{ID: "final", Tier: model.TierS, Date: model.NewDate(2025, time.December, 20)},
	}
	perfs := []model.Performance{
		ranked("a", "s", 1),
		ranked("b", "a2", 2),
		ranked("c", "d", 1),
	}
	for _, id := range entrants {
		perfs = append(perfs, model.Performance{ID: id + "@final", PerformerID: id, EventID: "final"})
	}
	performers := []model.Performer{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "z"}}
	return ranking.NewAggregator(ranking.WithToday(evalDate)).Compute(performers, events, perfs)
}

func TestQuote(t *testing.T) {
	Convey("Given the default calculator", t, func() {
		calc := odds.NewCalculator()

		Convey("When two strong performers meet", func() {
			r := field("a", "b")

			Convey("Then the favourite should be priced at the floor", func() {
				So(calc.Quote("a", "final", model.PredictionWinner, r), ShouldEqual, 1.0)
			})

			Convey("Then the challenger should be rounded to one decimal", func() {
				So(calc.Quote("b", "final", model.PredictionWinner, r), ShouldEqual, 1.1)
			})
		})

		Convey("When an underdog meets the favourite", func() {
			r := field("a", "c")

			Convey("Then the type multiplier should lower the price", func() {
				So(calc.Quote("c", "final", model.PredictionWinner, r), ShouldEqual, 3.0)
				So(calc.Quote("c", "final", model.PredictionTop3, r), ShouldEqual, 1.5)
				So(calc.Quote("c", "final", model.PredictionFinalist, r), ShouldEqual, 1.0)
				So(calc.Quote("c", "final", model.PredictionType("exacta"), r), ShouldEqual, 3.0)
			})
		})

		Convey("When a pointless performer enters", func() {
			r := field("a", "z")

			Convey("Then the price should be capped at the ceiling", func() {
				So(calc.Quote("z", "final", model.PredictionWinner, r), ShouldEqual, 10.0)
				So(calc.Quote("z", "final", model.PredictionFinalist, r), ShouldEqual, 10.0)
			})
		})

		Convey("When an entrant is missing from the ranking", func() {
			r := field("a", "ghost")

			Convey("Then it should count as zero in the average", func() {
				// average is 500, ratio 2, base 0.5
				So(calc.Quote("a", "final", model.PredictionWinner, r), ShouldEqual, 1.0)
				So(calc.Quote("ghost", "final", model.PredictionWinner, r), ShouldEqual, odds.Neutral)
			})
		})

		Convey("When every entrant has zero points", func() {
			r := field("z")

			Convey("Then the quote should be neutral", func() {
				So(calc.Quote("z", "final", model.PredictionWinner, r), ShouldEqual, odds.Neutral)
			})
		})

		Convey("When the event has no entrants", func() {
			r := field()

			Convey("Then the quote should be neutral", func() {
				So(calc.Quote("a", "final", model.PredictionWinner, r), ShouldEqual, odds.Neutral)
			})
		})

		Convey("When quoting a selection", func() {
			r := field("a", "c")

			Convey("Then the first performer should set the price", func() {
				So(calc.QuoteSelection([]string{"c", "a"}, "final", model.PredictionWinner, r), ShouldEqual, 3.0)
				So(calc.QuoteSelection(nil, "final", model.PredictionWinner, r), ShouldEqual, odds.Neutral)
			})
		})

		Convey("Then every quote should stay in bounds and winner should never undercut finalist", func() {
			for _, entrants := range [][]string{{"a", "b"}, {"a", "c"}, {"b", "c", "z"}, {"a", "b", "c", "z"}} {
				r := field(entrants...)
				for _, id := range entrants {
					w := calc.Quote(id, "final", model.PredictionWinner, r)
					f := calc.Quote(id, "final", model.PredictionFinalist, r)
					So(w, ShouldBeBetweenOrEqual, odds.DefaultMin, odds.DefaultMax)
					So(f, ShouldBeBetweenOrEqual, odds.DefaultMin, odds.DefaultMax)
					So(w, ShouldBeGreaterThanOrEqualTo, f)
				}
			}
		})
	})

	Convey("Given a calculator with custom options", t, func() {
		calc := odds.NewCalculator(
			odds.WithBounds(1.5, 5),
			odds.WithTypeMultipliers(map[string]float64{"top3": 0.25, "finalist": -1}),
		)

		Convey("Then bounds and multipliers should apply", func() {
			r := field("a", "z")
			So(calc.Quote("z", "final", model.PredictionWinner, r), ShouldEqual, 5.0)
			So(calc.Quote("a", "final", model.PredictionWinner, r), ShouldEqual, 1.5)
			So(calc.TypeMultiplier(model.PredictionTop3), ShouldEqual, 0.25)
			So(calc.TypeMultiplier(model.PredictionFinalist), ShouldEqual, 0.3)
		})

		Convey("Then inverted bounds should be ignored", func() {
			lo, hi := odds.NewCalculator(odds.WithBounds(5, 2)).Bounds()
			So(lo, ShouldEqual, odds.DefaultMin)
			So(hi, ShouldEqual, odds.DefaultMax)
		})
	})
}

package series_test

import (
	"testing"

	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/series"
	. "github.com/smartystreets/goconvey/convey"
)

func perf(eventID string, rank int) model.Performance {
	return model.Performance{ID: "perf-" + eventID, PerformerID: "p1", EventID: eventID, Rank: model.IntPtr(rank)}
}

func eventIDs(counted []series.Counted) []string {
	ids := make([]string, len(counted))
	for i, c := range counted {
		ids[i] = c.Event.ID
	}
	return ids
}

func TestSelect(t *testing.T) {
	Convey("Given the rounds of one series and a standalone show", t, func() {
		events := model.EventsByID([]model.Event{
			{ID: "m1-r1", SeriesID: "m1-2024", RoundOrder: 1, Tier: model.TierB},
			{ID: "m1-r2", SeriesID: "m1-2024", RoundOrder: 2, Tier: model.TierB},
			{ID: "m1-r3", SeriesID: "m1-2024", RoundOrder: 3, Tier: model.TierB},
			{ID: "live", Tier: model.TierE},
		})

		Convey("When a performer reached the second round", func() {
			got := series.Select([]model.Performance{perf("m1-r1", 5), perf("m1-r2", 1), perf("live", 2)}, events, nil)

			Convey("Then only the second round and the standalone show should count", func() {
				So(eventIDs(got), ShouldResemble, []string{"m1-r2", "live"})
				So(got[0].Performance.RankValue(), ShouldEqual, 1)
			})
		})

		Convey("When the later round is listed first", func() {
			got := series.Select([]model.Performance{perf("m1-r3", 4), perf("m1-r1", 1)}, events, nil)

			Convey("Then the later round should still win", func() {
				So(eventIDs(got), ShouldResemble, []string{"m1-r3"})
			})
		})

		Convey("When the filter rejects the latest round", func() {
			notFinal := func(ev model.Event) bool { return ev.ID != "m1-r3" }
			got := series.Select([]model.Performance{perf("m1-r1", 3), perf("m1-r2", 2), perf("m1-r3", 1)}, events, notFinal)

			Convey("Then filtering should happen before deduplication", func() {
				So(eventIDs(got), ShouldResemble, []string{"m1-r2"})
			})
		})

		Convey("When a performance references an unknown event", func() {
			got := series.Select([]model.Performance{perf("ghost", 1), perf("live", 1)}, events, nil)

			Convey("Then it should be excluded silently", func() {
				So(eventIDs(got), ShouldResemble, []string{"live"})
			})
		})

		Convey("When two rounds share a round order", func() {
			dupes := model.EventsByID([]model.Event{
				{ID: "a", SeriesID: "s", RoundOrder: 2},
				{ID: "b", SeriesID: "s", RoundOrder: 2},
			})
			got := series.Select([]model.Performance{perf("a", 3), perf("b", 1)}, dupes, nil)

			Convey("Then the first one seen should be kept", func() {
				So(eventIDs(got), ShouldResemble, []string{"a"})
			})
		})

		Convey("When a series id collides with a standalone event id", func() {
			clash := model.EventsByID([]model.Event{
				{ID: "x"},
				{ID: "x-final", SeriesID: "x", RoundOrder: 1},
			})
			got := series.Select([]model.Performance{perf("x", 2), perf("x-final", 1)}, clash, nil)

			Convey("Then both groups should survive", func() {
				So(eventIDs(got), ShouldResemble, []string{"x", "x-final"})
			})
		})

		Convey("When there are no performances", func() {
			got := series.Select(nil, events, nil)

			Convey("Then nothing should count", func() {
				So(got, ShouldBeEmpty)
			})
		})
	})
}

package dedupe_test

import (
	"context"
	"testing"
	"time"

	"f1calsync/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPassGuard(t *testing.T) {
	day := time.Date(2025, 5, 25, 13, 0, 0, 0, time.UTC)

	Convey("Given a fresh pass guard", t, func() {
		g := dedupe.NewPassGuard()
		ctx := context.Background()

		Convey("When recording a new candidate key", func() {
			seen := g.SeenAndRecord(ctx, "F1 Monaco Grand Prix - Race (Circuit de Monaco)", day)

			Convey("Then it should not be a duplicate and should be recorded", func() {
				So(seen, ShouldBeFalse)
				So(g.Size(), ShouldEqual, 1)
			})
		})

		Convey("When recording the same title on the same day twice", func() {
			title := "F1 Monaco Grand Prix - Race (Circuit de Monaco)"
			g.SeenAndRecord(ctx, title, day)
			seen := g.SeenAndRecord(ctx, title, day)

			Convey("Then the second record should be a duplicate", func() {
				So(seen, ShouldBeTrue)
				So(g.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the same title lands on a different day", func() {
			title := "F1 Monaco Grand Prix - Qualifying (Circuit de Monaco)"
			g.SeenAndRecord(ctx, title, day)
			seen := g.SeenAndRecord(ctx, title, day.AddDate(0, 0, 1))

			Convey("Then it should not be a duplicate", func() {
				So(seen, ShouldBeFalse)
				So(g.Size(), ShouldEqual, 2)
			})
		})

		Convey("When the day differs only by time of day", func() {
			title := "F1 Monaco Grand Prix - Race (Circuit de Monaco)"
			g.SeenAndRecord(ctx, title, day)
			seen := g.SeenAndRecord(ctx, title, day.Add(3*time.Hour))

			Convey("Then it should still key on the calendar day and be a duplicate", func() {
				So(seen, ShouldBeTrue)
			})
		})
	})
}

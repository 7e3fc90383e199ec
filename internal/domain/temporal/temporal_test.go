package temporal_test

import (
	"testing"
	"time"

	"f1calsync/internal/domain/model"
	"f1calsync/internal/domain/temporal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseStart(t *testing.T) {
	Convey("Given well-formed feed timestamps", t, func() {
		Convey("When parsing a date and a UTC time", func() {
			ts, err := temporal.ParseStart("2025-03-16", "04:00:00Z")

			Convey("Then the UTC instant should come back", func() {
				So(err, ShouldBeNil)
				So(ts.Equal(time.Date(2025, 3, 16, 4, 0, 0, 0, time.UTC)), ShouldBeTrue)
				So(ts.Location(), ShouldEqual, time.UTC)
			})
		})

		Convey("When parsing is repeated", func() {
			a, err1 := temporal.ParseStart("2025-11-30", "13:00:00Z")
			b, err2 := temporal.ParseStart("2025-11-30", "13:00:00Z")

			Convey("Then the result should be deterministic", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(a.Equal(b), ShouldBeTrue)
			})
		})
	})

	Convey("Given malformed feed timestamps", t, func() {
		cases := []struct {
			date, clock string
		}{
			{"", ""},
			{"2025-03-16", ""},
			{"", "04:00:00Z"},
			{"not-a-date", "04:00:00Z"},
			{"2025-13-99", "04:00:00Z"},
			{"2025-03-16", "garbage"},
		}

		Convey("When parsing each of them", func() {
			for _, c := range cases {
				_, err := temporal.ParseStart(c.date, c.clock)

				Convey("Then "+c.date+"T"+c.clock+" should yield an error", func() {
					So(err, ShouldNotBeNil)
				})
			}
		})
	})
}

func TestClassify(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	Convey("Given a reference now of 2025-06-01T00:00:00Z", t, func() {
		Convey("When the session is in the past", func() {
			start, class := temporal.Classify(model.SessionSchedule{Date: "2025-03-16", Time: "04:00:00Z"}, now)

			Convey("Then it should classify as past", func() {
				So(class, ShouldEqual, temporal.Past)
				So(start.Before(now), ShouldBeTrue)
			})
		})

		Convey("When the session is in the future", func() {
			start, class := temporal.Classify(model.SessionSchedule{Date: "2025-07-06", Time: "14:00:00Z"}, now)

			Convey("Then it should classify as future", func() {
				So(class, ShouldEqual, temporal.Future)
				So(start.After(now), ShouldBeTrue)
			})
		})

		Convey("When the session starts exactly at now", func() {
			_, class := temporal.Classify(model.SessionSchedule{Date: "2025-06-01", Time: "00:00:00Z"}, now)

			Convey("Then the strict less-than comparison should classify it as future", func() {
				So(class, ShouldEqual, temporal.Future)
			})
		})

		Convey("When the schedule cannot be parsed", func() {
			start, class := temporal.Classify(model.SessionSchedule{Date: "bogus", Time: "04:00:00Z"}, now)

			Convey("Then it should classify as invalid with a zero start", func() {
				So(class, ShouldEqual, temporal.Invalid)
				So(start.IsZero(), ShouldBeTrue)
			})
		})
	})
}

func TestClassString(t *testing.T) {
	Convey("Given the class values", t, func() {
		So(temporal.Future.String(), ShouldEqual, "future")
		So(temporal.Past.String(), ShouldEqual, "past")
		So(temporal.Invalid.String(), ShouldEqual, "invalid")
	})
}

package model_test

import (
	"testing"

	"f1calsync/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSessionType(t *testing.T) {
	Convey("Given the fixed session type set", t, func() {
		Convey("Then it should enumerate in canonical order", func() {
			So(len(model.SessionTypes), ShouldEqual, 4)
			So(model.SessionTypes[0], ShouldEqual, model.SessionRace)
			So(model.SessionTypes[1], ShouldEqual, model.SessionQualifying)
			So(model.SessionTypes[2], ShouldEqual, model.SessionSprintRace)
			So(model.SessionTypes[3], ShouldEqual, model.SessionSprintQualifying)
		})

		Convey("Then each type should carry its feed key", func() {
			So(model.SessionRace.Key(), ShouldEqual, "race")
			So(model.SessionQualifying.Key(), ShouldEqual, "qualy")
			So(model.SessionSprintRace.Key(), ShouldEqual, "sprintRace")
			So(model.SessionSprintQualifying.Key(), ShouldEqual, "sprintQualy")
		})

		Convey("Then each type should carry its display label", func() {
			So(model.SessionRace.Label(), ShouldEqual, "Race")
			So(model.SessionQualifying.Label(), ShouldEqual, "Qualifying")
			So(model.SessionSprintRace.Label(), ShouldEqual, "Sprint Race")
			So(model.SessionSprintQualifying.Label(), ShouldEqual, "Sprint Qualifying")
		})
	})
}

func TestSessionSchedule(t *testing.T) {
	Convey("Given session schedules with varying completeness", t, func() {
		Convey("When both date and time are present", func() {
			s := model.SessionSchedule{Date: "2025-03-16", Time: "04:00:00Z"}
			So(s.IsSet(), ShouldBeTrue)
		})

		Convey("When the date is missing", func() {
			s := model.SessionSchedule{Time: "04:00:00Z"}
			So(s.IsSet(), ShouldBeFalse)
		})

		Convey("When the time is missing", func() {
			s := model.SessionSchedule{Date: "2025-03-16"}
			So(s.IsSet(), ShouldBeFalse)
		})
	})
}

func TestRunSummary(t *testing.T) {
	Convey("Given a run summary", t, func() {
		Convey("When nothing was added or updated", func() {
			s := model.RunSummary{TotalFetched: 24, PastSkipped: 90}
			So(s.NothingWritten(), ShouldBeTrue)
		})

		Convey("When at least one event was written", func() {
			So(model.RunSummary{Added: 1}.NothingWritten(), ShouldBeFalse)
			So(model.RunSummary{Updated: 1}.NothingWritten(), ShouldBeFalse)
		})
	})
}

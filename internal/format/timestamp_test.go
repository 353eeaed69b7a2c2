package format

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClock(t *testing.T) {
	Convey("Given a clock fixed at 2024-03-17 10:00", t, func() {
		now := time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC)
		clock := Clock{Now: func() time.Time { return now }}

		Convey("When the timestamp is earlier the same day", func() {
			So(clock.Relative(time.Date(2024, 3, 17, 8, 0, 0, 0, time.UTC)), ShouldEqual, "Today, 2 Hours ago")
			So(clock.Relative(time.Date(2024, 3, 17, 9, 35, 0, 0, time.UTC)), ShouldEqual, "Today, 25 Minutes ago")
			So(clock.Relative(time.Date(2024, 3, 17, 0, 0, 1, 0, time.UTC)), ShouldEqual, "Today, 9 Hours ago")
		})

		Convey("When the timestamp lies slightly in the future", func() {
			So(clock.Relative(time.Date(2024, 3, 17, 10, 5, 0, 0, time.UTC)), ShouldEqual, "Today, 0 Minutes ago")
		})

		Convey("When the timestamp lies on a later calendar day", func() {
			So(clock.Relative(time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC)), ShouldEqual, "Wednesday, March 20th")
			So(clock.Relative(time.Date(2024, 3, 18, 0, 0, 1, 0, time.UTC)), ShouldEqual, "Monday, March 18th")
		})

		Convey("When the timestamp is on the previous calendar day", func() {
			So(clock.Relative(time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)), ShouldEqual, "Yesterday")
			So(clock.Relative(time.Date(2024, 3, 16, 23, 59, 0, 0, time.UTC)), ShouldEqual, "Yesterday")
		})

		Convey("When the timestamp is older", func() {
			So(clock.Relative(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)), ShouldEqual, "Friday, March 1st (16 days ago)")
			So(clock.Relative(time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC)), ShouldEqual, "Friday, March 15th (2 days ago)")
		})

		Convey("When the clock shows the time of day", func() {
			clock.ShowTime = true
			So(clock.Relative(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)), ShouldEqual, "Friday, March 1st 02:00 PM (16 days ago)")
		})

		Convey("When the timestamp is zero", func() {
			So(clock.Relative(time.Time{}), ShouldEqual, Never)
		})

		Convey("When now is advanced between calls", func() {
			ts := time.Date(2024, 3, 17, 8, 0, 0, 0, time.UTC)
			So(clock.Relative(ts), ShouldEqual, "Today, 2 Hours ago")
			now = now.Add(2 * time.Hour)
			So(clock.Relative(ts), ShouldEqual, "Today, 4 Hours ago")
		})
	})

	Convey("Given ordinal suffixes", t, func() {
		cases := map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th", 21: "st", 22: "nd", 23: "rd", 30: "th", 31: "st", 111: "th", 112: "th"}
		for day, suffix := range cases {
			So(OrdinalSuffix(day), ShouldEqual, suffix)
		}
	})
}

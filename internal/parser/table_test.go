package parser

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLines(t *testing.T) {
	Convey("Given a reply with a line longer than a megabyte", t, func() {
		long := "| 1 | " + strings.Repeat("x", 2<<20) + " | 2024-03-10 23:05:02 | B | F | 1 | 10 | T |"
		out := long + "\r\n| 2 | Job | 2024-03-11 23:05:02 | B | F | 1 | 20 | T |\n"

		Convey("It should split every line", func() {
			ls := lines(out)
			So(len(ls), ShouldEqual, 3)
			So(len(ls[0]), ShouldEqual, len(long))
		})

		Convey("It should still parse the rows after it", func() {
			runs := ParseJobList(out, time.UTC)
			So(len(runs), ShouldEqual, 2)
			So(runs[0].JobID, ShouldEqual, "2")
			So(len(runs[1].Name), ShouldEqual, 2<<20)
		})
	})

	Convey("Given an empty reply", t, func() {
		So(lines(""), ShouldBeEmpty)
	})
}

package usecase

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
)

var historyBase = time.Date(2024, 3, 20, 23, 0, 0, 0, time.UTC)

// runsFromBytes builds a most-recent-first history, one run per day.
func runsFromBytes(bytes ...int64) []domain.JobRun {
	runs := make([]domain.JobRun, len(bytes))
	for i, b := range bytes {
		runs[i] = domain.JobRun{
			JobID:     string(rune('a' + i)),
			Name:      "BackupClient1",
			StartTime: historyBase.AddDate(0, 0, -i),
			Bytes:     b,
			Status:    domain.StatusTerminated,
		}
	}
	return runs
}

func countEmpty(runs []domain.JobRun, s Summarizer) int {
	n := 0
	for _, r := range runs {
		if s.isEmpty(r) {
			n++
		}
	}
	return n
}

// accounted returns the empty runs represented by the entries, individually
// or inside markers, and the total runs represented.
func accounted(entries []domain.HistoryEntry, s Summarizer) (empty, total int) {
	for _, e := range entries {
		if e.IsSkip() {
			empty += e.Skip.Count
			total += e.Skip.Count
			continue
		}
		total++
		if s.isEmpty(*e.Run) {
			empty++
		}
	}
	return empty, total
}

func TestSummarizer(t *testing.T) {
	Convey("Given the default summarizer", t, func() {
		s := NewSummarizer(DefaultSkipThreshold, "")

		Convey("When a window exceeds the threshold", func() {
			runs := runsFromBytes(100, 0, 0, 0, 200)
			entries := s.Summarize(runs)

			Convey("It should collapse it into one marker between the surrounding runs", func() {
				So(len(entries), ShouldEqual, 3)
				So(entries[0].Run.Bytes, ShouldEqual, 100)
				So(entries[1].IsSkip(), ShouldBeTrue)
				So(entries[1].Skip.Count, ShouldEqual, 3)
				So(entries[2].Run.Bytes, ShouldEqual, 200)
			})

			Convey("It should span the true min and max start time", func() {
				So(entries[1].Skip.Start, ShouldEqual, runs[3].StartTime)
				So(entries[1].Skip.End, ShouldEqual, runs[1].StartTime)
			})
		})

		Convey("When a window does not exceed the threshold", func() {
			entries := s.Summarize(runsFromBytes(100, 0, 0, 200))

			Convey("It should keep the empty runs individually", func() {
				So(len(entries), ShouldEqual, 4)
				for _, e := range entries {
					So(e.IsSkip(), ShouldBeFalse)
				}
			})
		})

		Convey("When the history ends with an empty window", func() {
			entries := s.Summarize(runsFromBytes(100, 0, 0, 0, 0))

			So(len(entries), ShouldEqual, 2)
			So(entries[1].IsSkip(), ShouldBeTrue)
			So(entries[1].Skip.Count, ShouldEqual, 4)
		})

		Convey("When the input is empty", func() {
			So(s.Summarize(nil), ShouldBeEmpty)
		})

		Convey("When the runs are in ascending order", func() {
			runs := runsFromBytes(0, 0, 0)
			runs[0], runs[2] = runs[2], runs[0]
			entries := s.Summarize(runs)

			So(len(entries), ShouldEqual, 1)
			So(entries[0].Skip.Start, ShouldEqual, historyBase.AddDate(0, 0, -2))
			So(entries[0].Skip.End, ShouldEqual, historyBase)
		})
	})

	Convey("Given a threshold of one", t, func() {
		s := NewSummarizer(1, "")
		entries := s.Summarize(runsFromBytes(0, 0, 5, 0))

		Convey("It should collapse pairs but never single runs", func() {
			So(len(entries), ShouldEqual, 3)
			So(entries[0].Skip.Count, ShouldEqual, 2)
			So(entries[2].IsSkip(), ShouldBeFalse)
		})
	})

	Convey("Given a threshold below one", t, func() {
		s := NewSummarizer(0, "")
		entries := s.Summarize(runsFromBytes(0, 7))

		Convey("It should behave like a threshold of one", func() {
			So(len(entries), ShouldEqual, 2)
			So(entries[0].IsSkip(), ShouldBeFalse)
		})
	})

	Convey("Given runs whose size could not be read", t, func() {
		s := NewSummarizer(2, "")
		runs := runsFromBytes(0, 0, 0)
		for i := range runs {
			runs[i].RawBytes = "n/a"
		}
		entries := s.Summarize(runs)

		Convey("It should not treat them as empty", func() {
			So(countEmpty(runs, s), ShouldEqual, 0)
			So(len(entries), ShouldEqual, 3)
			for _, e := range entries {
				So(e.IsSkip(), ShouldBeFalse)
			}
		})
	})

	Convey("Given a status gate", t, func() {
		s := NewSummarizer(1, domain.StatusTerminated)
		runs := runsFromBytes(0, 0, 0)
		runs[1].Status = domain.StatusError
		entries := s.Summarize(runs)

		Convey("It should only treat runs with that status as empty", func() {
			So(len(entries), ShouldEqual, 3)
			So(entries[1].Run.Status, ShouldEqual, domain.StatusError)
		})
	})

	Convey("Given many generated histories", t, func() {
		patterns := [][]int64{
			{0, 0, 0, 0, 0, 0},
			{1, 0, 1, 0, 0, 1, 0, 0, 0},
			{0, 0, 0, 1, 0, 0, 0, 0, 1, 0},
			{1, 1, 1},
			{0},
			{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0},
		}

		for threshold := 1; threshold <= 4; threshold++ {
			s := NewSummarizer(threshold, "")
			for _, p := range patterns {
				runs := runsFromBytes(p...)
				entries := s.Summarize(runs)
				empty, total := accounted(entries, s)

				So(empty, ShouldEqual, countEmpty(runs, s))
				So(total, ShouldEqual, len(runs))
				for _, e := range entries {
					if e.IsSkip() {
						So(e.Skip.Count, ShouldBeGreaterThan, threshold)
						So(e.Skip.Count, ShouldBeGreaterThanOrEqualTo, 2)
						So(e.Skip.Start.After(e.Skip.End), ShouldBeFalse)
					}
				}
			}
		}
	})
}

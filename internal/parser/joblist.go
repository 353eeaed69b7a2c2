package parser

import (
	"sort"
	"strings"
	"time"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
	"github.com/semmidev/bconsole-dashboard/internal/format"
)

// StartTimeLayout is the layout of the StartTime column.
const StartTimeLayout = "2006-01-02 15:04:05"

const jobListFields = 8

// ParseJobList parses the table printed by `list jobs`. Rows are returned
// most recent first. Only rows with a bad start time are dropped; a
// non-numeric JobBytes cell is kept in RawBytes.
func ParseJobList(out string, loc *time.Location) []domain.JobRun {
	if loc == nil {
		loc = time.Local
	}

	runs := make([]domain.JobRun, 0)
	for _, line := range lines(out) {
		if !strings.Contains(line, "|") || strings.Contains(strings.ToLower(line), "jobid") {
			continue
		}
		run, ok := parseJobRow(splitRow(line), loc)
		if !ok {
			continue
		}
		runs = append(runs, run)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartTime.After(runs[j].StartTime)
	})
	return runs
}

func parseJobRow(cells []string, loc *time.Location) (domain.JobRun, bool) {
	if len(cells) != jobListFields {
		return domain.JobRun{}, false
	}

	start, err := time.ParseInLocation(StartTimeLayout, cells[2], loc)
	if err != nil {
		return domain.JobRun{}, false
	}
	run := domain.JobRun{
		JobID:     cells[0],
		Name:      cells[1],
		StartTime: start,
		Type:      cells[3],
		Level:     cells[4],
		Status:    cells[7],
	}

	if files, err := format.ParseCount(cells[5]); err == nil {
		run.Files = files
	}
	bytes, err := format.ParseCount(cells[6])
	switch {
	case err == nil && bytes >= 0:
		run.Bytes = bytes
	case err == nil || cells[6] == "":
		run.RawBytes = format.InvalidSize
	default:
		run.RawBytes = cells[6]
	}
	return run, true
}

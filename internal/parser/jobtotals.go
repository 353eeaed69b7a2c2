package parser

import (
	"strings"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
	"github.com/semmidev/bconsole-dashboard/internal/format"
)

// ParseJobTotals parses `list jobtotals`. Per-job rows have four columns
// (jobs, files, bytes, job name). The grand total is the row without a job
// name and is returned separately.
func ParseJobTotals(out string) (map[string]domain.JobTotals, domain.SummaryTotals) {
	totals := make(map[string]domain.JobTotals)
	var summary domain.SummaryTotals

	for _, line := range lines(out) {
		if !strings.Contains(line, "|") || isBorder(line) {
			continue
		}
		if strings.Contains(strings.ToLower(line), "jobs") {
			continue
		}

		cells := splitRow(line)
		switch {
		case len(cells) == 4 && cells[3] != "":
			t, ok := parseTotalsCounts(cells[:3])
			if !ok {
				continue
			}
			t.JobName = cells[3]
			totals[t.JobName] = t
		case len(cells) == 3, len(cells) == 4 && cells[3] == "":
			t, ok := parseTotalsCounts(cells[:3])
			if !ok {
				continue
			}
			summary = domain.SummaryTotals{Jobs: t.Jobs, Files: t.Files, Bytes: t.Bytes, Known: true}
		}
	}

	return totals, summary
}

func parseTotalsCounts(cells []string) (domain.JobTotals, bool) {
	jobs, err := format.ParseCount(cells[0])
	if err != nil {
		return domain.JobTotals{}, false
	}
	files, err := format.ParseCount(cells[1])
	if err != nil {
		return domain.JobTotals{}, false
	}
	bytes, err := format.ParseCount(cells[2])
	if err != nil {
		return domain.JobTotals{}, false
	}
	return domain.JobTotals{Jobs: jobs, Files: files, Bytes: bytes}, true
}

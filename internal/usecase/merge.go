package usecase

import (
	"sort"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
	"github.com/semmidev/bconsole-dashboard/internal/format"
)

// Merge joins job definitions with their most recent run and their totals.
// The result is ordered by last run, most recent first; jobs that never
// ran come last in configuration order.
func Merge(
	defs []domain.JobDefinition,
	runs []domain.JobRun,
	totals map[string]domain.JobTotals,
	summary domain.SummaryTotals,
	clock format.Clock,
) []domain.MergedJobView {
	latest := latestRuns(runs)

	views := make([]domain.MergedJobView, 0, len(defs))
	for _, def := range defs {
		view := domain.MergedJobView{
			JobDefinition:     def,
			LastRunDisplay:    format.Never,
			LastBytesDisplay:  format.Bytes(0),
			TotalBytesDisplay: format.Bytes(0),
		}

		if run, ok := latest[def.Name]; ok {
			view.HasRun = true
			view.LastRunTime = run.StartTime
			view.LastRunDisplay = clock.Relative(run.StartTime)
			view.LastStatus = run.Status
			view.LastBytes = run.Bytes
			view.LastBytesDisplay = RunBytes(run)
		}

		if t, ok := totals[def.Name]; ok {
			view.HasTotals = true
			view.TotalJobs = t.Jobs
			view.TotalFiles = t.Files
			view.TotalBytes = t.Bytes
			view.TotalBytesDisplay = format.Bytes(t.Bytes)
			view.PercentOfTotal = percentOf(t.Bytes, summary)
		}

		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if a.HasRun != b.HasRun {
			return a.HasRun
		}
		return a.LastRunTime.After(b.LastRunTime)
	})

	return views
}

// latestRuns picks the run with the greatest start time for each job name.
func latestRuns(runs []domain.JobRun) map[string]domain.JobRun {
	latest := make(map[string]domain.JobRun)
	for _, run := range runs {
		if cur, ok := latest[run.Name]; ok && !run.StartTime.After(cur.StartTime) {
			continue
		}
		latest[run.Name] = run
	}
	return latest
}

func percentOf(bytes int64, summary domain.SummaryTotals) float64 {
	if !summary.Known || summary.Bytes <= 0 || bytes <= 0 {
		return 0
	}
	p := float64(bytes) / float64(summary.Bytes) * 100
	if p > 100 {
		return 100
	}
	return p
}

// RunBytes renders the size of a run, or format.InvalidSize when the
// director printed something other than a number.
func RunBytes(run domain.JobRun) string {
	if !run.BytesValid() {
		return format.BytesString(run.RawBytes)
	}
	return format.Bytes(run.Bytes)
}

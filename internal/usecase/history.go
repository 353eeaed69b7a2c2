package usecase

import (
	"time"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
)

const DefaultSkipThreshold = 2

// Summarizer collapses runs of consecutive empty job runs into skip markers.
// A run is empty when it wrote no bytes and, if StatusGate is set, ended
// with that status. A window is collapsed when it holds more than Threshold
// runs.
type Summarizer struct {
	Threshold  int
	StatusGate string
}

func NewSummarizer(threshold int, statusGate string) Summarizer {
	return Summarizer{Threshold: threshold, StatusGate: statusGate}
}

func (s Summarizer) threshold() int {
	if s.Threshold < 1 {
		return 1
	}
	return s.Threshold
}

func (s Summarizer) isEmpty(run domain.JobRun) bool {
	if run.Bytes != 0 || !run.BytesValid() {
		return false
	}
	return s.StatusGate == "" || run.Status == s.StatusGate
}

// Summarize keeps the order of runs. Every input run appears either on its
// own or counted in exactly one marker.
func (s Summarizer) Summarize(runs []domain.JobRun) []domain.HistoryEntry {
	entries := make([]domain.HistoryEntry, 0, len(runs))
	var window []domain.JobRun

	flush := func() {
		if len(window) > s.threshold() {
			entries = append(entries, domain.SkipEntry(skipMarker(window)))
		} else {
			for _, run := range window {
				entries = append(entries, domain.RunEntry(run))
			}
		}
		window = window[:0]
	}

	for _, run := range runs {
		if s.isEmpty(run) {
			window = append(window, run)
			continue
		}
		flush()
		entries = append(entries, domain.RunEntry(run))
	}
	flush()

	return entries
}

func skipMarker(window []domain.JobRun) domain.TimeSkipMarker {
	start, end := window[0].StartTime, window[0].StartTime
	for _, run := range window[1:] {
		start = minTime(start, run.StartTime)
		end = maxTime(end, run.StartTime)
	}
	return domain.TimeSkipMarker{Start: start, End: end, Count: len(window)}
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func maxTime(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

package domain

import "time"

// JobRun is one executed backup job as reported by `list jobs`.
type JobRun struct {
	JobID     string    `json:"job_id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Type      string    `json:"type"`
	Level     string    `json:"level"`
	Files     int64     `json:"files"`
	Bytes     int64     `json:"bytes"`
	Status    string    `json:"status"`

	// RawBytes holds the JobBytes cell when it was not a number.
	RawBytes string `json:"raw_bytes,omitempty"`

	// Volumes is only filled when explicitly requested for a single run.
	Volumes []string `json:"volumes,omitempty"`
}

// BytesValid reports whether Bytes was read from a numeric cell.
func (r JobRun) BytesValid() bool {
	return r.RawBytes == ""
}

// JobDefinition is a configured job resource as reported by `show jobs`.
type JobDefinition struct {
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
	Client   string `json:"client"`
	Schedule string `json:"schedule"`
	FileSet  string `json:"fileset"`
}

type JobTotals struct {
	JobName string `json:"job_name"`
	Jobs    int64  `json:"jobs"`
	Files   int64  `json:"files"`
	Bytes   int64  `json:"bytes"`
}

// SummaryTotals is the grand total row of `list jobtotals`. Known is false
// when the output carried no such row.
type SummaryTotals struct {
	Jobs  int64 `json:"jobs"`
	Files int64 `json:"files"`
	Bytes int64 `json:"bytes"`
	Known bool  `json:"known"`
}

// MergedJobView is the per-job row of the dashboard overview.
type MergedJobView struct {
	JobDefinition

	HasRun           bool      `json:"has_run"`
	LastRunTime      time.Time `json:"last_run_time,omitempty"`
	LastRunDisplay   string    `json:"last_run_display"`
	LastStatus       string    `json:"last_status,omitempty"`
	LastBytes        int64     `json:"last_bytes"`
	LastBytesDisplay string    `json:"last_bytes_display"`

	HasTotals         bool    `json:"has_totals"`
	TotalJobs         int64   `json:"total_jobs"`
	TotalFiles        int64   `json:"total_files"`
	TotalBytes        int64   `json:"total_bytes"`
	TotalBytesDisplay string  `json:"total_bytes_display"`
	PercentOfTotal    float64 `json:"percent_of_total"`
}

// TimeSkipMarker stands in for a run of consecutive empty job runs.
type TimeSkipMarker struct {
	Start time.Time `json:"skip_start"`
	End   time.Time `json:"skip_end"`
	Count int       `json:"skipped_count"`
}

type EntryKind string

const (
	EntryRun  EntryKind = "run"
	EntrySkip EntryKind = "skip"
)

// HistoryEntry is either a single run or a skip marker, selected by Kind.
type HistoryEntry struct {
	Kind EntryKind       `json:"kind"`
	Run  *JobRun         `json:"run,omitempty"`
	Skip *TimeSkipMarker `json:"skip,omitempty"`
}

func RunEntry(run JobRun) HistoryEntry {
	return HistoryEntry{Kind: EntryRun, Run: &run}
}

func SkipEntry(marker TimeSkipMarker) HistoryEntry {
	return HistoryEntry{Kind: EntrySkip, Skip: &marker}
}

func (e HistoryEntry) IsSkip() bool {
	return e.Kind == EntrySkip
}

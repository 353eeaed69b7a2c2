package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
	"github.com/semmidev/bconsole-dashboard/internal/format"
	"github.com/semmidev/bconsole-dashboard/internal/parser"
)

const (
	SectionJobs    = "jobs"
	SectionRuns    = "recent runs"
	SectionTotals  = "job totals"
	SectionHistory = "history"
	SectionVolume  = "volume"
	SectionMedia   = "volumes"
)

type Overview struct {
	Jobs           []domain.MergedJobView `json:"jobs"`
	Summary        domain.SummaryTotals   `json:"summary"`
	SummaryDisplay string                 `json:"summary_display"`
	GeneratedAt    time.Time              `json:"generated_at"`
	Errors         []domain.SectionError  `json:"errors,omitempty"`
}

// Degraded reports whether any section of the overview failed to load.
func (o Overview) Degraded() bool {
	return len(o.Errors) > 0
}

type JobHistory struct {
	JobName string                `json:"job_name"`
	Entries []domain.HistoryEntry `json:"entries"`
	Runs    int                   `json:"runs"`
	Error   *domain.SectionError  `json:"error,omitempty"`
}

type VolumeView struct {
	Volume domain.VolumeDetail  `json:"volume"`
	Error  *domain.SectionError `json:"error,omitempty"`
}

type RunVolumes struct {
	JobName string               `json:"job_name"`
	JobID   string               `json:"job_id"`
	Volumes []string             `json:"volumes"`
	Error   *domain.SectionError `json:"error,omitempty"`
}

type DashboardOptions struct {
	ListDays   int
	Location   *time.Location
	Summarizer Summarizer
	Clock      format.Clock
}

// Dashboard builds the view models of the dashboard. Every call queries
// bconsole again; nothing is cached between calls.
type Dashboard struct {
	console domain.Console
	logger  Logger
	opts    DashboardOptions
}

func NewDashboard(console domain.Console, logger Logger, opts DashboardOptions) *Dashboard {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Clock.Now == nil {
		opts.Clock.Now = time.Now
	}
	return &Dashboard{
		console: console,
		logger:  logger,
		opts:    opts,
	}
}

type commandResult struct {
	command string
	output  string
	err     error
}

// Overview fetches configured jobs, recent runs and totals concurrently and
// merges them once all three have returned.
func (d *Dashboard) Overview(ctx context.Context) Overview {
	commands := []string{
		domain.CommandShowJobs,
		domain.ListJobsCommand(d.opts.ListDays),
		domain.CommandListJobTotals,
	}
	results := d.executeAll(ctx, commands)
	jobsRes, runsRes, totalsRes := results[0], results[1], results[2]

	overview := Overview{GeneratedAt: d.opts.Clock.Now()}

	var defs []domain.JobDefinition
	if jobsRes.err != nil {
		overview.Errors = append(overview.Errors, *domain.NewSectionError(SectionJobs, jobsRes.command, jobsRes.err))
	} else {
		defs = parser.ParseJobConfig(jobsRes.output)
	}

	var runs []domain.JobRun
	if runsRes.err != nil {
		overview.Errors = append(overview.Errors, *domain.NewSectionError(SectionRuns, runsRes.command, runsRes.err))
	} else {
		runs = parser.ParseJobList(runsRes.output, d.opts.Location)
	}

	totals := make(map[string]domain.JobTotals)
	if totalsRes.err != nil {
		overview.Errors = append(overview.Errors, *domain.NewSectionError(SectionTotals, totalsRes.command, totalsRes.err))
	} else {
		totals, overview.Summary = parser.ParseJobTotals(totalsRes.output)
	}

	overview.Jobs = Merge(defs, runs, totals, overview.Summary, d.opts.Clock)
	overview.SummaryDisplay = format.Bytes(overview.Summary.Bytes)
	return overview
}

func (d *Dashboard) executeAll(ctx context.Context, commands []string) []commandResult {
	results := make([]commandResult, len(commands))
	var wg sync.WaitGroup

	for i, cmd := range commands {
		wg.Add(1)
		go func(i int, cmd string) {
			defer wg.Done()
			out, err := d.console.Execute(ctx, cmd)
			if err != nil {
				d.logger.Errorf("Command %q failed: %v", cmd, err)
			}
			results[i] = commandResult{command: cmd, output: out, err: err}
		}(i, cmd)
	}

	wg.Wait()
	return results
}

// JobHistory lists every run of one job with empty stretches collapsed.
// Only an invalid job name is returned as an error.
func (d *Dashboard) JobHistory(ctx context.Context, jobName string) (JobHistory, error) {
	cmd, err := domain.JobHistoryCommand(jobName)
	if err != nil {
		return JobHistory{}, err
	}

	history := JobHistory{JobName: jobName, Entries: make([]domain.HistoryEntry, 0)}
	out, err := d.console.Execute(ctx, cmd)
	if err != nil {
		d.logger.Errorf("Command %q failed: %v", cmd, err)
		history.Error = domain.NewSectionError(SectionHistory, cmd, err)
		return history, nil
	}

	runs := parser.ParseJobList(out, d.opts.Location)
	history.Runs = len(runs)
	history.Entries = d.opts.Summarizer.Summarize(runs)
	return history, nil
}

// Volume returns the catalog record of one volume.
func (d *Dashboard) Volume(ctx context.Context, volumeName string) (VolumeView, error) {
	cmd, err := domain.VolumeCommand(volumeName)
	if err != nil {
		return VolumeView{}, err
	}

	view := VolumeView{Volume: domain.VolumeDetail{Name: volumeName, Fields: make([]domain.VolumeField, 0)}}
	out, err := d.console.Execute(ctx, cmd)
	if err != nil {
		d.logger.Errorf("Command %q failed: %v", cmd, err)
		view.Error = domain.NewSectionError(SectionVolume, cmd, err)
		return view, nil
	}

	view.Volume = parser.ParseVolumeDetail(volumeName, out)
	return view, nil
}

// RunVolumes looks up the volumes written by a single run. Volumes are never
// fetched as part of the overview or the history. A run id that does not
// belong to the job yields ErrNotFound.
func (d *Dashboard) RunVolumes(ctx context.Context, jobName, jobID string) (RunVolumes, error) {
	historyCmd, err := domain.JobHistoryCommand(jobName)
	if err != nil {
		return RunVolumes{}, err
	}
	cmd, err := domain.JobMediaCommand(jobID)
	if err != nil {
		return RunVolumes{}, err
	}

	view := RunVolumes{JobName: jobName, JobID: jobID, Volumes: make([]string, 0)}
	out, err := d.console.Execute(ctx, historyCmd)
	if err != nil {
		d.logger.Errorf("Command %q failed: %v", historyCmd, err)
		view.Error = domain.NewSectionError(SectionMedia, historyCmd, err)
		return view, nil
	}
	if !hasRun(parser.ParseJobList(out, d.opts.Location), jobID) {
		return RunVolumes{}, fmt.Errorf("%w: job %s has no run %s", domain.ErrNotFound, jobName, jobID)
	}

	out, err = d.console.Execute(ctx, cmd)
	if err != nil {
		d.logger.Errorf("Command %q failed: %v", cmd, err)
		view.Error = domain.NewSectionError(SectionMedia, cmd, err)
		return view, nil
	}

	view.Volumes = parser.ParseJobMedia(out)
	return view, nil
}

func hasRun(runs []domain.JobRun, jobID string) bool {
	for _, run := range runs {
		if run.JobID == jobID {
			return true
		}
	}
	return false
}

// Ping checks that bconsole answers at all.
func (d *Dashboard) Ping(ctx context.Context) error {
	out, err := d.console.Execute(ctx, domain.CommandVersion)
	if err != nil {
		return err
	}
	if out == "" {
		return errors.New("empty reply from bconsole")
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

var reportTimestampPattern = regexp.MustCompile(`(\d{8})_(\d{6})`)

// Cleanup removes reports older than the retention period from every target.
// Only files named like the reports this instance writes are ever deleted.
type Cleanup struct {
	targets       []UploadTarget
	logger        Logger
	retentionDays int
	reportName    *regexp.Regexp
	now           func() time.Time
}

func NewCleanup(
	targets []UploadTarget,
	logger Logger,
	retentionDays int,
	name string,
) *Cleanup {
	return &Cleanup{
		targets:       targets,
		logger:        logger,
		retentionDays: retentionDays,
		reportName:    regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `_report_\d{8}_\d{6}\.json(\.gz)?$`),
		now:           time.Now,
	}
}

func (uc *Cleanup) Execute(ctx context.Context) error {
	uc.logger.Infof("Starting cleanup, retention: %d days", uc.retentionDays)

	cutoff := uc.now().AddDate(0, 0, -uc.retentionDays)

	if len(uc.targets) > 0 {
		uc.cleanupTargets(ctx, cutoff)
	}

	uc.logger.Infof("Cleanup completed")
	return nil
}

func (uc *Cleanup) cleanupTargets(ctx context.Context, cutoff time.Time) {
	var wg sync.WaitGroup

	for _, target := range uc.targets {
		wg.Add(1)
		go func(t UploadTarget) {
			defer wg.Done()

			if err := uc.cleanupTarget(ctx, t, cutoff); err != nil {
				uc.logger.Errorf("Cleanup failed for %s: %v", t.Name, err)
			}
		}(target)
	}

	wg.Wait()
}

func (uc *Cleanup) cleanupTarget(ctx context.Context, target UploadTarget, cutoff time.Time) error {
	files, err := target.Storage.GetOldFiles(ctx, cutoff)
	if err != nil {
		files, err = uc.fallbackListFiles(ctx, target, cutoff)
		if err != nil {
			return err
		}
	}

	deleted := 0
	for _, filename := range files {
		if !uc.isReport(filename) {
			uc.logger.Infof("Keeping %s on %s: not a report", filename, target.Name)
			continue
		}
		uc.logger.Infof("Deleting old report from %s: %s", target.Name, filename)

		if err := target.Storage.Delete(ctx, filename); err != nil {
			uc.logger.Errorf("Failed to delete %s from %s: %v", filename, target.Name, err)
		} else {
			deleted++
		}
	}

	uc.logger.Infof("Deleted %d old report(s) from %s", deleted, target.Name)
	return nil
}

func (uc *Cleanup) fallbackListFiles(ctx context.Context, target UploadTarget, cutoff time.Time) ([]string, error) {
	files, err := target.Storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	oldFiles := make([]string, 0)
	for _, filename := range files {
		timestamp, err := extractTimestamp(filename)
		if err != nil {
			uc.logger.Warnf("Could not parse timestamp from %s: %v", filename, err)
			continue
		}

		if timestamp.Before(cutoff) {
			oldFiles = append(oldFiles, filename)
		}
	}

	return oldFiles, nil
}

// isReport matches the base name, so prefixed keys on object stores still count.
func (uc *Cleanup) isReport(filename string) bool {
	if i := strings.LastIndex(filename, "/"); i >= 0 {
		filename = filename[i+1:]
	}
	return uc.reportName.MatchString(filename)
}

func extractTimestamp(filename string) (time.Time, error) {
	matches := reportTimestampPattern.FindStringSubmatch(filename)
	if len(matches) < 3 {
		return time.Time{}, fmt.Errorf("invalid filename format: no timestamp found")
	}

	return time.Parse(reportTimeLayout, matches[1]+"_"+matches[2])
}

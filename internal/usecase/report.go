package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
	"github.com/semmidev/bconsole-dashboard/internal/format"
)

const reportTimeLayout = "20060102_150405"

type OverviewSource interface {
	Overview(ctx context.Context) Overview
}

type LocalStorage interface {
	domain.Storage
	GetPath(filename string) string
}

// Notifier receives the text digest of a report.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// ReportDocument is the file written for every report run.
type ReportDocument struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	GeneratedAt string   `json:"generated_at"`
	Overview    Overview `json:"overview"`
}

// Report snapshots the overview and delivers it to the configured targets.
// Views never read reports back.
type Report struct {
	source        OverviewSource
	localStorage  LocalStorage
	uploadTargets []UploadTarget
	notifiers     []Notifier
	compressor    domain.Compressor
	logger        Logger
	compress      bool
	name          string
	clock         format.Clock
}

func NewReport(
	source OverviewSource,
	localStorage LocalStorage,
	uploadTargets []UploadTarget,
	notifiers []Notifier,
	compressor domain.Compressor,
	logger Logger,
	compress bool,
	name string,
	clock format.Clock,
) *Report {
	if clock.Now == nil {
		clock.Now = time.Now
	}
	return &Report{
		source:        source,
		localStorage:  localStorage,
		uploadTargets: uploadTargets,
		notifiers:     notifiers,
		compressor:    compressor,
		logger:        logger,
		compress:      compress,
		name:          name,
		clock:         clock,
	}
}

func (uc *Report) Execute(ctx context.Context) error {
	start := uc.clock.Now()
	uc.logger.Infof("[report] Collecting overview...")

	overview := uc.source.Overview(ctx)
	if overview.Degraded() {
		uc.logger.Warnf("[report] Overview incomplete: %d section(s) failed", len(overview.Errors))
	}

	filename := uc.generateFilename(start)
	tempPath := filepath.Join(os.TempDir(), filename)
	if err := uc.writeDocument(tempPath, overview, start); err != nil {
		return err
	}
	defer os.Remove(tempPath)

	finalPath, finalFilename := tempPath, filename
	if uc.compress {
		finalPath, finalFilename = tempPath+".gz", filename+".gz"
		if err := uc.compressor.Compress(tempPath, finalPath); err != nil {
			return fmt.Errorf("compression: %w", err)
		}
		defer os.Remove(finalPath)
	}

	if err := uc.deliver(ctx, finalPath, finalFilename); err != nil {
		return err
	}
	uc.notify(ctx, Digest(overview, uc.name))

	uc.logger.Infof("[report] Report completed in %s: %s",
		uc.clock.Now().Sub(start).Round(time.Millisecond), finalFilename)
	return nil
}

func (uc *Report) generateFilename(at time.Time) string {
	return fmt.Sprintf("%s_report_%s.json", uc.name, at.Format(reportTimeLayout))
}

func (uc *Report) writeDocument(path string, overview Overview, at time.Time) error {
	doc := ReportDocument{
		ID:          uuid.NewString(),
		Name:        uc.name,
		GeneratedAt: at.Format(time.RFC3339),
		Overview:    overview,
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func (uc *Report) deliver(ctx context.Context, filePath, filename string) error {
	uc.logger.Infof("[report] Storing %s locally...", filename)
	if err := uc.localStorage.Upload(ctx, filePath, filename); err != nil {
		return fmt.Errorf("local upload: %w", err)
	}

	var wg sync.WaitGroup
	for _, target := range uc.uploadTargets {
		wg.Add(1)
		go func(t UploadTarget) {
			defer wg.Done()

			if err := t.Storage.Upload(ctx, filePath, filename); err != nil {
				uc.logger.Errorf("[report] Failed to upload to %s: %v", t.Name, err)
				return
			}
			uc.logger.Infof("[report] Uploaded to %s", t.Name)
		}(target)
	}
	wg.Wait()

	return nil
}

func (uc *Report) notify(ctx context.Context, message string) {
	for _, n := range uc.notifiers {
		if err := n.Notify(ctx, message); err != nil {
			uc.logger.Errorf("[report] Failed to send digest: %v", err)
		}
	}
}

// Digest renders a short plain text summary of an overview.
func Digest(o Overview, name string) string {
	var b strings.Builder

	failed := 0
	for _, job := range o.Jobs {
		if domain.IsFailedStatus(job.LastStatus) {
			failed++
		}
	}

	fmt.Fprintf(&b, "%s: %d job(s), %d failed, %s stored\n", name, len(o.Jobs), failed, o.SummaryDisplay)
	for _, job := range o.Jobs {
		if !job.HasRun {
			fmt.Fprintf(&b, "- %s: never ran\n", job.Name)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s, %s, %s\n",
			job.Name, domain.JobStatusLabel(job.LastStatus), job.LastBytesDisplay, job.LastRunDisplay)
	}
	for _, e := range o.Errors {
		fmt.Fprintf(&b, "! %s unavailable (%s)\n", e.Section, e.Status)
	}

	return strings.TrimRight(b.String(), "\n")
}

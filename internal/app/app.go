package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/semmidev/bconsole-dashboard/internal/adapter/compressor"
	"github.com/semmidev/bconsole-dashboard/internal/adapter/console"
	"github.com/semmidev/bconsole-dashboard/internal/adapter/storage"
	"github.com/semmidev/bconsole-dashboard/internal/adapter/web"
	"github.com/semmidev/bconsole-dashboard/internal/config"
	"github.com/semmidev/bconsole-dashboard/internal/domain"
	"github.com/semmidev/bconsole-dashboard/internal/format"
	"github.com/semmidev/bconsole-dashboard/internal/infrastructure/logger"
	"github.com/semmidev/bconsole-dashboard/internal/infrastructure/scheduler"
	"github.com/semmidev/bconsole-dashboard/internal/usecase"
)

const cleanupSchedule = "0 30 3 * * *"

type App struct {
	config    *config.Config
	logger    *logger.Logger
	server    *web.Server
	scheduler *scheduler.Scheduler
	report    *usecase.Report
	cleanup   *usecase.Cleanup
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Infof("Starting %s", cfg.App.Name)

	loc, err := cfg.Console.TimeLocation()
	if err != nil {
		return nil, fmt.Errorf("console location: %w", err)
	}

	clock := format.NewClock(cfg.Dashboard.ShowTime)
	bconsole := console.NewInstrumented(console.NewBconsole(&cfg.Console))
	dashboard := usecase.NewDashboard(bconsole, log.Named("dashboard"), usecase.DashboardOptions{
		ListDays:   cfg.Dashboard.ListDays,
		Location:   loc,
		Summarizer: usecase.NewSummarizer(cfg.History.SkipThreshold, cfg.History.StatusGate),
		Clock:      clock,
	})

	webLog := log.Named("web")
	requestLogger := func(requestID string) web.Logger { return webLog.WithRequest(requestID) }
	server, err := web.NewServer(web.Options{
		Addr:          cfg.HTTP.Addr,
		ReadTimeout:   cfg.HTTP.ReadTimeout,
		WriteTimeout:  cfg.HTTP.WriteTimeout,
		Debug:         cfg.HTTP.Debug,
		Clock:         clock,
		RequestLogger: requestLogger,
	}, dashboard, webLog)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize web server: %w", err)
	}

	a := &App{
		config: cfg,
		logger: log,
		server: server,
	}

	if cfg.Report.Enabled {
		if err := a.initReports(ctx, dashboard, clock); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (a *App) initReports(ctx context.Context, dashboard *usecase.Dashboard, clock format.Clock) error {
	cfg := a.config
	log := a.logger.Named("report")

	localStorage, err := storage.NewLocal(cfg.Report.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}

	uploadTargets, notifiers := initializeTargets(ctx, cfg, log)

	a.report = usecase.NewReport(
		dashboard,
		localStorage,
		uploadTargets,
		notifiers,
		compressor.NewGzip(),
		log,
		cfg.Report.Compress,
		cfg.App.Name,
		clock,
	)

	cleanupTargets := append([]usecase.UploadTarget{{Name: "local", Storage: localStorage}}, uploadTargets...)
	a.cleanup = usecase.NewCleanup(cleanupTargets, log, cfg.Report.RetentionDays, cfg.App.Name)

	a.scheduler = scheduler.New(log)
	return nil
}

// initializeTargets builds the remote report targets. Telegram chats get the
// file itself when send_file is set and the text digest in every case.
func initializeTargets(ctx context.Context, cfg *config.Config, log *logger.Logger) ([]usecase.UploadTarget, []usecase.Notifier) {
	var (
		targets   []usecase.UploadTarget
		notifiers []usecase.Notifier
	)

	for _, targetCfg := range cfg.GetEnabledUploadTargets() {
		var (
			stor domain.Storage
			err  error
		)
		switch targetCfg.Type {
		case "gdrive":
			stor, err = storage.NewGDrive(ctx, &targetCfg)
		case "s3":
			stor, err = storage.NewS3(ctx, &targetCfg)
		case "telegram":
			var tg *storage.TelegramStorage
			tg, err = storage.NewTelegram(&targetCfg)
			if err == nil {
				notifiers = append(notifiers, tg)
				if !targetCfg.SendFile {
					log.Infof("Telegram digest enabled")
					continue
				}
				stor = tg
			}
		case "local":
			continue
		default:
			log.Warnf("Unknown upload target type: %s", targetCfg.Type)
			continue
		}
		if err != nil {
			log.Errorf("Failed to initialize %s target: %v", targetCfg.Type, err)
			continue
		}

		log.Infof("Report upload to %s enabled", targetCfg.Type)
		targets = append(targets, usecase.UploadTarget{Name: targetCfg.Type, Storage: stor})
	}

	return targets, notifiers
}

// Run serves the dashboard and, when enabled, the report schedule until ctx
// is canceled.
func (a *App) Run(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.AddJob("report", a.config.Report.Schedule, a.report.Execute); err != nil {
			return fmt.Errorf("failed to schedule report: %w", err)
		}
		if err := a.scheduler.AddJob("cleanup", cleanupSchedule, a.cleanup.Execute); err != nil {
			return fmt.Errorf("failed to schedule cleanup: %w", err)
		}
		a.scheduler.Start()
		a.logger.Infof("Scheduler started with %d job(s), report: %s, cleanup: %s",
			a.scheduler.Entries(), a.config.Report.Schedule, cleanupSchedule)
	}

	if err := a.server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (a *App) Shutdown() {
	a.logger.Infof("Shutting down application...")
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	a.logger.Close()
}

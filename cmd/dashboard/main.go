package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/semmidev/bconsole-dashboard/internal/app"
	"github.com/semmidev/bconsole-dashboard/internal/config"
	"github.com/semmidev/bconsole-dashboard/internal/infrastructure/logger"
)

var CLI struct {
	Config string `long:"config" short:"c" env:"BDASH_CONFIG" description:"Path to the config file" default:"configs/config.yaml"`

	Addr string `long:"addr" env:"BDASH_ADDR" description:"Override http.addr from the config file"`

	DriveAuth bool `long:"drive-auth" description:"Run the Google Drive consent helper instead of the dashboard"`
}

func main() {
	parser := flags.NewParser(&CLI, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(); err != nil {
		log.Fatalf("Error: %v\n", err)
	}
}

func run() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if CLI.Addr != "" {
		cfg.HTTP.Addr = CLI.Addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if CLI.DriveAuth {
		return driveAuth(ctx, cfg)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer application.Shutdown()

	return application.Run(ctx)
}

func driveAuth(ctx context.Context, cfg *config.Config) error {
	l, err := logger.New(cfg.App.LogLevel, "")
	if err != nil {
		return err
	}
	defer l.Close()

	svc, err := app.NewGoogleOAuthService(l, cfg.Report.DriveClientSecret)
	if err != nil {
		return err
	}
	return svc.Serve(ctx, cfg.Report.DriveAuthAddr)
}

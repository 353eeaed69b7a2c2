// Package web serves the dashboard pages and their JSON mirrors.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/semmidev/bconsole-dashboard/internal/format"
	"github.com/semmidev/bconsole-dashboard/internal/usecase"
)

const shutdownWait = 10 * time.Second

// Dashboard is what the pages are built from.
type Dashboard interface {
	Overview(ctx context.Context) usecase.Overview
	JobHistory(ctx context.Context, jobName string) (usecase.JobHistory, error)
	Volume(ctx context.Context, volumeName string) (usecase.VolumeView, error)
	RunVolumes(ctx context.Context, jobName, jobID string) (usecase.RunVolumes, error)
	Ping(ctx context.Context) error
}

type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
}

type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
	Clock        format.Clock

	// RequestLogger returns a logger that tags entries with the request id.
	// Without it the id is written into the access log line.
	RequestLogger func(requestID string) Logger
}

type Server struct {
	opts       Options
	dashboard  Dashboard
	logger     Logger
	pages      *pages
	httpserver *http.Server
}

func NewServer(opts Options, dashboard Dashboard, logger Logger) (*Server, error) {
	if opts.Clock.Now == nil {
		opts.Clock.Now = time.Now
	}

	p, err := loadPages(opts.Clock)
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:      opts,
		dashboard: dashboard,
		logger:    logger,
		pages:     p,
	}
	s.httpserver = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Router(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s, nil
}

func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware, s.loggingMiddleware, metricsMiddleware)

	router.HandleFunc("/healthz", s.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/overview", s.apiOverview).Methods(http.MethodGet)
	api.HandleFunc("/job/{name}", s.apiJobHistory).Methods(http.MethodGet)
	api.HandleFunc("/job/{name}/runs/{id}/volumes", s.apiRunVolumes).Methods(http.MethodGet)
	api.HandleFunc("/volume/{id}", s.apiVolume).Methods(http.MethodGet)

	router.HandleFunc("/", s.overviewPage).Methods(http.MethodGet)
	router.HandleFunc("/job/{name}", s.jobPage).Methods(http.MethodGet)
	router.HandleFunc("/job/{name}/runs/{id}/volumes", s.runVolumesPage).Methods(http.MethodGet)
	router.HandleFunc("/volume/{id}", s.volumePage).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	return router
}

// Run serves until ctx is done, then drains open requests.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Infof("[http] Listening on %s", s.httpserver.Addr)
		if err := s.httpserver.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	s.logger.Infof("[http] Shutting down")
	return s.httpserver.Shutdown(shutdownCtx)
}

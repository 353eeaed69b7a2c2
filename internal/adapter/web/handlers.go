package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
)

type healthResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Health reports whether bconsole answers a `version` command.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.dashboard.Ping(r.Context()); err != nil {
		s.logger.Warnf("[http] Health check failed: %v", err)
		s.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{OK: true})
}

func (s *Server) overviewPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "overview", s.dashboard.Overview(r.Context()))
}

func (s *Server) apiOverview(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dashboard.Overview(r.Context()))
}

func (s *Server) jobPage(w http.ResponseWriter, r *http.Request) {
	s.handle(w, r, func(ctx context.Context, vars map[string]string) (interface{}, error) {
		return s.dashboard.JobHistory(ctx, vars["name"])
	}, "job")
}

func (s *Server) apiJobHistory(w http.ResponseWriter, r *http.Request) {
	s.handle(w, r, func(ctx context.Context, vars map[string]string) (interface{}, error) {
		return s.dashboard.JobHistory(ctx, vars["name"])
	}, "")
}

func (s *Server) runVolumesPage(w http.ResponseWriter, r *http.Request) {
	s.handle(w, r, func(ctx context.Context, vars map[string]string) (interface{}, error) {
		return s.dashboard.RunVolumes(ctx, vars["name"], vars["id"])
	}, "runvolumes")
}

func (s *Server) apiRunVolumes(w http.ResponseWriter, r *http.Request) {
	s.handle(w, r, func(ctx context.Context, vars map[string]string) (interface{}, error) {
		return s.dashboard.RunVolumes(ctx, vars["name"], vars["id"])
	}, "")
}

func (s *Server) volumePage(w http.ResponseWriter, r *http.Request) {
	s.handle(w, r, func(ctx context.Context, vars map[string]string) (interface{}, error) {
		return s.dashboard.Volume(ctx, vars["id"])
	}, "volume")
}

func (s *Server) apiVolume(w http.ResponseWriter, r *http.Request) {
	s.handle(w, r, func(ctx context.Context, vars map[string]string) (interface{}, error) {
		return s.dashboard.Volume(ctx, vars["id"])
	}, "")
}

// handle runs load with the route variables and writes the view as the
// named page, or as JSON when page is empty. Failed bconsole sections are
// part of the view and still answer 200.
func (s *Server) handle(
	w http.ResponseWriter,
	r *http.Request,
	load func(ctx context.Context, vars map[string]string) (interface{}, error),
	page string,
) {
	view, err := load(r.Context(), mux.Vars(r))
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	if page == "" {
		s.writeJSON(w, http.StatusOK, view)
		return
	}
	s.render(w, page, view)
}

func (s *Server) render(w http.ResponseWriter, page string, data interface{}) {
	body, err := s.pages.execute(page, data)
	if err != nil {
		s.logger.Errorf("[http] Rendering %s failed: %v", page, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("[http] Encoding response failed: %v", err)
	}
}

func mapError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled):
		return 499
	default:
		return http.StatusInternalServerError
	}
}

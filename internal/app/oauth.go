package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
}

// GoogleOAuthService walks an operator through the consent screen once and
// prints the refresh token for the gdrive report target.
type GoogleOAuthService struct {
	config *oauth2.Config
	logger Logger
	state  string
}

func NewGoogleOAuthService(logger Logger, clientSecretPath string) (*GoogleOAuthService, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if clientSecretPath == "" {
		return nil, errors.New("client secret path cannot be empty")
	}

	b, err := os.ReadFile(clientSecretPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret: %w", err)
	}

	cfg, err := google.ConfigFromJSON(b, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret: %w", err)
	}

	return &GoogleOAuthService{
		config: cfg,
		logger: logger,
		state:  uuid.NewString(),
	}, nil
}

func (s *GoogleOAuthService) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/auth/google/drive", s.redirect).Methods(http.MethodGet)
	router.HandleFunc("/auth/google/callback", s.callback).Methods(http.MethodGet)
	return router
}

func (s *GoogleOAuthService) redirect(w http.ResponseWriter, r *http.Request) {
	authURL := s.config.AuthCodeURL(s.state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

func (s *GoogleOAuthService) callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("state") != s.state {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}
	code := q.Get("code")
	if code == "" {
		http.Error(w, "missing code parameter", http.StatusBadRequest)
		return
	}

	token, err := s.config.Exchange(r.Context(), code)
	if err != nil {
		s.logger.Errorf("[oauth] Token exchange failed: %v", err)
		http.Error(w, "token exchange failed", http.StatusBadGateway)
		return
	}
	if token.RefreshToken == "" {
		fmt.Fprintln(w, "No refresh token returned. Revoke the app's access and authorize again.")
		return
	}

	s.logger.Infof("[oauth] Refresh token received")
	fmt.Fprintf(w, "Refresh token:\n%s\n", token.RefreshToken)
}

// Serve runs the consent helper on addr until ctx is canceled.
func (s *GoogleOAuthService) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Infof("[oauth] Open http://%s/auth/google/drive to authorize Google Drive", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown OAuth server: %w", err)
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
)

type fakeLogger struct {
	mu     sync.Mutex
	errors []string
	warns  []string
}

func (l *fakeLogger) Infof(template string, args ...interface{}) {}

func (l *fakeLogger) Errorf(template string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(template, args...))
}

func (l *fakeLogger) Warnf(template string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(template, args...))
}

// fakeConsole answers commands from a fixed table.
type fakeConsole struct {
	mu       sync.Mutex
	outputs  map[string]string
	failures map[string]error
	calls    []string
}

func newFakeConsole() *fakeConsole {
	return &fakeConsole{outputs: map[string]string{}, failures: map[string]error{}}
}

func (c *fakeConsole) Execute(ctx context.Context, command string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, command)
	if err, ok := c.failures[command]; ok {
		return "", err
	}
	out, ok := c.outputs[command]
	if !ok {
		return "", fmt.Errorf("%w: unexpected command %q", domain.ErrCommandFailed, command)
	}
	return out, nil
}

type fakeStorage struct {
	mu       sync.Mutex
	uploads  map[string][]byte
	files    []string
	old      []string
	oldErr   error
	listErr  error
	deleted  []string
	upErr    error
	basePath string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string][]byte{}}
}

func (s *fakeStorage) Upload(ctx context.Context, localPath string, remoteName string) error {
	if s.upErr != nil {
		return s.upErr
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[remoteName] = data
	return nil
}

func (s *fakeStorage) List(ctx context.Context) ([]string, error) {
	return s.files, s.listErr
}

func (s *fakeStorage) Delete(ctx context.Context, remoteName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, remoteName)
	return nil
}

func (s *fakeStorage) GetOldFiles(ctx context.Context, cutoffTime time.Time) ([]string, error) {
	return s.old, s.oldErr
}

func (s *fakeStorage) GetPath(filename string) string {
	return s.basePath + "/" + filename
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Notify(ctx context.Context, message string) error {
	n.messages = append(n.messages, message)
	return nil
}

type copyCompressor struct{}

func (copyCompressor) Compress(sourcePath, destPath string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return err
	}
	return os.WriteFile(destPath, data, 0644)
}

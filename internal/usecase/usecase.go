package usecase

import "github.com/semmidev/bconsole-dashboard/internal/domain"

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

type UploadTarget struct {
	Name    string
	Storage domain.Storage
}

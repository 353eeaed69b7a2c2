package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCommandTimeout  = errors.New("console command timed out")
	ErrCommandFailed   = errors.New("console command failed")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

// SectionError marks a part of a view that could not be loaded.
type SectionError struct {
	Section string `json:"section"`
	Command string `json:"command"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e SectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Section, e.Message)
}

const (
	CommandOK      = "ok"
	CommandTimeout = "timeout"
	CommandError   = "error"
)

// CommandStatus classifies the error returned by a Console.
func CommandStatus(err error) string {
	switch {
	case err == nil:
		return CommandOK
	case errors.Is(err, ErrCommandTimeout):
		return CommandTimeout
	default:
		return CommandError
	}
}

func NewSectionError(section, command string, err error) *SectionError {
	return &SectionError{
		Section: section,
		Command: command,
		Status:  CommandStatus(err),
		Message: err.Error(),
	}
}

package console

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/semmidev/bconsole-dashboard/internal/config"
	"github.com/semmidev/bconsole-dashboard/internal/domain"
)

const (
	DefaultBinary  = "bconsole"
	DefaultTimeout = 10 * time.Second

	// waitDelay bounds how long a killed bconsole may hold its output open.
	waitDelay = time.Second
)

// Bconsole runs one command per bconsole process. The command is written to
// stdin; no shell is involved.
type Bconsole struct {
	binary  string
	args    []string
	timeout time.Duration
}

func NewBconsole(cfg *config.ConsoleConfig) *Bconsole {
	binary := cfg.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	args := []string{"-n"}
	if cfg.ConfigFile != "" {
		args = append(args, "-c", cfg.ConfigFile)
	}
	args = append(args, cfg.ExtraArgs...)

	return &Bconsole{binary: binary, args: args, timeout: timeout}
}

func (b *Bconsole) Execute(ctx context.Context, command string) (string, error) {
	if command == "" || strings.ContainsAny(command, "\r\n") {
		return "", fmt.Errorf("%w: command %q", domain.ErrInvalidArgument, command)
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.binary, b.args...)
	cmd.Stdin = strings.NewReader(command + "\n")
	cmd.WaitDelay = waitDelay

	output, err := cmd.CombinedOutput()
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s: %s", domain.ErrCommandTimeout, b.timeout, command)
		}
		return "", fmt.Errorf("%s: %w", command, ctxErr)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v, output: %s", domain.ErrCommandFailed, command, err, strings.TrimSpace(string(output)))
	}

	return CleanOutput(string(output), command), nil
}

// CleanOutput drops the connection banner that precedes the echoed command.
// Output without an echo is returned whole.
func CleanOutput(output, command string) string {
	output = strings.ReplaceAll(output, "\r\n", "\n")

	if _, after, found := strings.Cut(output, "\n"+command+"\n"); found {
		return strings.TrimSpace(after)
	}
	if strings.HasPrefix(output, command+"\n") {
		return strings.TrimSpace(strings.TrimPrefix(output, command+"\n"))
	}
	return strings.TrimSpace(output)
}

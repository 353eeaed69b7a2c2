package domain

import "context"

// Console runs a single bconsole command and returns its cleaned output.
type Console interface {
	Execute(ctx context.Context, command string) (string, error)
}

package parser

import (
	"strings"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
)

const (
	jobHeaderPrefix = "Job:"
	clientPrefix    = "--> Client:"
	schedulePrefix  = "--> Schedule:"
	fileSetPrefix   = "--> FileSet:"
)

// ParseJobConfig parses the resource dump of `show jobs`. Jobs keep the
// order in which they appear.
func ParseJobConfig(out string) []domain.JobDefinition {
	jobs := make([]domain.JobDefinition, 0)
	var current *domain.JobDefinition

	flush := func() {
		if current != nil {
			jobs = append(jobs, *current)
			current = nil
		}
	}

	for _, raw := range lines(out) {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, jobHeaderPrefix):
			flush()
			name, ok := tokenValue(line, "name=")
			if !ok {
				continue
			}
			current = &domain.JobDefinition{Name: name, Enabled: true}
			if enabled, ok := tokenValue(line, "Enabled="); ok {
				current.Enabled = enabled != "0"
			}
		case current == nil:
			continue
		case strings.HasPrefix(line, clientPrefix):
			setOnce(&current.Client, line, "Name=")
		case strings.HasPrefix(line, schedulePrefix):
			setOnce(&current.Schedule, line, "Name=")
		case strings.HasPrefix(line, fileSetPrefix):
			setOnce(&current.FileSet, line, "name=")
		}
	}
	flush()

	return jobs
}

// setOnce keeps the first value seen; nested resources repeat these prefixes.
func setOnce(field *string, line, key string) {
	if *field != "" {
		return
	}
	if v, ok := tokenValue(line, key); ok {
		*field = v
	}
}

// tokenValue returns the value of a key=value token. A value runs until the
// next whitespace separated token that itself looks like key=value, so
// "name=Full Set IgnoreFileSetChanges=0" yields "Full Set".
func tokenValue(line, key string) (string, bool) {
	fields := strings.Fields(line)
	for i, f := range fields {
		if !strings.HasPrefix(f, key) {
			continue
		}
		parts := []string{strings.TrimPrefix(f, key)}
		for _, next := range fields[i+1:] {
			if isKeyValue(next) {
				break
			}
			parts = append(parts, next)
		}
		v := strings.Trim(strings.Join(parts, " "), `"`)
		return v, v != ""
	}
	return "", false
}

func isKeyValue(token string) bool {
	i := strings.IndexByte(token, '=')
	return i > 0
}

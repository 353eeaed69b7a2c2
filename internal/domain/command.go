package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Bconsole commands issued by the dashboard. All of them are read-only.
const (
	CommandShowJobs      = "show jobs"
	CommandListJobTotals = "list jobtotals"
	CommandVersion       = "version"
)

func ListJobsCommand(days int) string {
	if days <= 0 {
		return "list jobs"
	}
	return fmt.Sprintf("list jobs days=%d", days)
}

// JobHistoryCommand lists every run of one job.
func JobHistoryCommand(jobName string) (string, error) {
	arg, err := QuoteArgument(jobName)
	if err != nil {
		return "", err
	}
	return "list jobs job=" + arg, nil
}

// VolumeCommand prints the catalog record of one volume as key: value lines.
func VolumeCommand(volumeName string) (string, error) {
	arg, err := QuoteArgument(volumeName)
	if err != nil {
		return "", err
	}
	return "llist volume=" + arg, nil
}

func JobMediaCommand(jobID string) (string, error) {
	if _, err := strconv.ParseUint(jobID, 10, 64); err != nil {
		return "", fmt.Errorf("%w: job id %q", ErrInvalidArgument, jobID)
	}
	return "list jobmedia jobid=" + jobID, nil
}

// QuoteArgument validates a resource name taken from a request and quotes it
// when it contains blanks. Names that could end the command line or escape
// the quotes are rejected.
func QuoteArgument(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidArgument)
	}
	for _, r := range value {
		if unicode.IsControl(r) || r == '"' || r == '\\' {
			return "", fmt.Errorf("%w: name %q", ErrInvalidArgument, value)
		}
	}
	if strings.ContainsAny(value, " \t") {
		return `"` + value + `"`, nil
	}
	return value, nil
}

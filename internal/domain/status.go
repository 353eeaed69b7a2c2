package domain

// Bacula job status codes as printed in the JobStatus column.
const (
	StatusTerminated   = "T"
	StatusRunning      = "R"
	StatusCreated      = "C"
	StatusError        = "E"
	StatusNonFatal     = "e"
	StatusFatal        = "f"
	StatusCanceled     = "A"
	StatusWarnings     = "W"
	StatusWaitingStore = "S"
)

var jobStatusLabels = map[string]string{
	StatusTerminated:   "Terminated",
	StatusRunning:      "Running",
	StatusCreated:      "Created",
	StatusError:        "Error",
	StatusNonFatal:     "Non-fatal error",
	StatusFatal:        "Fatal error",
	StatusCanceled:     "Canceled",
	StatusWarnings:     "Terminated with warnings",
	StatusWaitingStore: "Waiting for storage",
	"D":                "Verify differences",
	"B":                "Blocked",
	"F":                "Waiting for client",
	"M":                "Waiting for media mount",
	"m":                "Waiting for new media",
	"s":                "Waiting for storage resource",
	"j":                "Waiting for job resource",
	"c":                "Waiting for client resource",
	"d":                "Waiting for maximum jobs",
	"t":                "Waiting for start time",
	"p":                "Waiting for higher priority jobs",
	"i":                "Doing batch insert",
	"I":                "Incomplete",
}

var jobLevelLabels = map[string]string{
	"F": "Full",
	"I": "Incremental",
	"D": "Differential",
	"S": "Since",
	"C": "Verify from catalog",
	"V": "Verify init",
	"O": "Verify volume to catalog",
	"d": "Verify disk to catalog",
	"A": "Verify data on volume",
	"B": "Base",
	" ": "None",
}

var jobTypeLabels = map[string]string{
	"B": "Backup",
	"R": "Restore",
	"V": "Verify",
	"A": "Admin",
	"D": "Admin",
	"C": "Copy",
	"c": "Copy job",
	"M": "Migrated",
	"g": "Migration",
	"U": "Console",
	"I": "Internal",
	"S": "Scan",
}

// JobStatusLabel returns a readable label for a status code. Unknown codes
// are returned as given.
func JobStatusLabel(code string) string {
	return lookupLabel(jobStatusLabels, code)
}

func JobLevelLabel(code string) string {
	return lookupLabel(jobLevelLabels, code)
}

func JobTypeLabel(code string) string {
	return lookupLabel(jobTypeLabels, code)
}

// IsFailedStatus reports whether a run ended in an error state.
func IsFailedStatus(code string) bool {
	switch code {
	case StatusError, StatusNonFatal, StatusFatal:
		return true
	}
	return false
}

func lookupLabel(labels map[string]string, code string) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return code
}

package console

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
)

var CommandsCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "bconsole_dashboard",
	Subsystem: "console",
	Name:      "commands_total",
	Help:      "Count of bconsole commands by command and outcome",
}, []string{"command", "status"})

var CommandsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "bconsole_dashboard",
	Subsystem: "console",
	Name:      "command_duration_seconds",
	Help:      "Duration of bconsole commands",
	Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
}, []string{"command"})

// Instrumented records metrics for every command of the wrapped console.
type Instrumented struct {
	next domain.Console
}

func NewInstrumented(next domain.Console) *Instrumented {
	return &Instrumented{next: next}
}

func (i *Instrumented) Execute(ctx context.Context, command string) (string, error) {
	start := time.Now()
	out, err := i.next.Execute(ctx, command)

	label := CommandLabel(command)
	CommandsDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	CommandsCount.WithLabelValues(label, domain.CommandStatus(err)).Inc()
	return out, err
}

// CommandLabel strips arguments so job and volume names do not become
// label values.
func CommandLabel(command string) string {
	var words []string
	for _, w := range strings.Fields(command) {
		if strings.Contains(w, "=") {
			break
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return "unknown"
	}
	return strings.Join(words, " ")
}

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
	"github.com/semmidev/bconsole-dashboard/internal/format"
	"github.com/semmidev/bconsole-dashboard/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"overview", "job", "runvolumes", "volume"}

type pages struct {
	byName map[string]*template.Template
}

func loadPages(clock format.Clock) (*pages, error) {
	funcs := template.FuncMap{
		"relative":    clock.Relative,
		"date":        clock.Date,
		"runBytes":    func(r *domain.JobRun) string { return usecase.RunBytes(*r) },
		"statusLabel": domain.JobStatusLabel,
		"levelLabel":  domain.JobLevelLabel,
		"typeLabel":   domain.JobTypeLabel,
		"failed":      domain.IsFailedStatus,
		"stamp":       func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
		"percent":     func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	}

	p := &pages{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		p.byName[name] = t
	}
	return p, nil
}

// execute renders into a buffer so a template error never leaves a half
// written page behind.
func (p *pages) execute(name string, data interface{}) ([]byte, error) {
	t, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package parser

import (
	"strings"

	"github.com/semmidev/bconsole-dashboard/internal/domain"
)

// ParseVolumeDetail parses the "Key: value" listing of `llist volume=`.
func ParseVolumeDetail(name, out string) domain.VolumeDetail {
	detail := domain.VolumeDetail{Name: name, Fields: make([]domain.VolumeField, 0)}
	for _, line := range lines(out) {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		detail.Fields = append(detail.Fields, domain.VolumeField{Key: key, Value: strings.TrimSpace(value)})
	}
	return detail
}

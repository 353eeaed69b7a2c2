package parser

import "strings"

const volumeNameColumn = "volumename"

// ParseJobMedia returns the distinct volume names of a `list jobmedia`
// table in order of appearance.
func ParseJobMedia(out string) []string {
	volumes := make([]string, 0)
	seen := make(map[string]bool)
	column := -1

	for _, line := range lines(out) {
		if !strings.Contains(line, "|") || isBorder(line) {
			continue
		}
		cells := splitRow(line)
		if column < 0 {
			for i, c := range cells {
				if strings.EqualFold(c, volumeNameColumn) {
					column = i
				}
			}
			continue
		}
		if column >= len(cells) {
			continue
		}
		name := cells[column]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		volumes = append(volumes, name)
	}

	return volumes
}

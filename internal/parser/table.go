// Package parser turns bconsole replies into domain records. Parsers never
// fail: lines they cannot make sense of are skipped.
package parser

import "strings"

// borderChars start the horizontal rules of bconsole tables.
const borderChars = "+-="

// lines splits a reply into lines without a length limit.
func lines(out string) []string {
	if out == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n")
}

// splitRow splits a pipe-delimited row into trimmed cells. The outer border
// pipes are not cells.
func splitRow(line string) []string {
	row := strings.TrimSpace(line)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	cells := strings.Split(row, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func isBorder(line string) bool {
	row := strings.TrimSpace(line)
	return row != "" && strings.ContainsRune(borderChars, rune(row[0]))
}

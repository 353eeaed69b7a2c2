package format

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// InvalidSize is shown in place of a byte count that is not a number.
const InvalidSize = "invalid"

var ErrInvalidNumber = errors.New("not a number")

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// Bytes renders n with a 1024-based unit, e.g. 1536 -> "1.50 KB".
func Bytes(n int64) string {
	return ByteValue(float64(n))
}

func ByteValue(v float64) string {
	if v == 0 {
		return "0 B"
	}
	unit := 0
	for math.Abs(v) >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + " " + byteUnits[unit]
}

// ParseByteCount parses a number that may carry thousands separators,
// such as "1,234,567".
func ParseByteCount(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return 0, ErrInvalidNumber
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// BytesString formats a textual byte count. Non-numeric input yields InvalidSize.
func BytesString(s string) string {
	v, err := ParseByteCount(s)
	if err != nil {
		return InvalidSize
	}
	return ByteValue(v)
}

// ParseCount parses an integer column such as "12,345".
func ParseCount(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return n, nil
}

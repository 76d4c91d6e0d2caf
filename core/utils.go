package core

import (
	"regexp"
	"strings"
	"time"
)

var (
	wsRegex  = regexp.MustCompile(`\s+`)
	ymdRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NormalizeCode uppercases a class/attendance code and strips all whitespace.
func NormalizeCode(s string) string {
	return wsRegex.ReplaceAllString(strings.ToUpper(strings.TrimSpace(s)), "")
}

// IsYMD reports whether s is a strict YYYY-MM-DD date string.
func IsYMD(s string) bool {
	return ymdRegex.MatchString(s)
}

// ParseYMD parses a strict YYYY-MM-DD date string.
func ParseYMD(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// CompareYMD orders two YYYY-MM-DD strings. The format is fixed-width so
// lexicographic comparison is equivalent to chronological order.
func CompareYMD(a, b string) int {
	return strings.Compare(a, b)
}

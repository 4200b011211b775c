package utils

import "strconv"

// ParseIntDefault parses s as an int, returning fallback on failure.
// Used for pagination query parameters.
func ParseIntDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

package utils

import "os"

// Getenv returns the named environment variable, or fallback when it is
// unset or empty. All gateway configuration in cmd/server goes through here.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

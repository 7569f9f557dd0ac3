// Package env holds the bare environment lookups needed before the full
// configuration is loaded (the logger boots first).
package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of the given environment variable, or the
// fallback when unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// Bool reads a boolean-ish environment variable. Only "1", "true" and "yes"
// count as true.
func Bool(key string, fallback bool) bool {
	val := strings.ToLower(Get(key, ""))
	if val == "" {
		return fallback
	}
	switch val {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

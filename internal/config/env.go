package config

import (
	"log"
	"os"
	"strings"
)

// MustEnv returns the value of a required variable or stops the process.
// Used by one-shot tools where a missing value has no sensible default.
func MustEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		log.Fatalf("ENV %s is required", key)
	}
	return value
}

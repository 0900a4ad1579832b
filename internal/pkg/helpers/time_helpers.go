package helpers

import "time"

// ParseDuration parses a duration string, falling back to a default on error.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

package utils

import (
	"fmt"
	"time"
)

// FormatAge formats a time duration into a human-readable age string
func FormatAge(t time.Time) string {
	return FormatAgeAt(t, time.Now())
}

// FormatAgeAt formats the age of t relative to now
func FormatAgeAt(t, now time.Time) string {
	duration := now.Sub(t)

	// Handle future times or negative durations
	if duration < 0 {
		return "0s"
	}

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	} else if duration < time.Hour {
		return fmt.Sprintf("%dm", int(duration.Minutes()))
	} else if duration < 24*time.Hour {
		return fmt.Sprintf("%dh", int(duration.Hours()))
	}
	return fmt.Sprintf("%dd", int(duration.Hours()/24))
}

package plan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// estimatePattern matches estimate strings like "30m", "4h", "2d", "1w".
var estimatePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(m|h|d|w)$`)

// Conversion constants for estimate shorthand.
const (
	MinutesPerHour = 60
	HoursPerDay    = 8 // Assume 8-hour work day
	DaysPerWeek    = 5 // Assume 5-day work week
)

// ParseEstimate converts an estimate string into minutes. Supported formats
// are "30m", "4h", "2d", "1w" and bare numbers, which are taken as minutes.
// The empty string parses to zero.
func ParseEstimate(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, nil
	}

	if minutes, err := strconv.ParseFloat(s, 64); err == nil {
		return minutes, nil
	}

	matches := estimatePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid estimate format: %s (expected: 30m, 4h, 2d, or 1w)", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid estimate value: %s", matches[1])
	}

	switch matches[2] {
	case "m":
		return value, nil
	case "h":
		return value * MinutesPerHour, nil
	case "d":
		return value * HoursPerDay * MinutesPerHour, nil
	case "w":
		return value * DaysPerWeek * HoursPerDay * MinutesPerHour, nil
	}
	return 0, fmt.Errorf("invalid estimate format: %s", s)
}

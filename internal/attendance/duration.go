// Package attendance implements the work-time normalization and
// aggregation pipeline: duration parsing, break deduction, record
// normalization, dataset accumulation and summary rollups.
package attendance

import (
	"fmt"
	"strconv"
	"strings"
)

// Duration is a non-negative elapsed work time with minute granularity.
type Duration int

// hourUnit and minuteUnit are the Korean unit suffixes found in the
// 근무시간(시간단위) column of the source workbooks.
const (
	hourUnit   = "시간"
	minuteUnit = "분"
)

// NewDuration builds a Duration from an hour and minute count.
func NewDuration(hours, minutes int) Duration {
	return Duration(hours*60 + minutes)
}

// TotalMinutes returns the duration in whole minutes.
func (d Duration) TotalMinutes() int {
	return int(d)
}

// InHours returns the duration as a decimal hour count.
func (d Duration) InHours() float64 {
	return float64(d) / 60
}

// String renders the duration as "H시간 M분".
func (d Duration) String() string {
	return fmt.Sprintf("%d%s %d%s", int(d)/60, hourUnit, int(d)%60, minuteUnit)
}

// ParseDuration converts a free-text work-time label into a Duration.
// Recognized forms are "N시간", "N시간 M분" and "M분". An empty or
// missing value is a zero duration, not an error; anything else
// fails with a *ParseError.
func ParseDuration(text string) (Duration, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, nil
	}

	if i := strings.Index(s, hourUnit); i >= 0 {
		hours, err := parseCount(s[:i])
		if err != nil {
			return 0, &ParseError{Text: text}
		}
		rest := strings.TrimSpace(s[i+len(hourUnit):])
		minutes := 0
		if rest != "" {
			if !strings.HasSuffix(rest, minuteUnit) {
				return 0, &ParseError{Text: text}
			}
			minutes, err = parseCount(strings.TrimSuffix(rest, minuteUnit))
			if err != nil {
				return 0, &ParseError{Text: text}
			}
		}
		return NewDuration(hours, minutes), nil
	}

	if strings.HasSuffix(s, minuteUnit) {
		minutes, err := parseCount(strings.TrimSuffix(s, minuteUnit))
		if err != nil {
			return 0, &ParseError{Text: text}
		}
		return NewDuration(0, minutes), nil
	}

	return 0, &ParseError{Text: text}
}

// parseCount parses a non-negative integer after trimming whitespace.
func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count: %d", n)
	}
	return n, nil
}

// FormatHoursMinutes renders a decimal hour count as "H시간 M분",
// truncating to whole minutes.
func FormatHoursMinutes(hours float64) string {
	totalMinutes := int(hours * 60)
	return fmt.Sprintf("%d%s %d%s", totalMinutes/60, hourUnit, totalMinutes%60, minuteUnit)
}

package util

import (
	"fmt"
	"time"

	"github.com/carteira-app/carteira-backend/internal/domain"
)

// periodLen is the length of a "YYYY-MM" key
const periodLen = 7

// CurrentPeriod returns the period key for the present calendar month
func CurrentPeriod() string {
	return PeriodOf(time.Now())
}

// PeriodOf returns the period key for the month containing t
func PeriodOf(t time.Time) string {
	return FormatPeriod(t.Year(), int(t.Month()))
}

// FormatPeriod builds a "YYYY-MM" key from a year and month number
func FormatPeriod(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParsePeriod splits a "YYYY-MM" key into year and month, validating both
func ParsePeriod(key string) (year, month int, err error) {
	if len(key) != periodLen || key[4] != '-' {
		return 0, 0, domain.ErrInvalidPeriod
	}
	if _, err := fmt.Sscanf(key, "%4d-%2d", &year, &month); err != nil {
		return 0, 0, domain.ErrInvalidPeriod
	}
	if month < 1 || month > 12 {
		return 0, 0, domain.ErrInvalidPeriod
	}
	// Sscanf tolerates a short month with trailing garbage ("2024-9 "); only
	// keys that round-trip to the canonical form are valid
	if FormatPeriod(year, month) != key {
		return 0, 0, domain.ErrInvalidPeriod
	}
	return year, month, nil
}

// PreviousPeriod returns the adjacent earlier period, rolling the year
// boundary (2024-01 -> 2023-12)
func PreviousPeriod(key string) (string, error) {
	year, month, err := ParsePeriod(key)
	if err != nil {
		return "", err
	}
	if month == 1 {
		return FormatPeriod(year-1, 12), nil
	}
	return FormatPeriod(year, month-1), nil
}

// NextPeriod returns the adjacent later period, rolling the year boundary
// (2024-12 -> 2025-01)
func NextPeriod(key string) (string, error) {
	year, month, err := ParsePeriod(key)
	if err != nil {
		return "", err
	}
	if month == 12 {
		return FormatPeriod(year+1, 1), nil
	}
	return FormatPeriod(year, month+1), nil
}

// MatchesPeriod reports whether an ISO "YYYY-MM-DD" date falls in the given
// period. This is a strict prefix comparison, not a calendar range check; a
// malformed date simply never matches.
func MatchesPeriod(date, key string) bool {
	return len(date) >= periodLen && date[:periodLen] == key
}

// ValidDate reports whether date is a well-formed "YYYY-MM-DD" calendar day
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

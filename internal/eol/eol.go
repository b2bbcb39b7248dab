// Package eol implements the end-of-life date arithmetic for the dhi-eol CLI.
//
// The Docker Scout catalog reports EOL dates as strings in "YYYY-MM-DD" form,
// optionally with a time suffix. This package parses those strings, computes
// the signed day delta against "today", and renders the delta as a rounded
// years/months/days breakdown for console output.
package eol

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the calendar date layout used by the Scout API.
const dateLayout = "2006-01-02"

// Rounding constants for the human-readable breakdown. The breakdown is
// intentionally coarse: a 365-day year and a 30-day month, with the
// remainder reported as days. EOL dates are planning information, not
// deadlines that need calendar-exact arithmetic.
const (
	daysPerYear  = 365
	daysPerMonth = 30
)

// Status describes an EOL date relative to a reference day.
type Status struct {
	// Date is the parsed EOL calendar date (midnight UTC).
	Date time.Time

	// DaysRemaining is the signed day delta between the EOL date and the
	// reference day. Negative means the EOL date has passed.
	DaysRemaining int
}

// PastEOL reports whether the EOL date lies in the past.
func (s Status) PastEOL() bool {
	return s.DaysRemaining < 0
}

// ParseDate parses the first 10 characters of an EOL string as a calendar
// date. Scout may return either a bare date ("2027-04-30") or a timestamp
// ("2027-04-30T00:00:00Z"); truncating to 10 characters handles both.
//
// Returns an error for strings shorter than 10 characters or with a
// malformed date portion. Callers treat that as a warning, never as a
// fatal condition.
func ParseDate(eol string) (time.Time, error) {
	if len(eol) < len(dateLayout) {
		return time.Time{}, fmt.Errorf("EOL string %q is too short for a %s date", eol, dateLayout)
	}
	d, err := time.Parse(dateLayout, eol[:len(dateLayout)])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid EOL date %q: %w", eol, err)
	}
	return d, nil
}

// StatusAt computes the Status of an EOL string relative to the given
// reference time. Only the calendar date portion of now is significant;
// the delta is a whole number of days.
func StatusAt(eol string, now time.Time) (Status, error) {
	date, err := ParseDate(eol)
	if err != nil {
		return Status{}, err
	}

	// Truncate the reference time to its calendar date so that the delta
	// is stable over the course of a day regardless of wall-clock time.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(date.Sub(today).Hours() / 24)

	return Status{Date: date, DaysRemaining: days}, nil
}

// FormatDays renders an absolute day count as a rounded breakdown of
// years, months, and days with correct pluralization:
//
//	FormatDays(400) → "1 year, 1 month, 5 days"
//	FormatDays(31)  → "1 month, 1 day"
//	FormatDays(0)   → "0 days"
//
// Zero-valued components are omitted, except that a zero total renders
// as "0 days". Negative inputs are treated as their absolute value;
// direction (remaining vs. past) is the caller's concern.
func FormatDays(days int) string {
	if days < 0 {
		days = -days
	}

	years := days / daysPerYear
	rem := days % daysPerYear
	months := rem / daysPerMonth
	rem = rem % daysPerMonth

	var parts []string
	if years > 0 {
		parts = append(parts, pluralize(years, "year"))
	}
	if months > 0 {
		parts = append(parts, pluralize(months, "month"))
	}
	if rem > 0 {
		parts = append(parts, pluralize(rem, "day"))
	}
	if len(parts) == 0 {
		return "0 days"
	}
	return strings.Join(parts, ", ")
}

// pluralize renders "N unit" or "N units" depending on N.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseableDate is returned when a journal date does not have the
// "<month> <day>, <year>" shape or names an impossible day.
var ErrUnparseableDate = errors.New("unparseable journal date")

// ErrInvalidMonth is returned by ParseMonth for anything but YYYY-MM.
var ErrInvalidMonth = errors.New("invalid month")

// monthNames maps the first three letters of an English month name to its number.
var monthNames = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

var (
	// ordinalPattern matches a day number followed by an English ordinal suffix ("1st", "22nd", "3rd", "4th")
	ordinalPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	// punctuationPattern matches separators allowed between date parts
	punctuationPattern = regexp.MustCompile(`[,;.]+`)
	monthPattern       = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	dayPattern         = regexp.MustCompile(`^\d{1,2}$`)
	yearPattern        = regexp.MustCompile(`^\d{4}$`)
)

// Month identifies a calendar month of a specific year.
type Month struct {
	Year  int
	Month time.Month
}

// String returns the month in YYYY-MM form.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Contains reports whether t falls in the month, using t's own calendar fields.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a target month in YYYY-MM format.
//
// Valid inputs:
//   - "2026-02"
//   - "1999-12"
//
// Invalid inputs return an error wrapping ErrInvalidMonth with a suggested format.
func ParseMonth(input string) (Month, error) {
	if input == "" {
		return Month{}, fmt.Errorf("%w: month cannot be empty (use format YYYY-MM, e.g., 2026-02)", ErrInvalidMonth)
	}

	matches := monthPattern.FindStringSubmatch(input)
	if matches == nil {
		return Month{}, fmt.Errorf("%w '%s' (use format YYYY-MM, e.g., 2026-02)", ErrInvalidMonth, input)
	}

	year, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w '%s': month must be between 01 and 12", ErrInvalidMonth, input)
	}

	return Month{Year: year, Month: time.Month(month)}, nil
}

// ParseJournalDate parses a journal heading date such as "February 3rd, 2026",
// "Feb 3, 2026" or the CSV display form "Feb 3rd; 2026".
// Ordinal suffixes and punctuation are ignored, and the month is matched on its
// first three letters, case-insensitively.
// The returned time is midnight of that day in local time.
func ParseJournalDate(input string) (time.Time, error) {
	normalized := ordinalPattern.ReplaceAllString(input, "$1")
	normalized = punctuationPattern.ReplaceAllString(normalized, " ")

	fields := strings.Fields(normalized)
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, input)
	}

	name := strings.ToLower(fields[0])
	if len(name) < 3 {
		return time.Time{}, fmt.Errorf("%w: %q: month name too short", ErrUnparseableDate, input)
	}
	month, ok := monthNames[name[:3]]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q: unknown month %q", ErrUnparseableDate, input, fields[0])
	}

	if !dayPattern.MatchString(fields[1]) || !yearPattern.MatchString(fields[2]) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, input)
	}
	day, _ := strconv.Atoi(fields[1])
	year, _ := strconv.Atoi(fields[2])

	if day < 1 || day > DaysIn(year, month) {
		return time.Time{}, fmt.Errorf("%w: %q: %s %d has no day %d", ErrUnparseableDate, input, month, year, day)
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.Local), nil
}

// MatchResult is the outcome of checking a journal date against a month.
type MatchResult int

const (
	// MatchUnparseable means the date string could not be parsed
	MatchUnparseable MatchResult = iota
	// MatchOtherMonth means the date parsed but belongs to a different month
	MatchOtherMonth
	// MatchInMonth means the date falls inside the target month
	MatchInMonth
)

// String returns a short label for the result.
func (r MatchResult) String() string {
	switch r {
	case MatchInMonth:
		return "in-month"
	case MatchOtherMonth:
		return "other-month"
	default:
		return "unparseable"
	}
}

// MatchMonth classifies a journal date string against the target month.
func MatchMonth(input string, target Month) MatchResult {
	t, err := ParseJournalDate(input)
	if err != nil {
		return MatchUnparseable
	}
	if target.Contains(t) {
		return MatchInMonth
	}
	return MatchOtherMonth
}

// InMonth reports whether the journal date falls in the target month.
// Unparseable dates are treated as not matching.
func InMonth(input string, target Month) bool {
	return MatchMonth(input, target) == MatchInMonth
}

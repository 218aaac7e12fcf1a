package entry

import (
	"fmt"
	"strconv"
	"time"
)

// Entry represents a single billable time entry extracted from a journal
type Entry struct {
	Date        time.Time `json:"date" yaml:"date"`
	RawDate     string    `json:"raw_date" yaml:"raw_date"`
	Dated       bool      `json:"dated" yaml:"dated"`
	Description string    `json:"description" yaml:"description"`
	Hours       float64   `json:"hours" yaml:"hours"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty"`
}

// DisplayDate returns the date as written to the invoice.
// Entries whose heading could not be parsed fall back to the raw heading text
// with the year comma replaced.
func (e Entry) DisplayDate() string {
	if !e.Dated {
		return SemicolonDate(e.RawDate)
	}
	return FormatDate(e.Date)
}

// FormatDate formats t as "Feb 3rd; 2026".
// The year is separated by a semicolon so the date never splits a CSV row.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %s; %d", t.Format("Jan"), Ordinal(t.Day()), t.Year())
}

// Ordinal returns n with its English ordinal suffix (1st, 2nd, 3rd, 4th, 11th, 22nd)
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// FormatHours formats an hour value in its shortest decimal form ("2.5", "3", "0.25").
// Values are rounded to six decimals first so accumulated float sums print cleanly.
func FormatHours(hours float64) string {
	return strconv.FormatFloat(RoundHours(hours), 'f', -1, 64)
}

// RoundHours rounds an hour value to six decimal places.
func RoundHours(hours float64) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(hours, 'f', 6, 64), 64)
	return rounded
}

// TotalHours sums the hours of all entries
func TotalHours(entries []Entry) float64 {
	total := 0.0
	for _, e := range entries {
		total += e.Hours
	}
	return total
}

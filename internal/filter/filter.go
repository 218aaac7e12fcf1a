package filter

import (
	"github.com/xolan/timesheet/internal/entry"
	"github.com/xolan/timesheet/internal/timeutil"
)

// Filter selects the entries that belong on an invoice.
// With AllMonths set every entry matches, including undated ones.
type Filter struct {
	Month     timeutil.Month // Target invoice month
	AllMonths bool           // Disable month filtering (full export)
}

// NewFilter creates a Filter for a single month
func NewFilter(month timeutil.Month) *Filter {
	return &Filter{Month: month}
}

// NewAllMonthsFilter creates a Filter that keeps every entry
func NewAllMonthsFilter() *Filter {
	return &Filter{AllMonths: true}
}

// IsEmpty returns true if the filter matches all entries
func (f *Filter) IsEmpty() bool {
	return f.AllMonths
}

// Classify reports how an entry relates to the filter month.
// Entries whose heading did not parse are MatchUnparseable.
func (f *Filter) Classify(e entry.Entry) timeutil.MatchResult {
	if !e.Dated {
		return timeutil.MatchUnparseable
	}
	if f.Month.Contains(e.Date) {
		return timeutil.MatchInMonth
	}
	return timeutil.MatchOtherMonth
}

// Matches returns true if the entry belongs on the invoice
func (f *Filter) Matches(e entry.Entry) bool {
	if f.AllMonths {
		return true
	}
	return f.Classify(e) == timeutil.MatchInMonth
}

// MatchesHeading applies the filter to a raw heading date.
// Markers with no heading or an unparseable heading always match, so the
// double-check total keeps hours the parser cannot place.
func (f *Filter) MatchesHeading(heading string) bool {
	if f.AllMonths || heading == "" {
		return true
	}
	return timeutil.MatchMonth(heading, f.Month) != timeutil.MatchOtherMonth
}

// Label returns the month label used in output file names ("2026-02" or "all")
func (f *Filter) Label() string {
	if f.AllMonths {
		return "all"
	}
	return f.Month.String()
}

// FilterEntries returns a new slice containing only entries that match the filter.
// If the filter is empty, returns all entries.
func FilterEntries(entries []entry.Entry, f *Filter) []entry.Entry {
	if f.IsEmpty() {
		return entries
	}

	filtered := make([]entry.Entry, 0)
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Package cli provides the CLI presentation layer for the timesheet application.
// It handles command-line output formatting and styling.
package cli

import (
	"fmt"
	"strings"

	"github.com/xolan/timesheet/internal/entry"
	"github.com/xolan/timesheet/internal/service"
	"github.com/xolan/timesheet/internal/stats"
)

// FormatHoursShort formats an hour value for display
// Examples: "2.5h", "3h", "0.25h"
func FormatHoursShort(hours float64) string {
	return entry.FormatHours(hours) + "h"
}

// FormatEntry formats an entry for a listing line
func FormatEntry(e entry.Entry) string {
	desc := e.Description
	if desc == "" {
		desc = "(no description)"
	}
	return fmt.Sprintf("%s  %s (%s)", e.DisplayDate(), desc, FormatHoursShort(e.Hours))
}

// FormatParseWarning formats a ParseWarning into a human-readable string
// with source, line number, truncated content (max 50 chars), and error description.
func FormatParseWarning(source string, warning entry.ParseWarning) string {
	content := strings.TrimSpace(warning.Content)
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  %s:%d: %s (%s)", source, warning.LineNumber, content, warning.Error)
}

// FormatStatistics summarizes invoice statistics on one line
// Example: "3 entries over 2 days (avg 3h/day)"
func FormatStatistics(s stats.Statistics) string {
	if s.EntryCount == 0 {
		return "No entries"
	}
	return fmt.Sprintf("%d %s over %d %s (avg %s/day)",
		s.EntryCount, Pluralize("entry", s.EntryCount),
		s.DaysWithEntries, Pluralize("day", s.DaysWithEntries),
		FormatHoursShort(s.AverageHoursPerDay))
}

// FormatSkipped describes parsed entries left off the invoice, or "" if none
func FormatSkipped(inv *service.Invoice) string {
	var parts []string
	if inv.OtherMonth > 0 {
		parts = append(parts, fmt.Sprintf("%d outside %s", inv.OtherMonth, inv.Label))
	}
	if inv.Unparseable > 0 {
		parts = append(parts, fmt.Sprintf("%d with an unreadable date", inv.Unparseable))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Skipped: " + strings.Join(parts, ", ")
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") && !strings.HasSuffix(word, "ay") {
		return strings.TrimSuffix(word, "y") + "ies"
	}
	return word + "s"
}

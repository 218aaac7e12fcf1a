// Package service provides the business logic layer for the timesheet application.
// It wraps the journal storage, parser, filter and stats packages,
// providing a clean API for the CLI.
package service

import (
	"math"

	"github.com/xolan/timesheet/internal/entry"
	"github.com/xolan/timesheet/internal/stats"
	"github.com/xolan/timesheet/internal/timeutil"
)

// totalTolerance is the largest difference between two totals still treated as equal
const totalTolerance = 1e-6

// InvoiceRequest selects what goes on an invoice
type InvoiceRequest struct {
	Client    string
	Month     timeutil.Month
	AllMonths bool // Export every entry regardless of date
}

// FileReport describes what one journal contributed
type FileReport struct {
	Name        string
	Parsed      int     // Entries the parser emitted
	Kept        int     // Entries that passed the month filter
	MarkerHours float64 // Hours counted by the raw re-scan
	Warnings    []entry.ParseWarning
}

// Invoice is the aggregated, validated result for one client and month
type Invoice struct {
	Client  string
	Slug    string
	Label   string // Month label used in the file name ("2026-02" or "all")
	Entries []entry.Entry

	// EntriesTotal sums the hours of the entries on the invoice
	EntriesTotal float64
	// DoubleCheckTotal sums the raw markers independently of the parser
	DoubleCheckTotal float64

	OtherMonth  int // Parsed entries dated outside the month
	Unparseable int // Parsed entries whose heading date could not be read

	Files      []FileReport
	Statistics stats.Statistics
}

// Mismatch reports whether the two totals disagree
func (i *Invoice) Mismatch() bool {
	return math.Abs(i.EntriesTotal-i.DoubleCheckTotal) > totalTolerance
}

// Warnings collects the parse warnings of every journal
func (i *Invoice) Warnings() []entry.ParseWarning {
	var warnings []entry.ParseWarning
	for _, f := range i.Files {
		warnings = append(warnings, f.Warnings...)
	}
	return warnings
}

// ExportResult is returned after an invoice has been written
type ExportResult struct {
	Invoice *Invoice
	Path    string
}

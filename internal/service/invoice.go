package service

import (
	"fmt"
	"strings"

	"github.com/xolan/timesheet/internal/config"
	"github.com/xolan/timesheet/internal/entry"
	"github.com/xolan/timesheet/internal/filter"
	"github.com/xolan/timesheet/internal/stats"
	"github.com/xolan/timesheet/internal/storage"
	"github.com/xolan/timesheet/internal/timeutil"
)

// InvoiceService builds and exports invoices from journal pages
type InvoiceService struct {
	journalDir string
	outputDir  string
	config     config.Config
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(journalDir, outputDir string, cfg config.Config) *InvoiceService {
	return &InvoiceService{
		journalDir: journalDir,
		outputDir:  outputDir,
		config:     cfg,
	}
}

// JournalDir returns the directory journals are read from
func (s *InvoiceService) JournalDir() string {
	return s.journalDir
}

// OutputDir returns the directory invoices are written to
func (s *InvoiceService) OutputDir() string {
	return s.outputDir
}

// Build reads every journal, extracts the client's entries for the requested
// month and computes both totals. Any file-system error aborts the build.
func (s *InvoiceService) Build(req InvoiceRequest) (*Invoice, error) {
	client := strings.TrimSpace(req.Client)
	if client == "" {
		client = s.config.DefaultClient
	}
	slug := entry.ClientSlug(client)
	if slug == "" {
		return nil, fmt.Errorf("client name cannot be empty")
	}

	f := filter.NewFilter(req.Month)
	if req.AllMonths {
		f = filter.NewAllMonthsFilter()
	}

	journals, err := storage.ReadJournals(s.journalDir, s.config.FilePrefix)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		Client:  client,
		Slug:    slug,
		Label:   f.Label(),
		Entries: []entry.Entry{},
		Files:   make([]FileReport, 0, len(journals)),
	}

	for _, j := range journals {
		result := entry.Parse(j.Content, slug, j.Name)
		report := FileReport{
			Name:     j.Name,
			Parsed:   len(result.Entries),
			Warnings: result.Warnings,
		}

		for _, e := range result.Entries {
			switch f.Classify(e) {
			case timeutil.MatchOtherMonth:
				inv.OtherMonth++
			case timeutil.MatchUnparseable:
				inv.Unparseable++
			}
			if f.Matches(e) {
				inv.Entries = append(inv.Entries, e)
				inv.EntriesTotal += e.Hours
				report.Kept++
			}
		}

		for _, m := range entry.ScanMarkers(j.Content, slug) {
			if f.MatchesHeading(m.Heading) {
				report.MarkerHours += m.Hours
			}
		}
		inv.DoubleCheckTotal += report.MarkerHours

		inv.Files = append(inv.Files, report)
	}

	storage.SortEntries(inv.Entries)
	inv.Statistics = stats.CalculateStatistics(inv.Entries)

	return inv, nil
}

// FileName returns the invoice file name, which embeds the double-check total
func (s *InvoiceService) FileName(inv *Invoice) string {
	return storage.InvoiceFileName(inv.Label, s.config.InvoiceName, inv.DoubleCheckTotal)
}

// Export builds the invoice and writes it as CSV to the output directory.
// A total mismatch is not an error; callers check Invoice.Mismatch.
func (s *InvoiceService) Export(req InvoiceRequest) (*ExportResult, error) {
	inv, err := s.Build(req)
	if err != nil {
		return nil, err
	}
	return s.Write(inv)
}

// Write stores a built invoice as CSV in the output directory
func (s *InvoiceService) Write(inv *Invoice) (*ExportResult, error) {
	path, err := storage.WriteInvoiceFile(s.outputDir, s.FileName(inv), inv.Entries)
	if err != nil {
		return nil, fmt.Errorf("failed to write invoice: %w", err)
	}

	return &ExportResult{Invoice: inv, Path: path}, nil
}

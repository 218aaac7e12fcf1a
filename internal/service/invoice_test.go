package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/timesheet/internal/config"
	"github.com/xolan/timesheet/internal/timeutil"
)

func writeJournal(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")), 0644); err != nil {
		t.Fatalf("Failed to write journal %s: %v", name, err)
	}
}

func month(t *testing.T, s string) timeutil.Month {
	t.Helper()
	m, err := timeutil.ParseMonth(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func newTestService(t *testing.T) (svc *InvoiceService, journalDir, outputDir string) {
	t.Helper()
	journalDir = t.TempDir()
	outputDir = t.TempDir()
	return NewInvoiceService(journalDir, outputDir, config.DefaultConfig()), journalDir, outputDir
}

func TestInvoiceService_Export_EndToEnd(t *testing.T) {
	svc, journalDir, outputDir := newTestService(t)
	writeJournal(t, journalDir, "⏰ Acme.md",
		"- [[February 3rd, 2026]]",
		"\t- Fixed bug",
		"\t\tacme-time:: 2.5",
	)

	result, err := svc.Export(InvoiceRequest{Client: "Acme", Month: month(t, "2026-02")})
	if err != nil {
		t.Fatalf("Export() returned unexpected error: %v", err)
	}

	inv := result.Invoice
	if inv.EntriesTotal != 2.5 || inv.DoubleCheckTotal != 2.5 {
		t.Errorf("totals = %v / %v, expected 2.5 / 2.5", inv.EntriesTotal, inv.DoubleCheckTotal)
	}
	if inv.Mismatch() {
		t.Error("expected no mismatch")
	}

	expectedPath := filepath.Join(outputDir, "2026-02-invoice-timesheet-total-2.5.csv")
	if result.Path != expectedPath {
		t.Errorf("Path = %q, expected %q", result.Path, expectedPath)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("Failed to read invoice: %v", err)
	}
	if string(data) != `Feb 3rd; 2026,"Fixed bug",2.5` {
		t.Errorf("invoice content = %q", string(data))
	}
}

func TestInvoiceService_Build_MismatchFromOrphanMarker(t *testing.T) {
	svc, journalDir, outputDir := newTestService(t)
	writeJournal(t, journalDir, "⏰ Acme.md",
		"acme-time:: 1",
		"- [[February 3rd, 2026]]",
		"\t- Fixed bug",
		"\t\tacme-time:: 2.5",
	)

	result, err := svc.Export(InvoiceRequest{Client: "Acme", Month: month(t, "2026-02")})
	if err != nil {
		t.Fatalf("Export() returned unexpected error: %v", err)
	}

	inv := result.Invoice
	if inv.EntriesTotal != 2.5 {
		t.Errorf("EntriesTotal = %v, expected 2.5", inv.EntriesTotal)
	}
	if inv.DoubleCheckTotal != 3.5 {
		t.Errorf("DoubleCheckTotal = %v, expected 3.5", inv.DoubleCheckTotal)
	}
	if !inv.Mismatch() {
		t.Error("expected a mismatch")
	}
	if len(inv.Warnings()) != 1 {
		t.Errorf("expected 1 parse warning, got %d", len(inv.Warnings()))
	}

	// The file is still written, named after the double-check total
	if _, err := os.Stat(filepath.Join(outputDir, "2026-02-invoice-timesheet-total-3.5.csv")); err != nil {
		t.Errorf("invoice should be written despite the mismatch: %v", err)
	}
}

func TestInvoiceService_Build_MonthFilterAndSorting(t *testing.T) {
	svc, journalDir, _ := newTestService(t)
	writeJournal(t, journalDir, "⏰ Acme B.md",
		"- [[February 20th, 2026]]",
		"\t- Late feb",
		"\t\tacme-time:: 3",
		"- [[March 1st, 2026]]",
		"\t- March work",
		"\t\tacme-time:: 8",
	)
	writeJournal(t, journalDir, "⏰ Acme A.md",
		"- [[February 2nd, 2026]]",
		"\t- Early feb",
		"\t\tacme-time:: 1",
		"\t\tacme-time:: 2",
		"- [[January 30th, 2026]]",
		"\t- January work",
		"\t\tacme-time:: 4",
	)
	writeJournal(t, journalDir, "notes.md",
		"- [[February 5th, 2026]]",
		"\t- Not a time journal",
		"\t\tacme-time:: 100",
	)

	inv, err := svc.Build(InvoiceRequest{Client: "Acme", Month: month(t, "2026-02")})
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}

	if len(inv.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(inv.Entries))
	}
	wantOrder := []string{"Early feb", "Early feb", "Late feb"}
	for i, e := range inv.Entries {
		if e.Description != wantOrder[i] {
			t.Errorf("entry %d = %q, expected %q", i, e.Description, wantOrder[i])
		}
	}
	if inv.Entries[0].Hours != 1 || inv.Entries[1].Hours != 2 {
		t.Error("entries sharing a date should keep read order")
	}

	if inv.EntriesTotal != 6 || inv.DoubleCheckTotal != 6 {
		t.Errorf("totals = %v / %v, expected 6 / 6", inv.EntriesTotal, inv.DoubleCheckTotal)
	}
	if inv.OtherMonth != 2 {
		t.Errorf("OtherMonth = %d, expected 2", inv.OtherMonth)
	}
	if len(inv.Files) != 2 {
		t.Errorf("expected 2 journals read, got %d", len(inv.Files))
	}
	if inv.Statistics.DaysWithEntries != 2 {
		t.Errorf("DaysWithEntries = %d, expected 2", inv.Statistics.DaysWithEntries)
	}
}

func TestInvoiceService_Build_UnparseableHeadingFlagged(t *testing.T) {
	svc, journalDir, _ := newTestService(t)
	writeJournal(t, journalDir, "⏰ Acme.md",
		"- [[Smarch 3rd, 2026]]",
		"\t- Lost hours",
		"\t\tacme-time:: 2",
		"- [[February 3rd, 2026]]",
		"\t- Found hours",
		"\t\tacme-time:: 1",
	)

	inv, err := svc.Build(InvoiceRequest{Client: "Acme", Month: month(t, "2026-02")})
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}
	if inv.Unparseable != 1 {
		t.Errorf("Unparseable = %d, expected 1", inv.Unparseable)
	}
	if inv.EntriesTotal != 1 || inv.DoubleCheckTotal != 3 {
		t.Errorf("totals = %v / %v, expected 1 / 3", inv.EntriesTotal, inv.DoubleCheckTotal)
	}
	if !inv.Mismatch() {
		t.Error("hours under an unreadable date should surface as a mismatch")
	}
}

func TestInvoiceService_Build_AllMonths(t *testing.T) {
	svc, journalDir, _ := newTestService(t)
	writeJournal(t, journalDir, "⏰ Acme.md",
		"- [[January 3rd, 2026]]",
		"\t- Jan",
		"\t\tacme-time:: 1",
		"- [[February 3rd, 2026]]",
		"\t- Feb",
		"\t\tacme-time:: 2",
	)

	inv, err := svc.Build(InvoiceRequest{Client: "Acme", AllMonths: true})
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}
	if len(inv.Entries) != 2 || inv.EntriesTotal != 3 || inv.DoubleCheckTotal != 3 {
		t.Errorf("got %d entries, totals %v / %v", len(inv.Entries), inv.EntriesTotal, inv.DoubleCheckTotal)
	}
	if inv.Label != "all" {
		t.Errorf("Label = %q, expected all", inv.Label)
	}
	if svc.FileName(inv) != "all-invoice-timesheet-total-3.csv" {
		t.Errorf("FileName() = %q", svc.FileName(inv))
	}
}

func TestInvoiceService_Build_DefaultClient(t *testing.T) {
	journalDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DefaultClient = "Bain Ultra"
	svc := NewInvoiceService(journalDir, t.TempDir(), cfg)

	writeJournal(t, journalDir, "⏰ Bain.md",
		"- [[February 3rd, 2026]]",
		"\t- Bath design",
		"\t\tbain-ultra-time:: 4",
	)

	inv, err := svc.Build(InvoiceRequest{Month: month(t, "2026-02")})
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}
	if inv.Client != "Bain Ultra" || inv.Slug != "bain-ultra" {
		t.Errorf("client = %q, slug = %q", inv.Client, inv.Slug)
	}
	if inv.EntriesTotal != 4 {
		t.Errorf("EntriesTotal = %v, expected 4", inv.EntriesTotal)
	}
}

func TestInvoiceService_Build_MissingJournalDir(t *testing.T) {
	svc := NewInvoiceService(filepath.Join(t.TempDir(), "missing"), t.TempDir(), config.DefaultConfig())

	if _, err := svc.Build(InvoiceRequest{Client: "Acme", Month: month(t, "2026-02")}); err == nil {
		t.Error("Build() should fail when the journal directory is missing")
	}
}

func TestInvoiceService_Export_MissingOutputDir(t *testing.T) {
	journalDir := t.TempDir()
	svc := NewInvoiceService(journalDir, filepath.Join(t.TempDir(), "missing"), config.DefaultConfig())

	if _, err := svc.Export(InvoiceRequest{Client: "Acme", Month: month(t, "2026-02")}); err == nil {
		t.Error("Export() should fail when the output directory is missing")
	}
}

func TestInvoiceService_Build_EmptyMonth(t *testing.T) {
	svc, journalDir, _ := newTestService(t)
	writeJournal(t, journalDir, "⏰ Acme.md",
		"- [[January 3rd, 2026]]",
		"\t\tacme-time:: 1",
	)

	inv, err := svc.Build(InvoiceRequest{Client: "Acme", Month: month(t, "2026-02")})
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}
	if len(inv.Entries) != 0 || inv.EntriesTotal != 0 || inv.DoubleCheckTotal != 0 {
		t.Errorf("expected empty invoice, got %d entries, totals %v / %v", len(inv.Entries), inv.EntriesTotal, inv.DoubleCheckTotal)
	}
	if inv.Mismatch() {
		t.Error("empty invoice should not mismatch")
	}
}

func TestInvoice_Mismatch_Tolerance(t *testing.T) {
	inv := &Invoice{EntriesTotal: 0.1 + 0.2, DoubleCheckTotal: 0.3}
	if inv.Mismatch() {
		t.Error("float rounding noise should not count as a mismatch")
	}
	inv.DoubleCheckTotal = 0.31
	if !inv.Mismatch() {
		t.Error("expected mismatch for 0.3 vs 0.31")
	}
}

func TestInvoiceService_Build_DatesAreLocalMidnight(t *testing.T) {
	svc, journalDir, _ := newTestService(t)
	writeJournal(t, journalDir, "⏰ Acme.md",
		"- [[February 28th, 2026]]",
		"\t\tacme-time:: 1",
	)

	inv, err := svc.Build(InvoiceRequest{Client: "Acme", Month: month(t, "2026-02")})
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.Local)
	if len(inv.Entries) != 1 || !inv.Entries[0].Date.Equal(want) {
		t.Errorf("entries = %+v", inv.Entries)
	}
}

func TestInvoiceService_Build_MalformedHoursCountInBothTotals(t *testing.T) {
	svc, journalDir, _ := newTestService(t)
	writeJournal(t, journalDir, "⏰ Acme.md",
		"- [[February 3rd, 2026]]",
		"\t- Fixed bug",
		"\t\tacme-time:: 1.2.3",
	)

	inv, err := svc.Build(InvoiceRequest{Client: "Acme", Month: month(t, "2026-02")})
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}
	if inv.EntriesTotal != 1.2 || inv.DoubleCheckTotal != 1.2 {
		t.Errorf("totals = %v / %v, expected 1.2 / 1.2", inv.EntriesTotal, inv.DoubleCheckTotal)
	}
	if len(inv.Warnings()) != 0 {
		t.Errorf("expected no warnings, got %+v", inv.Warnings())
	}
}

func TestInvoiceService_Write(t *testing.T) {
	svc, journalDir, outputDir := newTestService(t)
	writeJournal(t, journalDir, "⏰ Acme.md",
		"- [[February 3rd, 2026]]",
		"\t- Fixed bug",
		"\t\tacme-time:: 2.5",
	)

	inv, err := svc.Build(InvoiceRequest{Client: "Acme", Month: month(t, "2026-02")})
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}
	result, err := svc.Write(inv)
	if err != nil {
		t.Fatalf("Write() returned unexpected error: %v", err)
	}
	if result.Invoice != inv {
		t.Error("Write() should return the invoice it wrote")
	}
	if result.Path != filepath.Join(outputDir, "2026-02-invoice-timesheet-total-2.5.csv") {
		t.Errorf("Path = %q", result.Path)
	}
}

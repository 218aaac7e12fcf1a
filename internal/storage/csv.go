package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xolan/timesheet/internal/entry"
)

// SortEntries sorts entries by calendar date, oldest first.
// Entries sharing a date keep their read order. Undated entries sort last.
func SortEntries(entries []entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Dated != b.Dated {
			return a.Dated
		}
		return a.Date.Before(b.Date)
	})
}

// FormatCSVLine formats one entry as `date,"description",hours`.
// The description is always quoted with embedded quotes doubled.
func FormatCSVLine(e entry.Entry) string {
	desc := strings.ReplaceAll(e.Description, `"`, `""`)
	return fmt.Sprintf(`%s,"%s",%s`, e.DisplayDate(), desc, entry.FormatHours(e.Hours))
}

// FormatInvoiceCSV renders all entries as invoice CSV text: one line per entry,
// no header and no trailing newline.
func FormatInvoiceCSV(entries []entry.Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = FormatCSVLine(e)
	}
	return strings.Join(lines, "\n")
}

// WriteInvoiceCSV writes the invoice CSV text to w.
func WriteInvoiceCSV(w io.Writer, entries []entry.Entry) error {
	_, err := io.WriteString(w, FormatInvoiceCSV(entries))
	return err
}

// InvoiceFileName builds "<month>-invoice-<name>-total-<total>.csv".
func InvoiceFileName(month, name string, total float64) string {
	return fmt.Sprintf("%s-invoice-%s-total-%s.csv", month, name, entry.FormatHours(total))
}

// WriteInvoiceFile writes the invoice CSV to dir/name through a temporary
// file and an atomic rename. Returns the full path written.
func WriteInvoiceFile(dir, name string, entries []entry.Entry) (string, error) {
	path := filepath.Join(dir, name)
	tmpFile := path + ".tmp"

	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", err
	}

	if err := WriteInvoiceCSV(file, entries); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return "", err
	}

	// Close temp file before rename
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return "", err
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return "", err
	}
	return path, nil
}

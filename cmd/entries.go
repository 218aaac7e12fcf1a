package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xolan/timesheet/internal/cli"
	"github.com/xolan/timesheet/internal/entry"
	"github.com/xolan/timesheet/internal/service"
	"github.com/xolan/timesheet/internal/stats"
)

// Supported values of the entries --format flag
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// entriesMetadata describes the invoice an entries listing was built for
type entriesMetadata struct {
	Client           string    `json:"client" yaml:"client"`
	Slug             string    `json:"slug" yaml:"slug"`
	Month            string    `json:"month" yaml:"month"`
	EntryCount       int       `json:"entry_count" yaml:"entry_count"`
	EntriesTotal     float64   `json:"entries_total" yaml:"entries_total"`
	DoubleCheckTotal float64   `json:"double_check_total" yaml:"double_check_total"`
	Mismatch         bool      `json:"mismatch" yaml:"mismatch"`
	GeneratedAt      time.Time `json:"generated_at" yaml:"generated_at"`
}

// entriesOutput is the machine-readable form of an entries listing
type entriesOutput struct {
	Metadata entriesMetadata `json:"metadata" yaml:"metadata"`
	Entries  []entry.Entry   `json:"entries" yaml:"entries"`
}

func newEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries [YYYY-MM] [client]",
		Short: "List invoice entries without writing a file",
		Long: `List the entries that would go on the invoice, with both totals.

Output formats:
  table   Human-readable listing (default)
  json    JSON document with metadata and entries
  yaml    YAML document with metadata and entries

Usage:
  timesheet entries                      Current month, default client
  timesheet entries 2026-02 "Bain Ultra" February 2026 for "Bain Ultra"
  timesheet entries --daily              Hours per day instead of entries
  timesheet entries --format json        Machine-readable output`,
		Args: cobra.MaximumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			listEntries(cmd, args)
		},
	}

	cmd.Flags().StringP("format", "f", formatTable, "Output format: table, json or yaml")
	cmd.Flags().Bool("daily", false, "Show hours per day instead of individual entries (table only)")
	return cmd
}

func listEntries(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(strings.TrimSpace(format))
	if format != formatTable && format != formatJSON && format != formatYAML {
		reportError(fmt.Sprintf("Unknown format %q", format), nil,
			"Hint: Use one of: table, json, yaml")
		return
	}

	svcs, ok := loadServices(cmd)
	if !ok {
		return
	}

	req, ok := resolveRequest(cmd, args)
	if !ok {
		return
	}

	inv, err := svcs.Invoice.Build(req)
	if err != nil {
		reportBuildError(svcs.Invoice, err)
		return
	}

	switch format {
	case formatJSON, formatYAML:
		if err := writeStructured(format, inv); err != nil {
			reportError("Failed to encode entries", err)
		}
	default:
		printParseWarnings(inv)
		daily, _ := cmd.Flags().GetBool("daily")
		printEntriesTable(inv, daily)
	}
}

// writeStructured encodes the invoice entries as JSON or YAML on stdout
func writeStructured(format string, inv *service.Invoice) error {
	out := entriesOutput{
		Metadata: entriesMetadata{
			Client:           inv.Client,
			Slug:             inv.Slug,
			Month:            inv.Label,
			EntryCount:       len(inv.Entries),
			EntriesTotal:     entry.RoundHours(inv.EntriesTotal),
			DoubleCheckTotal: entry.RoundHours(inv.DoubleCheckTotal),
			Mismatch:         inv.Mismatch(),
			GeneratedAt:      deps.Now(),
		},
		Entries: inv.Entries,
	}

	if format == formatYAML {
		enc := yaml.NewEncoder(deps.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printEntriesTable(inv *service.Invoice, daily bool) {
	styles := cli.NewStyles(deps.Stdout)

	if len(inv.Entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found for %s in %s\n", inv.Client, inv.Label)
		if skipped := cli.FormatSkipped(inv); skipped != "" {
			_, _ = fmt.Fprintln(deps.Stdout, styles.Muted.Render(skipped))
		}
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, styles.Heading.Render(
		fmt.Sprintf("Entries for %s (%s):", inv.Client, inv.Label)))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	if daily {
		for _, day := range stats.CalculateDayBreakdown(inv.Entries) {
			_, _ = fmt.Fprintf(deps.Stdout, "%-16s %8s  (%d %s)\n",
				day.Date, cli.FormatHoursShort(day.TotalHours),
				day.EntryCount, cli.Pluralize("entry", day.EntryCount))
		}
	} else {
		for i, e := range inv.Entries {
			_, _ = fmt.Fprintf(deps.Stdout, "[%d] %s\n", i+1, cli.FormatEntry(e))
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	printTotals(styles, inv)
	_, _ = fmt.Fprintln(deps.Stdout, styles.Muted.Render(cli.FormatStatistics(inv.Statistics)))
	if skipped := cli.FormatSkipped(inv); skipped != "" {
		_, _ = fmt.Fprintln(deps.Stdout, styles.Muted.Render(skipped))
	}

	sources := stats.CalculateSourceBreakdown(inv.Entries)
	if len(sources) > 1 {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, styles.Heading.Render("By journal:"))
		for _, s := range sources {
			_, _ = fmt.Fprintf(deps.Stdout, "  %s: %s (%d %s)\n",
				s.Source, cli.FormatHoursShort(s.TotalHours),
				s.EntryCount, cli.Pluralize("entry", s.EntryCount))
		}
	}
}

// Package cmd implements the timesheet command tree.
package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/xolan/timesheet/internal/cli"
	"github.com/xolan/timesheet/internal/entry"
	"github.com/xolan/timesheet/internal/service"
)

// Version information, set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information from main
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func buildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// newRootCmd builds a fresh command tree so flag state never leaks between runs
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "timesheet [YYYY-MM] [client]",
		Short: "Export billable time from Logseq journals as a CSV invoice",
		Long: `timesheet reads Logseq journal pages whose file names start with the
time marker (default ⏰), collects every "<client>-time:: <hours>" property
under its date heading and writes the month's entries as a CSV invoice.

The month defaults to the current month and the client to default_client
from the config file. The invoice is written to the output directory as
<YYYY-MM>-invoice-<invoice_name>-total-<hours>.csv.

Usage:
  timesheet                       Current month, default client
  timesheet 2026-02               February 2026, default client
  timesheet 2026-02 "Bain Ultra"  February 2026 for client "Bain Ultra"
  timesheet --all                 Every month in one invoice
  timesheet entries 2026-02       Preview entries without writing a file`,
		Args: cobra.MaximumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			exportInvoice(cmd, args)
		},
	}

	addInvoiceFlags(root)
	root.AddCommand(newEntriesCmd(), newConfigCmd())
	return root
}

// Execute runs the root command with fang's styled help and errors
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, newRootCmd(), fang.WithVersion(buildVersion()))
}

// exportInvoice writes the invoice CSV and reports both totals
func exportInvoice(cmd *cobra.Command, args []string) {
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

	result, err := svcs.Invoice.Write(inv)
	if err != nil {
		reportError("Failed to write invoice", err,
			"Hint: Check that the output directory exists and is writable: "+svcs.Invoice.OutputDir())
		return
	}

	printParseWarnings(inv)

	styles := cli.NewStyles(deps.Stdout)
	_, _ = fmt.Fprintf(deps.Stdout, "Written to %s\n", styles.Success.Render(result.Path))
	printTotals(styles, inv)

	if len(inv.Entries) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, styles.Muted.Render(
			fmt.Sprintf("No entries found for %s in %s", inv.Client, inv.Label)))
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, styles.Muted.Render(cli.FormatStatistics(inv.Statistics)))
	}
	if skipped := cli.FormatSkipped(inv); skipped != "" {
		_, _ = fmt.Fprintln(deps.Stdout, styles.Muted.Render(skipped))
	}
}

// printTotals prints both totals and flags a mismatch
func printTotals(styles cli.Styles, inv *service.Invoice) {
	_, _ = fmt.Fprintf(deps.Stdout, "Entries total: %s\n", styles.Value.Render(entry.FormatHours(inv.EntriesTotal)))
	_, _ = fmt.Fprintf(deps.Stdout, "Double-check total: %s\n", styles.Value.Render(entry.FormatHours(inv.DoubleCheckTotal)))
	if inv.Mismatch() {
		_, _ = fmt.Fprintln(deps.Stdout, styles.Warning.Render("WARNING: Totals do not match!"))
	}
}

// printParseWarnings lists lines the parser could not use on stderr
func printParseWarnings(inv *service.Invoice) {
	count := len(inv.Warnings())
	if count == 0 {
		return
	}

	styles := cli.NewStyles(deps.Stderr)
	_, _ = fmt.Fprintln(deps.Stderr, styles.Warning.Render(
		fmt.Sprintf("Warning: Found %d unusable %s in journals:", count, cli.Pluralize("line", count))))
	for _, f := range inv.Files {
		for _, w := range f.Warnings {
			_, _ = fmt.Fprintln(deps.Stderr, cli.FormatParseWarning(f.Name, w))
		}
	}
	_, _ = fmt.Fprintln(deps.Stderr)
}

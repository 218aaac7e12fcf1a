package cmd

import (
	"fmt"

	"github.com/xolan/timesheet/internal/cli"
	"github.com/xolan/timesheet/internal/service"
)

// reportError prints an "Error:" line, the underlying error as "Details:" when
// present, any follow-up lines, and exits with status 1.
func reportError(title string, err error, lines ...string) {
	styles := cli.NewStyles(deps.Stderr)
	_, _ = fmt.Fprintln(deps.Stderr, styles.Error.Render("Error: "+title))
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	for _, line := range lines {
		_, _ = fmt.Fprintln(deps.Stderr, line)
	}
	deps.Exit(1)
}

// reportBuildError reports a failure to read journals
func reportBuildError(svc *service.InvoiceService, err error) {
	reportError("Failed to read journals", err,
		"Hint: Check that the journal directory exists and is readable: "+svc.JournalDir())
}

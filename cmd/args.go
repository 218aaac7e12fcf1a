package cmd

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xolan/timesheet/internal/config"
	"github.com/xolan/timesheet/internal/service"
	"github.com/xolan/timesheet/internal/timeutil"
)

// monthLikePattern recognises arguments meant as a month, valid or not
var monthLikePattern = regexp.MustCompile(`^\d{4}-\d{1,2}$`)

// parseInvoiceArgs reads the optional month and client positional arguments.
// The month defaults to the month containing now; an empty client means the
// configured default client.
func parseInvoiceArgs(args []string, now time.Time) (service.InvoiceRequest, error) {
	req := service.InvoiceRequest{Month: timeutil.MonthOf(now)}
	monthSet := false

	for _, arg := range args {
		if monthLikePattern.MatchString(arg) {
			if monthSet {
				return req, fmt.Errorf("month given twice: %s", arg)
			}
			m, err := timeutil.ParseMonth(arg)
			if err != nil {
				return req, err
			}
			req.Month = m
			monthSet = true
			continue
		}

		if req.Client != "" {
			return req, fmt.Errorf("unexpected argument %q (quote client names that contain spaces)", arg)
		}
		req.Client = strings.TrimSpace(arg)
	}

	return req, nil
}

// addInvoiceFlags registers the flags shared by commands that read journals
func addInvoiceFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("dir", "", "Journal directory (default: ~/Documents/Logseq/Documents/pages)")
	cmd.PersistentFlags().String("out", "", "Directory to write the invoice to (default: current directory)")
	cmd.PersistentFlags().String("prefix", "", "File name marker of time journal pages (default: ⏰)")
	cmd.PersistentFlags().Bool("all", false, "Include every month instead of filtering to one")
}

// applyFlagOverrides copies non-empty directory and prefix flags onto cfg
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.JournalDir = dir
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.OutputDir = out
	}
	if prefix, _ := cmd.Flags().GetString("prefix"); prefix != "" {
		cfg.FilePrefix = prefix
	}
	cfg.Normalize()
}

// loadServices resolves configuration and flags into services.
// On failure it reports the error and exits; ok is false.
func loadServices(cmd *cobra.Command) (svcs *service.Services, ok bool) {
	configPath, err := deps.ConfigPath()
	if err != nil {
		reportError("Failed to determine config file location", err,
			"Hint: Check that your home directory is accessible")
		return nil, false
	}

	cfg, err := deps.LoadConfig(configPath)
	if err != nil {
		reportError("Failed to load configuration", err,
			"Hint: Check that your config file is valid TOML format: "+configPath)
		return nil, false
	}

	applyFlagOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		reportError("Invalid configuration", err)
		return nil, false
	}

	svcs, err = service.NewServices(configPath, cfg)
	if err != nil {
		reportError("Failed to determine journal or output directory", err,
			"Hint: Set journal_dir and output_dir in the config file or use --dir and --out")
		return nil, false
	}
	return svcs, true
}

// resolveRequest parses positional arguments and the --all flag.
// On failure it reports the error and exits; ok is false.
func resolveRequest(cmd *cobra.Command, args []string) (req service.InvoiceRequest, ok bool) {
	req, err := parseInvoiceArgs(args, deps.Now())
	if err != nil {
		reportError(err.Error(), nil,
			"Usage: timesheet [YYYY-MM] [client]",
			"Example: timesheet 2026-02 \"Bain Ultra\"")
		return req, false
	}
	req.AllMonths, _ = cmd.Flags().GetBool("all")
	return req, true
}

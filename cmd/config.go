package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/timesheet/internal/config"
	"github.com/xolan/timesheet/internal/service"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Display current configuration",
		Long: `Display the effective configuration and the config file location.

Values are resolved in this order, later ones winning:
  built-in defaults, config file, .env in the working directory,
  TIMESHEET_* environment variables, command-line flags.

Usage:
  timesheet config        Show configuration
  timesheet config init   Create a sample config file`,
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a sample config file",
		Run: func(cmd *cobra.Command, args []string) {
			initConfig()
		},
	})
	return cmd
}

func showConfig(cmd *cobra.Command) {
	svcs, ok := loadServices(cmd)
	if !ok {
		return
	}

	cfg := svcs.Config.Get()
	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for timesheet")
	_, _ = fmt.Fprintln(deps.Stdout, "===========================")
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", svcs.Config.GetPath())
	if svcs.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Config file found")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current settings:")
	_, _ = fmt.Fprintf(deps.Stdout, "  journal_dir    = %s\n", svcs.Invoice.JournalDir())
	_, _ = fmt.Fprintf(deps.Stdout, "  file_prefix    = %s\n", cfg.FilePrefix)
	_, _ = fmt.Fprintf(deps.Stdout, "  default_client = %s\n", cfg.DefaultClient)
	_, _ = fmt.Fprintf(deps.Stdout, "  invoice_name   = %s\n", cfg.InvoiceName)
	_, _ = fmt.Fprintf(deps.Stdout, "  output_dir     = %s\n", svcs.Invoice.OutputDir())

	if !svcs.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "To create a config file, run: timesheet config init")
	}
}

func initConfig() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		reportError("Failed to determine config file location", err)
		return
	}

	svc := service.NewConfigService(configPath, config.DefaultConfig())
	if err := svc.Init(); err != nil {
		if svc.Exists() {
			reportError("Failed to create config file", err, "Hint: Edit the existing file or remove it first")
		} else {
			reportError("Failed to create config file", err)
		}
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", configPath)
}

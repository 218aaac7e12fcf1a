package service

import (
	"github.com/xolan/timesheet/internal/config"
	"github.com/xolan/timesheet/internal/osutil"
	"github.com/xolan/timesheet/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Invoice *InvoiceService
	Config  *ConfigService
}

// NewServices creates a new Services instance for a resolved configuration,
// falling back to the default journal and output directories
func NewServices(configPath string, cfg config.Config) (*Services, error) {
	journalDir, outputDir, err := ResolveDirs(cfg)
	if err != nil {
		return nil, err
	}

	return NewServicesWithPaths(journalDir, outputDir, configPath, cfg), nil
}

// NewServicesWithPaths creates a new Services instance with custom paths (useful for testing)
func NewServicesWithPaths(journalDir, outputDir, configPath string, cfg config.Config) *Services {
	return &Services{
		Invoice: NewInvoiceService(journalDir, outputDir, cfg),
		Config:  NewConfigService(configPath, cfg),
	}
}

// ResolveDirs returns the journal and output directories for a config,
// falling back to the Logseq pages directory and the working directory.
func ResolveDirs(cfg config.Config) (journalDir, outputDir string, err error) {
	journalDir = cfg.JournalDir
	if journalDir == "" {
		journalDir, err = storage.GetJournalDir()
		if err != nil {
			return "", "", err
		}
	}

	outputDir = cfg.OutputDir
	if outputDir == "" {
		outputDir, err = osutil.Provider.Getwd()
		if err != nil {
			return "", "", err
		}
	}

	return journalDir, outputDir, nil
}

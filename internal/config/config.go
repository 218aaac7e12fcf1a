package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/xolan/timesheet/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "timesheet"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// EnvFile is the dotenv file read from the working directory
	EnvFile = ".env"
)

// Environment variables that override the config file
const (
	EnvJournalDir  = "TIMESHEET_JOURNAL_DIR"
	EnvFilePrefix  = "TIMESHEET_FILE_PREFIX"
	EnvClient      = "TIMESHEET_CLIENT"
	EnvInvoiceName = "TIMESHEET_INVOICE_NAME"
	EnvOutputDir   = "TIMESHEET_OUTPUT_DIR"
)

// Config represents the application configuration
type Config struct {
	// JournalDir is the directory holding the journal pages ("" means the Logseq default)
	JournalDir string `toml:"journal_dir"`
	// FilePrefix is the marker that starts the name of every time journal page
	FilePrefix string `toml:"file_prefix"`
	// DefaultClient is the client billed when none is given on the command line
	DefaultClient string `toml:"default_client"`
	// InvoiceName is the fixed name embedded in invoice file names
	InvoiceName string `toml:"invoice_name"`
	// OutputDir is where invoices are written ("" means the working directory)
	OutputDir string `toml:"output_dir"`
}

// DefaultConfig returns a Config with the built-in defaults.
// - journal_dir: "" (~/Documents/Logseq/Documents/pages)
// - file_prefix: "⏰"
// - default_client: "Acme"
// - invoice_name: "timesheet"
// - output_dir: "" (current working directory)
func DefaultConfig() Config {
	return Config{
		JournalDir:    "",
		FilePrefix:    "⏰",
		DefaultClient: "Acme",
		InvoiceName:   "timesheet",
		OutputDir:     "",
	}
}

// GetConfigPath returns the path to the config file.
// Uses the user config directory and creates the app directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	// Create config directory if it doesn't exist
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads and validates the config file at path.
// Keys missing from the file keep their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file if it exists, otherwise returns DefaultConfig.
// Any other failure (unreadable or invalid file) is returned as an error.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// LoadEnvFile loads variables from a dotenv file without overriding variables
// already present in the environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from TIMESHEET_* environment variables.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		key   string
		field *string
	}{
		{EnvJournalDir, &c.JournalDir},
		{EnvFilePrefix, &c.FilePrefix},
		{EnvClient, &c.DefaultClient},
		{EnvInvoiceName, &c.InvoiceName},
		{EnvOutputDir, &c.OutputDir},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && strings.TrimSpace(v) != "" {
			*o.field = v
		}
	}
	c.Normalize()
}

// Normalize trims whitespace and expands a leading "~" in directory settings.
func (c *Config) Normalize() {
	c.JournalDir = expandHome(strings.TrimSpace(c.JournalDir))
	c.OutputDir = expandHome(strings.TrimSpace(c.OutputDir))
	c.FilePrefix = strings.TrimSpace(c.FilePrefix)
	c.DefaultClient = strings.TrimSpace(c.DefaultClient)
	c.InvoiceName = strings.TrimSpace(c.InvoiceName)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.FilePrefix == "" {
		return fmt.Errorf("invalid file_prefix: cannot be empty")
	}
	if c.DefaultClient == "" {
		return fmt.Errorf("invalid default_client: cannot be empty")
	}
	if c.InvoiceName == "" {
		return fmt.Errorf("invalid invoice_name: cannot be empty")
	}
	if strings.ContainsAny(c.InvoiceName, `/\`) {
		return fmt.Errorf("invalid invoice_name %q: must not contain path separators", c.InvoiceName)
	}
	return nil
}

// GenerateSampleConfig returns a commented sample config file
func GenerateSampleConfig() string {
	return `# timesheet configuration file

# Directory holding the journal pages.
# Leave empty for ~/Documents/Logseq/Documents/pages
journal_dir = ""

# Only pages whose file name starts with this marker are scanned
file_prefix = "⏰"

# Client billed when no client is given on the command line
default_client = "Acme"

# Name embedded in invoice file names: <YYYY-MM>-invoice-<invoice_name>-total-<hours>.csv
invoice_name = "timesheet"

# Directory invoices are written to. Leave empty for the current directory
output_dir = ""
`
}

// Resolve loads the effective configuration: defaults, then the config file at
// path (if any), then the dotenv file in the working directory, then the
// environment.
func Resolve(path string) (Config, error) {
	cfg, err := LoadOrDefault(path)
	if err != nil {
		return Config{}, err
	}
	if err := LoadEnvFile(EnvFile); err != nil {
		return Config{}, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := osutil.Provider.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

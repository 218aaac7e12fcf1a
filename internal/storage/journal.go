package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xolan/timesheet/internal/osutil"
)

const (
	// DefaultJournalPrefix marks journal pages that carry time entries
	DefaultJournalPrefix = "⏰"
	// JournalExt is the file extension of journal pages
	JournalExt = ".md"
)

// DefaultJournalSubdir is the Logseq pages directory relative to the home directory
var DefaultJournalSubdir = filepath.Join("Documents", "Logseq", "Documents", "pages")

// Journal is a journal page read from disk
type Journal struct {
	Name    string // File name within the journal directory
	Content string
}

// GetJournalDir returns the default journal directory under the user's home directory.
func GetJournalDir() (string, error) {
	home, err := osutil.Provider.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultJournalSubdir), nil
}

// IsJournalName reports whether a file name starts with prefix and has the journal extension.
func IsJournalName(name, prefix string) bool {
	return strings.HasPrefix(name, prefix) && strings.HasSuffix(name, JournalExt)
}

// FindJournals lists the journal files in dir whose names start with prefix
// and end in ".md", sorted by name. Directories are skipped.
// A missing or unreadable directory is an error.
func FindJournals(dir, prefix string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading journal directory: %w", err)
	}

	names := []string{}
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if IsJournalName(de.Name(), prefix) {
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadJournal reads one journal file from dir.
func ReadJournal(dir, name string) (Journal, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return Journal{}, fmt.Errorf("reading journal %s: %w", name, err)
	}
	return Journal{Name: name, Content: string(data)}, nil
}

// ReadJournals locates and reads every journal in dir. Any read failure aborts.
func ReadJournals(dir, prefix string) ([]Journal, error) {
	names, err := FindJournals(dir, prefix)
	if err != nil {
		return nil, err
	}

	journals := make([]Journal, 0, len(names))
	for _, name := range names {
		j, err := ReadJournal(dir, name)
		if err != nil {
			return nil, err
		}
		journals = append(journals, j)
	}
	return journals, nil
}

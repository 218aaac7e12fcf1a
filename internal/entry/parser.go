package entry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xolan/timesheet/internal/timeutil"
)

// headingPattern matches a journal date heading such as "- [[February 3rd, 2026]]"
var headingPattern = regexp.MustCompile(`^-\s*\[\[([A-Za-z]+\s+\d+[a-z]*,\s*\d{4})\]\]`)

// descriptionPattern matches the first-level child bullet under a date heading
var descriptionPattern = regexp.MustCompile(`^\t-\s*(.+)$`)

// linkPattern matches page links ("[[text]]") inside a description
var linkPattern = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// leadingNumberPattern matches the numeric prefix of a marker value ("1.2" of "1.2.3")
var leadingNumberPattern = regexp.MustCompile(`^\d*\.?\d*`)

// ClientSlug derives the marker prefix for a client name.
// Example: "Bain Ultra" -> "bain-ultra"
func ClientSlug(client string) string {
	return whitespacePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(client)), "-")
}

// MarkerPattern returns the regular expression matching "<slug>-time:: <hours>" lines.
func MarkerPattern(slug string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(slug) + `-time::\s*([\d.]+)`)
}

// ParseHours reads the leading number of a marker value.
// Trailing characters after the number are ignored, so "1.2.3" reads as 1.2.
// A value without any digit before the first invalid character is an error.
func ParseHours(value string) (float64, error) {
	prefix := leadingNumberPattern.FindString(value)
	if strings.Trim(prefix, ".") == "" {
		return 0, fmt.Errorf("invalid hours %q", value)
	}
	hours, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q: %w", value, err)
	}
	return hours, nil
}

// ParseWarning describes a journal line that looked meaningful but could not be used
type ParseWarning struct {
	LineNumber int    // Line number in the journal (1-indexed)
	Content    string // Raw content of the line
	Error      string // Description of the problem
}

// ParseResult holds the entries extracted from one journal plus any warnings
type ParseResult struct {
	Entries  []Entry
	Warnings []ParseWarning
}

// Parser walks a journal line by line.
// It remembers the current date heading and the first description bullet seen
// under it; every time marker emits an entry from that state.
type Parser struct {
	marker *regexp.Regexp
	source string

	lineNumber  int
	hasDate     bool
	rawDate     string
	description string
	result      ParseResult
}

// NewParser creates a parser for a client slug.
// source is recorded on every emitted entry (typically the journal file name).
func NewParser(slug, source string) *Parser {
	return &Parser{
		marker: MarkerPattern(slug),
		source: source,
		result: ParseResult{
			Entries:  []Entry{},
			Warnings: []ParseWarning{},
		},
	}
}

// Feed processes the next line of the journal
func (p *Parser) Feed(line string) {
	p.lineNumber++
	line = strings.TrimSuffix(line, "\r")

	if m := headingPattern.FindStringSubmatch(line); m != nil {
		p.hasDate = true
		p.rawDate = m[1]
		p.description = ""
		return
	}

	if m := descriptionPattern.FindStringSubmatch(line); m != nil && p.hasDate && p.description == "" {
		p.description = StripLinks(m[1])
		return
	}

	m := p.marker.FindStringSubmatch(line)
	if m == nil {
		return
	}
	if !p.hasDate {
		p.warn(line, "time marker before any date heading")
		return
	}

	hours, err := ParseHours(m[1])
	if err != nil {
		p.warn(line, err.Error())
		return
	}

	e := Entry{
		RawDate:     p.rawDate,
		Description: p.description,
		Hours:       hours,
		Source:      p.source,
	}
	if date, err := timeutil.ParseJournalDate(p.rawDate); err == nil {
		e.Date = date
		e.Dated = true
	}
	p.result.Entries = append(p.result.Entries, e)
}

// Result returns everything parsed so far
func (p *Parser) Result() ParseResult {
	return p.result
}

func (p *Parser) warn(line, msg string) {
	p.result.Warnings = append(p.result.Warnings, ParseWarning{
		LineNumber: p.lineNumber,
		Content:    line,
		Error:      msg,
	})
}

// Parse extracts the time entries for a client slug from journal content
func Parse(content, slug, source string) ParseResult {
	p := NewParser(slug, source)
	for _, line := range strings.Split(content, "\n") {
		p.Feed(line)
	}
	return p.Result()
}

// StripLinks rewrites "[[text]]" page links to bare "text"
func StripLinks(s string) string {
	return linkPattern.ReplaceAllString(s, "$1")
}

// Marker is a time marker found by a raw scan of a journal
type Marker struct {
	LineNumber int
	Hours      float64
	// Heading is the raw text of the nearest preceding date heading, empty if none
	Heading string
}

// ScanMarkers finds every time marker in content, independently of the parser
// state machine. Values without a leading number are skipped.
func ScanMarkers(content, slug string) []Marker {
	marker := MarkerPattern(slug)
	markers := []Marker{}
	heading := ""

	for i, line := range strings.Split(content, "\n") {
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			heading = m[1]
			continue
		}
		m := marker.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		hours, err := ParseHours(m[1])
		if err != nil {
			continue
		}
		markers = append(markers, Marker{LineNumber: i + 1, Hours: hours, Heading: heading})
	}
	return markers
}

// SumMarkers adds up every time marker in content regardless of date association
func SumMarkers(content, slug string) float64 {
	total := 0.0
	for _, m := range ScanMarkers(content, slug) {
		total += m.Hours
	}
	return total
}

// SemicolonDate replaces the first comma in a raw heading date with a semicolon
func SemicolonDate(raw string) string {
	return strings.Replace(raw, ",", ";", 1)
}

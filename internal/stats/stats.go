package stats

import (
	"sort"

	"github.com/xolan/timesheet/internal/entry"
)

// Statistics contains aggregated statistics for a set of invoice entries
type Statistics struct {
	TotalHours         float64
	AverageHoursPerDay float64 // Average over days that have at least one entry
	EntryCount         int
	DaysWithEntries    int
}

// SourceBreakdown contains statistics for a single journal page
type SourceBreakdown struct {
	Source     string
	TotalHours float64
	EntryCount int
}

// DayBreakdown contains the hours billed on one calendar day
type DayBreakdown struct {
	Date       string // Display date ("Feb 3rd; 2026")
	TotalHours float64
	EntryCount int
}

// CalculateStatistics computes statistics for the given entries
func CalculateStatistics(entries []entry.Entry) Statistics {
	stats := Statistics{}

	if len(entries) == 0 {
		return stats
	}

	// Track which days have entries
	daysWithEntries := make(map[string]bool)

	for _, e := range entries {
		stats.TotalHours += e.Hours
		stats.EntryCount++
		daysWithEntries[e.DisplayDate()] = true
	}

	stats.DaysWithEntries = len(daysWithEntries)
	stats.AverageHoursPerDay = stats.TotalHours / float64(stats.DaysWithEntries)

	return stats
}

// CalculateSourceBreakdown groups entries by journal page, sorted by total hours descending
func CalculateSourceBreakdown(entries []entry.Entry) []SourceBreakdown {
	if len(entries) == 0 {
		return []SourceBreakdown{}
	}

	sourceMap := make(map[string]*SourceBreakdown)
	for _, e := range entries {
		name := e.Source
		if name == "" {
			name = "(unknown)"
		}
		if _, exists := sourceMap[name]; !exists {
			sourceMap[name] = &SourceBreakdown{Source: name}
		}
		sourceMap[name].TotalHours += e.Hours
		sourceMap[name].EntryCount++
	}

	breakdowns := make([]SourceBreakdown, 0, len(sourceMap))
	for _, b := range sourceMap {
		breakdowns = append(breakdowns, *b)
	}

	// Sort by total hours descending, then by name for stable output
	sort.Slice(breakdowns, func(i, j int) bool {
		if breakdowns[i].TotalHours != breakdowns[j].TotalHours {
			return breakdowns[i].TotalHours > breakdowns[j].TotalHours
		}
		return breakdowns[i].Source < breakdowns[j].Source
	})

	return breakdowns
}

// CalculateDayBreakdown sums hours per day, in the order days first appear.
// Pass entries already sorted by date for a chronological breakdown.
func CalculateDayBreakdown(entries []entry.Entry) []DayBreakdown {
	days := []DayBreakdown{}
	index := make(map[string]int)

	for _, e := range entries {
		key := e.DisplayDate()
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, DayBreakdown{Date: key})
		}
		days[i].TotalHours += e.Hours
		days[i].EntryCount++
	}
	return days
}

package timeentry

import (
	"slices"

	"github.com/klokku/harvest-reminder/pkg/harvest"
	"github.com/klokku/harvest-reminder/pkg/roster"
	"github.com/shopspring/decimal"
)

type Aggregation struct {
	// Members mirrors the roster order with Hours summed.
	Members []roster.Member
	// Unmatched lists, sorted, owner names that have entries but no roster member.
	Unmatched []string
}

// Aggregate sums entry hours per owner name and assigns them to roster
// members by exact, case-sensitive name match. The roster is not modified.
func Aggregate(entries []harvest.TimeEntry, members []roster.Member) Aggregation {
	hoursByName := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		hoursByName[entry.User.Name] = hoursByName[entry.User.Name].Add(entry.Hours)
	}

	known := make(map[string]bool, len(members))
	result := make([]roster.Member, 0, len(members))
	for _, m := range members {
		known[m.Name] = true
		m.Hours = hoursByName[m.Name]
		result = append(result, m)
	}

	var unmatched []string
	for name := range hoursByName {
		if !known[name] {
			unmatched = append(unmatched, name)
		}
	}
	slices.Sort(unmatched)

	return Aggregation{Members: result, Unmatched: unmatched}
}

// RosterFromEntries builds a roster of every entry owner in order of first
// appearance. It stands in for the Harvest roster when that stage is disabled.
func RosterFromEntries(entries []harvest.TimeEntry) []roster.Member {
	seen := make(map[string]bool)
	var members []roster.Member
	for _, entry := range entries {
		if seen[entry.User.Name] {
			continue
		}
		seen[entry.User.Name] = true
		members = append(members, roster.NewMember(entry.User.Name))
	}
	return members
}

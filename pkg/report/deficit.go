package report

import (
	"fmt"
	"slices"

	"github.com/klokku/harvest-reminder/pkg/roster"
	"github.com/shopspring/decimal"
)

type Deficit struct {
	Name      string
	Hours     decimal.Decimal
	Missing   decimal.Decimal
	Threshold decimal.Decimal
}

// BuildDeficits keeps members below threshold, ordered by worked hours
// ascending. Members with equal hours keep their roster order.
func BuildDeficits(members []roster.Member, threshold decimal.Decimal) []Deficit {
	deficits := make([]Deficit, 0, len(members))
	for _, m := range members {
		if !m.Hours.LessThan(threshold) {
			continue
		}
		deficits = append(deficits, Deficit{
			Name:      m.Name,
			Hours:     m.Hours,
			Missing:   threshold.Sub(m.Hours),
			Threshold: threshold,
		})
	}
	slices.SortStableFunc(deficits, func(a, b Deficit) int {
		return a.Hours.Cmp(b.Hours)
	})
	return deficits
}

func (d Deficit) DisplayKey() string {
	return roster.DisplayKey(d.Name)
}

// Title is the headline of the member's entry, prefixed with their emoji.
func (d Deficit) Title() string {
	return fmt.Sprintf(":%s: %s", d.DisplayKey(), d.Name)
}

// MissingText renders the missing hours with two decimals.
func (d Deficit) MissingText() string {
	return fmt.Sprintf("Missing %s hours", d.Missing.StringFixed(2))
}

// Description is the plain-text summary used where rich formatting is not available.
func (d Deficit) Description(schedule string, periodText string) string {
	return fmt.Sprintf("%s only has %s of %s hours for the %s of %s.", d.Name, d.Hours, d.Threshold, schedule, periodText)
}

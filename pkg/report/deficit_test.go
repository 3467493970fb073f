package report

import (
	"testing"

	"github.com/klokku/harvest-reminder/pkg/roster"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(name string, hours string) roster.Member {
	return roster.Member{Name: name, Hours: decimal.RequireFromString(hours)}
}

func TestBuildDeficits(t *testing.T) {
	t.Run("should keep only members below threshold", func(t *testing.T) {
		// given
		members := []roster.Member{member("Alice Smith", "45"), member("Bob Jones", "35")}

		// when
		deficits := BuildDeficits(members, decimal.NewFromInt(40))

		// then
		require.Len(t, deficits, 1)
		assert.Equal(t, "Bob Jones", deficits[0].Name)
		assert.Equal(t, "35", deficits[0].Hours.String())
		assert.Equal(t, "5.00", deficits[0].Missing.StringFixed(2))
		assert.Equal(t, "bob", deficits[0].DisplayKey())
	})

	t.Run("should exclude members exactly at threshold", func(t *testing.T) {
		deficits := BuildDeficits([]roster.Member{member("Alice", "40")}, decimal.NewFromInt(40))

		assert.Empty(t, deficits)
	})

	t.Run("should sort ascending and keep roster order on ties", func(t *testing.T) {
		// given
		members := []roster.Member{
			member("Carol", "20"),
			member("Alice", "10"),
			member("Dan", "20"),
			member("Bob", "10"),
			member("Eve", "0"),
		}

		// when
		deficits := BuildDeficits(members, decimal.NewFromInt(40))

		// then
		names := make([]string, 0, len(deficits))
		for _, d := range deficits {
			names = append(names, d.Name)
		}
		assert.Equal(t, []string{"Eve", "Alice", "Bob", "Carol", "Dan"}, names)
	})

	t.Run("should return an empty list for an empty roster", func(t *testing.T) {
		deficits := BuildDeficits(nil, decimal.NewFromInt(40))

		assert.NotNil(t, deficits)
		assert.Empty(t, deficits)
	})

	t.Run("should report nobody when threshold is not positive", func(t *testing.T) {
		deficits := BuildDeficits([]roster.Member{member("Alice", "0")}, decimal.NewFromInt(-8))

		assert.Empty(t, deficits)
	})
}

func TestDeficit_Display(t *testing.T) {
	d := Deficit{
		Name:      "Alice Smith",
		Hours:     decimal.RequireFromString("31.666"),
		Missing:   decimal.RequireFromString("8.334"),
		Threshold: decimal.NewFromInt(40),
	}

	assert.Equal(t, ":alice: Alice Smith", d.Title())
	assert.Equal(t, "Missing 8.33 hours", d.MissingText())
	assert.Equal(t, "Alice Smith only has 31.666 of 40 hours for the week of _October 2026_.", d.Description("week", "_October 2026_"))
}

func TestDeficit_NegativeMissing(t *testing.T) {
	d := Deficit{Name: "Bob", Missing: decimal.RequireFromString("-2.5")}

	assert.Equal(t, "Missing -2.50 hours", d.MissingText())
}

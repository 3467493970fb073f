package roster

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Member is a team member eligible for hour tracking. Hours is filled in by
// the aggregation step and read-only afterwards.
type Member struct {
	Name  string
	Hours decimal.Decimal
}

func NewMember(name string) Member {
	return Member{Name: name, Hours: decimal.Zero}
}

// DisplayKey is the lowercase first name, used as the chat emoji handle.
func (m Member) DisplayKey() string {
	return DisplayKey(m.Name)
}

func DisplayKey(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

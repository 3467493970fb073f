package harvest

import (
	"strings"

	"github.com/shopspring/decimal"
)

type User struct {
	Id           int64            `json:"id"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	IsActive     bool             `json:"is_active"`
	IsContractor bool             `json:"is_contractor"`
	CostRate     *decimal.Decimal `json:"cost_rate"`
}

// Name is the full name Harvest uses for the user on time entries.
func (u User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type EntryUser struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

type TimeEntry struct {
	Id        int64           `json:"id"`
	SpentDate string          `json:"spent_date"`
	User      EntryUser       `json:"user"`
	Hours     decimal.Decimal `json:"hours"`
}

// UsersPage is the decoded body of GET /users. Users is nil when the
// response carried no users list at all.
type UsersPage struct {
	Users            []User `json:"users"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// TimeEntriesPage is the decoded body of GET /time_entries for a single page.
type TimeEntriesPage struct {
	TimeEntries      []TimeEntry `json:"time_entries"`
	Page             int         `json:"page"`
	TotalPages       int         `json:"total_pages"`
	ErrorDescription string      `json:"error_description,omitempty"`
}

type describedResponse interface {
	errorDescription() string
}

func (p *UsersPage) errorDescription() string {
	return p.ErrorDescription
}

func (p *TimeEntriesPage) errorDescription() string {
	return p.ErrorDescription
}

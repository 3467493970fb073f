package period

import (
	"fmt"
	"strconv"
	"time"
)

type Schedule string

const (
	Week  Schedule = "week"
	Month Schedule = "month"
)

const apiDateLayout = "2006-01-02"

// Period is the inclusive date range a report covers. Start and End are
// midnight in the location of the clock that produced them.
type Period struct {
	Schedule Schedule
	Start    time.Time
	End      time.Time
	// Display is the human readable range used verbatim in notifications.
	Display string
}

// From returns the start date in the format expected by the Harvest API.
func (p Period) From() string {
	return p.Start.Format(apiDateLayout)
}

// To returns the end date in the format expected by the Harvest API.
func (p Period) To() string {
	return p.End.Format(apiDateLayout)
}

// Contains reports whether the calendar day of t lies in [Start-margin, End+margin].
func (p Period) Contains(t time.Time, marginDays int) bool {
	year, month, day := t.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, p.Start.Location())
	return !date.Before(p.Start.AddDate(0, 0, -marginDays)) && !date.After(p.End.AddDate(0, 0, marginDays))
}

func (p Period) String() string {
	return fmt.Sprintf("%s [%s, %s]", p.Schedule, p.From(), p.To())
}

func formatLongDate(t time.Time) string {
	return t.Format("Monday, January ") + ordinal(t.Day()) + " " + strconv.Itoa(t.Year())
}

func ordinal(day int) string {
	suffix := "th"
	switch day % 100 {
	case 11, 12, 13:
	default:
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(day) + suffix
}

package period

import (
	"time"

	"github.com/klokku/harvest-reminder/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Schedule Schedule
	// StartWeekday and EndWeekday are offsets from Sunday of the current week.
	// Values outside 0..6 reach into neighbouring weeks.
	StartWeekday int
	EndWeekday   int
}

type Calculator struct {
	clock utils.Clock
}

func NewCalculator(clock utils.Clock) *Calculator {
	return &Calculator{clock: clock}
}

// Calculate derives the report period from the current date.
func (c *Calculator) Calculate(cfg Config) Period {
	today := utils.StartOfDay(c.clock.Now())

	var p Period
	if cfg.Schedule == Month {
		p = previousMonth(today)
	} else {
		p = currentWeek(today, cfg.StartWeekday, cfg.EndWeekday)
	}
	log.Debugf("Calculated report period: %s", p)
	return p
}

func currentWeek(today time.Time, startWeekday, endWeekday int) Period {
	start := onWeekday(today, startWeekday)
	end := onWeekday(today, endWeekday)
	return Period{
		Schedule: Week,
		Start:    start,
		End:      end,
		Display:  "_" + formatLongDate(start) + "_ to _" + formatLongDate(end) + "_",
	}
}

// onWeekday moves today to the given weekday of the Sunday-based week containing today.
func onWeekday(today time.Time, weekday int) time.Time {
	return today.AddDate(0, 0, weekday-int(today.Weekday()))
}

func previousMonth(today time.Time) Period {
	firstOfThisMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	start := firstOfThisMonth.AddDate(0, -1, 0)
	end := firstOfThisMonth.AddDate(0, 0, -1)
	return Period{
		Schedule: Month,
		Start:    start,
		End:      end,
		Display:  "_" + start.Format("January 2006") + "_",
	}
}

package holiday

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/klokku/harvest-reminder/internal/utils"
	"github.com/klokku/harvest-reminder/pkg/period"
	"github.com/klokku/harvest-reminder/pkg/upstream"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// windowMarginDays widens the period on both sides so holidays that shift by
// a day through timezone rounding are still counted.
const windowMarginDays = 1

const dateLayout = "2006-01-02"

type Adjuster struct {
	source Source
	clock  utils.Clock
}

// NewAdjuster creates an adjuster. A nil source means no holiday calendar is
// configured.
func NewAdjuster(source Source, clock utils.Clock) *Adjuster {
	return &Adjuster{source: source, clock: clock}
}

// Adjust returns threshold reduced by daily for every holiday of the current
// year falling in the widened period. The result may be negative.
func (a *Adjuster) Adjust(ctx context.Context, threshold, daily decimal.Decimal, p period.Period) (decimal.Decimal, error) {
	calendar, err := a.calendar(ctx)
	if errors.Is(err, ErrSourceNotConfigured) {
		log.Info("No holiday calendar configured, minimum hours left unchanged")
		return threshold, nil
	}
	if err != nil {
		return decimal.Decimal{}, err
	}

	year := strconv.Itoa(a.clock.Now().Year())
	dates, ok := calendar[year]
	if !ok {
		log.Infof("Holiday calendar has no entry for %s, minimum hours left unchanged", year)
		return threshold, nil
	}

	adjusted, matched := AdjustThreshold(threshold, daily, p, dates)
	if len(matched) > 0 {
		log.Infof("Found %d holidays in %s, minimum hours lowered from %s to %s", len(matched), p, threshold, adjusted)
	}
	return adjusted, nil
}

func (a *Adjuster) calendar(ctx context.Context) (Calendar, error) {
	if a.source == nil {
		return nil, ErrSourceNotConfigured
	}
	calendar, err := a.source.Holidays(ctx)
	if err != nil {
		if upstream.IsDataError(err) {
			return nil, err
		}
		return nil, upstream.WrapDataError("holiday calendar", err)
	}
	return calendar, nil
}

// AdjustThreshold subtracts daily once per distinct date in dates that falls
// within [p.Start-1 day, p.End+1 day]. It returns the new threshold and the
// matched dates in the order they were first seen.
func AdjustThreshold(threshold, daily decimal.Decimal, p period.Period, dates []string) (decimal.Decimal, []time.Time) {
	seen := make(map[string]bool, len(dates))
	var matched []time.Time
	for _, raw := range dates {
		date, err := time.ParseInLocation(dateLayout, raw, p.Start.Location())
		if err != nil {
			log.Warnf("ignoring malformed holiday date %q: %v", raw, err)
			continue
		}
		key := date.Format(dateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		if p.Contains(date, windowMarginDays) {
			matched = append(matched, date)
			threshold = threshold.Sub(daily)
		}
	}
	return threshold, matched
}

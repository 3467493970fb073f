package report

import (
	"context"

	"github.com/klokku/harvest-reminder/pkg/holiday"
	"github.com/klokku/harvest-reminder/pkg/period"
	"github.com/klokku/harvest-reminder/pkg/roster"
	"github.com/klokku/harvest-reminder/pkg/timeentry"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Period            period.Config
	MinimumHours      decimal.Decimal
	MinimumDailyHours decimal.Decimal
}

type Report struct {
	Period    period.Period
	Threshold decimal.Decimal
	Members   []roster.Member
	Deficits  []Deficit
	// Unmatched holds owner names of entries that belong to nobody on the roster.
	Unmatched []string
}

type Service interface {
	Generate(ctx context.Context) (Report, error)
}

type ServiceImpl struct {
	cfg      Config
	periods  *period.Calculator
	roster   roster.Service
	holidays *holiday.Adjuster
	entries  timeentry.Fetcher
}

// NewServiceImpl wires the pipeline. A nil rosterService skips the roster
// stage and reports on everyone who logged time.
func NewServiceImpl(
	cfg Config,
	periods *period.Calculator,
	rosterService roster.Service,
	holidays *holiday.Adjuster,
	entries timeentry.Fetcher,
) *ServiceImpl {
	return &ServiceImpl{
		cfg:      cfg,
		periods:  periods,
		roster:   rosterService,
		holidays: holidays,
		entries:  entries,
	}
}

// Generate runs every stage in order and stops at the first failure.
func (s *ServiceImpl) Generate(ctx context.Context) (Report, error) {
	p := s.periods.Calculate(s.cfg.Period)
	log.Infof("Generating report for %s", p)

	var members []roster.Member
	if s.roster != nil {
		var err error
		members, err = s.roster.FetchRoster(ctx)
		if err != nil {
			return Report{}, err
		}
	}

	threshold, err := s.holidays.Adjust(ctx, s.cfg.MinimumHours, s.cfg.MinimumDailyHours, p)
	if err != nil {
		return Report{}, err
	}

	entries, err := s.entries.FetchAll(ctx, p)
	if err != nil {
		return Report{}, err
	}
	log.Debugf("Fetched %d time entries", len(entries))

	if s.roster == nil {
		members = timeentry.RosterFromEntries(entries)
	}

	aggregation := timeentry.Aggregate(entries, members)
	if len(aggregation.Unmatched) > 0 {
		log.Warnf("Time entries of %d users do not match the roster and were skipped: %v",
			len(aggregation.Unmatched), aggregation.Unmatched)
	}

	deficits := BuildDeficits(aggregation.Members, threshold)
	log.Infof("%d of %d users are below %s hours", len(deficits), len(aggregation.Members), threshold)

	return Report{
		Period:    p,
		Threshold: threshold,
		Members:   aggregation.Members,
		Deficits:  deficits,
		Unmatched: aggregation.Unmatched,
	}, nil
}

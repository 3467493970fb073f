package app

import (
	"context"
	"net/http"

	"github.com/klokku/harvest-reminder/internal/config"
	"github.com/klokku/harvest-reminder/internal/utils"
	"github.com/klokku/harvest-reminder/pkg/harvest"
	"github.com/klokku/harvest-reminder/pkg/holiday"
	"github.com/klokku/harvest-reminder/pkg/period"
	"github.com/klokku/harvest-reminder/pkg/report"
	"github.com/klokku/harvest-reminder/pkg/roster"
	"github.com/klokku/harvest-reminder/pkg/slack"
	"github.com/klokku/harvest-reminder/pkg/timeentry"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Dependencies holds every stage of the report pipeline.
type Dependencies struct {
	Clock utils.Clock

	HarvestClient harvest.Client
	RosterService roster.Service
	EntryFetcher  timeentry.Fetcher

	PeriodCalculator *period.Calculator
	HolidaySource    holiday.Source
	HolidayAdjuster  *holiday.Adjuster

	ReportService report.Service
	Notifier      slack.Notifier
}

// BuildDependencies initializes and wires all pipeline stages.
func BuildDependencies(ctx context.Context, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	if cfg.Harvest.FixtureFile != "" {
		log.Warnf("Using fixture file %s instead of the Harvest API", cfg.Harvest.FixtureFile)
		deps.HarvestClient = harvest.NewFixtureClient(cfg.Harvest.FixtureFile)
	} else {
		deps.HarvestClient = harvest.NewClient(ctx, harvest.ClientConfig{
			BaseUrl:      cfg.Harvest.BaseUrl,
			AccountId:    cfg.Harvest.AccountId,
			AccountEmail: cfg.Harvest.AccountEmail,
			Token:        cfg.Harvest.Token,
		})
	}
	if cfg.Report.UseRoster {
		deps.RosterService = roster.NewServiceImpl(deps.HarvestClient)
	}
	deps.EntryFetcher = timeentry.NewFetcherImpl(deps.HarvestClient)

	deps.PeriodCalculator = period.NewCalculator(deps.Clock)

	source, err := newHolidaySource(ctx, cfg.Holidays, deps.Clock)
	if err != nil {
		return nil, err
	}
	deps.HolidaySource = source
	deps.HolidayAdjuster = holiday.NewAdjuster(deps.HolidaySource, deps.Clock)

	reportConfig, err := newReportConfig(cfg)
	if err != nil {
		return nil, err
	}
	deps.ReportService = report.NewServiceImpl(
		reportConfig,
		deps.PeriodCalculator,
		deps.RosterService,
		deps.HolidayAdjuster,
		deps.EntryFetcher,
	)

	deps.Notifier = slack.NewWebhookNotifier(cfg.Slack.WebhookUrl, cfg.Slack.Timeout)

	return deps, nil
}

// newHolidaySource returns nil when no calendar is configured.
func newHolidaySource(ctx context.Context, cfg config.Holidays, clock utils.Clock) (holiday.Source, error) {
	switch {
	case cfg.Url != "":
		return holiday.NewJSONSource(cfg.Url, http.DefaultClient), nil
	case cfg.GoogleCalendarId != "":
		return holiday.NewGoogleCalendarSource(ctx, cfg.GoogleCalendarId, clock, option.WithAPIKey(cfg.GoogleApiKey))
	default:
		return nil, nil
	}
}

func newReportConfig(cfg config.Application) (report.Config, error) {
	start, end, err := cfg.Schedule.Weekdays()
	if err != nil {
		return report.Config{}, err
	}
	return report.Config{
		Period: period.Config{
			Schedule:     period.Schedule(cfg.Schedule.Kind),
			StartWeekday: start,
			EndWeekday:   end,
		},
		MinimumHours:      decimal.NewFromFloat(cfg.Hours.Minimum),
		MinimumDailyHours: decimal.NewFromFloat(cfg.Hours.MinimumDaily),
	}, nil
}

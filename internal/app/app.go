package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/klokku/harvest-reminder/internal/config"
	"github.com/klokku/harvest-reminder/pkg/slack"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration and the report pipeline for a single run.
type Application struct {
	cfg  config.Application
	deps *Dependencies
}

// NewApplication loads configuration and builds the pipeline, ready to Run().
func NewApplication(ctx context.Context, configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	deps, err := BuildDependencies(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Application{cfg: cfg, deps: deps}, nil
}

// NewApplicationWithDependencies is used when the pipeline stages are built elsewhere.
func NewApplicationWithDependencies(cfg config.Application, deps *Dependencies) *Application {
	return &Application{cfg: cfg, deps: deps}
}

// Run generates the report and posts exactly one notification. Nothing is
// posted when any stage fails.
func (a *Application) Run(ctx context.Context) error {
	logger := log.WithField("run", uuid.NewString())
	logger.Infof("Starting %s report", a.cfg.Schedule.Kind)

	r, err := a.deps.ReportService.Generate(ctx)
	if err != nil {
		logger.Errorf("Report generation failed, no notification sent: %v", err)
		return err
	}

	message := slack.BuildMessage(slack.Bot{Name: a.cfg.Slack.BotName, Icon: a.cfg.Slack.BotIcon}, r)
	if err := a.deps.Notifier.Send(ctx, message); err != nil {
		logger.Errorf("Failed to post report: %v", err)
		return err
	}

	logger.Infof("Posted report for %s with %d users below %s hours", r.Period, len(r.Deficits), r.Threshold)
	return nil
}

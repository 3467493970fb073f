package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "HARVEST_REMINDER_"

type Application struct {
	Schedule Schedule `koanf:"schedule"`
	Hours    Hours    `koanf:"hours"`
	Harvest  Harvest  `koanf:"harvest"`
	Holidays Holidays `koanf:"holidays"`
	Slack    Slack    `koanf:"slack"`
	Report   Report   `koanf:"report"`
}

type Schedule struct {
	Kind string `koanf:"kind"`
	// StartWeekday and EndWeekday accept a weekday name ("monday") or an
	// offset from Sunday of the current week ("-6" is last Monday).
	StartWeekday string `koanf:"startweekday"`
	EndWeekday   string `koanf:"endweekday"`
}

type Hours struct {
	Minimum      float64 `koanf:"minimum"`
	MinimumDaily float64 `koanf:"minimumdaily"`
}

type Harvest struct {
	BaseUrl      string `koanf:"baseurl"`
	AccountId    string `koanf:"accountid"`
	AccountEmail string `koanf:"accountemail"`
	Token        string `koanf:"token"`
	FixtureFile  string `koanf:"fixturefile"`
}

type Holidays struct {
	Url              string `koanf:"url"`
	GoogleCalendarId string `koanf:"googlecalendarid"`
	GoogleApiKey     string `koanf:"googleapikey"`
}

type Slack struct {
	WebhookUrl string        `koanf:"webhookurl"`
	BotName    string        `koanf:"botname"`
	BotIcon    string        `koanf:"boticon"`
	Timeout    time.Duration `koanf:"timeout"`
}

type Report struct {
	UseRoster bool `koanf:"useroster"`
}

var ErrInvalidConfig = errors.New("invalid configuration")

var weekdayNames = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

func Defaults() Application {
	return Application{
		Schedule: Schedule{
			Kind:         "week",
			StartWeekday: "-6",
			EndWeekday:   "-2",
		},
		Hours: Hours{
			Minimum:      40,
			MinimumDaily: 8,
		},
		Harvest: Harvest{
			BaseUrl: "https://api.harvestapp.com/v2",
		},
		Slack: Slack{
			BotName: "Harvest",
			Timeout: 15 * time.Second,
		},
		Report: Report{
			UseRoster: true,
		},
	}
}

func Load(path string) (Application, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("unable to load .env file: %v", err)
	}

	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if err := app.Validate(); err != nil {
		return Application{}, err
	}

	return app, nil
}

// Validate reports the first configuration problem that would make a run meaningless.
func (a Application) Validate() error {
	switch a.Schedule.Kind {
	case "week", "month":
	default:
		return fmt.Errorf("%w: unknown schedule kind %q", ErrInvalidConfig, a.Schedule.Kind)
	}
	if _, _, err := a.Schedule.Weekdays(); err != nil {
		return err
	}
	if a.Slack.WebhookUrl == "" {
		return fmt.Errorf("%w: slack.webhookurl is required", ErrInvalidConfig)
	}
	if a.Harvest.FixtureFile == "" && (a.Harvest.AccountId == "" || a.Harvest.Token == "") {
		return fmt.Errorf("%w: harvest.accountid and harvest.token are required", ErrInvalidConfig)
	}
	if a.Holidays.GoogleCalendarId != "" && a.Holidays.GoogleApiKey == "" {
		return fmt.Errorf("%w: holidays.googleapikey is required with holidays.googlecalendarid", ErrInvalidConfig)
	}
	return nil
}

// Weekdays returns the configured start and end weekdays as offsets from Sunday.
func (s Schedule) Weekdays() (int, int, error) {
	start, err := parseWeekday(s.StartWeekday)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseWeekday(s.EndWeekday)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseWeekday(value string) (int, error) {
	value = strings.TrimSpace(value)
	if day, ok := weekdayNames[strings.ToLower(value)]; ok {
		return day, nil
	}
	day, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: weekday %q is neither a name nor a number", ErrInvalidConfig, value)
	}
	return day, nil
}

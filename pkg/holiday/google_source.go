package holiday

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/klokku/harvest-reminder/internal/utils"
	"github.com/klokku/harvest-reminder/pkg/upstream"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarSource reads all-day events of a public Google holiday
// calendar (e.g. "en.usa#holiday@group.v.calendar.google.com") for the
// current year.
type GoogleCalendarSource struct {
	service    *gcal.Service
	calendarId string
	clock      utils.Clock
}

// NewGoogleCalendarSource creates the source. Callers pass option.WithAPIKey
// in production; tests may point option.WithEndpoint at a fake server.
func NewGoogleCalendarSource(ctx context.Context, calendarId string, clock utils.Clock, opts ...option.ClientOption) (*GoogleCalendarSource, error) {
	service, err := gcal.NewService(ctx, opts...)
	if err != nil {
		err := fmt.Errorf("unable to create Google Calendar client: %w", err)
		log.Error(err)
		return nil, err
	}
	return &GoogleCalendarSource{service: service, calendarId: calendarId, clock: clock}, nil
}

func (s *GoogleCalendarSource) Holidays(ctx context.Context) (Calendar, error) {
	year := s.clock.Now().Year()
	loc := s.clock.Now().Location()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(1, 0, 0)

	calendar := Calendar{}
	err := s.service.Events.List(s.calendarId).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		Pages(ctx, func(events *gcal.Events) error {
			for _, item := range events.Items {
				date := eventDate(item)
				if date == "" {
					log.Warnf("ignoring holiday event without a start date: %s", item.Summary)
					continue
				}
				key := date[:4]
				calendar[key] = append(calendar[key], date)
			}
			return nil
		})
	if err != nil {
		err := upstream.WrapDataError("google holiday calendar", err)
		log.Error(err)
		return nil, err
	}
	log.Debugf("Loaded %d holidays for %d from Google Calendar", len(calendar[strconv.Itoa(year)]), year)
	return calendar, nil
}

// eventDate returns the YYYY-MM-DD start of an all-day or timed event.
func eventDate(event *gcal.Event) string {
	if event.Start == nil {
		return ""
	}
	if len(event.Start.Date) >= 10 {
		return event.Start.Date[:10]
	}
	if len(event.Start.DateTime) >= 10 {
		return event.Start.DateTime[:10]
	}
	return ""
}

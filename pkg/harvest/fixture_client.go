package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/klokku/harvest-reminder/pkg/upstream"
	log "github.com/sirupsen/logrus"
)

// FixtureClient serves users and time entries from a local JSON file for
// non-production runs. The file holds {"users": [...], "time_entries": [...]}
// and is exposed as a single page.
type FixtureClient struct {
	path string
}

type fixture struct {
	Users       []User      `json:"users"`
	TimeEntries []TimeEntry `json:"time_entries"`
}

func NewFixtureClient(path string) *FixtureClient {
	return &FixtureClient{path: path}
}

func (c *FixtureClient) GetUsers(_ context.Context) (UsersPage, error) {
	f, err := c.load()
	if err != nil {
		return UsersPage{}, err
	}
	return UsersPage{Users: f.Users}, nil
}

func (c *FixtureClient) GetTimeEntries(_ context.Context, from string, to string, page int) (TimeEntriesPage, error) {
	f, err := c.load()
	if err != nil {
		return TimeEntriesPage{}, err
	}
	log.Debugf("Serving fixture time entries for %s - %s, page %d", from, to, page)
	if page != 1 {
		return TimeEntriesPage{TimeEntries: []TimeEntry{}, Page: page, TotalPages: 1}, nil
	}
	return TimeEntriesPage{TimeEntries: f.TimeEntries, Page: 1, TotalPages: 1}, nil
}

func (c *FixtureClient) load() (fixture, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		log.Errorf("Failed to read fixture file %s: %v", c.path, err)
		return fixture{}, upstream.WrapDataError("fixture", err)
	}
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		log.Errorf("Failed to decode fixture file %s: %v", c.path, err)
		return fixture{}, upstream.WrapDataError("fixture", fmt.Errorf("decoding %s: %w", c.path, err))
	}
	return f, nil
}

package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/klokku/harvest-reminder/pkg/upstream"
	log "github.com/sirupsen/logrus"
)

// JSONSource reads a calendar document of the form {"2026": ["2026-01-01", ...]}.
type JSONSource struct {
	url        string
	httpClient *http.Client
}

func NewJSONSource(url string, httpClient *http.Client) *JSONSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &JSONSource{url: url, httpClient: httpClient}
}

func (s *JSONSource) Holidays(ctx context.Context) (Calendar, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, upstream.WrapDataError("holiday calendar", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, upstream.WrapDataError("holiday calendar", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := upstream.NewDataError("holiday calendar", fmt.Sprintf("non-OK status: %d", resp.StatusCode))
		log.Error(err)
		return nil, err
	}

	var calendar Calendar
	if err := json.NewDecoder(resp.Body).Decode(&calendar); err != nil {
		log.Errorf("Failed to decode holiday calendar: %v", err)
		return nil, upstream.WrapDataError("holiday calendar", err)
	}
	return calendar, nil
}

package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/klokku/harvest-reminder/pkg/upstream"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const DefaultBaseURL = "https://api.harvestapp.com/v2"

type Client interface {
	// GET /v2/users
	GetUsers(ctx context.Context) (UsersPage, error)
	// GET /v2/time_entries?from=&to=&page=
	GetTimeEntries(ctx context.Context, from string, to string, page int) (TimeEntriesPage, error)
}

type ClientConfig struct {
	BaseUrl      string
	AccountId    string
	AccountEmail string
	Token        string
}

type ClientImpl struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// NewClient creates a live Harvest client. The bearer token is attached by
// an oauth2 transport; no token refresh takes place.
func NewClient(ctx context.Context, cfg ClientConfig) *ClientImpl {
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = DefaultBaseURL
	}
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
	return &ClientImpl{
		cfg:        cfg,
		httpClient: oauth2.NewClient(ctx, tokenSource),
	}
}

// GetUsers retrieves every user of the account in a single call
func (c *ClientImpl) GetUsers(ctx context.Context) (UsersPage, error) {
	var response UsersPage
	if err := c.get(ctx, "users", c.cfg.BaseUrl+"/users", &response); err != nil {
		return UsersPage{}, err
	}
	return response, nil
}

// GetTimeEntries retrieves one page of time entries spent between from and to (inclusive, YYYY-MM-DD)
func (c *ClientImpl) GetTimeEntries(ctx context.Context, from string, to string, page int) (TimeEntriesPage, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)
	query.Set("page", strconv.Itoa(page))

	var response TimeEntriesPage
	source := fmt.Sprintf("time entries page %d", page)
	if err := c.get(ctx, source, c.cfg.BaseUrl+"/time_entries?"+query.Encode(), &response); err != nil {
		return TimeEntriesPage{}, err
	}
	return response, nil
}

// get decodes the JSON body into target. Error bodies that carry an
// error_description are decoded too and left for the caller to report.
func (c *ClientImpl) get(ctx context.Context, source string, endpoint string, target describedResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return err
	}
	req.Header.Set("User-Agent", fmt.Sprintf("Reports (%s)", c.cfg.AccountEmail))
	req.Header.Set("Harvest-Account-Id", c.cfg.AccountId)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return upstream.WrapDataError(source, err)
	}
	defer resp.Body.Close()

	decodeErr := json.NewDecoder(resp.Body).Decode(target)
	if resp.StatusCode != http.StatusOK {
		if decodeErr != nil || target.errorDescription() == "" {
			err := upstream.NewDataError(source, fmt.Sprintf("Harvest API returned non-OK status: %d", resp.StatusCode))
			log.Error(err)
			return err
		}
		log.Debugf("Harvest API returned status %d: %s", resp.StatusCode, target.errorDescription())
		return nil
	}
	if decodeErr != nil {
		log.Errorf("Failed to decode response: %v", decodeErr)
		return upstream.WrapDataError(source, decodeErr)
	}
	return nil
}

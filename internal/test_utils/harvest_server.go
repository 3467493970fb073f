package test_utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

const invalidTokenDescription = "The access token provided is expired, revoked, malformed or invalid for other reasons."

type FakeUser struct {
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	IsActive     bool     `json:"is_active"`
	IsContractor bool     `json:"is_contractor"`
	CostRate     *float64 `json:"cost_rate"`
}

type FakeEntry struct {
	UserName  string
	Hours     float64
	SpentDate string
}

// HarvestServer is an in-process stand-in for the Harvest v2 API.
type HarvestServer struct {
	*httptest.Server
	AccountId string
	Token     string

	mu               sync.Mutex
	users            []FakeUser
	omitUsers        bool
	omitEntries      bool
	entries          []FakeEntry
	perPage          int
	errorDescription string
	queries          []url.Values
	headers          []http.Header
}

func NewHarvestServer(t *testing.T, accountId string, token string) *HarvestServer {
	t.Helper()

	s := &HarvestServer{AccountId: accountId, Token: token, perPage: 100}

	r := mux.NewRouter()
	api := r.PathPrefix("/v2").Subrouter()
	api.Use(s.authenticate)
	api.HandleFunc("/users", s.handleUsers).Methods(http.MethodGet)
	api.HandleFunc("/time_entries", s.handleTimeEntries).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Server.Close)
	return s
}

func (s *HarvestServer) BaseUrl() string {
	return s.Server.URL + "/v2"
}

func (s *HarvestServer) SetUsers(users ...FakeUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.omitUsers = false
}

// OmitUsers makes /users answer without a users list.
func (s *HarvestServer) OmitUsers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitUsers = true
}

// OmitTimeEntries makes /time_entries answer without a time_entries list.
func (s *HarvestServer) OmitTimeEntries() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitEntries = true
}

func (s *HarvestServer) SetEntries(perPage int, entries ...FakeEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.perPage = perPage
	s.entries = entries
}

// FailTimeEntries makes /time_entries answer with the given error description.
func (s *HarvestServer) FailTimeEntries(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorDescription = description
}

// Queries returns the query strings of every /time_entries request received.
func (s *HarvestServer) Queries() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.queries...)
}

// Headers returns the headers of every authenticated request received.
func (s *HarvestServer) Headers() []http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]http.Header(nil), s.headers...)
}

func (s *HarvestServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.Token || r.Header.Get("Harvest-Account-Id") != s.AccountId {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_token",
				"error_description": invalidTokenDescription,
			})
			return
		}
		s.mu.Lock()
		s.headers = append(s.headers, r.Header.Clone())
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *HarvestServer) handleUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.omitUsers {
		writeJSON(w, http.StatusOK, map[string]any{"per_page": 100})
		return
	}
	users := s.users
	if users == nil {
		users = []FakeUser{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *HarvestServer) handleTimeEntries(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := r.URL.Query()
	s.queries = append(s.queries, query)

	if s.errorDescription != "" {
		writeJSON(w, http.StatusOK, map[string]string{"error_description": s.errorDescription})
		return
	}
	if s.omitEntries {
		writeJSON(w, http.StatusOK, map[string]any{"per_page": s.perPage, "page": 1, "total_pages": 1})
		return
	}

	from, to := query.Get("from"), query.Get("to")
	var matching []FakeEntry
	for _, e := range s.entries {
		if e.SpentDate != "" && (e.SpentDate < from || e.SpentDate > to) {
			continue
		}
		matching = append(matching, e)
	}

	totalPages := (len(matching) + s.perPage - 1) / s.perPage
	if totalPages == 0 {
		totalPages = 1
	}
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	entries := make([]map[string]any, 0, s.perPage)
	for i := (page - 1) * s.perPage; i < page*s.perPage && i < len(matching); i++ {
		entries = append(entries, map[string]any{
			"id":         i + 1,
			"spent_date": matching[i].SpentDate,
			"hours":      matching[i].Hours,
			"user":       map[string]any{"id": 1, "name": matching[i].UserName},
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"time_entries": entries,
		"per_page":     s.perPage,
		"page":         page,
		"total_pages":  totalPages,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func Rate(value float64) *float64 {
	return &value
}

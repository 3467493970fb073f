package harvest

import (
	"context"
	"errors"
	"sync"
)

type ClientStub struct {
	mu                sync.RWMutex
	users             UsersPage
	pages             map[int]TimeEntriesPage
	requestedPages    []int
	getUsersErr       error
	getTimeEntriesErr map[int]error
}

func NewClientStub() *ClientStub {
	return &ClientStub{
		pages:             make(map[int]TimeEntriesPage),
		getTimeEntriesErr: make(map[int]error),
	}
}

func (c *ClientStub) GetUsers(ctx context.Context) (UsersPage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.getUsersErr != nil {
		return UsersPage{}, c.getUsersErr
	}

	result := UsersPage{ErrorDescription: c.users.ErrorDescription}
	if c.users.Users != nil {
		result.Users = make([]User, len(c.users.Users))
		copy(result.Users, c.users.Users)
	}
	return result, nil
}

func (c *ClientStub) GetTimeEntries(ctx context.Context, from string, to string, page int) (TimeEntriesPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requestedPages = append(c.requestedPages, page)

	if err := c.getTimeEntriesErr[page]; err != nil {
		return TimeEntriesPage{}, err
	}

	stored, exists := c.pages[page]
	if !exists {
		return TimeEntriesPage{TimeEntries: []TimeEntry{}, Page: page, TotalPages: len(c.pages)}, nil
	}

	result := stored
	if stored.TimeEntries != nil {
		result.TimeEntries = make([]TimeEntry, len(stored.TimeEntries))
		copy(result.TimeEntries, stored.TimeEntries)
	}
	return result, nil
}

// Helper methods for test setup

func (c *ClientStub) SetUsers(users []User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = UsersPage{Users: make([]User, len(users))}
	copy(c.users.Users, users)
}

// SetUsersPage stores a raw users response, e.g. one without a users list.
func (c *ClientStub) SetUsersPage(page UsersPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = page
}

func (c *ClientStub) SetTimeEntriesPage(page int, entriesPage TimeEntriesPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entriesPage.Page == 0 {
		entriesPage.Page = page
	}
	c.pages[page] = entriesPage
}

// SetPagedTimeEntries spreads the given pages over page numbers 1..len(pages).
func (c *ClientStub) SetPagedTimeEntries(pages ...[]TimeEntry) {
	for i, entries := range pages {
		c.SetTimeEntriesPage(i+1, TimeEntriesPage{TimeEntries: entries, TotalPages: len(pages)})
	}
}

// RequestedPages returns the page numbers requested so far, in arrival order.
func (c *ClientStub) RequestedPages() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]int, len(c.requestedPages))
	copy(result, c.requestedPages)
	return result
}

// Error setters for testing error scenarios

func (c *ClientStub) SetGetUsersError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getUsersErr = err
}

func (c *ClientStub) SetGetTimeEntriesError(page int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getTimeEntriesErr[page] = err
}

// Reset clears all data
func (c *ClientStub) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.users = UsersPage{}
	c.pages = make(map[int]TimeEntriesPage)
	c.requestedPages = nil
	c.getUsersErr = nil
	c.getTimeEntriesErr = make(map[int]error)
}

var ErrClientTestError = errors.New("client test error")

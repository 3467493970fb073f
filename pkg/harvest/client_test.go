package harvest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klokku/harvest-reminder/internal/test_utils"
	"github.com/klokku/harvest-reminder/pkg/upstream"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClientTest(t *testing.T) (*ClientImpl, *test_utils.HarvestServer) {
	server := test_utils.NewHarvestServer(t, "98765", "token-1")
	client := NewClient(context.Background(), ClientConfig{
		BaseUrl:      server.BaseUrl(),
		AccountId:    "98765",
		AccountEmail: "ops@example.com",
		Token:        "token-1",
	})
	return client, server
}

func TestClientImpl_GetUsers(t *testing.T) {
	t.Run("should decode users and send harvest headers", func(t *testing.T) {
		// given
		client, server := setupClientTest(t)
		server.SetUsers(
			test_utils.FakeUser{FirstName: "Alice", LastName: "Smith", IsActive: true, CostRate: test_utils.Rate(55.5)},
			test_utils.FakeUser{FirstName: "Bob", LastName: "Jones", IsActive: true, IsContractor: true},
		)

		// when
		page, err := client.GetUsers(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, page.Users, 2)
		assert.Equal(t, "Alice Smith", page.Users[0].Name())
		require.NotNil(t, page.Users[0].CostRate)
		assert.True(t, decimal.RequireFromString("55.5").Equal(*page.Users[0].CostRate))
		assert.Nil(t, page.Users[1].CostRate)
		assert.True(t, page.Users[1].IsContractor)

		headers := server.Headers()
		require.Len(t, headers, 1)
		assert.Equal(t, "Reports (ops@example.com)", headers[0].Get("User-Agent"))
		assert.Equal(t, "98765", headers[0].Get("Harvest-Account-Id"))
		assert.Equal(t, "application/json", headers[0].Get("Accept"))
		assert.Equal(t, "application/json", headers[0].Get("Content-Type"))
	})

	t.Run("should return nil users when the list is missing", func(t *testing.T) {
		// given
		client, server := setupClientTest(t)
		server.OmitUsers()

		// when
		page, err := client.GetUsers(context.Background())

		// then
		require.NoError(t, err)
		assert.Nil(t, page.Users)
	})

	t.Run("should surface the error description of a rejected token", func(t *testing.T) {
		// given
		_, server := setupClientTest(t)
		client := NewClient(context.Background(), ClientConfig{
			BaseUrl:   server.BaseUrl(),
			AccountId: "98765",
			Token:     "expired",
		})

		// when
		page, err := client.GetUsers(context.Background())

		// then
		require.NoError(t, err)
		assert.Nil(t, page.Users)
		assert.Contains(t, page.ErrorDescription, "access token")
	})

	t.Run("should report an unreachable API as upstream data error", func(t *testing.T) {
		// given
		client, server := setupClientTest(t)
		server.Close()

		// when
		_, err := client.GetUsers(context.Background())

		// then
		assert.True(t, upstream.IsDataError(err))
	})
}

func TestClientImpl_GetTimeEntries(t *testing.T) {
	t.Run("should request the given page and range", func(t *testing.T) {
		// given
		client, server := setupClientTest(t)
		server.SetEntries(2,
			test_utils.FakeEntry{UserName: "Alice Smith", Hours: 1.5, SpentDate: "2026-10-12"},
			test_utils.FakeEntry{UserName: "Alice Smith", Hours: 2.25, SpentDate: "2026-10-13"},
			test_utils.FakeEntry{UserName: "Bob Jones", Hours: 8, SpentDate: "2026-10-14"},
			test_utils.FakeEntry{UserName: "Bob Jones", Hours: 8, SpentDate: "2026-10-30"},
		)

		// when
		page, err := client.GetTimeEntries(context.Background(), "2026-10-12", "2026-10-16", 2)

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.TimeEntries, 1)
		assert.Equal(t, "Bob Jones", page.TimeEntries[0].User.Name)
		assert.True(t, decimal.NewFromInt(8).Equal(page.TimeEntries[0].Hours))

		queries := server.Queries()
		require.Len(t, queries, 1)
		assert.Equal(t, "2026-10-12", queries[0].Get("from"))
		assert.Equal(t, "2026-10-16", queries[0].Get("to"))
		assert.Equal(t, "2", queries[0].Get("page"))
	})

	t.Run("should keep the error description of a failed page", func(t *testing.T) {
		// given
		client, server := setupClientTest(t)
		server.FailTimeEntries("Invalid date range")

		// when
		page, err := client.GetTimeEntries(context.Background(), "2026-10-12", "2026-10-16", 1)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Invalid date range", page.ErrorDescription)
	})

	t.Run("should return nil entries when the list is missing", func(t *testing.T) {
		// given
		client, server := setupClientTest(t)
		server.OmitTimeEntries()

		// when
		page, err := client.GetTimeEntries(context.Background(), "2026-10-12", "2026-10-16", 1)

		// then
		require.NoError(t, err)
		assert.Nil(t, page.TimeEntries)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestClientStub_GetTimeEntries(t *testing.T) {
	t.Run("should keep a missing entries list missing", func(t *testing.T) {
		// given
		client := NewClientStub()
		client.SetTimeEntriesPage(1, TimeEntriesPage{TotalPages: 1})

		// when
		page, err := client.GetTimeEntries(context.Background(), "2026-10-12", "2026-10-16", 1)

		// then
		require.NoError(t, err)
		assert.Nil(t, page.TimeEntries)
	})
}

func TestFixtureClient(t *testing.T) {
	t.Run("should serve fixture entries as a single page", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "fixture.json")
		content := `{
			"users": [{"first_name": "Alice", "last_name": "Smith", "is_active": true, "is_contractor": false, "cost_rate": 10}],
			"time_entries": [{"user": {"name": "Alice Smith"}, "hours": 7.5}, {"user": {"name": "Alice Smith"}, "hours": "0.5"}]
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		client := NewFixtureClient(path)

		// when
		users, usersErr := client.GetUsers(context.Background())
		first, firstErr := client.GetTimeEntries(context.Background(), "2026-10-12", "2026-10-16", 1)
		second, secondErr := client.GetTimeEntries(context.Background(), "2026-10-12", "2026-10-16", 2)

		// then
		require.NoError(t, usersErr)
		require.NoError(t, firstErr)
		require.NoError(t, secondErr)
		assert.Len(t, users.Users, 1)
		assert.Equal(t, 1, first.TotalPages)
		assert.Len(t, first.TimeEntries, 2)
		assert.True(t, decimal.NewFromFloat(0.5).Equal(first.TimeEntries[1].Hours))
		assert.Empty(t, second.TimeEntries)
	})

	t.Run("should fail with upstream data error when the file is missing", func(t *testing.T) {
		client := NewFixtureClient(filepath.Join(t.TempDir(), "nope.json"))

		_, err := client.GetUsers(context.Background())

		assert.True(t, upstream.IsDataError(err))
	})
}

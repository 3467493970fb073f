package slack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifier_Send(t *testing.T) {
	t.Run("should post the message as json", func(t *testing.T) {
		// given
		var received Message
		var contentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType = r.Header.Get("Content-Type")
			_ = json.NewDecoder(r.Body).Decode(&received)
			_, _ = w.Write([]byte("ok"))
		}))
		t.Cleanup(server.Close)
		notifier := NewWebhookNotifier(server.URL, time.Second)
		message := Message{Username: "Harvest", Text: "hello", Attachments: []Attachment{{Title: ":bob: Bob"}}}

		// when
		err := notifier.Send(context.Background(), message)

		// then
		require.NoError(t, err)
		assert.Equal(t, "application/json", contentType)
		assert.Equal(t, message, received)
	})

	t.Run("should fail with transport error on non-2xx status", func(t *testing.T) {
		// given
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(server.Close)
		notifier := NewWebhookNotifier(server.URL, time.Second)

		// when
		err := notifier.Send(context.Background(), Message{})

		// then
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
		assert.Equal(t, 1, calls)
	})

	t.Run("should fail with transport error when unreachable", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()
		notifier := NewWebhookNotifier(url, time.Second)

		// when
		err := notifier.Send(context.Background(), Message{})

		// then
		var transportErr *TransportError
		assert.True(t, errors.As(err, &transportErr))
	})
}

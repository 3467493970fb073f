package upstream

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataError(t *testing.T) {
	t.Run("should describe source and message", func(t *testing.T) {
		err := NewDataError("harvest users", "response has no users list")

		assert.Equal(t, "upstream data error from harvest users: response has no users list", err.Error())
	})

	t.Run("should be detectable through wrapping", func(t *testing.T) {
		err := fmt.Errorf("fetching roster: %w", NewDataError("harvest users", "boom"))

		assert.True(t, IsDataError(err))
		assert.False(t, IsDataError(errors.New("plain")))
	})

	t.Run("should unwrap the cause", func(t *testing.T) {
		err := WrapDataError("holidays", context.DeadlineExceeded)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "holidays")
	})
}

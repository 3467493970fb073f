package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Warsaw")
	in := time.Date(2026, 3, 29, 23, 59, 1, 5, loc)

	got := StartOfDay(in)

	assert.Equal(t, time.Date(2026, 3, 29, 0, 0, 0, 0, loc), got)
}

func TestMockClock(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	clock := NewMockClock(now)
	assert.Equal(t, now, clock.Now())

	later := now.Add(time.Hour)
	clock.SetNow(later)
	assert.Equal(t, later, clock.Now())
}

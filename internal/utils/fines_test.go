package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDaysOverdue(t *testing.T) {
	today := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	t.Run("Due five days ago", func(t *testing.T) {
		due := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, int32(5), DaysOverdue(due, today))
	})

	t.Run("Due today", func(t *testing.T) {
		due := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
		assert.Equal(t, int32(0), DaysOverdue(due, today))
	})

	t.Run("Due in the future", func(t *testing.T) {
		due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, int32(0), DaysOverdue(due, today))
	})

	t.Run("Time of day is ignored", func(t *testing.T) {
		// Due yesterday at 23:59, evaluated today at 00:01: one whole day.
		due := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)
		now := time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, int32(1), DaysOverdue(due, now))
	})

	t.Run("Across month boundary", func(t *testing.T) {
		due := time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, int32(18), DaysOverdue(due, today))
	})
}

func TestFineFor(t *testing.T) {
	rate := decimal.RequireFromString("1.00")

	t.Run("Five days at one dollar", func(t *testing.T) {
		fine := FineFor(5, rate)
		assert.True(t, fine.Equal(decimal.RequireFromString("5.00")), "got %s", fine)
	})

	t.Run("Two days", func(t *testing.T) {
		fine := FineFor(2, rate)
		assert.True(t, fine.Equal(decimal.RequireFromString("2.00")), "got %s", fine)
	})

	t.Run("Zero days is zero fine", func(t *testing.T) {
		assert.True(t, FineFor(0, rate).IsZero())
	})

	t.Run("Negative days is zero fine", func(t *testing.T) {
		assert.True(t, FineFor(-3, rate).IsZero())
	})

	t.Run("Fractional rate", func(t *testing.T) {
		fine := FineFor(4, decimal.RequireFromString("0.25"))
		assert.True(t, fine.Equal(decimal.RequireFromString("1.00")), "got %s", fine)
	})
}

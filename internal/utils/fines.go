package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateOnly truncates a timestamp to midnight UTC so loan date arithmetic is
// always whole-day arithmetic regardless of the time component stored.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysOverdue returns the number of whole days a due date is past the
// evaluation date. A loan due today or in the future reports zero.
func DaysOverdue(dueDate, today time.Time) int32 {
	due := DateOnly(dueDate)
	now := DateOnly(today)
	if !due.Before(now) {
		return 0
	}
	return int32(now.Sub(due).Hours() / 24)
}

// FineFor computes the fine for a number of overdue days at the given daily
// rate. Zero days means zero fine.
func FineFor(daysOverdue int32, dailyRate decimal.Decimal) decimal.Decimal {
	if daysOverdue <= 0 {
		return decimal.Zero
	}
	return dailyRate.Mul(decimal.NewFromInt32(daysOverdue))
}

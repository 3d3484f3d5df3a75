package jobs

import (
	"context"
	"time"

	"silent-library-backend/internal/logger"
)

// SendOverdueNotices emails every borrower with overdue books, one message per
// borrower covering all of their overdue loans
func (jr *JobRunner) SendOverdueNotices() {
	jr.runWithRecovery("SendOverdueNotices", func() {
		ctx := context.Background()

		sent, failed, err := jr.services.Overdue.NotifyOverdueBorrowers(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to send overdue notices", "error", err)
			return
		}
		logger.Info("Sent overdue notices", "sent", sent, "failed", failed)
	})
}

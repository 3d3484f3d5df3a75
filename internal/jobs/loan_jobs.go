package jobs

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/logger"
	"silent-library-backend/internal/metrics"
	"silent-library-backend/internal/utils"
)

// MarkOverdueLoans flips loans to 'overdue' once their due date has passed
func (jr *JobRunner) MarkOverdueLoans() {
	jr.runWithRecovery("MarkOverdueLoans", func() {
		ctx := context.Background()

		query := `
			UPDATE loans
			SET status = 'overdue'
			WHERE status = 'borrowed'
			  AND due_date < $1
			RETURNING id, user_id, book_id, due_date
		`

		today := utils.DateOnly(time.Now())
		rows, err := jr.db.QueryContext(ctx, query, today)
		if err != nil {
			logger.Error("Failed to mark overdue loans", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, userID, bookID int32
			var dueDate time.Time
			if err := rows.Scan(&id, &userID, &bookID, &dueDate); err != nil {
				logger.Error("Failed to scan overdue loan", "error", err)
				continue
			}
			logger.Debug("Loan marked overdue", "loan_id", id, "user_id", userID, "due_date", dueDate.Format("2006-01-02"))
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue loans", "error", err)
			return
		}

		logger.Info("Marked loans as overdue", "count", count)
	})
}

// IssueOverdueFines creates or refreshes a pending fine for every loan that is
// actionable as overdue. Running it twice on the same day updates the existing
// pending fine instead of creating a duplicate.
func (jr *JobRunner) IssueOverdueFines() {
	jr.runWithRecovery("IssueOverdueFines", func() {
		ctx := context.Background()
		today := utils.DateOnly(time.Now())
		rate := jr.config.DailyFineRate()

		loans, _, _, err := jr.store.ListOverdue(ctx, today)
		if err != nil {
			logger.Error("Failed to list overdue loans for fines", "error", err)
			return
		}

		created, updated := 0, 0
		for _, loan := range loans {
			days := utils.DaysOverdue(loan.DueDate, today)
			if days == 0 {
				continue
			}
			amount := utils.FineFor(days, rate)

			existing, err := jr.store.GetPendingByLoan(ctx, loan.ID)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					logger.Error("Failed to look up pending fine", "loan_id", loan.ID, "error", err)
					continue
				}
				fine := &domain.Fine{
					LoanID:        loan.ID,
					Amount:        amount,
					PaymentStatus: domain.FineStatusPending,
					FineDate:      time.Now(),
				}
				if err := jr.store.FineRepository.Create(ctx, fine); err != nil {
					logger.Error("Failed to create fine", "loan_id", loan.ID, "error", err)
					continue
				}
				metrics.FinesIssued.Inc()
				created++
				continue
			}

			if !existing.Amount.Equal(amount) {
				if err := jr.store.UpdateAmount(ctx, existing.ID, amount.StringFixed(2)); err != nil {
					logger.Error("Failed to update fine amount", "fine_id", existing.ID, "error", err)
					continue
				}
				updated++
			}
		}

		logger.Info("Issued overdue fines", "created", created, "updated", updated)
	})
}

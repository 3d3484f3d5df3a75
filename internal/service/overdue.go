package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/logger"
	"silent-library-backend/internal/metrics"
	"silent-library-backend/internal/repository"
	"silent-library-backend/internal/utils"
)

const overdueNoticeSubject = "Action Required: Overdue Library Books"

type overdueService struct {
	loanRepo repository.LoanRepository
	bookRepo repository.BookRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
	policy   FinePolicy
}

func NewOverdueService(
	loanRepo repository.LoanRepository,
	bookRepo repository.BookRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	policy FinePolicy,
) OverdueService {
	return &overdueService{
		loanRepo: loanRepo,
		bookRepo: bookRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
		policy:   policy,
	}
}

// ListOverdue evaluates every actionable loan against the reference date. A
// loan whose stored status says overdue but whose due date has not passed yet
// reports zero days and a zero fine.
func (s *overdueService) ListOverdue(ctx context.Context, today time.Time) ([]domain.OverdueLoan, error) {
	today = utils.DateOnly(today)
	loans, users, books, err := s.loanRepo.ListOverdue(ctx, today)
	if err != nil {
		return nil, err
	}

	result := make([]domain.OverdueLoan, 0, len(loans))
	for i := range loans {
		days := utils.DaysOverdue(loans[i].DueDate, today)
		result = append(result, domain.OverdueLoan{
			Loan:        loans[i],
			Borrower:    users[i],
			Book:        books[i],
			DaysOverdue: days,
			Fine:        utils.FineFor(days, s.policy.DailyFineRate),
		})
	}
	return result, nil
}

// NotifyOverdueBorrowers groups overdue loans by borrower and sends one email
// per borrower covering all of their overdue books. Loans not yet past due on
// the reference date are skipped. A failed send is counted and does not stop
// the remaining batch.
func (s *overdueService) NotifyOverdueBorrowers(ctx context.Context, today time.Time) (int32, int32, error) {
	overdue, err := s.ListOverdue(ctx, today)
	if err != nil {
		return 0, 0, err
	}

	// Group by borrower, keeping first-seen order of both borrowers and loans.
	var order []int32
	byBorrower := make(map[int32][]domain.OverdueLoan)
	for _, item := range overdue {
		if item.DaysOverdue == 0 {
			continue
		}
		id := item.Borrower.ID
		if _, seen := byBorrower[id]; !seen {
			order = append(order, id)
		}
		byBorrower[id] = append(byBorrower[id], item)
	}

	var sent, failed int32
	for _, borrowerID := range order {
		items := byBorrower[borrowerID]
		borrower := items[0].Borrower
		body := composeOverdueNotice(borrower.FirstName, items)

		if err := s.emailSvc.SendOverdueNotice(ctx, borrower.Email, overdueNoticeSubject, body); err != nil {
			failed++
			metrics.OverdueNoticesFailed.Inc()
			logger.Error("overdue notice failed", "user_id", borrowerID, "email", borrower.Email, "error", err)
			continue
		}
		sent++
		metrics.OverdueNoticesSent.Inc()

		note := &domain.Notification{
			UserID:    borrowerID,
			Text:      fmt.Sprintf("Overdue notice sent for %d book(s). Estimated fine: $%s.", len(items), totalFine(items).StringFixed(2)),
			Timestamp: time.Now(),
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("in-app notification record failed", "user_id", borrowerID, "error", err)
		}
	}

	logger.Info("overdue notice run complete", "sent", sent, "failed", failed)
	return sent, failed, nil
}

func (s *overdueService) DashboardSummary(ctx context.Context, today time.Time) (*domain.DashboardSummary, error) {
	today = utils.DateOnly(today)

	totalBooks, err := s.bookRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeMembers, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	loansToday, err := s.loanRepo.CountBorrowedSince(ctx, today)
	if err != nil {
		return nil, err
	}
	overdue, err := s.ListOverdue(ctx, today)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		TotalBooks:    totalBooks,
		ActiveMembers: activeMembers,
		LoansToday:    loansToday,
		OverdueCount:  int64(len(overdue)),
		FineRevenue:   totalFine(overdue),
	}, nil
}

func composeOverdueNotice(firstName string, items []domain.OverdueLoan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", firstName)
	b.WriteString("Our records show that you have the following overdue library books:\n\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- \"%s\" (Due: %s) - Overdue: %d days, Fine: $%s\n",
			item.Book.Title,
			item.Loan.DueDate.Format("2006-01-02"),
			item.DaysOverdue,
			item.Fine.StringFixed(2),
		)
	}
	fmt.Fprintf(&b, "\nTotal estimated fine for these books: $%s\n\n", totalFine(items).StringFixed(2))
	b.WriteString("Please return them at your earliest convenience to avoid further charges.\n\nSilent Library Team")
	return b.String()
}

func totalFine(items []domain.OverdueLoan) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Fine)
	}
	return total
}

package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/service"
)

func testPolicy() service.FinePolicy {
	return service.FinePolicy{
		PeriodDays:    14,
		DailyFineRate: decimal.RequireFromString("1.00"),
	}
}

func newOverdueService(loanRepo *MockLoanRepo, bookRepo *MockBookRepo, userRepo *MockUserRepo, noteRepo *MockNotificationRepo, emailSvc *MockEmailService) service.OverdueService {
	return service.NewOverdueService(loanRepo, bookRepo, userRepo, noteRepo, emailSvc, testPolicy())
}

func TestOverdueService_ListOverdue(t *testing.T) {
	loanRepo := new(MockLoanRepo)
	bookRepo := new(MockBookRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	svc := newOverdueService(loanRepo, bookRepo, userRepo, noteRepo, emailSvc)

	ctx := context.Background()
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	t.Run("fine is one dollar per overdue day", func(t *testing.T) {
		loans := []domain.Loan{
			{ID: 1, UserID: 1, BookID: 1, DueDate: today.AddDate(0, 0, -5), Status: domain.LoanStatusBorrowed},
		}
		users := []domain.User{{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alice"}}
		books := []domain.Book{{ID: 1, Title: "The Great Gatsby"}}
		loanRepo.On("ListOverdue", ctx, today).Return(loans, users, books, nil).Once()

		result, err := svc.ListOverdue(ctx, today)
		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, int32(5), result[0].DaysOverdue)
		assert.Equal(t, "5.00", result[0].Fine.StringFixed(2))
	})

	t.Run("stale overdue status with future due date reports zero", func(t *testing.T) {
		loans := []domain.Loan{
			{ID: 2, UserID: 1, BookID: 1, DueDate: today.AddDate(0, 0, 3), Status: domain.LoanStatusOverdue},
		}
		users := []domain.User{{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alice"}}
		books := []domain.Book{{ID: 1, Title: "1984"}}
		loanRepo.On("ListOverdue", ctx, today).Return(loans, users, books, nil).Once()

		result, err := svc.ListOverdue(ctx, today)
		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, int32(0), result[0].DaysOverdue)
		assert.True(t, result[0].Fine.IsZero())
	})
}

func TestOverdueService_NotifyOverdueBorrowers(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	t.Run("one email per borrower with summed fines", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		bookRepo := new(MockBookRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := newOverdueService(loanRepo, bookRepo, userRepo, noteRepo, emailSvc)

		bob := domain.User{ID: 2, Username: "bob", Email: "bob@example.com", FirstName: "Bob"}
		loans := []domain.Loan{
			{ID: 10, UserID: 2, BookID: 1, DueDate: today.AddDate(0, 0, -5), Status: domain.LoanStatusOverdue},
			{ID: 11, UserID: 2, BookID: 2, DueDate: today.AddDate(0, 0, -3), Status: domain.LoanStatusBorrowed},
		}
		users := []domain.User{bob, bob}
		books := []domain.Book{{ID: 1, Title: "1984"}, {ID: 2, Title: "Brave New World"}}
		loanRepo.On("ListOverdue", ctx, today).Return(loans, users, books, nil).Once()

		var body string
		emailSvc.On("SendOverdueNotice", ctx, "bob@example.com", "Action Required: Overdue Library Books", mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { body = args.String(3) }).
			Return(nil).Once()
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil).Once()

		sent, failed, err := svc.NotifyOverdueBorrowers(ctx, today)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), sent)
		assert.Equal(t, int32(0), failed)

		assert.Contains(t, body, "Dear Bob,")
		assert.Contains(t, body, `- "1984" (Due: `)
		assert.Contains(t, body, "Overdue: 5 days, Fine: $5.00")
		assert.Contains(t, body, `- "Brave New World" (Due: `)
		assert.Contains(t, body, "Overdue: 3 days, Fine: $3.00")
		assert.Contains(t, body, "Total estimated fine for these books: $8.00")

		emailSvc.AssertNumberOfCalls(t, "SendOverdueNotice", 1)
	})

	t.Run("failed send is counted and does not stop the batch", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		bookRepo := new(MockBookRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := newOverdueService(loanRepo, bookRepo, userRepo, noteRepo, emailSvc)

		alice := domain.User{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alice"}
		bob := domain.User{ID: 2, Username: "bob", Email: "bob@example.com", FirstName: "Bob"}
		loans := []domain.Loan{
			{ID: 20, UserID: 1, BookID: 1, DueDate: today.AddDate(0, 0, -10), Status: domain.LoanStatusOverdue},
			{ID: 21, UserID: 2, BookID: 2, DueDate: today.AddDate(0, 0, -4), Status: domain.LoanStatusOverdue},
		}
		users := []domain.User{alice, bob}
		books := []domain.Book{{ID: 1, Title: "Moby Dick"}, {ID: 2, Title: "Dracula"}}
		loanRepo.On("ListOverdue", ctx, today).Return(loans, users, books, nil).Once()

		emailSvc.On("SendOverdueNotice", ctx, "alice@example.com", mock.Anything, mock.Anything).
			Return(errors.New("smtp unavailable")).Once()
		emailSvc.On("SendOverdueNotice", ctx, "bob@example.com", mock.Anything, mock.Anything).
			Return(nil).Once()
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil).Once()

		sent, failed, err := svc.NotifyOverdueBorrowers(ctx, today)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), sent)
		assert.Equal(t, int32(1), failed)

		// No in-app record for the failed borrower.
		noteRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("loans not yet past due are excluded", func(t *testing.T) {
		loanRepo := new(MockLoanRepo)
		bookRepo := new(MockBookRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := newOverdueService(loanRepo, bookRepo, userRepo, noteRepo, emailSvc)

		alice := domain.User{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alice"}
		loans := []domain.Loan{
			{ID: 30, UserID: 1, BookID: 1, DueDate: today, Status: domain.LoanStatusOverdue},
			{ID: 31, UserID: 1, BookID: 2, DueDate: today.AddDate(0, 0, 2), Status: domain.LoanStatusOverdue},
		}
		users := []domain.User{alice, alice}
		books := []domain.Book{{ID: 1, Title: "Emma"}, {ID: 2, Title: "Persuasion"}}
		loanRepo.On("ListOverdue", ctx, today).Return(loans, users, books, nil).Once()

		sent, failed, err := svc.NotifyOverdueBorrowers(ctx, today)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), sent)
		assert.Equal(t, int32(0), failed)
		emailSvc.AssertNotCalled(t, "SendOverdueNotice")
	})
}

func TestOverdueService_DashboardSummary(t *testing.T) {
	loanRepo := new(MockLoanRepo)
	bookRepo := new(MockBookRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	svc := newOverdueService(loanRepo, bookRepo, userRepo, noteRepo, emailSvc)

	ctx := context.Background()
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	bookRepo.On("Count", ctx).Return(int64(120), nil)
	userRepo.On("CountActive", ctx).Return(int64(11), nil)
	loanRepo.On("CountBorrowedSince", ctx, today).Return(int64(4), nil)

	loans := []domain.Loan{
		{ID: 1, UserID: 1, BookID: 1, DueDate: today.AddDate(0, 0, -2), Status: domain.LoanStatusOverdue},
	}
	users := []domain.User{{ID: 1, Username: "alice", Email: "alice@example.com"}}
	books := []domain.Book{{ID: 1, Title: "Emma"}}
	loanRepo.On("ListOverdue", ctx, today).Return(loans, users, books, nil)

	summary, err := svc.DashboardSummary(ctx, today)
	assert.NoError(t, err)
	assert.Equal(t, int64(120), summary.TotalBooks)
	assert.Equal(t, int64(11), summary.ActiveMembers)
	assert.Equal(t, int64(4), summary.LoansToday)
	assert.Equal(t, int64(1), summary.OverdueCount)
	assert.Equal(t, "2.00", summary.FineRevenue.StringFixed(2))
}

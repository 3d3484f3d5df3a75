package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"silent-library-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password, firstName, lastName string, dateOfBirth *time.Time) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, string, *domain.User, error) // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, firstName, lastName string, dateOfBirth *time.Time) (*domain.User, error)
	// UpdateCredentials changes the username and email. The caller must
	// re-authenticate with their current password.
	UpdateCredentials(ctx context.Context, userID int32, currentPassword, username, email string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int32, currentPassword, newPassword string) error
}

type CatalogService interface {
	ListBooks(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error)
	SearchBooks(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error)
	GetBook(ctx context.Context, id int32) (*domain.Book, error)
	AddBook(ctx context.Context, book *domain.Book, authorIDs, genreIDs []int32) error
	UpdateBook(ctx context.Context, book *domain.Book, authorIDs, genreIDs []int32) error
	DeleteBook(ctx context.Context, id int32) error
	ListAuthors(ctx context.Context) ([]domain.Author, error)
	AddAuthor(ctx context.Context, author *domain.Author) error
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	AddGenre(ctx context.Context, genre *domain.Genre) error
}

type LoanService interface {
	Borrow(ctx context.Context, userID, bookID int32) (*domain.Loan, error)
	Return(ctx context.Context, userID, loanID int32) (*domain.Loan, *domain.Fine, error)
	ListMyLoans(ctx context.Context, userID int32) ([]domain.Loan, error)
	ListMyFines(ctx context.Context, userID int32) ([]domain.Fine, error)
	ListLoans(ctx context.Context, status domain.LoanStatus, page, pageSize int32) ([]domain.Loan, int32, error)
}

type ReviewService interface {
	AddReview(ctx context.Context, userID, bookID, rating int32, text string) (*domain.Review, error)
	ListByBook(ctx context.Context, bookID int32) ([]domain.Review, error)
}

// OverdueService evaluates loans against a reference date, computes the fines
// owed, and drives the bulk notice mailing.
type OverdueService interface {
	ListOverdue(ctx context.Context, today time.Time) ([]domain.OverdueLoan, error)
	// NotifyOverdueBorrowers sends one email per borrower covering all of their
	// overdue loans. A failed send is counted and does not stop the run.
	NotifyOverdueBorrowers(ctx context.Context, today time.Time) (sent, failed int32, err error)
	DashboardSummary(ctx context.Context, today time.Time) (*domain.DashboardSummary, error)
}

type NotificationService interface {
	ListMyNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
}

type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, to, firstName string) error
	SendPasswordReset(ctx context.Context, to, firstName, token string) error
	SendOverdueNotice(ctx context.Context, to, subject, body string) error
}

// FinePolicy carries the lending policy shared by the loan and overdue
// services.
type FinePolicy struct {
	PeriodDays    int
	DailyFineRate decimal.Decimal
}

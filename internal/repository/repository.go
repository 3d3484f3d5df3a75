package repository

import (
	"context"
	"time"

	"silent-library-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID int32, passwordHash string) error
	TouchLastLogin(ctx context.Context, userID int32) error
	CountActive(ctx context.Context) (int64, error)
}

type AuthorRepository interface {
	Create(ctx context.Context, author *domain.Author) error
	GetByID(ctx context.Context, id int32) (*domain.Author, error)
	List(ctx context.Context) ([]domain.Author, error)
}

type GenreRepository interface {
	Create(ctx context.Context, genre *domain.Genre) error
	GetByName(ctx context.Context, name string) (*domain.Genre, error)
	List(ctx context.Context) ([]domain.Genre, error)
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book, authorIDs, genreIDs []int32) error
	GetByID(ctx context.Context, id int32) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book, authorIDs, genreIDs []int32) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error)
	// Search matches the query case-insensitively against title, author first
	// and last names, and genre names; results are distinct.
	Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error)
	// DecrementAvailable atomically takes one copy; it fails when no copy is
	// available. IncrementAvailable never exceeds total_copies.
	DecrementAvailable(ctx context.Context, bookID int32) error
	IncrementAvailable(ctx context.Context, bookID int32) error
	Count(ctx context.Context) (int64, error)
}

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	Update(ctx context.Context, loan *domain.Loan) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Loan, error)
	ListByStatus(ctx context.Context, status domain.LoanStatus, page, pageSize int32) ([]domain.Loan, int32, error)
	// ListOverdue returns loans actionable as overdue on the given date:
	// status 'overdue', or status 'borrowed' with a due date strictly before
	// it. Borrower and book fields come back resolved, ordered by due date
	// ascending then loan id.
	ListOverdue(ctx context.Context, today time.Time) ([]domain.Loan, []domain.User, []domain.Book, error)
	CountBorrowedSince(ctx context.Context, since time.Time) (int64, error)
}

type FineRepository interface {
	Create(ctx context.Context, fine *domain.Fine) error
	GetPendingByLoan(ctx context.Context, loanID int32) (*domain.Fine, error)
	UpdateAmount(ctx context.Context, fineID int32, amount string) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Fine, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByBook(ctx context.Context, bookID int32) ([]domain.Review, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
}

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *domain.PasswordReset) error
	GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error)
	MarkUsed(ctx context.Context, id int32) error
}

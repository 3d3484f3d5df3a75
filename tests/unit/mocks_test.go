package unit

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"silent-library-backend/internal/domain"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, userID int32, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepo) TouchLastLogin(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepo) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) Create(ctx context.Context, book *domain.Book, authorIDs, genreIDs []int32) error {
	args := m.Called(ctx, book, authorIDs, genreIDs)
	return args.Error(0)
}

func (m *MockBookRepo) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepo) Update(ctx context.Context, book *domain.Book, authorIDs, genreIDs []int32) error {
	args := m.Called(ctx, book, authorIDs, genreIDs)
	return args.Error(0)
}

func (m *MockBookRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookRepo) Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Book), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookRepo) DecrementAvailable(ctx context.Context, bookID int32) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func (m *MockBookRepo) IncrementAvailable(ctx context.Context, bookID int32) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func (m *MockBookRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepo) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepo) ListByStatus(ctx context.Context, status domain.LoanStatus, page, pageSize int32) ([]domain.Loan, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Loan), args.Get(1).(int32), args.Error(2)
}

func (m *MockLoanRepo) ListOverdue(ctx context.Context, today time.Time) ([]domain.Loan, []domain.User, []domain.Book, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).([]domain.Loan), args.Get(1).([]domain.User), args.Get(2).([]domain.Book), args.Error(3)
}

func (m *MockLoanRepo) CountBorrowedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

type MockFineRepo struct {
	mock.Mock
}

func (m *MockFineRepo) Create(ctx context.Context, fine *domain.Fine) error {
	args := m.Called(ctx, fine)
	return args.Error(0)
}

func (m *MockFineRepo) GetPendingByLoan(ctx context.Context, loanID int32) (*domain.Fine, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}

func (m *MockFineRepo) UpdateAmount(ctx context.Context, fineID int32, amount string) error {
	args := m.Called(ctx, fineID, amount)
	return args.Error(0)
}

func (m *MockFineRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Fine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fine), args.Error(1)
}

type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepo) ListByBook(ctx context.Context, bookID int32) ([]domain.Review, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

type MockPasswordResetRepo struct {
	mock.Mock
}

func (m *MockPasswordResetRepo) Create(ctx context.Context, reset *domain.PasswordReset) error {
	args := m.Called(ctx, reset)
	return args.Error(0)
}

func (m *MockPasswordResetRepo) GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordReset), args.Error(1)
}

func (m *MockPasswordResetRepo) MarkUsed(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRegistrationConfirmation(ctx context.Context, to, firstName string) error {
	args := m.Called(ctx, to, firstName)
	return args.Error(0)
}

func (m *MockEmailService) SendPasswordReset(ctx context.Context, to, firstName, token string) error {
	args := m.Called(ctx, to, firstName, token)
	return args.Error(0)
}

func (m *MockEmailService) SendOverdueNotice(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

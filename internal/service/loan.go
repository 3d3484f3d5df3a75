package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/logger"
	"silent-library-backend/internal/repository"
	"silent-library-backend/internal/utils"
)

var (
	ErrAlreadyBorrowed = errors.New("you already have this book on loan")
	ErrNotYourLoan     = errors.New("loan does not belong to this user")
	ErrAlreadyReturned = errors.New("loan is already returned")
)

type loanService struct {
	loanRepo repository.LoanRepository
	bookRepo repository.BookRepository
	fineRepo repository.FineRepository
	policy   FinePolicy
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	bookRepo repository.BookRepository,
	fineRepo repository.FineRepository,
	policy FinePolicy,
) LoanService {
	return &loanService{
		loanRepo: loanRepo,
		bookRepo: bookRepo,
		fineRepo: fineRepo,
		policy:   policy,
	}
}

func (s *loanService) Borrow(ctx context.Context, userID, bookID int32) (*domain.Loan, error) {
	loans, err := s.loanRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, l := range loans {
		if l.BookID == bookID && l.Status != domain.LoanStatusReturned {
			return nil, ErrAlreadyBorrowed
		}
	}

	// Takes the copy atomically; fails when none is available.
	if err := s.bookRepo.DecrementAvailable(ctx, bookID); err != nil {
		return nil, err
	}

	today := utils.DateOnly(time.Now())
	loan := &domain.Loan{
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: today,
		DueDate:    today.AddDate(0, 0, s.policy.PeriodDays),
		Status:     domain.LoanStatusBorrowed,
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		// Put the copy back so the count stays consistent.
		if incErr := s.bookRepo.IncrementAvailable(ctx, bookID); incErr != nil {
			logger.Error("copy restore failed after loan create error", "book_id", bookID, "error", incErr)
		}
		return nil, err
	}
	return loan, nil
}

func (s *loanService) Return(ctx context.Context, userID, loanID int32) (*domain.Loan, *domain.Fine, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	if loan.UserID != userID {
		return nil, nil, ErrNotYourLoan
	}
	if loan.Status == domain.LoanStatusReturned {
		return nil, nil, ErrAlreadyReturned
	}

	now := time.Now()
	returnedOn := utils.DateOnly(now)
	loan.ReturnDate = &returnedOn
	loan.Status = domain.LoanStatusReturned
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, nil, err
	}

	if err := s.bookRepo.IncrementAvailable(ctx, loan.BookID); err != nil {
		logger.Error("copy restore failed on return", "loan_id", loan.ID, "error", err)
	}

	// The nightly job may already carry a pending fine for this loan; settle
	// on one fine per loan by refreshing its amount instead of inserting.
	var fine *domain.Fine
	if days := utils.DaysOverdue(loan.DueDate, now); days > 0 {
		amount := utils.FineFor(days, s.policy.DailyFineRate)

		existing, err := s.fineRepo.GetPendingByLoan(ctx, loan.ID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, nil, err
			}
			fine = &domain.Fine{
				LoanID:        loan.ID,
				Amount:        amount,
				PaymentStatus: domain.FineStatusPending,
				FineDate:      now,
			}
			if err := s.fineRepo.Create(ctx, fine); err != nil {
				return nil, nil, err
			}
			return loan, fine, nil
		}

		if !existing.Amount.Equal(amount) {
			if err := s.fineRepo.UpdateAmount(ctx, existing.ID, amount.StringFixed(2)); err != nil {
				return nil, nil, err
			}
			existing.Amount = amount
		}
		fine = existing
	}
	return loan, fine, nil
}

func (s *loanService) ListMyLoans(ctx context.Context, userID int32) ([]domain.Loan, error) {
	return s.loanRepo.ListByUser(ctx, userID)
}

func (s *loanService) ListMyFines(ctx context.Context, userID int32) ([]domain.Fine, error) {
	return s.fineRepo.ListByUser(ctx, userID)
}

func (s *loanService) ListLoans(ctx context.Context, status domain.LoanStatus, page, pageSize int32) ([]domain.Loan, int32, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.loanRepo.ListByStatus(ctx, status, page, pageSize)
}

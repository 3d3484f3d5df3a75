package postgres

import (
	"context"
	"database/sql"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// parseAmount converts a numeric column read as text into a decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

type fineRepository struct {
	db *sql.DB
}

func NewFineRepository(db *sql.DB) repository.FineRepository {
	return &fineRepository{db: db}
}

func (r *fineRepository) Create(ctx context.Context, f *domain.Fine) error {
	query := `INSERT INTO fines (loan_id, fine_amount, payment_status, fine_date)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, f.LoanID, f.Amount.StringFixed(2), f.PaymentStatus, f.FineDate).Scan(&f.ID)
}

func (r *fineRepository) GetPendingByLoan(ctx context.Context, loanID int32) (*domain.Fine, error) {
	f := &domain.Fine{}
	var amount string
	query := `SELECT id, loan_id, fine_amount, payment_status, fine_date, payment_date
	          FROM fines WHERE loan_id = $1 AND payment_status = 'pending'
	          ORDER BY fine_date DESC, id DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, loanID).Scan(&f.ID, &f.LoanID, &amount, &f.PaymentStatus, &f.FineDate, &f.PaymentDate)
	if err != nil {
		return nil, err
	}
	if f.Amount, err = parseAmount(amount); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fineRepository) UpdateAmount(ctx context.Context, fineID int32, amount string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE fines SET fine_amount=$1 WHERE id=$2`, amount, fineID)
	return err
}

func (r *fineRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Fine, error) {
	query := `SELECT f.id, f.loan_id, f.fine_amount, f.payment_status, f.fine_date, f.payment_date
	          FROM fines f JOIN loans l ON l.id = f.loan_id
	          WHERE l.user_id = $1 ORDER BY f.fine_date DESC, f.id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fines []domain.Fine
	for rows.Next() {
		var f domain.Fine
		var amount string
		if err := rows.Scan(&f.ID, &f.LoanID, &amount, &f.PaymentStatus, &f.FineDate, &f.PaymentDate); err != nil {
			return nil, err
		}
		if f.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		fines = append(fines, f)
	}
	return fines, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"time"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, user_id, book_id, borrow_date, due_date, return_date, status`

func scanLoan(row interface{ Scan(...any) error }) (*domain.Loan, error) {
	l := &domain.Loan{}
	err := row.Scan(&l.ID, &l.UserID, &l.BookID, &l.BorrowDate, &l.DueDate, &l.ReturnDate, &l.Status)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (user_id, book_id, borrow_date, due_date, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, l.UserID, l.BookID, l.BorrowDate, l.DueDate, l.Status).Scan(&l.ID)
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	return scanLoan(r.db.QueryRowContext(ctx, query, id))
}

func (r *loanRepository) Update(ctx context.Context, l *domain.Loan) error {
	query := `UPDATE loans SET return_date=$1, status=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, l.ReturnDate, l.Status, l.ID)
	return err
}

func (r *loanRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 ORDER BY borrow_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus, page, pageSize int32) ([]domain.Loan, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM loans WHERE status = $1`, status).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = $1 ORDER BY due_date, id LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, status, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, 0, err
		}
		loans = append(loans, *l)
	}
	return loans, count, rows.Err()
}

func (r *loanRepository) ListOverdue(ctx context.Context, today time.Time) ([]domain.Loan, []domain.User, []domain.Book, error) {
	query := `SELECT l.id, l.user_id, l.book_id, l.borrow_date, l.due_date, l.return_date, l.status,
	                 u.id, u.username, u.email, u.first_name, u.last_name,
	                 b.id, b.title, b.isbn
	          FROM loans l
	          JOIN users u ON u.id = l.user_id
	          JOIN books b ON b.id = l.book_id
	          WHERE l.status = 'overdue' OR (l.status = 'borrowed' AND l.due_date < $1)
	          ORDER BY l.due_date, l.id`
	rows, err := r.db.QueryContext(ctx, query, today)
	if err != nil {
		return nil, nil, nil, err
	}
	defer rows.Close()

	var (
		loans []domain.Loan
		users []domain.User
		books []domain.Book
	)
	for rows.Next() {
		var l domain.Loan
		var u domain.User
		var b domain.Book
		err := rows.Scan(
			&l.ID, &l.UserID, &l.BookID, &l.BorrowDate, &l.DueDate, &l.ReturnDate, &l.Status,
			&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
			&b.ID, &b.Title, &b.ISBN,
		)
		if err != nil {
			return nil, nil, nil, err
		}
		loans = append(loans, l)
		users = append(users, u)
		books = append(books, b)
	}
	return loans, users, books, rows.Err()
}

func (r *loanRepository) CountBorrowedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM loans WHERE borrow_date >= $1`, since).Scan(&count)
	return count, err
}

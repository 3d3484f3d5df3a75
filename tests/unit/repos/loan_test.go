package repos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository/postgres"
)

func TestLoanRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
		loan := &domain.Loan{
			UserID:     1,
			BookID:     2,
			BorrowDate: today,
			DueDate:    today.AddDate(0, 0, 14),
			Status:     domain.LoanStatusBorrowed,
		}

		mock.ExpectQuery("INSERT INTO loans").
			WithArgs(loan.UserID, loan.BookID, loan.BorrowDate, loan.DueDate, loan.Status).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		err := repo.Create(ctx, loan)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), loan.ID)
	})
}

func TestLoanRepository_ListOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	t.Run("Resolves borrower and book per loan", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "user_id", "book_id", "borrow_date", "due_date", "return_date", "status",
			"id", "username", "email", "first_name", "last_name",
			"id", "title", "isbn",
		}).
			AddRow(1, 10, 20, today.AddDate(0, 0, -20), today.AddDate(0, 0, -6), nil, "overdue",
				10, "alice", "alice@example.com", "Alice", "Smith",
				20, "Emma", "9780000000001").
			AddRow(2, 11, 21, today.AddDate(0, 0, -16), today.AddDate(0, 0, -2), nil, "borrowed",
				11, "bob", "bob@example.com", "Bob", "Jones",
				21, "Dracula", "9780000000002")

		mock.ExpectQuery("SELECT (.+) FROM loans l").
			WithArgs(today).
			WillReturnRows(rows)

		loans, users, books, err := repo.ListOverdue(ctx, today)
		assert.NoError(t, err)
		assert.Len(t, loans, 2)
		assert.Len(t, users, 2)
		assert.Len(t, books, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, "Emma", books[0].Title)
		assert.Equal(t, domain.LoanStatusBorrowed, loans[1].Status)
	})

	t.Run("Empty result", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM loans l").
			WithArgs(today).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "book_id", "borrow_date", "due_date", "return_date", "status",
				"id", "username", "email", "first_name", "last_name",
				"id", "title", "isbn",
			}))

		loans, users, books, err := repo.ListOverdue(ctx, today)
		assert.NoError(t, err)
		assert.Empty(t, loans)
		assert.Empty(t, users)
		assert.Empty(t, books)
	})
}

func TestLoanRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLoanRepository(db)
	ctx := context.Background()

	returned := time.Now()
	loan := &domain.Loan{ID: 4, ReturnDate: &returned, Status: domain.LoanStatusReturned}

	mock.ExpectExec("UPDATE loans SET").
		WithArgs(loan.ReturnDate, loan.Status, loan.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(ctx, loan))
}

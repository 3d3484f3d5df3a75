package repos

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"silent-library-backend/internal/repository/postgres"
)

func TestBookRepository_DecrementAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookRepository(db)
	ctx := context.Background()

	t.Run("Takes a copy when one is available", func(t *testing.T) {
		mock.ExpectExec("UPDATE books SET available_copies = available_copies - 1").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DecrementAvailable(ctx, 1))
	})

	t.Run("Fails when no copy is available", func(t *testing.T) {
		mock.ExpectExec("UPDATE books SET available_copies = available_copies - 1").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DecrementAvailable(ctx, 1)
		assert.ErrorIs(t, err, postgres.ErrNoAvailableCopies)
	})
}

func TestBookRepository_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookRepository(db)
	ctx := context.Background()

	t.Run("Matches across title, author and genre", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(DISTINCT b.id\)`).
			WithArgs("%austen%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		mock.ExpectQuery("SELECT DISTINCT b.id").
			WithArgs("%austen%", int32(20), int32(0)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "isbn", "total_copies", "available_copies"}).
				AddRow(1, "Emma", "9780000000001", 3, 2).
				AddRow(2, "Persuasion", "9780000000002", 1, 1))

		books, total, err := repo.Search(ctx, "austen", 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), total)
		assert.Len(t, books, 2)
		assert.Equal(t, "Emma", books[0].Title)
	})
}

func TestBookRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookRepository(db)
	ctx := context.Background()

	t.Run("Refuses to delete a book with loans", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM loans`).
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		err := repo.Delete(ctx, 3)
		assert.ErrorIs(t, err, postgres.ErrBookHasLoans)
	})
}

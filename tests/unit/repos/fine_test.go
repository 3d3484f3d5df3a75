package repos

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"silent-library-backend/internal/repository/postgres"
)

func TestFineRepository_GetPendingByLoan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewFineRepository(db)
	ctx := context.Background()

	t.Run("Picks the latest pending fine", func(t *testing.T) {
		issued := time.Date(2026, 8, 29, 2, 30, 0, 0, time.UTC)
		mock.ExpectQuery(`ORDER BY fine_date DESC, id DESC LIMIT 1`).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "loan_id", "fine_amount", "payment_status", "fine_date", "payment_date"}).
				AddRow(15, 7, "5.00", "pending", issued, nil))

		fine, err := repo.GetPendingByLoan(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, int32(15), fine.ID)
		assert.Equal(t, "5.00", fine.Amount.StringFixed(2))
	})

	t.Run("No pending fine", func(t *testing.T) {
		mock.ExpectQuery(`ORDER BY fine_date DESC, id DESC LIMIT 1`).
			WithArgs(int32(8)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetPendingByLoan(ctx, 8)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

package postgres

import (
	"context"
	"database/sql"
	"time"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository"
)

type passwordResetRepository struct {
	db *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) repository.PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	query := `INSERT INTO password_resets (user_id, token, expires_on) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, reset.UserID, reset.Token, reset.ExpiresOn).Scan(&reset.ID)
}

func (r *passwordResetRepository) GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	reset := &domain.PasswordReset{}
	query := `SELECT id, user_id, token, expires_on, used_on FROM password_resets WHERE token = $1`
	err := r.db.QueryRowContext(ctx, query, token).Scan(&reset.ID, &reset.UserID, &reset.Token, &reset.ExpiresOn, &reset.UsedOn)
	if err != nil {
		return nil, err
	}
	return reset, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE password_resets SET used_on=$1 WHERE id=$2`, time.Now(), id)
	return err
}

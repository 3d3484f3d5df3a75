package postgres

import (
	"context"
	"database/sql"
	"time"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name, date_of_birth, is_staff, is_active, date_joined, last_login`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.DateOfBirth, &u.IsStaff, &u.IsActive, &u.DateJoined, &u.LastLogin)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, email, password_hash, first_name, last_name, date_of_birth, is_staff, is_active, date_joined)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.DateOfBirth, u.IsStaff, true, time.Now()).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET username=$1, email=$2, first_name=$3, last_name=$4, date_of_birth=$5, is_staff=$6, is_active=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, u.Username, u.Email, u.FirstName, u.LastName, u.DateOfBirth, u.IsStaff, u.IsActive, u.ID)
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int32, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, userID)
	return err
}

func (r *userRepository) TouchLastLogin(ctx context.Context, userID int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login=$1 WHERE id=$2`, time.Now(), userID)
	return err
}

func (r *userRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users WHERE is_active = TRUE`).Scan(&count)
	return count, err
}

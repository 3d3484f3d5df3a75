package postgres

import (
	"context"
	"database/sql"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository"
)

type authorRepository struct {
	db *sql.DB
}

func NewAuthorRepository(db *sql.DB) repository.AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *domain.Author) error {
	query := `INSERT INTO authors (first_name, last_name) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowContext(ctx, query, a.FirstName, a.LastName).Scan(&a.ID)
}

func (r *authorRepository) GetByID(ctx context.Context, id int32) (*domain.Author, error) {
	a := &domain.Author{}
	query := `SELECT id, first_name, last_name FROM authors WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *authorRepository) List(ctx context.Context) ([]domain.Author, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, first_name, last_name FROM authors ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []domain.Author
	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

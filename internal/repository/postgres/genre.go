package postgres

import (
	"context"
	"database/sql"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository"
)

type genreRepository struct {
	db *sql.DB
}

func NewGenreRepository(db *sql.DB) repository.GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, g *domain.Genre) error {
	query := `INSERT INTO genres (genre) VALUES ($1) RETURNING id`
	return r.db.QueryRowContext(ctx, query, g.Name).Scan(&g.ID)
}

func (r *genreRepository) GetByName(ctx context.Context, name string) (*domain.Genre, error) {
	g := &domain.Genre{}
	query := `SELECT id, genre FROM genres WHERE genre = $1`
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&g.ID, &g.Name); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *genreRepository) List(ctx context.Context) ([]domain.Genre, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, genre FROM genres ORDER BY genre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

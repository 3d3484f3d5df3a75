package postgres

import (
	"context"
	"database/sql"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rev *domain.Review) error {
	query := `INSERT INTO reviews (user_id, book_id, rating, review_text, review_date)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rev.UserID, rev.BookID, rev.Rating, rev.ReviewText, rev.ReviewDate).Scan(&rev.ID)
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID int32) ([]domain.Review, error) {
	query := `SELECT rv.id, rv.user_id, rv.book_id, rv.rating, rv.review_text, rv.review_date, u.username
	          FROM reviews rv JOIN users u ON u.id = rv.user_id
	          WHERE rv.book_id = $1 ORDER BY rv.review_date DESC, rv.id DESC`
	rows, err := r.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.BookID, &rev.Rating, &rev.ReviewText, &rev.ReviewDate, &rev.Username); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

package service

import (
	"context"
	"errors"
	"time"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookRepo repository.BookRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, bookRepo: bookRepo}
}

func (s *reviewService) AddReview(ctx context.Context, userID, bookID, rating int32, text string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		UserID:     userID,
		BookID:     bookID,
		Rating:     rating,
		ReviewText: text,
		ReviewDate: time.Now(),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByBook(ctx context.Context, bookID int32) ([]domain.Review, error) {
	return s.reviewRepo.ListByBook(ctx, bookID)
}

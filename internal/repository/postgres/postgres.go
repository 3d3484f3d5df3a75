package postgres

import (
	"database/sql"

	"silent-library-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.AuthorRepository
	repository.GenreRepository
	repository.BookRepository
	repository.LoanRepository
	repository.FineRepository
	repository.ReviewRepository
	repository.NotificationRepository
	repository.PasswordResetRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		AuthorRepository:        NewAuthorRepository(db),
		GenreRepository:         NewGenreRepository(db),
		BookRepository:          NewBookRepository(db),
		LoanRepository:          NewLoanRepository(db),
		FineRepository:          NewFineRepository(db),
		ReviewRepository:        NewReviewRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
		PasswordResetRepository: NewPasswordResetRepository(db),
	}
}

package service

import (
	"context"
	"errors"
	"strings"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository"
)

var (
	ErrInvalidCopies = errors.New("available copies cannot exceed total copies")
	ErrEmptyQuery    = errors.New("search query is empty")
)

type catalogService struct {
	bookRepo   repository.BookRepository
	authorRepo repository.AuthorRepository
	genreRepo  repository.GenreRepository
}

func NewCatalogService(
	bookRepo repository.BookRepository,
	authorRepo repository.AuthorRepository,
	genreRepo repository.GenreRepository,
) CatalogService {
	return &catalogService{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
		genreRepo:  genreRepo,
	}
}

func (s *catalogService) ListBooks(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.bookRepo.List(ctx, page, pageSize)
}

func (s *catalogService) SearchBooks(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, ErrEmptyQuery
	}
	page, pageSize = normalizePage(page, pageSize)
	return s.bookRepo.Search(ctx, query, page, pageSize)
}

func (s *catalogService) GetBook(ctx context.Context, id int32) (*domain.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

func (s *catalogService) AddBook(ctx context.Context, book *domain.Book, authorIDs, genreIDs []int32) error {
	if book.Title == "" {
		return errors.New("title is required")
	}
	if book.TotalCopies < 0 || book.AvailableCopies < 0 || book.AvailableCopies > book.TotalCopies {
		return ErrInvalidCopies
	}
	return s.bookRepo.Create(ctx, book, authorIDs, genreIDs)
}

func (s *catalogService) UpdateBook(ctx context.Context, book *domain.Book, authorIDs, genreIDs []int32) error {
	if book.AvailableCopies > book.TotalCopies {
		return ErrInvalidCopies
	}
	return s.bookRepo.Update(ctx, book, authorIDs, genreIDs)
}

func (s *catalogService) DeleteBook(ctx context.Context, id int32) error {
	return s.bookRepo.Delete(ctx, id)
}

func (s *catalogService) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	return s.authorRepo.List(ctx)
}

func (s *catalogService) AddAuthor(ctx context.Context, author *domain.Author) error {
	if author.FirstName == "" && author.LastName == "" {
		return errors.New("author name is required")
	}
	return s.authorRepo.Create(ctx, author)
}

func (s *catalogService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.genreRepo.List(ctx)
}

func (s *catalogService) AddGenre(ctx context.Context, genre *domain.Genre) error {
	if genre.Name == "" {
		return errors.New("genre name is required")
	}
	return s.genreRepo.Create(ctx, genre)
}

func normalizePage(page, pageSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

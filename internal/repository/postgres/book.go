package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/repository"
)

var (
	ErrNoAvailableCopies = errors.New("no available copies")
	ErrBookHasLoans      = errors.New("book has loans and cannot be deleted")
)

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book, authorIDs, genreIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO books (title, isbn, total_copies, available_copies) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, b.Title, b.ISBN, b.TotalCopies, b.AvailableCopies).Scan(&b.ID); err != nil {
		return err
	}

	if err := insertLinks(ctx, tx, b.ID, authorIDs, genreIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *bookRepository) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	b := &domain.Book{}
	query := `SELECT id, title, isbn, total_copies, available_copies FROM books WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Title, &b.ISBN, &b.TotalCopies, &b.AvailableCopies)
	if err != nil {
		return nil, err
	}

	if b.Authors, err = r.bookAuthors(ctx, id); err != nil {
		return nil, err
	}
	if b.Genres, err = r.bookGenres(ctx, id); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookRepository) Update(ctx context.Context, b *domain.Book, authorIDs, genreIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE books SET title=$1, isbn=$2, total_copies=$3, available_copies=$4 WHERE id=$5`
	if _, err := tx.ExecContext(ctx, query, b.Title, b.ISBN, b.TotalCopies, b.AvailableCopies, b.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM books_authors WHERE book_id=$1`, b.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM books_genres WHERE book_id=$1`, b.ID); err != nil {
		return err
	}
	if err := insertLinks(ctx, tx, b.ID, authorIDs, genreIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *bookRepository) Delete(ctx context.Context, id int32) error {
	var loanCount int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM loans WHERE book_id=$1`, id).Scan(&loanCount); err != nil {
		return err
	}
	if loanCount > 0 {
		return ErrBookHasLoans
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM books_authors WHERE book_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM books_genres WHERE book_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE book_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *bookRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Book, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM books`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, title, isbn, total_copies, available_copies FROM books ORDER BY title LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, count, nil
}

func (r *bookRepository) Search(ctx context.Context, query string, page, pageSize int32) ([]domain.Book, int32, error) {
	pattern := "%" + query + "%"
	base := `FROM books b
	         LEFT JOIN books_authors ba ON ba.book_id = b.id
	         LEFT JOIN authors a ON a.id = ba.author_id
	         LEFT JOIN books_genres bg ON bg.book_id = b.id
	         LEFT JOIN genres g ON g.id = bg.genre_id
	         WHERE b.title ILIKE $1 OR a.first_name ILIKE $1 OR a.last_name ILIKE $1 OR g.genre ILIKE $1`

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(DISTINCT b.id) `+base, pattern).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	sqlQuery := fmt.Sprintf(`SELECT DISTINCT b.id, b.title, b.isbn, b.total_copies, b.available_copies %s ORDER BY b.title LIMIT $2 OFFSET $3`, base)
	rows, err := r.db.QueryContext(ctx, sqlQuery, pattern, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, count, nil
}

func (r *bookRepository) DecrementAvailable(ctx context.Context, bookID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE books SET available_copies = available_copies - 1 WHERE id = $1 AND available_copies > 0`, bookID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoAvailableCopies
	}
	return nil
}

func (r *bookRepository) IncrementAvailable(ctx context.Context, bookID int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE books SET available_copies = available_copies + 1 WHERE id = $1 AND available_copies < total_copies`, bookID)
	return err
}

func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM books`).Scan(&count)
	return count, err
}

func (r *bookRepository) bookAuthors(ctx context.Context, bookID int32) ([]domain.Author, error) {
	query := `SELECT a.id, a.first_name, a.last_name FROM authors a
	          JOIN books_authors ba ON ba.author_id = a.id WHERE ba.book_id = $1 ORDER BY a.id`
	rows, err := r.db.QueryContext(ctx, query, bookID)
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

func (r *bookRepository) bookGenres(ctx context.Context, bookID int32) ([]domain.Genre, error) {
	query := `SELECT g.id, g.genre FROM genres g
	          JOIN books_genres bg ON bg.genre_id = g.id WHERE bg.book_id = $1 ORDER BY g.id`
	rows, err := r.db.QueryContext(ctx, query, bookID)
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

func insertLinks(ctx context.Context, tx *sql.Tx, bookID int32, authorIDs, genreIDs []int32) error {
	for _, authorID := range authorIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO books_authors (book_id, author_id) VALUES ($1, $2)`, bookID, authorID); err != nil {
			return err
		}
	}
	for _, genreID := range genreIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO books_genres (book_id, genre_id) VALUES ($1, $2)`, bookID, genreID); err != nil {
			return err
		}
	}
	return nil
}

func collectBooks(rows *sql.Rows) ([]domain.Book, error) {
	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.ISBN, &b.TotalCopies, &b.AvailableCopies); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

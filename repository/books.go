package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emzola/biblioteca/data"
)

type books interface {
	GetBook(ctx context.Context, isbn string) (*data.Book, bool, error)
	BookExists(ctx context.Context, isbn string) (bool, error)
	FindBooksByTitle(ctx context.Context, title string) ([]*data.Book, error)
	FindBooksByAuthor(ctx context.Context, author string) ([]*data.Book, error)
	ListBooks(ctx context.Context) ([]*data.Book, error)
	SaveBook(ctx context.Context, book *data.Book) (*data.Book, error)
	UpdateBook(ctx context.Context, book *data.Book) (*data.Book, bool, error)
	DeleteBook(ctx context.Context, isbn string) error
}

// GetBook retrieves a book record by its ISBN. A missing record is reported
// through the boolean, not as an error.
func (r *repository) GetBook(ctx context.Context, isbn string) (*data.Book, bool, error) {
	query := `
		SELECT isbn, titulo, autor, precio
		FROM libros
		WHERE isbn = $1`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var book data.Book
	err := r.db.QueryRowContext(ctx, query, isbn).Scan(&book.ISBN, &book.Title, &book.Author, &book.Price)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, false, nil
		default:
			return nil, false, wrapError("get book", err)
		}
	}
	return &book, true, nil
}

// BookExists reports whether a book record with the ISBN exists.
func (r *repository) BookExists(ctx context.Context, isbn string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM libros WHERE isbn = $1)`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, isbn).Scan(&exists); err != nil {
		return false, wrapError("book exists", err)
	}
	return exists, nil
}

// FindBooksByTitle retrieves all book records whose title matches exactly.
func (r *repository) FindBooksByTitle(ctx context.Context, title string) ([]*data.Book, error) {
	query := `
		SELECT isbn, titulo, autor, precio
		FROM libros
		WHERE titulo = $1
		ORDER BY isbn`
	books, err := r.queryBooks(ctx, query, title)
	return books, wrapError("find books by title", err)
}

// FindBooksByAuthor retrieves all book records whose author matches exactly.
func (r *repository) FindBooksByAuthor(ctx context.Context, author string) ([]*data.Book, error) {
	query := `
		SELECT isbn, titulo, autor, precio
		FROM libros
		WHERE autor = $1
		ORDER BY isbn`
	books, err := r.queryBooks(ctx, query, author)
	return books, wrapError("find books by author", err)
}

// ListBooks retrieves every book record.
func (r *repository) ListBooks(ctx context.Context) ([]*data.Book, error) {
	query := `
		SELECT isbn, titulo, autor, precio
		FROM libros
		ORDER BY isbn`
	books, err := r.queryBooks(ctx, query)
	return books, wrapError("list books", err)
}

// SaveBook inserts a book record or replaces the one stored under the same ISBN.
func (r *repository) SaveBook(ctx context.Context, book *data.Book) (*data.Book, error) {
	query := `
		INSERT INTO libros (isbn, titulo, autor, precio)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (isbn) DO UPDATE
		SET titulo = EXCLUDED.titulo, autor = EXCLUDED.autor, precio = EXCLUDED.precio
		RETURNING isbn, titulo, autor, precio`
	args := []any{book.ISBN, book.Title, book.Author, book.Price}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var saved data.Book
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&saved.ISBN, &saved.Title, &saved.Author, &saved.Price)
	if err != nil {
		return nil, wrapError("save book", err)
	}
	return &saved, nil
}

// UpdateBook replaces title, author and price of the book record with the
// same ISBN in a single statement. A missing record is reported through the
// boolean and nothing is written.
func (r *repository) UpdateBook(ctx context.Context, book *data.Book) (*data.Book, bool, error) {
	query := `
		UPDATE libros
		SET titulo = $2, autor = $3, precio = $4
		WHERE isbn = $1
		RETURNING isbn, titulo, autor, precio`
	args := []any{book.ISBN, book.Title, book.Author, book.Price}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var updated data.Book
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&updated.ISBN, &updated.Title, &updated.Author, &updated.Price)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, false, nil
		default:
			return nil, false, wrapError("update book", err)
		}
	}
	return &updated, true, nil
}

// DeleteBook deletes the book record with the ISBN. Deleting a missing record is a no-op.
func (r *repository) DeleteBook(ctx context.Context, isbn string) error {
	query := `
		DELETE FROM libros
		WHERE isbn = $1`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.ExecContext(ctx, query, isbn)
	return wrapError("delete book", err)
}

func (r *repository) queryBooks(ctx context.Context, query string, args ...any) ([]*data.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		if err := rows.Scan(&book.ISBN, &book.Title, &book.Author, &book.Price); err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

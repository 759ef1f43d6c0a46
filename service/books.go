package service

import (
	"context"

	"github.com/emzola/biblioteca/data"
	"github.com/emzola/biblioteca/internal/validator"
)

type books interface {
	ListBooks(ctx context.Context) ([]*data.Book, error)
	GetBookByIsbn(ctx context.Context, isbn string) (*data.Book, error)
	GetBooksByTitle(ctx context.Context, title string) ([]*data.Book, error)
	GetBooksByAuthor(ctx context.Context, author string) ([]*data.Book, error)
	CreateBook(ctx context.Context, book *data.Book) (*data.Book, error)
	UpdateBook(ctx context.Context, book *data.Book) (*data.Book, error)
	DeleteBook(ctx context.Context, isbn string) error
}

// ListBooks service retrieves every book. An empty catalogue is not an error.
func (s *service) ListBooks(ctx context.Context) ([]*data.Book, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []*data.Book{}
	}
	return books, nil
}

// GetBookByIsbn service retrieves the details of a book.
func (s *service) GetBookByIsbn(ctx context.Context, isbn string) (*data.Book, error) {
	book, found, err := s.repo.GetBook(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrRecordNotFound
	}
	return book, nil
}

// GetBooksByTitle service retrieves the books with exactly this title.
// Unlike ListBooks, no match is reported as ErrRecordNotFound.
func (s *service) GetBooksByTitle(ctx context.Context, title string) ([]*data.Book, error) {
	books, err := s.repo.FindBooksByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrRecordNotFound
	}
	return books, nil
}

// GetBooksByAuthor service retrieves the books by exactly this author.
func (s *service) GetBooksByAuthor(ctx context.Context, author string) ([]*data.Book, error) {
	books, err := s.repo.FindBooksByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrRecordNotFound
	}
	return books, nil
}

// CreateBook service stores a book. An existing record with the same ISBN is
// overwritten rather than rejected.
func (s *service) CreateBook(ctx context.Context, book *data.Book) (*data.Book, error) {
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	if _, err := s.repo.SaveBook(ctx, book); err != nil {
		return nil, err
	}
	s.logger.PrintInfo("book saved", map[string]string{"isbn": book.ISBN})
	return book, nil
}

// UpdateBook service replaces title, author and price of an existing book.
// An unknown ISBN is ErrRecordNotFound even when the rest of the book is
// invalid. A book deleted concurrently is reported as ErrRecordNotFound,
// never recreated.
func (s *service) UpdateBook(ctx context.Context, book *data.Book) (*data.Book, error) {
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		exists, err := s.repo.BookExists(ctx, book.ISBN)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrRecordNotFound
		}
		return nil, s.failedValidation(v.Errors)
	}
	updated, found, err := s.repo.UpdateBook(ctx, book)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrRecordNotFound
	}
	s.logger.PrintInfo("book updated", map[string]string{"isbn": updated.ISBN})
	return updated, nil
}

// DeleteBook service deletes a book.
func (s *service) DeleteBook(ctx context.Context, isbn string) error {
	exists, err := s.repo.BookExists(ctx, isbn)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecordNotFound
	}
	if err := s.repo.DeleteBook(ctx, isbn); err != nil {
		return err
	}
	s.logger.PrintInfo("book deleted", map[string]string{"isbn": isbn})
	return nil
}

package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/emzola/biblioteca/data"
)

// MemoryRepository is an in-process Repository keyed by ISBN. It has the same
// absence semantics as the PostgreSQL implementation.
type MemoryRepository struct {
	mu    sync.RWMutex
	books map[string]data.Book
}

// NewMemory creates an empty MemoryRepository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{books: make(map[string]data.Book)}
}

func (m *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryRepository) GetBook(ctx context.Context, isbn string) (*data.Book, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	book, ok := m.books[isbn]
	if !ok {
		return nil, false, nil
	}
	return &book, true, nil
}

func (m *MemoryRepository) BookExists(ctx context.Context, isbn string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.books[isbn]
	return ok, nil
}

func (m *MemoryRepository) FindBooksByTitle(ctx context.Context, title string) ([]*data.Book, error) {
	return m.filter(ctx, func(b data.Book) bool { return b.Title == title })
}

func (m *MemoryRepository) FindBooksByAuthor(ctx context.Context, author string) ([]*data.Book, error) {
	return m.filter(ctx, func(b data.Book) bool { return b.Author == author })
}

func (m *MemoryRepository) ListBooks(ctx context.Context) ([]*data.Book, error) {
	return m.filter(ctx, func(data.Book) bool { return true })
}

func (m *MemoryRepository) SaveBook(ctx context.Context, book *data.Book) (*data.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[book.ISBN] = *book
	saved := *book
	return &saved, nil
}

func (m *MemoryRepository) UpdateBook(ctx context.Context, book *data.Book) (*data.Book, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[book.ISBN]; !ok {
		return nil, false, nil
	}
	m.books[book.ISBN] = *book
	updated := *book
	return &updated, true, nil
}

func (m *MemoryRepository) DeleteBook(ctx context.Context, isbn string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.books, isbn)
	return nil
}

// filter returns copies of the matching books ordered by ISBN.
func (m *MemoryRepository) filter(ctx context.Context, match func(data.Book) bool) ([]*data.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	books := []*data.Book{}
	for _, b := range m.books {
		if match(b) {
			b := b
			books = append(books, &b)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ISBN < books[j].ISBN })
	return books, nil
}

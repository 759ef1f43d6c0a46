package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/emzola/biblioteca/data"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookColumns = []string{"isbn", "titulo", "autor", "precio"}

func newMockRepository(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return New(db, time.Second), mock
}

func TestRepository_GetBook(t *testing.T) {
	query := regexp.QuoteMeta("FROM libros WHERE isbn = $1")

	t.Run("found", func(t *testing.T) {
		r, mock := newMockRepository(t)
		mock.ExpectQuery(query).WithArgs("111").
			WillReturnRows(sqlmock.NewRows(bookColumns).AddRow("111", "Dune", "Herbert", 20))

		book, found, err := r.GetBook(context.Background(), "111")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, &data.Book{ISBN: "111", Title: "Dune", Author: "Herbert", Price: 20}, book)
	})

	t.Run("absent is not an error", func(t *testing.T) {
		r, mock := newMockRepository(t)
		mock.ExpectQuery(query).WithArgs("999").WillReturnRows(sqlmock.NewRows(bookColumns))

		book, found, err := r.GetBook(context.Background(), "999")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, book)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		r, mock := newMockRepository(t)
		connErr := errors.New("connection refused")
		mock.ExpectQuery(query).WithArgs("111").WillReturnError(connErr)

		_, found, err := r.GetBook(context.Background(), "111")
		assert.ErrorIs(t, err, connErr)
		assert.False(t, found)
	})
}

func TestRepository_BookExists(t *testing.T) {
	r, mock := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM libros WHERE isbn = $1)")).
		WithArgs("111").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := r.BookExists(context.Background(), "111")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_FindBooks(t *testing.T) {
	t.Run("by title", func(t *testing.T) {
		r, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE titulo = $1")).WithArgs("Dune").
			WillReturnRows(sqlmock.NewRows(bookColumns).
				AddRow("111", "Dune", "Herbert", 20).
				AddRow("222", "Dune", "Herbert", 25))

		books, err := r.FindBooksByTitle(context.Background(), "Dune")
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "222", books[1].ISBN)
	})

	t.Run("by author with no match returns empty slice", func(t *testing.T) {
		r, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE autor = $1")).WithArgs("Nadie").
			WillReturnRows(sqlmock.NewRows(bookColumns))

		books, err := r.FindBooksByAuthor(context.Background(), "Nadie")
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("scan failure", func(t *testing.T) {
		r, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE autor = $1")).WithArgs("Herbert").
			WillReturnRows(sqlmock.NewRows(bookColumns).AddRow("111", "Dune", "Herbert", "veinte"))

		_, err := r.FindBooksByAuthor(context.Background(), "Herbert")
		assert.Error(t, err)
	})
}

func TestRepository_ListBooks(t *testing.T) {
	r, mock := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM libros ORDER BY isbn")).
		WillReturnRows(sqlmock.NewRows(bookColumns).AddRow("111", "Dune", "Herbert", 20))

	books, err := r.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestRepository_SaveBook(t *testing.T) {
	query := regexp.QuoteMeta("INSERT INTO libros (isbn, titulo, autor, precio)")
	book := &data.Book{ISBN: "111", Title: "Dune", Author: "Herbert", Price: 20}

	t.Run("upsert returns stored row", func(t *testing.T) {
		r, mock := newMockRepository(t)
		mock.ExpectQuery(query).WithArgs("111", "Dune", "Herbert", 20).
			WillReturnRows(sqlmock.NewRows(bookColumns).AddRow("111", "Dune", "Herbert", 20))

		saved, err := r.SaveBook(context.Background(), book)
		require.NoError(t, err)
		assert.Equal(t, book, saved)
	})

	t.Run("postgres error is annotated", func(t *testing.T) {
		r, mock := newMockRepository(t)
		pqErr := &pq.Error{Code: "23514", Message: "new row violates check constraint"}
		mock.ExpectQuery(query).WithArgs("111", "Dune", "Herbert", 20).WillReturnError(pqErr)

		_, err := r.SaveBook(context.Background(), book)
		require.Error(t, err)
		assert.ErrorIs(t, err, pqErr)
		assert.Contains(t, err.Error(), "check_violation")
		assert.Contains(t, err.Error(), "save book")
	})
}

func TestRepository_UpdateBook(t *testing.T) {
	query := regexp.QuoteMeta("UPDATE libros SET titulo = $2, autor = $3, precio = $4 WHERE isbn = $1 RETURNING")
	book := &data.Book{ISBN: "111", Title: "Dune", Author: "Frank Herbert", Price: 30}

	t.Run("existing row is replaced", func(t *testing.T) {
		r, mock := newMockRepository(t)
		mock.ExpectQuery(query).WithArgs("111", "Dune", "Frank Herbert", 30).
			WillReturnRows(sqlmock.NewRows(bookColumns).AddRow("111", "Dune", "Frank Herbert", 30))

		updated, found, err := r.UpdateBook(context.Background(), book)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, book, updated)
	})

	t.Run("absent row is not inserted", func(t *testing.T) {
		r, mock := newMockRepository(t)
		mock.ExpectQuery(query).WithArgs("111", "Dune", "Frank Herbert", 30).
			WillReturnRows(sqlmock.NewRows(bookColumns))

		updated, found, err := r.UpdateBook(context.Background(), book)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, updated)
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		r, mock := newMockRepository(t)
		connErr := errors.New("connection refused")
		mock.ExpectQuery(query).WithArgs("111", "Dune", "Frank Herbert", 30).WillReturnError(connErr)

		_, found, err := r.UpdateBook(context.Background(), book)
		assert.ErrorIs(t, err, connErr)
		assert.Contains(t, err.Error(), "update book")
		assert.False(t, found)
	})
}

func TestRepository_DeleteBook(t *testing.T) {
	query := regexp.QuoteMeta("DELETE FROM libros WHERE isbn = $1")

	t.Run("existing", func(t *testing.T) {
		r, mock := newMockRepository(t)
		mock.ExpectExec(query).WithArgs("111").WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, r.DeleteBook(context.Background(), "111"))
	})

	t.Run("absent is a no-op", func(t *testing.T) {
		r, mock := newMockRepository(t)
		mock.ExpectExec(query).WithArgs("999").WillReturnResult(sqlmock.NewResult(0, 0))
		assert.NoError(t, r.DeleteBook(context.Background(), "999"))
	})
}

func TestRepository_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	r := New(db, time.Second)

	mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.Error(t, r.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

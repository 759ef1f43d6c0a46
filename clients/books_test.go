package clients

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emzola/biblioteca/config"
	"github.com/emzola/biblioteca/data"
	"github.com/emzola/biblioteca/handler"
	"github.com/emzola/biblioteca/internal/jsonlog"
	"github.com/emzola/biblioteca/repository"
	"github.com/emzola/biblioteca/service"
	"github.com/jellydator/ttlcache/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T) *BooksClient {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverMemory
	cfg.Limiter.Enabled = false
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	svc := service.New(logger, repository.NewMemory())
	limiters := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](time.Minute))
	srv := httptest.NewServer(handler.New(cfg, logger, limiters, svc).Routes())
	t.Cleanup(srv.Close)
	return NewBooksClient(srv.URL+"/", srv.Client())
}

func TestBooksClient(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	books, err := c.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	dune := &data.Book{ISBN: "978-0441013593", Title: "Dune", Author: "Frank Herbert", Price: 20}
	created, err := c.CreateBook(ctx, dune)
	require.NoError(t, err)
	assert.Equal(t, dune, created)

	got, err := c.GetBook(ctx, dune.ISBN)
	require.NoError(t, err)
	assert.Equal(t, dune, got)

	byTitle, err := c.FindBooksByTitle(ctx, "Dune")
	require.NoError(t, err)
	assert.Len(t, byTitle, 1)

	byAuthor, err := c.FindBooksByAuthor(ctx, "Frank Herbert")
	require.NoError(t, err)
	assert.Len(t, byAuthor, 1)

	updated, err := c.UpdateBook(ctx, &data.Book{ISBN: dune.ISBN, Title: "Dune", Author: "Frank Herbert", Price: 30})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.Price)

	require.NoError(t, c.DeleteBook(ctx, dune.ISBN))
	_, err = c.GetBook(ctx, dune.ISBN)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, c.DeleteBook(ctx, dune.ISBN), ErrNotFound)
}

func TestBooksClient_APIError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.CreateBook(context.Background(), &data.Book{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, string(apiErr.Message), "isbn")
}

func TestRedirectPolicy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	assert.NoError(t, redirectPolicyFunc(req, []*http.Request{req}))
	assert.Error(t, redirectPolicyFunc(req, []*http.Request{req, req}))
}

// Package clients provides a Go client for the books REST API.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/emzola/biblioteca/data"
)

// ErrNotFound is returned when the API reports no matching book.
var ErrNotFound = errors.New("book not found")

// APIError is a non-2xx response other than 404.
type APIError struct {
	StatusCode int
	Message    json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("books api: status %d: %s", e.StatusCode, e.Message)
}

// BooksClient calls the /v1 book endpoints.
type BooksClient struct {
	baseURL string
	http    *http.Client
}

// NewBooksClient creates a client for the API at baseURL. A nil httpClient
// gets NewHTTPClient.
func NewBooksClient(baseURL string, httpClient *http.Client) *BooksClient {
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	return &BooksClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *BooksClient) ListBooks(ctx context.Context) ([]*data.Book, error) {
	var books []*data.Book
	err := c.do(ctx, http.MethodGet, "/v1/books", nil, &books)
	return books, err
}

func (c *BooksClient) GetBook(ctx context.Context, isbn string) (*data.Book, error) {
	var book data.Book
	if err := c.do(ctx, http.MethodGet, "/v1/book/"+url.PathEscape(isbn), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *BooksClient) FindBooksByTitle(ctx context.Context, title string) ([]*data.Book, error) {
	var books []*data.Book
	err := c.do(ctx, http.MethodGet, "/v1/books/title/"+url.PathEscape(title), nil, &books)
	return books, err
}

func (c *BooksClient) FindBooksByAuthor(ctx context.Context, author string) ([]*data.Book, error) {
	var books []*data.Book
	err := c.do(ctx, http.MethodGet, "/v1/books/author/"+url.PathEscape(author), nil, &books)
	return books, err
}

func (c *BooksClient) CreateBook(ctx context.Context, book *data.Book) (*data.Book, error) {
	var created data.Book
	if err := c.do(ctx, http.MethodPost, "/v1/book", book, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *BooksClient) UpdateBook(ctx context.Context, book *data.Book) (*data.Book, error) {
	var updated data.Book
	if err := c.do(ctx, http.MethodPut, "/v1/book", book, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *BooksClient) DeleteBook(ctx context.Context, isbn string) error {
	return c.do(ctx, http.MethodDelete, "/v1/book/"+url.PathEscape(isbn), nil, nil)
}

func (c *BooksClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		js, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(js)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode >= 300:
		var env struct {
			Error json.RawMessage `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
			return &APIError{StatusCode: res.StatusCode}
		}
		return &APIError{StatusCode: res.StatusCode, Message: env.Error}
	case out == nil:
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

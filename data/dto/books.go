package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/emzola/biblioteca/data"
)

// ErrInvalidPrice is returned when the precio field is not a whole number.
var ErrInvalidPrice = errors.New("invalid price format")

// BookRequestBody defines the request body for creating and updating a book.
// Precio is kept raw so a malformed price can be told apart from malformed JSON.
type BookRequestBody struct {
	ISBN   string          `json:"isbn"`
	Title  string          `json:"titulo"`
	Author string          `json:"autor"`
	Price  json.RawMessage `json:"precio"`
}

// Book converts the request body into a book, parsing the price.
func (b BookRequestBody) Book() (*data.Book, error) {
	price, err := parsePrice(b.Price)
	if err != nil {
		return nil, err
	}
	return &data.Book{
		ISBN:   b.ISBN,
		Title:  b.Title,
		Author: b.Author,
		Price:  price,
	}, nil
}

// parsePrice accepts a 32-bit integer literal or a string holding one. A missing
// or null price is zero.
func parsePrice(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, ErrInvalidPrice
		}
	}
	// precio is a 32-bit INTEGER column.
	price, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	return int(price), nil
}

package data

import (
	"strings"

	"github.com/emzola/biblioteca/internal/validator"
)

// Book defines a book model. The ISBN is the identity of the record and never
// changes once stored.
type Book struct {
	ISBN   string `json:"isbn" validate:"required,max=255"`
	Title  string `json:"titulo" validate:"max=255"`
	Author string `json:"autor" validate:"max=255"`
	Price  int    `json:"precio"`
}

// ValidateBook records every rule the book breaks in v. An ISBN holding a
// slash could never be addressed by /v1/book/:isbn.
func ValidateBook(v *validator.Validator, book *Book) {
	v.Struct(book)
	v.Check(!strings.Contains(book.ISBN, "/"), "isbn", "must not contain a slash")
}

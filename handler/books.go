package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/biblioteca/data"
	"github.com/emzola/biblioteca/data/dto"
	"github.com/emzola/biblioteca/service"
)

// ListBooks godoc
// @Summary List all books
// @Description This endpoint returns every book in the catalogue, possibly none
// @Tags books
// @Produce json
// @Success 200 {array} data.Book
// @Failure 500
// @Router /v1/books [get]
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListBooks(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ShowBook godoc
// @Summary Show details of a book
// @Description This endpoint shows the details of the book with the given ISBN
// @Tags books
// @Produce json
// @Param isbn path string true "ISBN of book to show"
// @Success 200 {object} data.Book
// @Failure 404
// @Failure 500
// @Router /v1/book/{isbn} [get]
func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.GetBookByIsbn(r.Context(), h.readParam(r, "isbn"))
	if err != nil {
		h.lookupErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListBooksByTitle godoc
// @Summary List books by title
// @Description This endpoint returns the books whose title matches exactly
// @Tags books
// @Produce json
// @Param title path string true "Exact title"
// @Success 200 {array} data.Book
// @Failure 404
// @Failure 500
// @Router /v1/books/title/{title} [get]
func (h *Handler) listBooksByTitleHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetBooksByTitle(r.Context(), h.readParam(r, "title"))
	if err != nil {
		h.lookupErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListBooksByAuthor godoc
// @Summary List books by author
// @Description This endpoint returns the books whose author matches exactly
// @Tags books
// @Produce json
// @Param author path string true "Exact author"
// @Success 200 {array} data.Book
// @Failure 404
// @Failure 500
// @Router /v1/books/author/{author} [get]
func (h *Handler) listBooksByAuthorHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetBooksByAuthor(r.Context(), h.readParam(r, "author"))
	if err != nil {
		h.lookupErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CreateBook godoc
// @Summary Create a book
// @Description This endpoint stores a book, replacing any book with the same ISBN
// @Tags books
// @Accept  json
// @Produce json
// @Param body body dto.BookRequestBody true "JSON payload required to create a book"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 422
// @Failure 500
// @Router /v1/book [post]
func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	input, ok := h.readBook(w, r)
	if !ok {
		return
	}
	book, err := h.service.CreateBook(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdateBook godoc
// @Summary Update a book
// @Description This endpoint replaces title, author and price of an existing book
// @Tags books
// @Accept  json
// @Produce json
// @Param body body dto.BookRequestBody true "JSON payload required to update a book"
// @Success 200 {object} data.Book
// @Failure 400
// @Failure 404
// @Failure 422
// @Failure 500
// @Router /v1/book [put]
func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	input, ok := h.readBook(w, r)
	if !ok {
		return
	}
	book, err := h.service.UpdateBook(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.bookNotFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeleteBook godoc
// @Summary Delete a book
// @Description This endpoint deletes the book with the given ISBN
// @Tags books
// @Param isbn path string true "ISBN of book to delete"
// @Success 204
// @Failure 404
// @Failure 500
// @Router /v1/book/{isbn} [delete]
func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteBook(r.Context(), h.readParam(r, "isbn"))
	if err != nil {
		h.lookupErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readBook decodes the request body into a book. It writes the error response
// itself and reports false when the body is unusable.
func (h *Handler) readBook(w http.ResponseWriter, r *http.Request) (*data.Book, bool) {
	var requestBody dto.BookRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return nil, false
	}
	book, err := requestBody.Book()
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrInvalidPrice):
			h.invalidPriceResponse(w, r)
		default:
			h.badRequestResponse(w, r, err)
		}
		return nil, false
	}
	return book, true
}

func (h *Handler) lookupErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		h.bookNotFoundResponse(w, r)
	default:
		h.serverErrorResponse(w, r, err)
	}
}

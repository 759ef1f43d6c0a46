package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/books", h.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/title/:title", h.listBooksByTitleHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/author/:author", h.listBooksByAuthorHandler)
	router.HandlerFunc(http.MethodPost, "/v1/book", h.createBookHandler)
	router.HandlerFunc(http.MethodPut, "/v1/book", h.updateBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/book/:isbn", h.showBookHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/book/:isbn", h.deleteBookHandler)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.recoverPanic(h.requestID(h.metrics(h.logRequest(h.enableCORS(h.rateLimit(router))))))
}

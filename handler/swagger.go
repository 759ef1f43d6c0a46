package handler

import (
	"net/http"

	"github.com/emzola/biblioteca/docs"
	"github.com/swaggo/swag"
)

func init() {
	docs.SwaggerInfo.Version = Version
}

// handleSwaggerFile serves the registered OpenAPI document.
func (h *Handler) handleSwaggerFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			h.serverErrorResponse(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}
}

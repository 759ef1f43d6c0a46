package handler

import "net/http"

// Version is the release reported by the healthcheck, the metrics endpoint
// and the API document.
const Version = "1.0.0"

// Healthcheck godoc
// @Summary Show service health
// @Description This endpoint reports the service status and whether the book store is reachable
// @Tags health
// @Produce json
// @Success 200
// @Failure 503
// @Router /v1/healthcheck [get]
func (h *Handler) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	status, storage, code := "available", "available", http.StatusOK
	if err := h.service.CheckStorage(r.Context()); err != nil {
		h.logError(r, err)
		status, storage, code = "unavailable", "unavailable", http.StatusServiceUnavailable
	}
	health := envelope{
		"status": status,
		"system_info": map[string]string{
			"environment": h.config.Server.Env,
			"version":     Version,
			"storage":     h.config.Storage.Driver + ": " + storage,
		},
	}
	err := h.encodeJSON(w, code, health, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

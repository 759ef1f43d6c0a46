package handler

import (
	"github.com/emzola/biblioteca/config"
	"github.com/emzola/biblioteca/internal/jsonlog"
	"github.com/emzola/biblioteca/service"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

// Handler defines Handler layer.
type Handler struct {
	config   config.Config
	logger   *jsonlog.Logger
	limiters *ttlcache.Cache[string, *rate.Limiter]
	service  service.Service
}

// New creates a new instance of Handler. The limiters cache holds one rate
// limiter per client IP and should expire idle entries.
func New(cfg config.Config, logger *jsonlog.Logger, limiters *ttlcache.Cache[string, *rate.Limiter], service service.Service) *Handler {
	return &Handler{
		config:   cfg,
		logger:   logger,
		limiters: limiters,
		service:  service,
	}
}

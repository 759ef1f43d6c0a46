package repository

import (
	"context"
	"database/sql"
	"time"
)

// Repository is the persistence contract the service layer depends on.
type Repository interface {
	books
	Ping(ctx context.Context) error
}

// repository implements Repository on top of PostgreSQL.
type repository struct {
	db      *sql.DB
	timeout time.Duration
}

// New creates a new PostgreSQL-backed Repository. Every query is bounded by timeout.
func New(db *sql.DB, timeout time.Duration) *repository {
	return &repository{db: db, timeout: timeout}
}

func (r *repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Ping verifies the database is reachable.
func (r *repository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return wrapError("ping", r.db.PingContext(ctx))
}

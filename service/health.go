package service

import "context"

type health interface {
	CheckStorage(ctx context.Context) error
}

// CheckStorage reports whether the book store is reachable.
func (s *service) CheckStorage(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// wrapError annotates a storage error with the operation that produced it and,
// for server-side PostgreSQL errors, the SQLSTATE condition name.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %s (%s): %w", op, pqErr.Message, pqErr.Code.Name(), err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

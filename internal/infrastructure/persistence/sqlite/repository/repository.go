package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"devpulse/internal/ports"
)

// dbFrom prefers a transaction from context (see ports.UnitOfWork) and
// falls back to the repository's own handle.
func dbFrom(ctx context.Context, fallback *gorm.DB) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return fallback.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

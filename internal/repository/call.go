package repository

import (
	"context"

	"github.com/shubhashmahato/kurakani/internal/domain"
)

// CallRepository stores the call log.
type CallRepository interface {
	// FindByID returns the call or ErrCallNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Call, error)

	// Save creates the call when ID is zero, updates otherwise.
	Save(ctx context.Context, call *domain.Call) error
}

package unit

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("unit not found")
	ErrCodeTaken = errors.New("unit code already taken")
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	// GetAll returns the whole forest. The org chart is small enough to
	// load in one query and traverse in memory.
	GetAll(ctx context.Context) ([]Unit, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Unit, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Unit, error)
	GetByCode(ctx context.Context, code string) (Unit, error)
	Create(ctx context.Context, u Unit) (Unit, error)
	Update(ctx context.Context, u Unit) (Unit, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
	HasAssignments(ctx context.Context, id uuid.UUID) (bool, error)
}

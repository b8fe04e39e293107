package jobtitle

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("job title not found")
	ErrCodeTaken = errors.New("job title code already taken")
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetAll(ctx context.Context) ([]JobTitle, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]JobTitle, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (JobTitle, error)
	GetByCode(ctx context.Context, code string) (JobTitle, error)
	Create(ctx context.Context, j JobTitle) (JobTitle, error)
	Update(ctx context.Context, j JobTitle) (JobTitle, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasAssignments(ctx context.Context, id uuid.UUID) (bool, error)
}

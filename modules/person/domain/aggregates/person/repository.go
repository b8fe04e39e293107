package person

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("person not found")
	ErrRegistrationNoTaken = errors.New("registration number already taken")
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Person, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Person, error)
	GetByRegistrationNo(ctx context.Context, registrationNo string) (Person, error)
	Create(ctx context.Context, p Person) (Person, error)
	Update(ctx context.Context, p Person) (Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// HasAssignments reports whether any assignment version (of any status)
	// references the person. Deleting such a person would orphan history.
	HasAssignments(ctx context.Context, id uuid.UUID) (bool, error)
}

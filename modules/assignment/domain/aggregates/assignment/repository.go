package assignment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("assignment not found")
	ErrDuplicateCurrent = errors.New("lineage already has a current version")
)

type FindParams struct {
	PersonID   *uuid.UUID
	UnitID     *uuid.UUID
	JobTitleID *uuid.UUID
	Status     Status
	Limit      int
	Offset     int
}

// LineageKey identifies a lineage by its natural key.
type LineageKey struct {
	PersonID   uuid.UUID
	UnitID     uuid.UUID
	JobTitleID uuid.UUID
}

// PersonLoad is a person's summed CURRENT percentage fraction.
type PersonLoad struct {
	PersonID uuid.UUID
	Total    decimal.Decimal
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Assignment, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Assignment, error)
	// GetHistory returns every version of a lineage ordered by version.
	GetHistory(ctx context.Context, lineageID uuid.UUID) ([]Assignment, error)
	// GetCurrentByKey returns the CURRENT version of the lineage, or
	// ErrNotFound when none exists.
	GetCurrentByKey(ctx context.Context, key LineageKey) (Assignment, error)
	// LockLineage serializes writers on one lineage for the duration of the
	// surrounding transaction. Callers must already be inside InTx.
	LockLineage(ctx context.Context, key LineageKey) error
	Create(ctx context.Context, a Assignment) (Assignment, error)
	// Update rewrites the mutable lifecycle fields (status, valid_to) of an
	// existing version. Identity fields never change.
	Update(ctx context.Context, a Assignment) (Assignment, error)
	// CurrentByPerson returns the person's CURRENT versions across lineages.
	CurrentByPerson(ctx context.Context, personID uuid.UUID) ([]Assignment, error)
	// CurrentLoads sums CURRENT percentages per person across the whole
	// population, people without current assignments excluded.
	CurrentLoads(ctx context.Context) ([]PersonLoad, error)
}

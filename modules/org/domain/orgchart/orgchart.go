package orgchart

import (
	"context"

	"github.com/google/uuid"
)

// MatrixCell is the number of people currently holding a given job title in
// a given unit. Only CURRENT assignment versions are counted.
type MatrixCell struct {
	UnitID     uuid.UUID
	JobTitleID uuid.UUID
	Headcount  int
}

// HeadcountReader exposes the assignment counts the org chart needs without
// coupling this module to the assignment aggregate itself.
type HeadcountReader interface {
	CurrentMatrix(ctx context.Context) ([]MatrixCell, error)
	CurrentHeadcountByUnit(ctx context.Context) (map[uuid.UUID]int, error)
}

package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/organigramma/organigramma/modules/org/domain/orgchart"
	"github.com/organigramma/organigramma/pkg/composables"
)

// OrgChartRepository reads current-assignment headcounts straight off the
// assignments table. It never writes.
type OrgChartRepository struct{}

func NewOrgChartRepository() orgchart.HeadcountReader {
	return &OrgChartRepository{}
}

func (r *OrgChartRepository) CurrentMatrix(ctx context.Context) ([]orgchart.MatrixCell, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT unit_id, job_title_id, COUNT(DISTINCT person_id)
FROM assignments
WHERE status = 'current'
GROUP BY unit_id, job_title_id
`)
	if err != nil {
		return nil, gerrors.Wrap(err, "matrix headcount")
	}
	defer rows.Close()

	var cells []orgchart.MatrixCell
	for rows.Next() {
		var cell orgchart.MatrixCell
		if err := rows.Scan(&cell.UnitID, &cell.JobTitleID, &cell.Headcount); err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, rows.Err()
}

func (r *OrgChartRepository) CurrentHeadcountByUnit(ctx context.Context) (map[uuid.UUID]int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT unit_id, COUNT(DISTINCT person_id)
FROM assignments
WHERE status = 'current'
GROUP BY unit_id
`)
	if err != nil {
		return nil, gerrors.Wrap(err, "unit headcount")
	}
	defer rows.Close()

	out := map[uuid.UUID]int{}
	for rows.Next() {
		var unitID uuid.UUID
		var count int
		if err := rows.Scan(&unitID, &count); err != nil {
			return nil, err
		}
		out[unitID] = count
	}
	return out, rows.Err()
}

package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/organigramma/organigramma/modules/assignment/domain/aggregates/assignment"
	"github.com/organigramma/organigramma/pkg/composables"
)

const assignmentColumns = `id, lineage_id, version, person_id, unit_id, job_title_id, percentage, is_ad_interim, is_unit_boss, notes, status, valid_from, valid_to, created_at, updated_at`

type AssignmentRepository struct{}

func NewAssignmentRepository() assignment.Repository {
	return &AssignmentRepository{}
}

func (r *AssignmentRepository) GetPaginated(ctx context.Context, params *assignment.FindParams) ([]assignment.Assignment, int64, error) {
	if params == nil {
		params = &assignment.FindParams{}
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	where := []string{"1=1"}
	args := []any{}
	if params.PersonID != nil {
		args = append(args, *params.PersonID)
		where = append(where, "person_id=$"+itoa(len(args)))
	}
	if params.UnitID != nil {
		args = append(args, *params.UnitID)
		where = append(where, "unit_id=$"+itoa(len(args)))
	}
	if params.JobTitleID != nil {
		args = append(args, *params.JobTitleID)
		where = append(where, "job_title_id=$"+itoa(len(args)))
	}
	if params.Status != "" {
		args = append(args, string(params.Status))
		where = append(where, "status=$"+itoa(len(args)))
	}
	cond := strings.Join(where, " AND ")

	countArgs := append([]any(nil), args...)
	args = append(args, limit, offset)

	rows, err := tx.Query(ctx, `
SELECT `+assignmentColumns+`
FROM assignments
WHERE `+cond+`
ORDER BY valid_from DESC, version DESC
LIMIT $`+itoa(len(args)-1)+` OFFSET $`+itoa(len(args)), args...)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "list assignments")
	}
	defer rows.Close()

	out := make([]assignment.Assignment, 0, limit)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM assignments WHERE `+cond, countArgs...).Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "count assignments")
	}

	return out, total, nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (assignment.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}

	row := tx.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id=$1`, id)
	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, err
	}
	return a, nil
}

func (r *AssignmentRepository) GetHistory(ctx context.Context, lineageID uuid.UUID) ([]assignment.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT `+assignmentColumns+`
FROM assignments
WHERE lineage_id=$1
ORDER BY version
`, lineageID)
	if err != nil {
		return nil, gerrors.Wrap(err, "assignment history")
	}
	defer rows.Close()

	var out []assignment.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AssignmentRepository) GetCurrentByKey(ctx context.Context, key assignment.LineageKey) (assignment.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}

	row := tx.QueryRow(ctx, `
SELECT `+assignmentColumns+`
FROM assignments
WHERE person_id=$1 AND unit_id=$2 AND job_title_id=$3 AND status='current'
`, key.PersonID, key.UnitID, key.JobTitleID)
	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, err
	}
	return a, nil
}

// LockLineage takes row locks on every version of the lineage. A brand-new
// lineage has no rows to lock; the partial unique index on CURRENT versions
// then resolves the race between two concurrent first inserts.
func (r *AssignmentRepository) LockLineage(ctx context.Context, key assignment.LineageKey) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	rows, err := tx.Query(ctx, `
SELECT id
FROM assignments
WHERE person_id=$1 AND unit_id=$2 AND job_title_id=$3
FOR UPDATE
`, key.PersonID, key.UnitID, key.JobTitleID)
	if err != nil {
		return gerrors.Wrap(err, "lock lineage")
	}
	rows.Close()
	return rows.Err()
}

func (r *AssignmentRepository) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}

	row := tx.QueryRow(ctx, `
INSERT INTO assignments (lineage_id, version, person_id, unit_id, job_title_id, percentage, is_ad_interim, is_unit_boss, notes, status, valid_from)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING `+assignmentColumns+`
`, a.LineageID(), a.Version(), a.PersonID(), a.UnitID(), a.JobTitleID(), a.Percentage(), a.IsAdInterim(), a.IsUnitBoss(), a.Notes(), string(a.Status()), a.ValidFrom())

	created, err := scanAssignment(row)
	if err != nil {
		return assignment.Assignment{}, gerrors.Wrap(err, "create assignment")
	}
	return created, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return assignment.Assignment{}, err
	}

	row := tx.QueryRow(ctx, `
UPDATE assignments
SET status=$2, valid_to=$3, updated_at=now()
WHERE id=$1
RETURNING `+assignmentColumns+`
`, a.ID(), string(a.Status()), a.ValidTo())

	updated, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, gerrors.Wrap(err, "update assignment")
	}
	return updated, nil
}

func (r *AssignmentRepository) CurrentByPerson(ctx context.Context, personID uuid.UUID) ([]assignment.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT `+assignmentColumns+`
FROM assignments
WHERE person_id=$1 AND status='current'
ORDER BY valid_from
`, personID)
	if err != nil {
		return nil, gerrors.Wrap(err, "current assignments by person")
	}
	defer rows.Close()

	var out []assignment.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AssignmentRepository) CurrentLoads(ctx context.Context) ([]assignment.PersonLoad, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT person_id, SUM(percentage)
FROM assignments
WHERE status='current'
GROUP BY person_id
ORDER BY person_id
`)
	if err != nil {
		return nil, gerrors.Wrap(err, "current loads")
	}
	defer rows.Close()

	var out []assignment.PersonLoad
	for rows.Next() {
		var load assignment.PersonLoad
		if err := rows.Scan(&load.PersonID, &load.Total); err != nil {
			return nil, err
		}
		out = append(out, load)
	}
	return out, rows.Err()
}

func scanAssignment(row pgx.Row) (assignment.Assignment, error) {
	var id, lineageID, personID, unitID, jobTitleID uuid.UUID
	var version int
	var percentage decimal.Decimal
	var adInterim, unitBoss bool
	var notes, status string
	var validFrom, validTo, createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&id, &lineageID, &version, &personID, &unitID, &jobTitleID, &percentage, &adInterim, &unitBoss, &notes, &status, &validFrom, &validTo, &createdAt, &updatedAt); err != nil {
		return assignment.Assignment{}, err
	}

	var validToPtr *time.Time
	if validTo.Valid {
		t := validTo.Time
		validToPtr = &t
	}

	return assignment.Hydrate(
		id, lineageID, version, personID, unitID, jobTitleID,
		percentage, adInterim, unitBoss, notes,
		assignment.Status(status),
		validFrom.Time, validToPtr,
		createdAt.Time, updatedAt.Time,
	), nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

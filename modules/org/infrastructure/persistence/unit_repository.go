package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/organigramma/organigramma/modules/org/domain/aggregates/unit"
	"github.com/organigramma/organigramma/pkg/composables"
)

const unitColumns = `id, name, code, description, unit_type, emoji, parent_id, created_at, updated_at`

type UnitRepository struct{}

func NewUnitRepository() unit.Repository {
	return &UnitRepository{}
}

func (r *UnitRepository) GetAll(ctx context.Context) ([]unit.Unit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+unitColumns+` FROM units ORDER BY name, code`)
	if err != nil {
		return nil, gerrors.Wrap(err, "list units")
	}
	defer rows.Close()

	var out []unit.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UnitRepository) GetPaginated(ctx context.Context, params *unit.FindParams) ([]unit.Unit, int64, error) {
	if params == nil {
		params = &unit.FindParams{}
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
	q := strings.TrimSpace(params.Q)

	rows, err := tx.Query(ctx, `
SELECT `+unitColumns+`
FROM units
WHERE ($1 = '' OR name ILIKE '%'||$1||'%' OR code ILIKE '%'||$1||'%')
ORDER BY name, code
LIMIT $2 OFFSET $3
`, q, limit, offset)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "list units")
	}
	defer rows.Close()

	out := make([]unit.Unit, 0, limit)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*)
FROM units
WHERE ($1 = '' OR name ILIKE '%'||$1||'%' OR code ILIKE '%'||$1||'%')
`, q).Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "count units")
	}

	return out, total, nil
}

func (r *UnitRepository) GetByID(ctx context.Context, id uuid.UUID) (unit.Unit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return unit.Unit{}, err
	}

	row := tx.QueryRow(ctx, `SELECT `+unitColumns+` FROM units WHERE id=$1`, id)
	u, err := scanUnit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return unit.Unit{}, unit.ErrNotFound
		}
		return unit.Unit{}, err
	}
	return u, nil
}

func (r *UnitRepository) GetByCode(ctx context.Context, code string) (unit.Unit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return unit.Unit{}, err
	}

	row := tx.QueryRow(ctx,
		`SELECT `+unitColumns+` FROM units WHERE code=$1`,
		strings.ToUpper(strings.TrimSpace(code)),
	)
	u, err := scanUnit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return unit.Unit{}, unit.ErrNotFound
		}
		return unit.Unit{}, err
	}
	return u, nil
}

func (r *UnitRepository) Create(ctx context.Context, u unit.Unit) (unit.Unit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return unit.Unit{}, err
	}

	row := tx.QueryRow(ctx, `
INSERT INTO units (name, code, description, unit_type, emoji, parent_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+unitColumns+`
`, u.Name(), u.Code(), u.Description(), string(u.Type()), u.Emoji(), u.ParentID())

	created, err := scanUnit(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return unit.Unit{}, unit.ErrCodeTaken
		}
		return unit.Unit{}, gerrors.Wrap(err, "create unit")
	}
	return created, nil
}

func (r *UnitRepository) Update(ctx context.Context, u unit.Unit) (unit.Unit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return unit.Unit{}, err
	}

	row := tx.QueryRow(ctx, `
UPDATE units
SET name=$2, code=$3, description=$4, unit_type=$5, emoji=$6, parent_id=$7, updated_at=now()
WHERE id=$1
RETURNING `+unitColumns+`
`, u.ID(), u.Name(), u.Code(), u.Description(), string(u.Type()), u.Emoji(), u.ParentID())

	updated, err := scanUnit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return unit.Unit{}, unit.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return unit.Unit{}, unit.ErrCodeTaken
		}
		return unit.Unit{}, gerrors.Wrap(err, "update unit")
	}
	return updated, nil
}

func (r *UnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	if err != nil {
		return gerrors.Wrap(err, "delete unit")
	}
	if tag.RowsAffected() == 0 {
		return unit.ErrNotFound
	}
	return nil
}

func (r *UnitRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM units WHERE parent_id=$1)`, id,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UnitRepository) HasAssignments(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM assignments WHERE unit_id=$1)`, id,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanUnit(row pgx.Row) (unit.Unit, error) {
	var id uuid.UUID
	var name, code, description, unitType, emoji string
	var parentID *uuid.UUID
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&id, &name, &code, &description, &unitType, &emoji, &parentID, &createdAt, &updatedAt); err != nil {
		return unit.Unit{}, err
	}
	return unit.Hydrate(id, name, code, description, unit.Type(unitType), emoji, parentID, createdAt.Time, updatedAt.Time), nil
}

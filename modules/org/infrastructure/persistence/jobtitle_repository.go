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

	"github.com/organigramma/organigramma/modules/org/domain/aggregates/jobtitle"
	"github.com/organigramma/organigramma/pkg/composables"
)

const jobTitleColumns = `id, name, code, description, created_at, updated_at`

type JobTitleRepository struct{}

func NewJobTitleRepository() jobtitle.Repository {
	return &JobTitleRepository{}
}

func (r *JobTitleRepository) GetAll(ctx context.Context) ([]jobtitle.JobTitle, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+jobTitleColumns+` FROM job_titles ORDER BY name, code`)
	if err != nil {
		return nil, gerrors.Wrap(err, "list job titles")
	}
	defer rows.Close()

	var out []jobtitle.JobTitle
	for rows.Next() {
		j, err := scanJobTitle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobTitleRepository) GetPaginated(ctx context.Context, params *jobtitle.FindParams) ([]jobtitle.JobTitle, int64, error) {
	if params == nil {
		params = &jobtitle.FindParams{}
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
SELECT `+jobTitleColumns+`
FROM job_titles
WHERE ($1 = '' OR name ILIKE '%'||$1||'%' OR code ILIKE '%'||$1||'%')
ORDER BY name, code
LIMIT $2 OFFSET $3
`, q, limit, offset)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "list job titles")
	}
	defer rows.Close()

	out := make([]jobtitle.JobTitle, 0, limit)
	for rows.Next() {
		j, err := scanJobTitle(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*)
FROM job_titles
WHERE ($1 = '' OR name ILIKE '%'||$1||'%' OR code ILIKE '%'||$1||'%')
`, q).Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "count job titles")
	}

	return out, total, nil
}

func (r *JobTitleRepository) GetByID(ctx context.Context, id uuid.UUID) (jobtitle.JobTitle, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return jobtitle.JobTitle{}, err
	}

	row := tx.QueryRow(ctx, `SELECT `+jobTitleColumns+` FROM job_titles WHERE id=$1`, id)
	j, err := scanJobTitle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobtitle.JobTitle{}, jobtitle.ErrNotFound
		}
		return jobtitle.JobTitle{}, err
	}
	return j, nil
}

func (r *JobTitleRepository) GetByCode(ctx context.Context, code string) (jobtitle.JobTitle, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return jobtitle.JobTitle{}, err
	}

	row := tx.QueryRow(ctx,
		`SELECT `+jobTitleColumns+` FROM job_titles WHERE code=$1`,
		strings.ToUpper(strings.TrimSpace(code)),
	)
	j, err := scanJobTitle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobtitle.JobTitle{}, jobtitle.ErrNotFound
		}
		return jobtitle.JobTitle{}, err
	}
	return j, nil
}

func (r *JobTitleRepository) Create(ctx context.Context, j jobtitle.JobTitle) (jobtitle.JobTitle, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return jobtitle.JobTitle{}, err
	}

	row := tx.QueryRow(ctx, `
INSERT INTO job_titles (name, code, description)
VALUES ($1, $2, $3)
RETURNING `+jobTitleColumns+`
`, j.Name(), j.Code(), j.Description())

	created, err := scanJobTitle(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return jobtitle.JobTitle{}, jobtitle.ErrCodeTaken
		}
		return jobtitle.JobTitle{}, gerrors.Wrap(err, "create job title")
	}
	return created, nil
}

func (r *JobTitleRepository) Update(ctx context.Context, j jobtitle.JobTitle) (jobtitle.JobTitle, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return jobtitle.JobTitle{}, err
	}

	row := tx.QueryRow(ctx, `
UPDATE job_titles
SET name=$2, code=$3, description=$4, updated_at=now()
WHERE id=$1
RETURNING `+jobTitleColumns+`
`, j.ID(), j.Name(), j.Code(), j.Description())

	updated, err := scanJobTitle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobtitle.JobTitle{}, jobtitle.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return jobtitle.JobTitle{}, jobtitle.ErrCodeTaken
		}
		return jobtitle.JobTitle{}, gerrors.Wrap(err, "update job title")
	}
	return updated, nil
}

func (r *JobTitleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM job_titles WHERE id=$1`, id)
	if err != nil {
		return gerrors.Wrap(err, "delete job title")
	}
	if tag.RowsAffected() == 0 {
		return jobtitle.ErrNotFound
	}
	return nil
}

func (r *JobTitleRepository) HasAssignments(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM assignments WHERE job_title_id=$1)`, id,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanJobTitle(row pgx.Row) (jobtitle.JobTitle, error) {
	var id uuid.UUID
	var name, code, description string
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&id, &name, &code, &description, &createdAt, &updatedAt); err != nil {
		return jobtitle.JobTitle{}, err
	}
	return jobtitle.Hydrate(id, name, code, description, createdAt.Time, updatedAt.Time), nil
}

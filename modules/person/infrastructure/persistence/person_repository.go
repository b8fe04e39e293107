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

	"github.com/organigramma/organigramma/modules/person/domain/aggregates/person"
	"github.com/organigramma/organigramma/pkg/composables"
)

const personColumns = `id, first_name, last_name, short_name, registration_no, email, profile_image, created_at, updated_at`

type PersonRepository struct{}

func NewPersonRepository() person.Repository {
	return &PersonRepository{}
}

func (r *PersonRepository) GetPaginated(ctx context.Context, params *person.FindParams) ([]person.Person, int64, error) {
	if params == nil {
		params = &person.FindParams{}
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
SELECT `+personColumns+`
FROM persons
WHERE ($1 = '' OR first_name ILIKE '%'||$1||'%' OR last_name ILIKE '%'||$1||'%' OR registration_no ILIKE '%'||$1||'%')
ORDER BY last_name, first_name
LIMIT $2 OFFSET $3
`, q, limit, offset)
	if err != nil {
		return nil, 0, gerrors.Wrap(err, "list persons")
	}
	defer rows.Close()

	out := make([]person.Person, 0, limit)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*)
FROM persons
WHERE ($1 = '' OR first_name ILIKE '%'||$1||'%' OR last_name ILIKE '%'||$1||'%' OR registration_no ILIKE '%'||$1||'%')
`, q).Scan(&total); err != nil {
		return nil, 0, gerrors.Wrap(err, "count persons")
	}

	return out, total, nil
}

func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return person.Person{}, err
	}

	row := tx.QueryRow(ctx, `SELECT `+personColumns+` FROM persons WHERE id=$1`, id)
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return person.Person{}, person.ErrNotFound
		}
		return person.Person{}, err
	}
	return p, nil
}

func (r *PersonRepository) GetByRegistrationNo(ctx context.Context, registrationNo string) (person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return person.Person{}, err
	}

	row := tx.QueryRow(ctx,
		`SELECT `+personColumns+` FROM persons WHERE registration_no=$1`,
		strings.ToUpper(strings.TrimSpace(registrationNo)),
	)
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return person.Person{}, person.ErrNotFound
		}
		return person.Person{}, err
	}
	return p, nil
}

func (r *PersonRepository) Create(ctx context.Context, p person.Person) (person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return person.Person{}, err
	}

	row := tx.QueryRow(ctx, `
INSERT INTO persons (first_name, last_name, short_name, registration_no, email, profile_image)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+personColumns+`
`, p.FirstName(), p.LastName(), p.ShortName(), p.RegistrationNo(), p.Email(), p.ProfileImage())

	created, err := scanPerson(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return person.Person{}, person.ErrRegistrationNoTaken
		}
		return person.Person{}, gerrors.Wrap(err, "create person")
	}
	return created, nil
}

func (r *PersonRepository) Update(ctx context.Context, p person.Person) (person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return person.Person{}, err
	}

	row := tx.QueryRow(ctx, `
UPDATE persons
SET first_name=$2, last_name=$3, short_name=$4, registration_no=$5, email=$6, profile_image=$7, updated_at=now()
WHERE id=$1
RETURNING `+personColumns+`
`, p.ID(), p.FirstName(), p.LastName(), p.ShortName(), p.RegistrationNo(), p.Email(), p.ProfileImage())

	updated, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return person.Person{}, person.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return person.Person{}, person.ErrRegistrationNoTaken
		}
		return person.Person{}, gerrors.Wrap(err, "update person")
	}
	return updated, nil
}

func (r *PersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM persons WHERE id=$1`, id)
	if err != nil {
		return gerrors.Wrap(err, "delete person")
	}
	if tag.RowsAffected() == 0 {
		return person.ErrNotFound
	}
	return nil
}

func (r *PersonRepository) HasAssignments(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM assignments WHERE person_id=$1)`, id,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanPerson(row pgx.Row) (person.Person, error) {
	var id uuid.UUID
	var firstName, lastName, shortName, registrationNo, email, profileImage string
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&id, &firstName, &lastName, &shortName, &registrationNo, &email, &profileImage, &createdAt, &updatedAt); err != nil {
		return person.Person{}, err
	}
	return person.Hydrate(id, firstName, lastName, shortName, registrationNo, email, profileImage, createdAt.Time, updatedAt.Time), nil
}

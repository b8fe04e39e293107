package services

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/organigramma/organigramma/pkg/serrors"
)

// mapPgError translates constraint violations raised by the assignments
// schema into API errors. The partial unique index is the database-level
// backstop for the one-CURRENT-per-lineage rule; hitting it means two
// writers raced, which the client sees as an ordinary conflict.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		switch pgErr.ConstraintName {
		case "assignments_one_current_per_lineage":
			return serrors.NewServiceError(http.StatusConflict, "ASSIGNMENT_DUPLICATE_CURRENT", "person already holds a current assignment for this unit and job title", err)
		case "assignments_lineage_id_version_key":
			return serrors.NewServiceError(http.StatusConflict, "ASSIGNMENT_VERSION_CONFLICT", "assignment version was created concurrently, retry the operation", err)
		}
	case "23503": // foreign_key_violation
		switch pgErr.ConstraintName {
		case "assignments_person_id_fkey":
			return serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", "person does not exist", err)
		case "assignments_unit_id_fkey":
			return serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", "unit does not exist", err)
		case "assignments_job_title_id_fkey":
			return serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", "job title does not exist", err)
		}
	case "23514": // check_violation
		if pgErr.ConstraintName == "assignments_percentage_range" {
			return serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", "percentage must be between 1 and 100", err)
		}
	}
	return nil
}

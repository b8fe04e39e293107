package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/organigramma/organigramma/modules/assignment/domain/aggregates/assignment"
	"github.com/organigramma/organigramma/pkg/composables"
	"github.com/organigramma/organigramma/pkg/eventbus"
	"github.com/organigramma/organigramma/pkg/serrors"
)

// AssignmentService owns the version chain. Every mutation runs in one
// transaction, takes the lineage lock first, and publishes its event only
// after the transaction committed.
type AssignmentService struct {
	repo      assignment.Repository
	publisher eventbus.EventBus
}

func NewAssignmentService(repo assignment.Repository, publisher eventbus.EventBus) *AssignmentService {
	return &AssignmentService{repo: repo, publisher: publisher}
}

func (s *AssignmentService) GetPaginated(ctx context.Context, params *assignment.FindParams) ([]assignment.Assignment, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *AssignmentService) GetByID(ctx context.Context, id uuid.UUID) (assignment.Assignment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return assignment.Assignment{}, mapAssignmentError(err)
	}
	return a, nil
}

// History resolves the lineage of the given version and returns all its
// versions, oldest first.
func (s *AssignmentService) History(ctx context.Context, id uuid.UUID) ([]assignment.Assignment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapAssignmentError(err)
	}
	history, err := s.repo.GetHistory(ctx, a.LineageID())
	if err != nil {
		return nil, mapAssignmentError(err)
	}
	return history, nil
}

// Create opens a new lineage at version 1. A lineage whose CURRENT version
// already exists is rejected; a previously terminated lineage key may be
// reused, which starts a new lineage.
func (s *AssignmentService) Create(ctx context.Context, dto *assignment.CreateDTO) (assignment.Assignment, error) {
	if dto == nil {
		return assignment.Assignment{}, errors.New("missing dto")
	}
	if errs, ok := dto.Ok(); !ok {
		return assignment.Assignment{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", errs.First(), nil)
	}

	validFrom, err := parseInstant(dto.ValidFrom)
	if err != nil {
		return assignment.Assignment{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", "valid_from must be an RFC 3339 timestamp", err)
	}

	key := assignment.LineageKey{
		PersonID:   uuid.MustParse(dto.PersonID),
		UnitID:     uuid.MustParse(dto.UnitID),
		JobTitleID: uuid.MustParse(dto.JobTitleID),
	}

	var created assignment.Assignment
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockLineage(txCtx, key); err != nil {
			return err
		}

		_, err := s.repo.GetCurrentByKey(txCtx, key)
		switch {
		case err == nil:
			return serrors.NewServiceError(http.StatusConflict, "ASSIGNMENT_DUPLICATE_CURRENT", "person already holds a current assignment for this unit and job title", nil)
		case !errors.Is(err, assignment.ErrNotFound):
			return err
		}

		created, err = s.repo.Create(txCtx, assignment.New(
			key.PersonID, key.UnitID, key.JobTitleID,
			assignment.PointsToFraction(dto.Percentage),
			dto.AdInterim, dto.UnitBoss, dto.Notes,
			validFrom,
		))
		return err
	})
	if err != nil {
		return assignment.Assignment{}, mapAssignmentError(err)
	}

	s.publisher.Publish(&assignment.CreatedEvent{Result: created})
	return created, nil
}

// Update supersedes the CURRENT version with version+1. The predecessor is
// closed at exactly the successor's valid_from, so the lineage timeline has
// neither gaps nor overlaps.
func (s *AssignmentService) Update(ctx context.Context, id uuid.UUID, dto *assignment.UpdateDTO) (assignment.Assignment, error) {
	if dto == nil {
		return assignment.Assignment{}, errors.New("missing dto")
	}
	if errs, ok := dto.Ok(); !ok {
		return assignment.Assignment{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", errs.First(), nil)
	}

	validFrom, err := parseInstant(dto.ValidFrom)
	if err != nil {
		return assignment.Assignment{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", "valid_from must be an RFC 3339 timestamp", err)
	}

	var previous, created assignment.Assignment
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		key := assignment.LineageKey{
			PersonID:   existing.PersonID(),
			UnitID:     existing.UnitID(),
			JobTitleID: existing.JobTitleID(),
		}
		if err := s.repo.LockLineage(txCtx, key); err != nil {
			return err
		}

		// Re-read under the lock: the version may have been superseded
		// between the first read and lock acquisition.
		existing, err = s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !existing.IsCurrent() {
			return serrors.NewServiceError(http.StatusConflict, "ASSIGNMENT_INVALID_STATE", "only the current version can be updated", nil)
		}
		if validFrom.Before(existing.ValidFrom()) {
			return serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", "valid_from cannot precede the current version's valid_from", nil)
		}

		// Fields the caller did not send carry over from the predecessor.
		adInterim := existing.IsAdInterim()
		if dto.AdInterim != nil {
			adInterim = *dto.AdInterim
		}
		unitBoss := existing.IsUnitBoss()
		if dto.UnitBoss != nil {
			unitBoss = *dto.UnitBoss
		}
		notes := existing.Notes()
		if dto.Notes != nil {
			notes = *dto.Notes
		}

		// Demote first: the partial unique index allows only one CURRENT row
		// per lineage at any point, successor insert included.
		previous, err = s.repo.Update(txCtx, existing.Superseded(validFrom))
		if err != nil {
			return err
		}
		created, err = s.repo.Create(txCtx, existing.NextVersion(
			assignment.PointsToFraction(dto.Percentage),
			adInterim, unitBoss, notes,
			validFrom,
		))
		return err
	})
	if err != nil {
		return assignment.Assignment{}, mapAssignmentError(err)
	}

	s.publisher.Publish(&assignment.UpdatedEvent{Previous: previous, Result: created})
	return created, nil
}

// Terminate closes the CURRENT version in place. No successor is created and
// the version number does not advance.
func (s *AssignmentService) Terminate(ctx context.Context, id uuid.UUID, dto *assignment.TerminateDTO) (assignment.Assignment, error) {
	if dto == nil {
		dto = &assignment.TerminateDTO{}
	}
	if errs, ok := dto.Ok(); !ok {
		return assignment.Assignment{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", errs.First(), nil)
	}

	validTo, err := parseInstant(dto.ValidTo)
	if err != nil {
		return assignment.Assignment{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", "valid_to must be an RFC 3339 timestamp", err)
	}

	var terminated assignment.Assignment
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		key := assignment.LineageKey{
			PersonID:   existing.PersonID(),
			UnitID:     existing.UnitID(),
			JobTitleID: existing.JobTitleID(),
		}
		if err := s.repo.LockLineage(txCtx, key); err != nil {
			return err
		}

		existing, err = s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !existing.IsCurrent() {
			return serrors.NewServiceError(http.StatusConflict, "ASSIGNMENT_INVALID_STATE", "only the current version can be terminated", nil)
		}
		if validTo.Before(existing.ValidFrom()) {
			return serrors.NewServiceError(http.StatusUnprocessableEntity, "ASSIGNMENT_VALIDATION", "valid_to cannot precede valid_from", nil)
		}

		terminated, err = s.repo.Update(txCtx, existing.Terminated(validTo))
		return err
	})
	if err != nil {
		return assignment.Assignment{}, mapAssignmentError(err)
	}

	s.publisher.Publish(&assignment.TerminatedEvent{Result: terminated})
	return terminated, nil
}

// parseInstant resolves an optional RFC 3339 timestamp, defaulting to now.
func parseInstant(v string) (time.Time, error) {
	if v == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(time.RFC3339, v)
}

func mapAssignmentError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := serrors.AsServiceError(err); ok {
		return err
	}
	if mapped := mapPgError(err); mapped != nil {
		return mapped
	}
	switch {
	case errors.Is(err, assignment.ErrNotFound):
		return serrors.NewServiceError(http.StatusNotFound, "ASSIGNMENT_NOT_FOUND", "assignment not found", err)
	case errors.Is(err, assignment.ErrDuplicateCurrent):
		return serrors.NewServiceError(http.StatusConflict, "ASSIGNMENT_DUPLICATE_CURRENT", "person already holds a current assignment for this unit and job title", err)
	default:
		return err
	}
}

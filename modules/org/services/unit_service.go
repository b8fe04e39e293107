package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/organigramma/organigramma/modules/org/domain/aggregates/unit"
	"github.com/organigramma/organigramma/pkg/composables"
	"github.com/organigramma/organigramma/pkg/serrors"
)

type UnitService struct {
	repo unit.Repository
}

func NewUnitService(repo unit.Repository) *UnitService {
	return &UnitService{repo: repo}
}

func (s *UnitService) GetAll(ctx context.Context) ([]unit.Unit, error) {
	return s.repo.GetAll(ctx)
}

func (s *UnitService) GetPaginated(ctx context.Context, params *unit.FindParams) ([]unit.Unit, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *UnitService) GetByID(ctx context.Context, id uuid.UUID) (unit.Unit, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return unit.Unit{}, mapUnitError(err)
	}
	return u, nil
}

func (s *UnitService) Create(ctx context.Context, dto *unit.CreateDTO) (unit.Unit, error) {
	if dto == nil {
		return unit.Unit{}, errors.New("missing dto")
	}
	if errs, ok := dto.Ok(); !ok {
		return unit.Unit{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "UNIT_VALIDATION", errs.First(), nil)
	}

	entity := dto.ToEntity()
	var created unit.Unit
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if parentID := entity.ParentID(); parentID != nil {
			if _, err := s.repo.GetByID(txCtx, *parentID); err != nil {
				if errors.Is(err, unit.ErrNotFound) {
					return serrors.NewServiceError(http.StatusUnprocessableEntity, "UNIT_VALIDATION", "parent unit does not exist", err)
				}
				return err
			}
		}
		var err error
		created, err = s.repo.Create(txCtx, entity)
		return err
	})
	if err != nil {
		return unit.Unit{}, mapUnitError(err)
	}
	return created, nil
}

func (s *UnitService) Update(ctx context.Context, id uuid.UUID, dto *unit.UpdateDTO) (unit.Unit, error) {
	if dto == nil {
		return unit.Unit{}, errors.New("missing dto")
	}
	if errs, ok := dto.Ok(); !ok {
		return unit.Unit{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "UNIT_VALIDATION", errs.First(), nil)
	}

	var updated unit.Unit
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		updated, err = s.repo.Update(txCtx, unit.Hydrate(
			existing.ID(),
			dto.Name,
			dto.Code,
			dto.Description,
			unit.Type(dto.Type),
			dto.Emoji,
			existing.ParentID(),
			existing.CreatedAt(),
			existing.UpdatedAt(),
		))
		return err
	})
	if err != nil {
		return unit.Unit{}, mapUnitError(err)
	}
	return updated, nil
}

// Move reparents a unit. The new parent must not be the unit itself or any
// of its descendants, otherwise the hierarchy would contain a cycle.
func (s *UnitService) Move(ctx context.Context, id uuid.UUID, dto *unit.MoveDTO) (unit.Unit, error) {
	if dto == nil {
		return unit.Unit{}, errors.New("missing dto")
	}
	if errs, ok := dto.Ok(); !ok {
		return unit.Unit{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "UNIT_VALIDATION", errs.First(), nil)
	}

	var moved unit.Unit
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		var newParentID *uuid.UUID
		if dto.NewParentID != "" {
			parsed, err := uuid.Parse(dto.NewParentID)
			if err != nil {
				return serrors.NewServiceError(http.StatusUnprocessableEntity, "UNIT_VALIDATION", "new_parent_id must be a uuid", err)
			}
			if parsed == id {
				return serrors.NewServiceError(http.StatusUnprocessableEntity, "UNIT_CYCLE", "a unit cannot be its own parent", nil)
			}
			if _, err := s.repo.GetByID(txCtx, parsed); err != nil {
				if errors.Is(err, unit.ErrNotFound) {
					return serrors.NewServiceError(http.StatusUnprocessableEntity, "UNIT_VALIDATION", "new parent unit does not exist", err)
				}
				return err
			}
			if err := s.ensureNotDescendant(txCtx, id, parsed); err != nil {
				return err
			}
			newParentID = &parsed
		}

		moved, err = s.repo.Update(txCtx, existing.WithParent(newParentID))
		return err
	})
	if err != nil {
		return unit.Unit{}, mapUnitError(err)
	}
	return moved, nil
}

// ensureNotDescendant walks from candidate up to the root and fails when the
// path passes through unitID.
func (s *UnitService) ensureNotDescendant(ctx context.Context, unitID, candidate uuid.UUID) error {
	seen := map[uuid.UUID]bool{}
	current := candidate
	for {
		if seen[current] {
			// Corrupt hierarchy, refuse the move rather than loop forever.
			return serrors.NewServiceError(http.StatusUnprocessableEntity, "UNIT_CYCLE", "unit hierarchy already contains a cycle", nil)
		}
		seen[current] = true

		u, err := s.repo.GetByID(ctx, current)
		if err != nil {
			return err
		}
		parentID := u.ParentID()
		if parentID == nil {
			return nil
		}
		if *parentID == unitID {
			return serrors.NewServiceError(http.StatusUnprocessableEntity, "UNIT_CYCLE", "moving a unit under its own descendant is not allowed", nil)
		}
		current = *parentID
	}
}

func (s *UnitService) Delete(ctx context.Context, id uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByID(txCtx, id); err != nil {
			return err
		}
		hasChildren, err := s.repo.HasChildren(txCtx, id)
		if err != nil {
			return err
		}
		if hasChildren {
			return serrors.NewServiceError(http.StatusConflict, "UNIT_HAS_CHILDREN", "unit has child units and cannot be deleted", nil)
		}
		used, err := s.repo.HasAssignments(txCtx, id)
		if err != nil {
			return err
		}
		if used {
			return serrors.NewServiceError(http.StatusConflict, "UNIT_HAS_ASSIGNMENTS", "unit has assignment history and cannot be deleted", nil)
		}
		return s.repo.Delete(txCtx, id)
	})
	return mapUnitError(err)
}

func mapUnitError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := serrors.AsServiceError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, unit.ErrNotFound):
		return serrors.NewServiceError(http.StatusNotFound, "UNIT_NOT_FOUND", "unit not found", err)
	case errors.Is(err, unit.ErrCodeTaken):
		return serrors.NewServiceError(http.StatusConflict, "UNIT_CODE_CONFLICT", "unit code already exists", err)
	default:
		return err
	}
}

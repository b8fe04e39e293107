package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/organigramma/organigramma/modules/org/domain/aggregates/jobtitle"
	"github.com/organigramma/organigramma/pkg/composables"
	"github.com/organigramma/organigramma/pkg/serrors"
)

type JobTitleService struct {
	repo jobtitle.Repository
}

func NewJobTitleService(repo jobtitle.Repository) *JobTitleService {
	return &JobTitleService{repo: repo}
}

func (s *JobTitleService) GetAll(ctx context.Context) ([]jobtitle.JobTitle, error) {
	return s.repo.GetAll(ctx)
}

func (s *JobTitleService) GetPaginated(ctx context.Context, params *jobtitle.FindParams) ([]jobtitle.JobTitle, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *JobTitleService) GetByID(ctx context.Context, id uuid.UUID) (jobtitle.JobTitle, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return jobtitle.JobTitle{}, mapJobTitleError(err)
	}
	return j, nil
}

func (s *JobTitleService) Create(ctx context.Context, dto *jobtitle.CreateDTO) (jobtitle.JobTitle, error) {
	if dto == nil {
		return jobtitle.JobTitle{}, errors.New("missing dto")
	}
	if errs, ok := dto.Ok(); !ok {
		return jobtitle.JobTitle{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "JOB_TITLE_VALIDATION", errs.First(), nil)
	}

	var created jobtitle.JobTitle
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, dto.ToEntity())
		return err
	})
	if err != nil {
		return jobtitle.JobTitle{}, mapJobTitleError(err)
	}
	return created, nil
}

func (s *JobTitleService) Update(ctx context.Context, id uuid.UUID, dto *jobtitle.UpdateDTO) (jobtitle.JobTitle, error) {
	if dto == nil {
		return jobtitle.JobTitle{}, errors.New("missing dto")
	}
	if errs, ok := dto.Ok(); !ok {
		return jobtitle.JobTitle{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "JOB_TITLE_VALIDATION", errs.First(), nil)
	}

	var updated jobtitle.JobTitle
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		updated, err = s.repo.Update(txCtx, jobtitle.Hydrate(
			existing.ID(),
			dto.Name,
			dto.Code,
			dto.Description,
			existing.CreatedAt(),
			existing.UpdatedAt(),
		))
		return err
	})
	if err != nil {
		return jobtitle.JobTitle{}, mapJobTitleError(err)
	}
	return updated, nil
}

func (s *JobTitleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByID(txCtx, id); err != nil {
			return err
		}
		used, err := s.repo.HasAssignments(txCtx, id)
		if err != nil {
			return err
		}
		if used {
			return serrors.NewServiceError(http.StatusConflict, "JOB_TITLE_HAS_ASSIGNMENTS", "job title has assignment history and cannot be deleted", nil)
		}
		return s.repo.Delete(txCtx, id)
	})
	return mapJobTitleError(err)
}

func mapJobTitleError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := serrors.AsServiceError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, jobtitle.ErrNotFound):
		return serrors.NewServiceError(http.StatusNotFound, "JOB_TITLE_NOT_FOUND", "job title not found", err)
	case errors.Is(err, jobtitle.ErrCodeTaken):
		return serrors.NewServiceError(http.StatusConflict, "JOB_TITLE_CODE_CONFLICT", "job title code already exists", err)
	default:
		return err
	}
}

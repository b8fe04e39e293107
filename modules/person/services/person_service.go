package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/organigramma/organigramma/modules/person/domain/aggregates/person"
	"github.com/organigramma/organigramma/pkg/composables"
	"github.com/organigramma/organigramma/pkg/serrors"
)

type PersonService struct {
	repo person.Repository
}

func NewPersonService(repo person.Repository) *PersonService {
	return &PersonService{repo: repo}
}

func (s *PersonService) GetPaginated(ctx context.Context, params *person.FindParams) ([]person.Person, int64, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *PersonService) GetByID(ctx context.Context, id uuid.UUID) (person.Person, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return person.Person{}, mapPersonError(err)
	}
	return p, nil
}

func (s *PersonService) GetByRegistrationNo(ctx context.Context, registrationNo string) (person.Person, error) {
	p, err := s.repo.GetByRegistrationNo(ctx, registrationNo)
	if err != nil {
		return person.Person{}, mapPersonError(err)
	}
	return p, nil
}

func (s *PersonService) Create(ctx context.Context, dto *person.CreateDTO) (person.Person, error) {
	if dto == nil {
		return person.Person{}, errors.New("missing dto")
	}
	if errs, ok := dto.Ok(); !ok {
		return person.Person{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "PERSON_VALIDATION", errs.First(), nil)
	}

	var created person.Person
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, dto.ToEntity())
		return err
	})
	if err != nil {
		return person.Person{}, mapPersonError(err)
	}
	return created, nil
}

func (s *PersonService) Update(ctx context.Context, id uuid.UUID, dto *person.UpdateDTO) (person.Person, error) {
	if dto == nil {
		return person.Person{}, errors.New("missing dto")
	}
	if errs, ok := dto.Ok(); !ok {
		return person.Person{}, serrors.NewServiceError(http.StatusUnprocessableEntity, "PERSON_VALIDATION", errs.First(), nil)
	}

	var updated person.Person
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		updated, err = s.repo.Update(txCtx, person.Hydrate(
			existing.ID(),
			dto.FirstName,
			dto.LastName,
			dto.ShortName,
			dto.RegistrationNo,
			dto.Email,
			dto.ProfileImage,
			existing.CreatedAt(),
			existing.UpdatedAt(),
		))
		return err
	})
	if err != nil {
		return person.Person{}, mapPersonError(err)
	}
	return updated, nil
}

func (s *PersonService) Delete(ctx context.Context, id uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByID(txCtx, id); err != nil {
			return err
		}
		used, err := s.repo.HasAssignments(txCtx, id)
		if err != nil {
			return err
		}
		if used {
			return serrors.NewServiceError(http.StatusConflict, "PERSON_HAS_ASSIGNMENTS", "person has assignment history and cannot be deleted", nil)
		}
		return s.repo.Delete(txCtx, id)
	})
	return mapPersonError(err)
}

func mapPersonError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := serrors.AsServiceError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, person.ErrNotFound):
		return serrors.NewServiceError(http.StatusNotFound, "PERSON_NOT_FOUND", "person not found", err)
	case errors.Is(err, person.ErrRegistrationNoTaken):
		return serrors.NewServiceError(http.StatusConflict, "PERSON_REGISTRATION_NO_CONFLICT", "registration number already exists", err)
	default:
		return err
	}
}

package assignment

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/organigramma/organigramma/pkg/constants"
	"github.com/organigramma/organigramma/pkg/serrors"
)

// Percentage travels the API as whole points: 60 means 60%. Zero and
// anything above 100 are rejected before the domain ever sees them.

type CreateDTO struct {
	PersonID   string `json:"person_id" validate:"required,uuid"`
	UnitID     string `json:"unit_id" validate:"required,uuid"`
	JobTitleID string `json:"job_title_id" validate:"required,uuid"`
	Percentage int    `json:"percentage" validate:"required,gt=0,lte=100"`
	AdInterim  bool   `json:"is_ad_interim"`
	UnitBoss   bool   `json:"is_unit_boss"`
	Notes      string `json:"notes" validate:"omitempty,max=1000"`
	ValidFrom  string `json:"valid_from" validate:"omitempty"`
}

func (d *CreateDTO) Normalize() {
	d.PersonID = strings.TrimSpace(d.PersonID)
	d.UnitID = strings.TrimSpace(d.UnitID)
	d.JobTitleID = strings.TrimSpace(d.JobTitleID)
	d.Notes = strings.TrimSpace(d.Notes)
	d.ValidFrom = strings.TrimSpace(d.ValidFrom)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.FromValidator(errs.(validator.ValidationErrors)), false
}

// UpdateDTO's optional fields are pointers: a nil field carries the value of
// the superseded version over to the new one.
type UpdateDTO struct {
	Percentage int     `json:"percentage" validate:"required,gt=0,lte=100"`
	AdInterim  *bool   `json:"is_ad_interim"`
	UnitBoss   *bool   `json:"is_unit_boss"`
	Notes      *string `json:"notes" validate:"omitempty,max=1000"`
	ValidFrom  string  `json:"valid_from" validate:"omitempty"`
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.ValidFrom = strings.TrimSpace(d.ValidFrom)
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.FromValidator(errs.(validator.ValidationErrors)), false
}

type TerminateDTO struct {
	ValidTo string `json:"valid_to" validate:"omitempty"`
}

func (d *TerminateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.ValidTo = strings.TrimSpace(d.ValidTo)
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.FromValidator(errs.(validator.ValidationErrors)), false
}

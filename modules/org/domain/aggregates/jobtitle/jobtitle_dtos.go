package jobtitle

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/organigramma/organigramma/pkg/constants"
	"github.com/organigramma/organigramma/pkg/serrors"
)

type CreateDTO struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = normalizeCode(d.Code)
	d.Description = strings.TrimSpace(d.Description)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.FromValidator(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity() JobTitle {
	return New(d.Name, d.Code, d.Description)
}

type UpdateDTO struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = normalizeCode(d.Code)
	d.Description = strings.TrimSpace(d.Description)
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.FromValidator(errs.(validator.ValidationErrors)), false
}

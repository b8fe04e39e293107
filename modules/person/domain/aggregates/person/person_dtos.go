package person

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/organigramma/organigramma/pkg/constants"
	"github.com/organigramma/organigramma/pkg/serrors"
)

type CreateDTO struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	ShortName      string `json:"short_name"`
	RegistrationNo string `json:"registration_no" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	ProfileImage   string `json:"profile_image"`
}

func (d *CreateDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.ShortName = strings.TrimSpace(d.ShortName)
	d.RegistrationNo = normalizeRegistrationNo(d.RegistrationNo)
	d.Email = strings.TrimSpace(d.Email)
	d.ProfileImage = strings.TrimSpace(d.ProfileImage)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.FromValidator(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity() Person {
	return New(d.FirstName, d.LastName, d.ShortName, d.RegistrationNo, d.Email, d.ProfileImage)
}

type UpdateDTO struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	ShortName      string `json:"short_name"`
	RegistrationNo string `json:"registration_no" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	ProfileImage   string `json:"profile_image"`
}

func (d *UpdateDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.ShortName = strings.TrimSpace(d.ShortName)
	d.RegistrationNo = normalizeRegistrationNo(d.RegistrationNo)
	d.Email = strings.TrimSpace(d.Email)
	d.ProfileImage = strings.TrimSpace(d.ProfileImage)
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.FromValidator(errs.(validator.ValidationErrors)), false
}

package unit

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/organigramma/organigramma/pkg/constants"
	"github.com/organigramma/organigramma/pkg/serrors"
)

type CreateDTO struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=function organizational"`
	Emoji       string `json:"emoji" validate:"omitempty,max=16"`
	ParentID    string `json:"parent_id" validate:"omitempty,uuid"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = normalizeCode(d.Code)
	d.Description = strings.TrimSpace(d.Description)
	d.Type = strings.ToLower(strings.TrimSpace(d.Type))
	d.Emoji = strings.TrimSpace(d.Emoji)
	d.ParentID = strings.TrimSpace(d.ParentID)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.FromValidator(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity() Unit {
	var parentID *uuid.UUID
	if d.ParentID != "" {
		id := uuid.MustParse(d.ParentID) // validated by the uuid tag
		parentID = &id
	}
	return New(d.Name, d.Code, d.Description, Type(d.Type), d.Emoji, parentID)
}

type UpdateDTO struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=function organizational"`
	Emoji       string `json:"emoji" validate:"omitempty,max=16"`
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = normalizeCode(d.Code)
	d.Description = strings.TrimSpace(d.Description)
	d.Type = strings.ToLower(strings.TrimSpace(d.Type))
	d.Emoji = strings.TrimSpace(d.Emoji)
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.FromValidator(errs.(validator.ValidationErrors)), false
}

// MoveDTO reparents a unit. An empty NewParentID detaches it into a root.
type MoveDTO struct {
	NewParentID string `json:"new_parent_id" validate:"omitempty,uuid"`
}

func (d *MoveDTO) Ok() (serrors.ValidationErrors, bool) {
	d.NewParentID = strings.TrimSpace(d.NewParentID)
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.FromValidator(errs.(validator.ValidationErrors)), false
}

package unit

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type separates pure functions (cross-cutting groupings) from real
// organizational units that hold people.
type Type string

const (
	TypeFunction       Type = "function"
	TypeOrganizational Type = "organizational"
)

func (t Type) IsValid() bool {
	return t == TypeFunction || t == TypeOrganizational
}

// Unit is a node in the organizational hierarchy. A nil parent marks a root;
// the forest may have several roots. Cycle prevention lives in the service
// layer, which rejects any move that would make a unit its own ancestor.
type Unit struct {
	id          uuid.UUID
	name        string
	code        string
	description string
	unitType    Type
	emoji       string
	parentID    *uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func New(name, code, description string, unitType Type, emoji string, parentID *uuid.UUID) Unit {
	return Unit{
		name:        strings.TrimSpace(name),
		code:        normalizeCode(code),
		description: strings.TrimSpace(description),
		unitType:    unitType,
		emoji:       strings.TrimSpace(emoji),
		parentID:    parentID,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	code string,
	description string,
	unitType Type,
	emoji string,
	parentID *uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Unit {
	return Unit{
		id:          id,
		name:        name,
		code:        code,
		description: description,
		unitType:    unitType,
		emoji:       emoji,
		parentID:    parentID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (u Unit) ID() uuid.UUID        { return u.id }
func (u Unit) Name() string         { return u.name }
func (u Unit) Code() string         { return u.code }
func (u Unit) Description() string  { return u.description }
func (u Unit) Type() Type           { return u.unitType }
func (u Unit) Emoji() string        { return u.emoji }
func (u Unit) ParentID() *uuid.UUID { return u.parentID }
func (u Unit) IsRoot() bool         { return u.parentID == nil }
func (u Unit) CreatedAt() time.Time { return u.createdAt }
func (u Unit) UpdatedAt() time.Time { return u.updatedAt }

func (u Unit) WithParent(parentID *uuid.UUID) Unit {
	u.parentID = parentID
	return u
}

func normalizeCode(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

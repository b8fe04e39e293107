package jobtitle

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type JobTitle struct {
	id          uuid.UUID
	name        string
	code        string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

func New(name, code, description string) JobTitle {
	return JobTitle{
		name:        strings.TrimSpace(name),
		code:        normalizeCode(code),
		description: strings.TrimSpace(description),
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	code string,
	description string,
	createdAt time.Time,
	updatedAt time.Time,
) JobTitle {
	return JobTitle{
		id:          id,
		name:        name,
		code:        code,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (j JobTitle) ID() uuid.UUID        { return j.id }
func (j JobTitle) Name() string         { return j.name }
func (j JobTitle) Code() string         { return j.code }
func (j JobTitle) Description() string  { return j.description }
func (j JobTitle) CreatedAt() time.Time { return j.createdAt }
func (j JobTitle) UpdatedAt() time.Time { return j.updatedAt }

func normalizeCode(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

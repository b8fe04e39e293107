package assignment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of one assignment version.
//
// Exactly one CURRENT version may exist per lineage. UPDATE supersedes the
// CURRENT version with a new one and demotes it to HISTORICAL. TERMINATE
// closes the CURRENT version in place without creating a successor.
type Status string

const (
	StatusCurrent    Status = "current"
	StatusHistorical Status = "historical"
	StatusTerminated Status = "terminated"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusCurrent, StatusHistorical, StatusTerminated:
		return true
	}
	return false
}

// Assignment is one immutable version in a lineage. The lineage is keyed by
// (person, unit, job title); versions within it are numbered from 1 and never
// reused. Percentage is stored as a fraction of full time, so 0.6 is 60%.
type Assignment struct {
	id         uuid.UUID
	lineageID  uuid.UUID
	version    int
	personID   uuid.UUID
	unitID     uuid.UUID
	jobTitleID uuid.UUID
	percentage decimal.Decimal
	adInterim  bool
	unitBoss   bool
	notes      string
	status     Status
	validFrom  time.Time
	validTo    *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// New returns the first version of a fresh lineage.
func New(personID, unitID, jobTitleID uuid.UUID, percentage decimal.Decimal, adInterim, unitBoss bool, notes string, validFrom time.Time) Assignment {
	return Assignment{
		lineageID:  uuid.New(),
		version:    1,
		personID:   personID,
		unitID:     unitID,
		jobTitleID: jobTitleID,
		percentage: percentage,
		adInterim:  adInterim,
		unitBoss:   unitBoss,
		notes:      notes,
		status:     StatusCurrent,
		validFrom:  validFrom,
	}
}

func Hydrate(
	id uuid.UUID,
	lineageID uuid.UUID,
	version int,
	personID uuid.UUID,
	unitID uuid.UUID,
	jobTitleID uuid.UUID,
	percentage decimal.Decimal,
	adInterim bool,
	unitBoss bool,
	notes string,
	status Status,
	validFrom time.Time,
	validTo *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) Assignment {
	return Assignment{
		id:         id,
		lineageID:  lineageID,
		version:    version,
		personID:   personID,
		unitID:     unitID,
		jobTitleID: jobTitleID,
		percentage: percentage,
		adInterim:  adInterim,
		unitBoss:   unitBoss,
		notes:      notes,
		status:     status,
		validFrom:  validFrom,
		validTo:    validTo,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (a Assignment) ID() uuid.UUID               { return a.id }
func (a Assignment) LineageID() uuid.UUID        { return a.lineageID }
func (a Assignment) Version() int                { return a.version }
func (a Assignment) PersonID() uuid.UUID         { return a.personID }
func (a Assignment) UnitID() uuid.UUID           { return a.unitID }
func (a Assignment) JobTitleID() uuid.UUID       { return a.jobTitleID }
func (a Assignment) Percentage() decimal.Decimal { return a.percentage }
func (a Assignment) IsAdInterim() bool           { return a.adInterim }
func (a Assignment) IsUnitBoss() bool            { return a.unitBoss }
func (a Assignment) Notes() string               { return a.notes }
func (a Assignment) Status() Status              { return a.status }
func (a Assignment) ValidFrom() time.Time        { return a.validFrom }
func (a Assignment) ValidTo() *time.Time         { return a.validTo }
func (a Assignment) CreatedAt() time.Time        { return a.createdAt }
func (a Assignment) UpdatedAt() time.Time        { return a.updatedAt }

func (a Assignment) IsCurrent() bool { return a.status == StatusCurrent }

// PercentagePoints converts the stored fraction back to whole percentage
// points for the API surface.
func (a Assignment) PercentagePoints() int {
	return int(a.percentage.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// NextVersion derives the CURRENT successor created by an UPDATE. The new
// version starts where it starts; closing the predecessor is the caller's
// job so both rows change inside one transaction.
func (a Assignment) NextVersion(percentage decimal.Decimal, adInterim, unitBoss bool, notes string, validFrom time.Time) Assignment {
	return Assignment{
		lineageID:  a.lineageID,
		version:    a.version + 1,
		personID:   a.personID,
		unitID:     a.unitID,
		jobTitleID: a.jobTitleID,
		percentage: percentage,
		adInterim:  adInterim,
		unitBoss:   unitBoss,
		notes:      notes,
		status:     StatusCurrent,
		validFrom:  validFrom,
	}
}

// Superseded closes this version as HISTORICAL at the successor's start.
func (a Assignment) Superseded(at time.Time) Assignment {
	a.status = StatusHistorical
	a.validTo = &at
	return a
}

// Terminated closes this version in place.
func (a Assignment) Terminated(at time.Time) Assignment {
	a.status = StatusTerminated
	a.validTo = &at
	return a
}

// PointsToFraction converts API percentage points to the stored fraction.
func PointsToFraction(points int) decimal.Decimal {
	return decimal.NewFromInt(int64(points)).Div(decimal.NewFromInt(100))
}

package person

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Person is an ordinary mutable record: edits overwrite it in place, unlike
// assignments which are versioned.
type Person struct {
	id             uuid.UUID
	firstName      string
	lastName       string
	shortName      string
	registrationNo string
	email          string
	profileImage   string
	createdAt      time.Time
	updatedAt      time.Time
}

func New(firstName, lastName, shortName, registrationNo, email, profileImage string) Person {
	return Person{
		firstName:      strings.TrimSpace(firstName),
		lastName:       strings.TrimSpace(lastName),
		shortName:      strings.TrimSpace(shortName),
		registrationNo: normalizeRegistrationNo(registrationNo),
		email:          strings.TrimSpace(email),
		profileImage:   strings.TrimSpace(profileImage),
	}
}

func Hydrate(
	id uuid.UUID,
	firstName string,
	lastName string,
	shortName string,
	registrationNo string,
	email string,
	profileImage string,
	createdAt time.Time,
	updatedAt time.Time,
) Person {
	return Person{
		id:             id,
		firstName:      firstName,
		lastName:       lastName,
		shortName:      shortName,
		registrationNo: registrationNo,
		email:          email,
		profileImage:   profileImage,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (p Person) ID() uuid.UUID          { return p.id }
func (p Person) FirstName() string      { return p.firstName }
func (p Person) LastName() string       { return p.lastName }
func (p Person) ShortName() string      { return p.shortName }
func (p Person) RegistrationNo() string { return p.registrationNo }
func (p Person) Email() string          { return p.email }
func (p Person) ProfileImage() string   { return p.profileImage }
func (p Person) CreatedAt() time.Time   { return p.createdAt }
func (p Person) UpdatedAt() time.Time   { return p.updatedAt }
func (p Person) IsZero() bool           { return p.id == uuid.Nil && p.registrationNo == "" }

func (p Person) FullName() string {
	return strings.TrimSpace(p.firstName + " " + p.lastName)
}

func normalizeRegistrationNo(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

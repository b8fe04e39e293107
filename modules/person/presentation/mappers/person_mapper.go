package mappers

import (
	"time"

	"github.com/organigramma/organigramma/modules/person/domain/aggregates/person"
	"github.com/organigramma/organigramma/modules/person/presentation/viewmodels"
)

func PersonToViewModel(p person.Person) viewmodels.Person {
	return viewmodels.Person{
		ID:             p.ID().String(),
		FirstName:      p.FirstName(),
		LastName:       p.LastName(),
		FullName:       p.FullName(),
		ShortName:      p.ShortName(),
		RegistrationNo: p.RegistrationNo(),
		Email:          p.Email(),
		ProfileImage:   p.ProfileImage(),
		CreatedAt:      p.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt().UTC().Format(time.RFC3339),
	}
}

func PersonsToList(items []person.Person, total int64) viewmodels.PersonList {
	out := make([]viewmodels.Person, 0, len(items))
	for _, p := range items {
		out = append(out, PersonToViewModel(p))
	}
	return viewmodels.PersonList{Items: out, Total: total}
}

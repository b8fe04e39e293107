package modules

import (
	"github.com/organigramma/organigramma/modules/assignment"
	"github.com/organigramma/organigramma/modules/org"
	"github.com/organigramma/organigramma/modules/person"
	"github.com/organigramma/organigramma/pkg/application"
)

// BuiltInModules are registered in dependency order: assignments reference
// persons, units and job titles, so their schema must migrate last.
var BuiltInModules = []application.Module{
	person.NewModule(),
	org.NewModule(),
	assignment.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}

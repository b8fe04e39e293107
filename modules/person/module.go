package person

import (
	"embed"

	"github.com/organigramma/organigramma/modules/person/infrastructure/persistence"
	"github.com/organigramma/organigramma/modules/person/presentation/controllers"
	"github.com/organigramma/organigramma/modules/person/services"
	"github.com/organigramma/organigramma/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(m.Name(), &migrationFiles, "infrastructure/persistence/schema")

	app.RegisterServices(
		services.NewPersonService(persistence.NewPersonRepository()),
	)

	app.RegisterControllers(
		controllers.NewPersonAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "person"
}

package assignment

import (
	"embed"

	"github.com/organigramma/organigramma/modules/assignment/infrastructure/persistence"
	"github.com/organigramma/organigramma/modules/assignment/presentation/controllers"
	"github.com/organigramma/organigramma/modules/assignment/services"
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

	repo := persistence.NewAssignmentRepository()

	app.RegisterServices(
		services.NewAssignmentService(repo, app.EventPublisher()),
		services.NewWorkloadService(repo, app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewAssignmentAPIController(app),
		controllers.NewWorkloadAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "assignment"
}

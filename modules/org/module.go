package org

import (
	"embed"

	"github.com/organigramma/organigramma/modules/org/infrastructure/persistence"
	"github.com/organigramma/organigramma/modules/org/presentation/controllers"
	"github.com/organigramma/organigramma/modules/org/services"
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

	unitRepo := persistence.NewUnitRepository()
	jobTitleRepo := persistence.NewJobTitleRepository()

	app.RegisterServices(
		services.NewUnitService(unitRepo),
		services.NewJobTitleService(jobTitleRepo),
		services.NewOrgChartService(unitRepo, jobTitleRepo, persistence.NewOrgChartRepository()),
	)

	app.RegisterControllers(
		controllers.NewUnitAPIController(app),
		controllers.NewJobTitleAPIController(app),
		controllers.NewOrgChartAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "org"
}

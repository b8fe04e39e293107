package server

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/organigramma/organigramma/pkg/application"
	"github.com/organigramma/organigramma/pkg/configuration"
	"github.com/organigramma/organigramma/pkg/constants"
	"github.com/organigramma/organigramma/pkg/httpapi"
	"github.com/organigramma/organigramma/pkg/middleware"
	"github.com/organigramma/organigramma/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	app.RegisterMiddleware(
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.PoolKey, options.Pool),
	)

	return server.NewHTTPServer(
		app,
		httpapi.NotFoundHandler(),
		httpapi.MethodNotAllowedHandler(),
	), nil
}

package server_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organigramma/organigramma/internal/server"
	"github.com/organigramma/organigramma/pkg/application"
	"github.com/organigramma/organigramma/pkg/eventbus"
)

func TestDefault_AssemblesServer(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(log),
		Logger:   log,
	})

	srv, err := server.Default(&server.DefaultOptions{
		Logger:      log,
		Application: app,
	})
	require.NoError(t, err)
	require.NotNil(t, srv)

	// Logging and pool-injection middleware are registered on the app.
	assert.Len(t, app.Middleware(), 2)
	assert.NotNil(t, srv.NotFoundHandler)
	assert.NotNil(t, srv.MethodNotAllowedHandler)
	assert.NotNil(t, srv.Router())
}

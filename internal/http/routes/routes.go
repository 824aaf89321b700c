// Package routes registers every HTTP operation of the service.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-docker/internal/http/health"
	"github.com/janisto/hello-docker/internal/http/root"
)

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API) {
	root.Register(api)
	health.Register(api)
}

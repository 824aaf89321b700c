package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/hello-docker/internal/platform/logging"
)

// Register wires the health check route into the provided API.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Reports that the service is up. Used by container and load balancer probes.",
		Tags:        []string{"Health"},
	}, getHandler)
}

func getHandler(ctx context.Context, _ *struct{}) (*GetOutput, error) {
	applog.LoggerFromContext(ctx).Debug("health check", zap.String("path", "/health"))
	return &GetOutput{Body: Response{Status: StatusOK}}, nil
}

package root

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/hello-docker/internal/platform/logging"
)

// Register wires the root greeting route into the provided API.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Greeting",
		Tags:        []string{"General"},
	}, getHandler)
}

func getHandler(ctx context.Context, _ *struct{}) (*GetOutput, error) {
	applog.LoggerFromContext(ctx).Debug("root get", zap.String("path", "/"))
	return &GetOutput{Body: Data{Message: Message}}, nil
}

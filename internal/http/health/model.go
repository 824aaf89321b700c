package health

// StatusOK is the only status the health endpoint reports.
const StatusOK = "ok"

// Response models the health response payload.
type Response struct {
	Status string `json:"status" doc:"Service status" example:"ok"`
}

// GetOutput is the response wrapper for GET /health.
type GetOutput struct {
	Body Response
}

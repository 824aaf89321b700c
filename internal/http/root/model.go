package root

// Message is the greeting returned by the root endpoint.
const Message = "Hello from FastAPI (Docker)"

// Data models the root response payload.
type Data struct {
	Message string `json:"message" doc:"Greeting message" example:"Hello from FastAPI (Docker)"`
}

// GetOutput is the response wrapper for GET /.
type GetOutput struct {
	Body Data
}

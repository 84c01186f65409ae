package dto

// ErrorResponse is the error envelope every service returns. statusCode
// mirrors the HTTP status so clients never need to inspect transport
// details.
type ErrorResponse struct {
	Error      string            `json:"error"`
	StatusCode int               `json:"statusCode"`
	Details    map[string]string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

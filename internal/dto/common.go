package dto

// SuccessResponse is returned by operations without a resource body
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}

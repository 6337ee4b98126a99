package models

// HealthCheckResponse returns the health check response struct, exclusively
// used to tell the caller that we are alive and well
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

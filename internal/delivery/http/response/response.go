package response

import "time"

// HealthResponse reports that the crawler process is alive.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

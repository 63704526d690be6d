package domain

import "context"

// HealthStatus is the body of the root health check
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	CORS      string `json:"cors"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

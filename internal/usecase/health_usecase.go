package usecase

import (
	"context"
	"time"

	"riverpatch-inquiry-backend/internal/domain"
)

// ISOTimestampLayout mirrors JavaScript's Date.toISOString
const ISOTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type healthUsecase struct {
	now func() time.Time
}

func NewHealthUsecase() domain.HealthUsecase {
	return &healthUsecase{now: time.Now}
}

func (u *healthUsecase) Check(ctx context.Context) domain.HealthStatus {
	return domain.HealthStatus{
		Status:    "Server is running",
		Timestamp: u.now().UTC().Format(ISOTimestampLayout),
		CORS:      "enabled",
	}
}

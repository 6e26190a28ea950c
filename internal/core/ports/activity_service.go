package ports

import (
	"context"
	"time"

	"github.com/petconnect/activities-api/internal/core/domain"
)

// CreateActivityInput carries the data needed to create a new activity.
type CreateActivityInput struct {
	Name        string
	Description string
	Capacity    int
	ScheduledAt time.Time
}

// ActivityService defines the enrollment-ledger use cases.
type ActivityService interface {
	Create(ctx context.Context, input CreateActivityInput) (*domain.Activity, error)
	// Enroll appends a signup entry for accountID. The signup time is
	// assigned by the server at write time.
	Enroll(ctx context.Context, activityID, accountID string) error
	List(ctx context.Context) ([]domain.Activity, error)
	ListForAccount(ctx context.Context, accountID string) ([]domain.Activity, error)
}

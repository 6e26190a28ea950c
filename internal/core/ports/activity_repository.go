package ports

import (
	"context"

	"github.com/petconnect/activities-api/internal/core/domain"
)

// ActivityRepository defines persistence operations for activities.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	FindByID(ctx context.Context, id string) (*domain.Activity, error)
	// List returns all activities in insertion order.
	List(ctx context.Context) ([]domain.Activity, error)
	// ListByEnrolledAccount returns the activities holding an enrollment
	// entry for accountID.
	ListByEnrolledAccount(ctx context.Context, accountID string) ([]domain.Activity, error)
	// AppendEnrollment appends entry to the activity in a single conditional
	// write: the update only matches when the account is not yet enrolled
	// and the entry count is below capacity. A rejected write is reported as
	// domain.ErrActivityNotFound, domain.ErrAlreadyEnrolled, or
	// domain.ErrActivityFull.
	AppendEnrollment(ctx context.Context, activityID string, entry domain.Enrollment) error
}

// AuditRepository persists the enrollment audit trail.
type AuditRepository interface {
	InsertEnrollment(ctx context.Context, rec domain.EnrollmentRecord) error
}

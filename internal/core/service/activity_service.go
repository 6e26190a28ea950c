package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/petconnect/activities-api/internal/core/domain"
	"github.com/petconnect/activities-api/internal/core/ports"
)

// signupTimeLayout is the time-of-day format stored on enrollment entries.
const signupTimeLayout = "15:04:05"

// ListingCache abstracts the activity-listing cache (Redis). A miss is
// (nil, false, nil); cache failures never fail the request.
type ListingCache interface {
	Get(ctx context.Context) ([]domain.Activity, bool, error)
	Set(ctx context.Context, activities []domain.Activity) error
	Invalidate(ctx context.Context) error
}

// AuditSink receives successful enrollments for asynchronous persistence.
type AuditSink interface {
	Enqueue(rec domain.EnrollmentRecord)
}

// ActivityService implements the enrollment ledger.
type ActivityService struct {
	activities ports.ActivityRepository
	users      ports.UserRepository
	cache      ListingCache
	audit      AuditSink
	log        zerolog.Logger
}

func NewActivityService(
	activities ports.ActivityRepository,
	users ports.UserRepository,
	cache ListingCache,
	audit AuditSink,
	log zerolog.Logger,
) *ActivityService {
	return &ActivityService{
		activities: activities,
		users:      users,
		cache:      cache,
		audit:      audit,
		log:        log,
	}
}

// Create validates the input and persists an activity with an empty
// enrollment list. Capacity is fixed from this point on.
func (s *ActivityService) Create(ctx context.Context, input ports.CreateActivityInput) (*domain.Activity, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		Name:        input.Name,
		Description: input.Description,
		Capacity:    input.Capacity,
		ScheduledAt: input.ScheduledAt.UTC(),
		Enrollments: []domain.Enrollment{},
	}

	created, err := s.activities.Insert(ctx, activity)
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.log.Info().Str("activity_id", created.ID).Int("capacity", created.Capacity).Msg("activity created")
	return created, nil
}

// Enroll appends a signup entry for accountID. The signup time is assigned
// here, in UTC, at write time; a client-supplied value is never trusted.
// Capacity and duplicate checks happen inside one conditional write at the
// repository, so concurrent enrollments on the same activity cannot exceed
// capacity or double-enroll.
func (s *ActivityService) Enroll(ctx context.Context, activityID, accountID string) error {
	if _, err := s.users.FindByID(ctx, accountID); err != nil {
		return err
	}

	now := time.Now().UTC()
	entry := domain.Enrollment{
		AccountID:  accountID,
		SignupTime: now.Format(signupTimeLayout),
	}

	if err := s.activities.AppendEnrollment(ctx, activityID, entry); err != nil {
		return err
	}

	s.invalidateListing(ctx)
	s.audit.Enqueue(domain.EnrollmentRecord{
		ActivityID: activityID,
		AccountID:  accountID,
		SignupTime: entry.SignupTime,
		RecordedAt: now,
	})

	s.log.Info().Str("activity_id", activityID).Str("account_id", accountID).Msg("enrollment recorded")
	return nil
}

// List returns all activities, served from the cache when warm.
func (s *ActivityService) List(ctx context.Context) ([]domain.Activity, error) {
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("listing cache read failed, falling back to store")
	} else if ok {
		return cached, nil
	}

	activities, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, activities); err != nil {
		s.log.Warn().Err(err).Msg("listing cache write failed")
	}
	return activities, nil
}

// ListForAccount returns the activities where accountID holds an entry.
func (s *ActivityService) ListForAccount(ctx context.Context, accountID string) ([]domain.Activity, error) {
	if accountID == "" {
		return nil, domain.NewValidationError().Add("usuarioId", "El usuario es obligatorio")
	}
	return s.activities.ListByEnrolledAccount(ctx, accountID)
}

func (s *ActivityService) invalidateListing(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}

func validateCreate(in ports.CreateActivityInput) error {
	verr := domain.NewValidationError()
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("nombre", "El nombre es obligatorio")
	}
	if strings.TrimSpace(in.Description) == "" {
		verr.Add("descripcion", "La descripción es obligatoria")
	}
	if in.Capacity <= 0 {
		verr.Add("plazas", "Las plazas deben ser un número positivo")
	}
	if in.ScheduledAt.IsZero() {
		verr.Add("fechaHora", "La fecha no es válida")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

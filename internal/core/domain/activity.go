package domain

import (
	"errors"
	"time"
)

var ErrActivityNotFound = errors.New("activity not found")
var ErrAlreadyEnrolled = errors.New("account already enrolled")
var ErrActivityFull = errors.New("activity capacity reached")

// ErrUnavailable signals a collaborator (MongoDB, Redis) timeout or outage.
var ErrUnavailable = errors.New("service unavailable")

// Enrollment links one account to one activity signup. SignupTime is the
// server-assigned UTC time of day (HH:MM:SS) at which the entry was written.
type Enrollment struct {
	AccountID  string `json:"usuarioId"`
	SignupTime string `json:"hora"`
}

// Activity is an event with fixed capacity that accounts can join.
// Capacity is set at creation and never changes; the only mutation in its
// lifecycle is appending enrollments, and never past Capacity.
type Activity struct {
	ID          string       `json:"id"`
	Name        string       `json:"nombre"`
	Description string       `json:"descripcion"`
	Capacity    int          `json:"plazas"`
	ScheduledAt time.Time    `json:"fechaHora"`
	Enrollments []Enrollment `json:"personasApuntadas"`
}

// IsFull reports whether no further enrollments fit.
func (a *Activity) IsFull() bool {
	return len(a.Enrollments) >= a.Capacity
}

// HasEnrollment reports whether accountID already holds an entry.
func (a *Activity) HasEnrollment(accountID string) bool {
	for _, e := range a.Enrollments {
		if e.AccountID == accountID {
			return true
		}
	}
	return false
}

// EnrollmentRecord is the audit-trail view of a successful signup.
type EnrollmentRecord struct {
	ActivityID string
	AccountID  string
	SignupTime string
	RecordedAt time.Time
}

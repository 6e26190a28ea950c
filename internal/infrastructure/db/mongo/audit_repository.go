package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petconnect/activities-api/internal/core/domain"
)

const auditCollection = "inscripciones_log"

// AuditRepository persists the enrollment audit trail.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) InsertEnrollment(ctx context.Context, rec domain.EnrollmentRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"actividad_id": rec.ActivityID,
		"usuario_id":   rec.AccountID,
		"hora":         rec.SignupTime,
		"recorded_at":  rec.RecordedAt.UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert enrollment audit: %w", mapErr(err))
	}
	return nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petconnect/activities-api/internal/core/domain"
)

const activitiesCollection = "actividades"

// ActivityRepository implements ports.ActivityRepository on MongoDB.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activitiesCollection)}
}

type mongoEnrollment struct {
	AccountID  string `bson:"usuario_id"`
	SignupTime string `bson:"hora"`
}

type mongoActivity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"nombre"`
	Description string             `bson:"descripcion"`
	Capacity    int                `bson:"plazas"`
	ScheduledAt time.Time          `bson:"fecha_hora"`
	Enrollments []mongoEnrollment  `bson:"personas_apuntadas"`
}

func (r *ActivityRepository) Insert(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoActivity{
		Name:        activity.Name,
		Description: activity.Description,
		Capacity:    activity.Capacity,
		ScheduledAt: activity.ScheduledAt.UTC(),
		Enrollments: []mongoEnrollment{},
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", mapErr(err))
	}

	created := *activity
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*domain.Activity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrActivityNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoActivity
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("find activity: %w", mapErr(err))
	}
	return toActivity(ma), nil
}

func (r *ActivityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", mapErr(err))
	}
	return decodeActivities(ctx, cur)
}

func (r *ActivityRepository) ListByEnrolledAccount(ctx context.Context, accountID string) ([]domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"personas_apuntadas.usuario_id": accountID})
	if err != nil {
		return nil, fmt.Errorf("list activities for account: %w", mapErr(err))
	}
	return decodeActivities(ctx, cur)
}

// AppendEnrollment pushes the entry in one conditional write. The filter
// only matches when the account is absent from personas_apuntadas AND the
// entry count is still below plazas, so capacity and duplicate-membership
// hold under concurrent enrollments without any read-modify-write cycle.
// A zero-modified result is disambiguated by a follow-up read.
func (r *ActivityRepository) AppendEnrollment(ctx context.Context, activityID string, entry domain.Enrollment) error {
	oid, err := primitive.ObjectIDFromHex(activityID)
	if err != nil {
		return domain.ErrActivityNotFound
	}

	updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":                           oid,
		"personas_apuntadas.usuario_id": bson.M{"$ne": entry.AccountID},
		"$expr": bson.M{
			"$lt": bson.A{
				bson.M{"$size": "$personas_apuntadas"},
				"$plazas",
			},
		},
	}
	update := bson.M{
		"$push": bson.M{
			"personas_apuntadas": mongoEnrollment{
				AccountID:  entry.AccountID,
				SignupTime: entry.SignupTime,
			},
		},
	}

	res, err := r.coll.UpdateOne(updateCtx, filter, update)
	if err != nil {
		return fmt.Errorf("append enrollment: %w", mapErr(err))
	}
	if res.ModifiedCount == 1 {
		return nil
	}

	// Write rejected. Read the activity to report the precise cause.
	activity, err := r.FindByID(ctx, activityID)
	if err != nil {
		return err
	}
	if activity.HasEnrollment(entry.AccountID) {
		return domain.ErrAlreadyEnrolled
	}
	if activity.IsFull() {
		return domain.ErrActivityFull
	}
	return fmt.Errorf("append enrollment: rejected for activity %s", activityID)
}

func decodeActivities(ctx context.Context, cur *mongo.Cursor) ([]domain.Activity, error) {
	defer cur.Close(ctx)

	activities := make([]domain.Activity, 0)
	for cur.Next(ctx) {
		var ma mongoActivity
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		activities = append(activities, *toActivity(ma))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", mapErr(err))
	}
	return activities, nil
}

func toActivity(ma mongoActivity) *domain.Activity {
	enrollments := make([]domain.Enrollment, len(ma.Enrollments))
	for i, e := range ma.Enrollments {
		enrollments[i] = domain.Enrollment{AccountID: e.AccountID, SignupTime: e.SignupTime}
	}
	return &domain.Activity{
		ID:          ma.ID.Hex(),
		Name:        ma.Name,
		Description: ma.Description,
		Capacity:    ma.Capacity,
		ScheduledAt: ma.ScheduledAt.UTC(),
		Enrollments: enrollments,
	}
}

package activity

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/theshantanusingh/maggie-point/models"
)

const defaultListLimit = 50

// collection is the slice of *mongo.Collection the recorder uses, narrowed
// so tests can stand in a failing sink.
type collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// Recorder appends audit entries. Appends are fire-and-forget: a failed
// write is logged and dropped, it must never fail the operation being
// audited.
type Recorder struct {
	col collection
}

func NewRecorder(client *mongo.Client, database string) *Recorder {
	return &Recorder{col: client.Database(database).Collection("activities")}
}

// Record appends one entry. user is nil for system actions.
func (r *Recorder) Record(ctx context.Context, user *primitive.ObjectID, action, details string, metadata bson.M, ip string) {
	entry := models.Activity{
		User:      user,
		Action:    action,
		Details:   details,
		Metadata:  metadata,
		IP:        ip,
		Timestamp: time.Now(),
	}

	if _, err := r.col.InsertOne(ctx, entry); err != nil {
		logrus.WithError(err).WithField("action", action).Error("Failed to record activity")
		return
	}

	actor := "System"
	if user != nil {
		actor = user.Hex()
	}
	logrus.Infof("[ACTIVITY] %s: %s (user: %s)", action, details, actor)
}

// List returns entries newest first, optionally filtered by action kind.
// A non-positive limit falls back to the default page size.
func (r *Recorder) List(ctx context.Context, action string, limit int64) ([]models.Activity, error) {
	filter := bson.M{}
	if action != "" {
		filter["action"] = action
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.Activity
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/theshantanusingh/maggie-point/models"
)

type fakeCollection struct {
	insertErr error
	findErr   error
	inserted  []interface{}
	findDocs  []interface{}

	lastFilter interface{}
	lastOpts   []*options.FindOptions
}

func (f *fakeCollection) InsertOne(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, document)
	return &mongo.InsertOneResult{InsertedID: primitive.NewObjectID()}, nil
}

func (f *fakeCollection) Find(_ context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.lastFilter = filter
	f.lastOpts = opts
	return mongo.NewCursorFromDocuments(f.findDocs, nil, nil)
}

func TestRecordInsertsEntry(t *testing.T) {
	col := &fakeCollection{}
	r := &Recorder{col: col}
	userID := primitive.NewObjectID()

	r.Record(context.Background(), &userID, models.ActionOrderPlaced,
		"Order abc placed", bson.M{"orderId": "abc"}, "10.0.0.1")

	require.Len(t, col.inserted, 1)
	entry, ok := col.inserted[0].(models.Activity)
	require.True(t, ok)
	assert.Equal(t, userID, *entry.User)
	assert.Equal(t, models.ActionOrderPlaced, entry.Action)
	assert.Equal(t, "Order abc placed", entry.Details)
	assert.Equal(t, "10.0.0.1", entry.IP)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestRecordNilUserIsSystemAction(t *testing.T) {
	col := &fakeCollection{}
	r := &Recorder{col: col}

	r.Record(context.Background(), nil, models.ActionLogin, "system login sweep", nil, "")

	require.Len(t, col.inserted, 1)
	entry := col.inserted[0].(models.Activity)
	assert.Nil(t, entry.User)
}

func TestRecordSwallowsInsertFailure(t *testing.T) {
	col := &fakeCollection{insertErr: errors.New("connection reset")}
	r := &Recorder{col: col}
	userID := primitive.NewObjectID()

	// Must not panic and must not surface the error to the caller.
	r.Record(context.Background(), &userID, models.ActionOrderPlaced, "Order placed", nil, "")

	assert.Empty(t, col.inserted)
}

func TestListFiltersByAction(t *testing.T) {
	col := &fakeCollection{
		findDocs: []interface{}{
			models.Activity{Action: models.ActionOrderPlaced, Details: "Order one"},
			models.Activity{Action: models.ActionOrderPlaced, Details: "Order two"},
		},
	}
	r := &Recorder{col: col}

	entries, err := r.List(context.Background(), models.ActionOrderPlaced, 20)

	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, bson.M{"action": models.ActionOrderPlaced}, col.lastFilter)
	require.Len(t, col.lastOpts, 1)
	assert.Equal(t, int64(20), *col.lastOpts[0].Limit)
}

func TestListEmptyActionReturnsAll(t *testing.T) {
	col := &fakeCollection{}
	r := &Recorder{col: col}

	_, err := r.List(context.Background(), "", 0)

	require.NoError(t, err)
	assert.Equal(t, bson.M{}, col.lastFilter)
	require.Len(t, col.lastOpts, 1)
	assert.Equal(t, int64(defaultListLimit), *col.lastOpts[0].Limit)
}

func TestListPropagatesFindError(t *testing.T) {
	col := &fakeCollection{findErr: errors.New("no reachable servers")}
	r := &Recorder{col: col}

	_, err := r.List(context.Background(), "", 0)

	assert.Error(t, err)
}

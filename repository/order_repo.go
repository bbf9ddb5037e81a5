package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/theshantanusingh/maggie-point/errs"
	"github.com/theshantanusingh/maggie-point/models"
)

// DatabaseName is the Mongo database all collections live in.
const DatabaseName = "maggiepoint"

// OrderRepository stores orders in MongoDB.
type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(client *mongo.Client) *OrderRepository {
	return &OrderRepository{collection: client.Database(DatabaseName).Collection("orders")}
}

func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("order")
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update replaces the order only if nobody else has written it since it was
// loaded. The version filter turns a concurrent admin race into a visible
// conflict instead of a silent last-write-wins.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	loadedVersion := order.Version
	order.Version = loadedVersion + 1

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": order.ID, "version": loadedVersion}, order)
	if err != nil {
		order.Version = loadedVersion
		return err
	}
	if result.MatchedCount == 0 {
		order.Version = loadedVersion
		return errs.Conflict("order was modified concurrently")
	}
	return nil
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *OrderRepository) FindAll(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter)
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order_placed_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// StatusCount is one row of the per-status order summary.
type StatusCount struct {
	Status  models.OrderStatus `bson:"_id" json:"status"`
	Count   int64              `bson:"count" json:"count"`
	Revenue float64            `bson:"total_revenue" json:"totalRevenue"`
}

// OrderStats is the admin dashboard summary: counts and revenue per status
// plus total revenue across payment-verified orders.
type OrderStats struct {
	ByStatus     []StatusCount `json:"stats"`
	TotalOrders  int64         `json:"totalOrders"`
	TotalRevenue float64       `json:"totalRevenue"`
}

func (r *OrderRepository) Stats(ctx context.Context) (*OrderStats, error) {
	groupByStatus := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_revenue", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, groupByStatus)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := &OrderStats{}
	if err := cursor.All(ctx, &stats.ByStatus); err != nil {
		return nil, err
	}

	stats.TotalOrders, err = r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	// Revenue counts only orders whose payment an admin has verified.
	verifiedRevenue := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "payment_details.payment_verified", Value: true},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
		}}},
	}
	revCursor, err := r.collection.Aggregate(ctx, verifiedRevenue)
	if err != nil {
		return nil, err
	}
	defer revCursor.Close(ctx)

	var totals []struct {
		Total float64 `bson:"total"`
	}
	if err := revCursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	if len(totals) > 0 {
		stats.TotalRevenue = totals[0].Total
	}
	return stats, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/theshantanusingh/maggie-point/errs"
	"github.com/theshantanusingh/maggie-point/models"
)

// InventoryRepository stores kitchen stock items.
type InventoryRepository struct {
	collection *mongo.Collection
}

func NewInventoryRepository(client *mongo.Client) *InventoryRepository {
	return &InventoryRepository{collection: client.Database(DatabaseName).Collection("inventory")}
}

func (r *InventoryRepository) Insert(ctx context.Context, item *models.InventoryItem) error {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	item.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("inventory item")
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindAll lists stock items alphabetically.
func (r *InventoryRepository) FindAll(ctx context.Context) ([]models.InventoryItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets the stock level and records who changed it.
func (r *InventoryRepository) UpdateQuantity(ctx context.Context, id primitive.ObjectID, quantity float64, updatedBy primitive.ObjectID) (*models.InventoryItem, error) {
	update := bson.M{"$set": bson.M{
		"quantity":        quantity,
		"last_updated_by": updatedBy,
		"updated_at":      time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, errs.NotFound("inventory item")
	}
	return r.FindByID(ctx, id)
}

func (r *InventoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("inventory item")
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

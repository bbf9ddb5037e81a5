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

// DishRepository stores the live dish catalog.
type DishRepository struct {
	collection *mongo.Collection
}

func NewDishRepository(client *mongo.Client) *DishRepository {
	return &DishRepository{collection: client.Database(DatabaseName).Collection("dishes")}
}

func (r *DishRepository) Insert(ctx context.Context, dish *models.Dish) error {
	dish.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, dish)
	if err != nil {
		return err
	}
	dish.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *DishRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Dish, error) {
	var dish models.Dish
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dish)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("dish")
	}
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

// FindAll lists the catalog grouped by category, newest first within each.
func (r *DishRepository) FindAll(ctx context.Context, onlyAvailable bool) ([]models.Dish, error) {
	filter := bson.M{}
	if onlyAvailable {
		filter["is_available"] = true
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "category", Value: 1},
		{Key: "created_at", Value: -1},
	})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var dishes []models.Dish
	if err := cursor.All(ctx, &dishes); err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *DishRepository) Update(ctx context.Context, id primitive.ObjectID, dish models.Dish) (*models.Dish, error) {
	update := bson.M{"$set": bson.M{
		"name":         dish.Name,
		"description":  dish.Description,
		"price":        dish.Price,
		"category":     dish.Category,
		"emoji":        dish.Emoji,
		"is_available": dish.IsAvailable,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, errs.NotFound("dish")
	}
	return r.FindByID(ctx, id)
}

func (r *DishRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Dish, error) {
	var dish models.Dish
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&dish)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("dish")
	}
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

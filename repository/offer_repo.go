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

// OfferRepository stores discount offers.
type OfferRepository struct {
	collection *mongo.Collection
}

func NewOfferRepository(client *mongo.Client) *OfferRepository {
	return &OfferRepository{collection: client.Database(DatabaseName).Collection("offers")}
}

func (r *OfferRepository) Insert(ctx context.Context, offer *models.Offer) error {
	offer.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, offer)
	if err != nil {
		return err
	}
	offer.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OfferRepository) FindAll(ctx context.Context) ([]models.Offer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// FindActive returns offers flagged active. Expiry is checked by the pricing
// resolver, not here, so an expired-but-active offer still shows up in admin
// listings.
func (r *OfferRepository) FindActive(ctx context.Context) ([]models.Offer, error) {
	return r.find(ctx, bson.M{"is_active": true}, options.Find())
}

func (r *OfferRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Offer, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offers []models.Offer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *OfferRepository) Update(ctx context.Context, id primitive.ObjectID, offer models.Offer) (*models.Offer, error) {
	update := bson.M{"$set": bson.M{
		"title":          offer.Title,
		"description":    offer.Description,
		"discount_type":  offer.DiscountType,
		"discount_value": offer.DiscountValue,
		"applicable_to":  offer.ApplicableTo,
		"target_id":      offer.TargetID,
		"is_active":      offer.IsActive,
		"valid_until":    offer.ValidUntil,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, errs.NotFound("offer")
	}

	var updated models.Offer
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *OfferRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	var offer models.Offer
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&offer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("offer")
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

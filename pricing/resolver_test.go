package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/theshantanusingh/maggie-point/models"
)

var testNow = time.Date(2026, 1, 15, 23, 30, 0, 0, time.UTC)

func testDish(price float64, category string) models.Dish {
	return models.Dish{
		ID:       primitive.NewObjectID(),
		Name:     "Masala Maggie",
		Price:    price,
		Category: category,
	}
}

func TestResolveNoOffers(t *testing.T) {
	dish := testDish(100, "noodles")

	got := Resolve(dish, nil, testNow)

	assert.Equal(t, 100.0, got.FinalPrice)
	assert.False(t, got.Discounted)
	assert.Empty(t, got.OfferTitle)
}

func TestResolveBestOfferWins(t *testing.T) {
	// 20% off 100 -> 80, flat 30 off -> 70. Best-for-customer wins.
	dish := testDish(100, "noodles")
	offers := []models.Offer{
		{Title: "Twenty Percent", DiscountType: models.DiscountPercentage, DiscountValue: 20, ApplicableTo: models.ApplicableAll, IsActive: true},
		{Title: "Thirty Flat", DiscountType: models.DiscountFlat, DiscountValue: 30, ApplicableTo: models.ApplicableAll, IsActive: true},
	}

	got := Resolve(dish, offers, testNow)

	assert.Equal(t, 70.0, got.FinalPrice)
	assert.True(t, got.Discounted)
	assert.Equal(t, "Thirty Flat", got.OfferTitle)
}

func TestResolveNoStacking(t *testing.T) {
	dish := testDish(100, "noodles")
	offers := []models.Offer{
		{Title: "A", DiscountType: models.DiscountFlat, DiscountValue: 10, ApplicableTo: models.ApplicableAll, IsActive: true},
		{Title: "B", DiscountType: models.DiscountFlat, DiscountValue: 10, ApplicableTo: models.ApplicableAll, IsActive: true},
	}

	got := Resolve(dish, offers, testNow)

	// Two flat-10 offers give 90, not 80.
	assert.Equal(t, 90.0, got.FinalPrice)
}

func TestResolveTieKeepsFirstOffer(t *testing.T) {
	dish := testDish(100, "noodles")
	offers := []models.Offer{
		{Title: "First", DiscountType: models.DiscountPercentage, DiscountValue: 10, ApplicableTo: models.ApplicableAll, IsActive: true},
		{Title: "Second", DiscountType: models.DiscountFlat, DiscountValue: 10, ApplicableTo: models.ApplicableAll, IsActive: true},
	}

	got := Resolve(dish, offers, testNow)

	assert.Equal(t, 90.0, got.FinalPrice)
	assert.Equal(t, "First", got.OfferTitle)
}

func TestResolveSkipsInactiveAndExpired(t *testing.T) {
	dish := testDish(100, "noodles")
	offers := []models.Offer{
		{Title: "Inactive", DiscountType: models.DiscountFlat, DiscountValue: 50, ApplicableTo: models.ApplicableAll, IsActive: false},
		{Title: "Expired", DiscountType: models.DiscountFlat, DiscountValue: 50, ApplicableTo: models.ApplicableAll, IsActive: true, ValidUntil: testNow.Add(-time.Hour)},
	}

	got := Resolve(dish, offers, testNow)

	assert.Equal(t, 100.0, got.FinalPrice)
	assert.False(t, got.Discounted)
}

func TestResolveOpenEndedValidityApplies(t *testing.T) {
	dish := testDish(100, "noodles")
	offers := []models.Offer{
		{Title: "Forever", DiscountType: models.DiscountFlat, DiscountValue: 20, ApplicableTo: models.ApplicableAll, IsActive: true},
	}

	got := Resolve(dish, offers, testNow)

	assert.Equal(t, 80.0, got.FinalPrice)
}

func TestResolveCategoryMatchIsCaseInsensitive(t *testing.T) {
	dish := testDish(100, "Noodles")
	offers := []models.Offer{
		{Title: "Noodle Night", DiscountType: models.DiscountPercentage, DiscountValue: 50, ApplicableTo: models.ApplicableCategory, TargetID: "noodles", IsActive: true},
	}

	got := Resolve(dish, offers, testNow)

	assert.Equal(t, 50.0, got.FinalPrice)
	assert.Equal(t, "Noodle Night", got.OfferTitle)
}

func TestResolveCategoryMismatchDoesNotApply(t *testing.T) {
	dish := testDish(100, "beverages")
	offers := []models.Offer{
		{Title: "Noodle Night", DiscountType: models.DiscountPercentage, DiscountValue: 50, ApplicableTo: models.ApplicableCategory, TargetID: "noodles", IsActive: true},
	}

	got := Resolve(dish, offers, testNow)

	assert.Equal(t, 100.0, got.FinalPrice)
	assert.False(t, got.Discounted)
}

func TestResolveDishTargetedOffer(t *testing.T) {
	dish := testDish(100, "noodles")
	other := testDish(100, "noodles")
	offers := []models.Offer{
		{Title: "Just This One", DiscountType: models.DiscountFlat, DiscountValue: 25, ApplicableTo: models.ApplicableDish, TargetID: dish.ID.Hex(), IsActive: true},
	}

	assert.Equal(t, 75.0, Resolve(dish, offers, testNow).FinalPrice)
	assert.Equal(t, 100.0, Resolve(other, offers, testNow).FinalPrice)
}

func TestResolveFlatDiscountNeverGoesNegative(t *testing.T) {
	dish := testDish(20, "noodles")
	offers := []models.Offer{
		{Title: "Huge", DiscountType: models.DiscountFlat, DiscountValue: 50, ApplicableTo: models.ApplicableAll, IsActive: true},
	}

	got := Resolve(dish, offers, testNow)

	assert.Equal(t, 0.0, got.FinalPrice)
}

func TestResolveRoundsToWholeUnit(t *testing.T) {
	dish := testDish(99, "noodles")
	offers := []models.Offer{
		{Title: "Quarter Off", DiscountType: models.DiscountPercentage, DiscountValue: 25, ApplicableTo: models.ApplicableAll, IsActive: true},
	}

	// 99 * 0.75 = 74.25
	got := Resolve(dish, offers, testNow)

	assert.Equal(t, 74.0, got.FinalPrice)
}

func TestResolveIsDeterministicAndNeverAboveCatalogPrice(t *testing.T) {
	dish := testDish(120, "noodles")
	offers := []models.Offer{
		{Title: "A", DiscountType: models.DiscountPercentage, DiscountValue: 15, ApplicableTo: models.ApplicableAll, IsActive: true},
		{Title: "B", DiscountType: models.DiscountFlat, DiscountValue: 5, ApplicableTo: models.ApplicableCategory, TargetID: "noodles", IsActive: true},
		{Title: "C", DiscountType: models.DiscountPercentage, DiscountValue: 80, ApplicableTo: models.ApplicableCategory, TargetID: "desserts", IsActive: true},
	}

	first := Resolve(dish, offers, testNow)
	for i := 0; i < 10; i++ {
		again := Resolve(dish, offers, testNow)
		assert.Equal(t, first, again)
	}
	assert.LessOrEqual(t, first.FinalPrice, dish.Price)
}

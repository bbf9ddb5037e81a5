package pricing

import (
	"math"
	"strings"
	"time"

	"github.com/theshantanusingh/maggie-point/models"
)

// Resolution is the outcome of applying the best offer to a dish.
type Resolution struct {
	FinalPrice float64 `json:"finalPrice"`
	Discounted bool    `json:"discounted"`
	OfferTitle string  `json:"offerTitle,omitempty"`
}

// Resolve picks the single best offer for a dish. Offers never stack: every
// applicable, active, non-expired offer produces a candidate price and the
// lowest candidate wins. When two offers land on the same price the one seen
// first keeps the title. The result is rounded to the nearest whole currency
// unit and is never above the catalog price.
func Resolve(dish models.Dish, offers []models.Offer, now time.Time) Resolution {
	best := dish.Price
	title := ""

	for _, offer := range offers {
		if !offer.IsActive {
			continue
		}
		if !offer.ValidUntil.IsZero() && offer.ValidUntil.Before(now) {
			continue
		}
		if !applies(offer, dish) {
			continue
		}

		candidate := dish.Price
		switch offer.DiscountType {
		case models.DiscountPercentage:
			candidate = dish.Price * (1 - offer.DiscountValue/100)
		case models.DiscountFlat:
			candidate = math.Max(0, dish.Price-offer.DiscountValue)
		}

		if candidate < best {
			best = candidate
			title = offer.Title
		}
	}

	return Resolution{
		FinalPrice: math.Round(best),
		Discounted: title != "",
		OfferTitle: title,
	}
}

func applies(offer models.Offer, dish models.Dish) bool {
	switch offer.ApplicableTo {
	case models.ApplicableAll:
		return true
	case models.ApplicableCategory:
		return strings.EqualFold(offer.TargetID, dish.Category)
	case models.ApplicableDish:
		return offer.TargetID == dish.ID.Hex()
	}
	return false
}

// Package pricing computes grab-n-go item prices and delivery fees. Upstream
// menu pages publish no prices, so item prices are assigned from a category
// tier heuristic; the same tiers drive the complexity surcharge of the
// delivery fee. Everything here is pure: no clock, no randomness, no state.
package pricing

import (
	"errors"
	"math"
	"strings"

	"github.com/domgielar/UDash/internal/domain"
)

const (
	BaseFee         = 2.50
	DistanceAddon   = 0.50 // per DistanceStep miles
	DistanceStep    = 0.25
	DefaultDistance = 0.5

	PriceFullMeal = 1.00
	PriceMedium   = 0.50
	PriceSmall    = 0.25
)

var ErrEmptyCart = errors.New("items array is required and cannot be empty")

var fullMealKeywords = []string{
	"entree", "grill", "pasta", "international", "bowl", "wrap", "sandwich",
	"sushi", "fajita", "chicken", "beef", "pork", "fish", "seafood",
}

var mediumKeywords = []string{
	"salad", "soup", "snack", "pastry", "dessert", "muffin", "cookie",
	"brownie", "cake",
}

var smallKeywords = []string{
	"beverage", "drink", "juice", "coffee", "tea", "milk", "water", "starch",
	"vegetable", "side", "sauce", "condiment", "fruit",
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// PriceForCategory maps a free-form category label to a unit price. The
// match is a case-insensitive substring check against three keyword tiers;
// unmatched categories fall into the medium tier.
func PriceForCategory(category string) float64 {
	if category == "" {
		return PriceFullMeal
	}

	c := strings.ToLower(category)

	switch {
	case matchesAny(c, fullMealKeywords):
		return PriceFullMeal
	case matchesAny(c, mediumKeywords):
		return PriceMedium
	case matchesAny(c, smallKeywords):
		return PriceSmall
	default:
		return PriceMedium
	}
}

// ComplexityWeight is the per-unit delivery surcharge for an item at the
// given price.
func ComplexityWeight(price float64) float64 {
	switch {
	case price < 2:
		return 0.00
	case price < 4:
		return 0.10
	default:
		return 0.25
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Subtotal sums the cart at per-line prices, defaulting missing prices from
// the category tier.
func Subtotal(lines []domain.CartLine) float64 {
	total := 0.0
	for _, line := range lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		price := line.Price
		if price == 0 {
			price = PriceForCategory(line.Category)
		}
		total += float64(qty) * price
	}
	return roundCents(total)
}

// Quote computes the delivery fee breakdown for a cart and a distance in
// miles. Lines without an explicit price are priced from their category
// tier. A non-positive distance falls back to DefaultDistance. The cart must
// not be empty.
func Quote(lines []domain.CartLine, distance float64) (domain.FeeBreakdown, error) {
	if len(lines) == 0 {
		return domain.FeeBreakdown{}, ErrEmptyCart
	}

	if distance <= 0 {
		distance = DefaultDistance
	}

	itemCount := 0
	weight := 0.0
	for _, line := range lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		itemCount += qty

		price := line.Price
		if price == 0 {
			price = PriceForCategory(line.Category)
		}
		weight += float64(qty) * ComplexityWeight(price)
	}
	weight = roundCents(weight)

	steps := math.Ceil(distance / DistanceStep)
	distanceAddOn := steps * DistanceAddon

	fee := roundCents(BaseFee + weight + distanceAddOn)

	return domain.FeeBreakdown{
		BaseFee:          BaseFee,
		ItemCount:        itemCount,
		ComplexityWeight: weight,
		Distance:         distance,
		ComplexityAddOn:  weight,
		DistanceAddOn:    distanceAddOn,
		DeliveryFee:      fee,
	}, nil
}

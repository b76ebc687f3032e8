package domain

// FeeBreakdown exposes every additive term of a delivery fee so the client
// can render an itemized receipt. Recomputing with identical inputs always
// yields an identical breakdown.
type FeeBreakdown struct {
	BaseFee          float64 `json:"baseFee"`
	ItemCount        int     `json:"itemCount"`
	ComplexityWeight float64 `json:"complexityWeight"`
	Distance         float64 `json:"distance"`
	ComplexityAddOn  float64 `json:"complexityAddOn"`
	DistanceAddOn    float64 `json:"distanceAddOn"`
	DeliveryFee      float64 `json:"deliveryFee"`
}

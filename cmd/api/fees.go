package main

import (
	"errors"
	"net/http"

	"github.com/domgielar/UDash/internal/domain"
	"github.com/domgielar/UDash/internal/pricing"
)

type FeeItemRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type CalculateDeliveryFeeRequest struct {
	Items        []FeeItemRequest `json:"items"`
	Distance     float64          `json:"distance"`
	FromLocation string           `json:"fromLocation"`
	ToLocation   string           `json:"toLocation"`
}

type DeliveryFeeResponse struct {
	BaseFee          float64              `json:"baseFee"`
	ItemCount        int                  `json:"itemCount"`
	ComplexityWeight float64              `json:"complexityWeight"`
	Distance         float64              `json:"distance"`
	DeliveryFee      float64              `json:"deliveryFee"`
	Breakdown        DeliveryFeeBreakdown `json:"breakdown"`
}

type DeliveryFeeBreakdown struct {
	BaseFee         float64 `json:"baseFee"`
	ComplexityAddOn float64 `json:"complexityAddOn"`
	DistanceAddOn   float64 `json:"distanceAddOn"`
}

func (app *application) calculateDeliveryFeeHandler(w http.ResponseWriter, r *http.Request) {
	var req CalculateDeliveryFeeRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if len(req.Items) == 0 {
		app.badRequestResponse(w, r, errors.New("items array is required and cannot be empty"))
		return
	}

	lines := make([]domain.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, domain.CartLine{
			Name:     item.Name,
			Category: item.Category,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	breakdown, err := pricing.Quote(lines, req.Distance)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	response := DeliveryFeeResponse{
		BaseFee:          breakdown.BaseFee,
		ItemCount:        breakdown.ItemCount,
		ComplexityWeight: breakdown.ComplexityWeight,
		Distance:         breakdown.Distance,
		DeliveryFee:      breakdown.DeliveryFee,
		Breakdown: DeliveryFeeBreakdown{
			BaseFee:         breakdown.BaseFee,
			ComplexityAddOn: breakdown.ComplexityAddOn,
			DistanceAddOn:   breakdown.DistanceAddOn,
		},
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

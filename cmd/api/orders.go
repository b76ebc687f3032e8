package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/domgielar/UDash/internal/domain"
	"github.com/domgielar/UDash/internal/repo"
	"github.com/domgielar/UDash/internal/service"
	"github.com/go-chi/chi"
)

var ErrMissingOrderID = errors.New("order_id is required")

type CartLineRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type PlaceOrderRequest struct {
	Items           []CartLineRequest `json:"items"`
	Subtotal        float64           `json:"subtotal"`
	DeliveryFee     float64           `json:"deliveryFee"`
	Tip             float64           `json:"tip"`
	Total           float64           `json:"total"`
	DeliveryAddress string            `json:"deliveryAddress"`
	DinerName       string            `json:"dinerName"`
	DinerEmail      string            `json:"dinerEmail"`
	FromLocation    string            `json:"fromLocation"`
}

type PlaceOrderResponse struct {
	Success bool          `json:"success"`
	Order   *domain.Order `json:"order"`
	Message string        `json:"message"`
}

// OrderSummary is the customer-facing lookup shape.
type OrderSummary struct {
	OrderID           string            `json:"orderId"`
	Status            string            `json:"status"`
	EstimatedDelivery string            `json:"estimatedDelivery"`
	Items             []domain.CartLine `json:"items"`
	Total             float64           `json:"total"`
	DinerName         string            `json:"dinerName"`
	DeliveryAddress   string            `json:"deliveryAddress"`
}

func (app *application) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items := make([]domain.CartLine, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, domain.CartLine{
			Name:     line.Name,
			Category: line.Category,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	order, err := app.orderService.PlaceOrder(r.Context(), service.PlaceOrderInput{
		Items:           items,
		Subtotal:        req.Subtotal,
		DeliveryFee:     req.DeliveryFee,
		Tip:             req.Tip,
		Total:           req.Total,
		DeliveryAddress: req.DeliveryAddress,
		DinerName:       req.DinerName,
		DinerEmail:      req.DinerEmail,
		FromLocation:    req.FromLocation,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrMissingFields):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	response := PlaceOrderResponse{
		Success: true,
		Order:   order,
		Message: "Order confirmed! Your order will be delivered in ~25 minutes.",
	}

	if err := app.jsonRespone(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrMissingOrderID)
		return
	}

	order, err := app.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	summary := OrderSummary{
		OrderID:           order.ID,
		Status:            string(order.Status),
		EstimatedDelivery: order.EstimatedDelivery.Format(time.RFC3339),
		Items:             order.Items,
		Total:             order.Total,
		DinerName:         order.DinerName,
		DeliveryAddress:   order.DeliveryAddress,
	}

	if err := app.jsonRespone(w, http.StatusOK, summary); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) cancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrMissingOrderID)
		return
	}

	order, err := app.orderService.Cancel(r.Context(), orderID)
	if err != nil {
		app.orderErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) availableOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := app.orderService.ListAvailable(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]any{
		"orders": orders,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

type AcceptOrderRequest struct {
	DasherID string `json:"dasherId" validate:"required"`
}

func (app *application) acceptOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrMissingOrderID)
		return
	}

	var req AcceptOrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderService.Accept(r.Context(), orderID, req.DasherID)
	if err != nil {
		app.orderErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateOrderStatusRequest struct {
	Status   string `json:"status" validate:"required"`
	DasherID string `json:"dasherId" validate:"required"`
}

func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		app.badRequestResponse(w, r, ErrMissingOrderID)
		return
	}

	var req UpdateOrderStatusRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	target := domain.OrderStatus(req.Status)
	if !target.Valid() {
		app.badRequestResponse(w, r, domain.ErrUnknownStatus)
		return
	}

	order, err := app.orderService.Advance(r.Context(), orderID, target, req.DasherID)
	if err != nil {
		app.orderErrorResponse(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

// orderErrorResponse maps order lifecycle errors onto the wire contract.
func (app *application) orderErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrOrderNotFound):
		app.notFoundError(w, r, err)
	case errors.Is(err, repo.ErrAlreadyAccepted),
		errors.Is(err, repo.ErrNotAssigned),
		errors.Is(err, domain.ErrInvalidTransition):
		app.conflictResponse(w, r, err)
	case errors.Is(err, domain.ErrUnknownStatus):
		app.badRequestResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/domgielar/UDash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func placeOrderRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		Items: []CartLineRequest{
			{Name: "Teriyaki Bowl", Category: "Bowl", Price: 6.00, Quantity: 1},
		},
		DeliveryFee:     4.50,
		Tip:             2.00,
		DeliveryAddress: "Orchard Hill",
		DinerName:       "Sam",
		DinerEmail:      "sam@example.edu",
		FromLocation:    "Worcester DC",
	}
}

func placeOrderViaAPI(t *testing.T, mux http.Handler) *domain.Order {
	t.Helper()

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/place-order", placeOrderRequest()), mux)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp PlaceOrderResponse
	decodeBody(t, rr, &resp)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Order)
	return resp.Order
}

func TestPlaceOrderEndpoint(t *testing.T) {
	app := newTestApplication(t, nil)
	mux := app.mount()

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/place-order", placeOrderRequest()), mux)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp PlaceOrderResponse
	decodeBody(t, rr, &resp)

	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.Order.ID, "ORDER-"))
	assert.Equal(t, domain.StatusPlaced, resp.Order.Status)
	assert.Equal(t, 12.50, resp.Order.Total) // 6.00 + 4.50 + 2.00
	assert.Contains(t, resp.Message, "~25 minutes")
}

func TestPlaceOrderRejectsEmptyCartEndpoint(t *testing.T) {
	app := newTestApplication(t, nil)
	mux := app.mount()

	req := placeOrderRequest()
	req.Items = nil

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/place-order", req), mux)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlaceOrderRejectsMissingDinerEndpoint(t *testing.T) {
	app := newTestApplication(t, nil)
	mux := app.mount()

	req := placeOrderRequest()
	req.DinerEmail = ""

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/place-order", req), mux)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetOrderEndpoint(t *testing.T) {
	app := newTestApplication(t, nil)
	mux := app.mount()

	order := placeOrderViaAPI(t, mux)

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/order/"+order.ID+"/", nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	var summary OrderSummary
	decodeBody(t, rr, &summary)
	assert.Equal(t, order.ID, summary.OrderID)
	assert.Equal(t, string(domain.StatusPlaced), summary.Status)
	assert.Equal(t, "Sam", summary.DinerName)
}

func TestGetOrderNotFoundEndpoint(t *testing.T) {
	app := newTestApplication(t, nil)
	mux := app.mount()

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/order/ORDER-missing/", nil), mux)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAcceptOrderEndpointIsExclusive(t *testing.T) {
	app := newTestApplication(t, nil)
	mux := app.mount()

	order := placeOrderViaAPI(t, mux)

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/orders/"+order.ID+"/accept",
		AcceptOrderRequest{DasherID: "dasher-1"}), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	var accepted domain.Order
	decodeBody(t, rr, &accepted)
	assert.Equal(t, domain.StatusAccepted, accepted.Status)
	assert.Equal(t, "dasher-1", accepted.DasherID)

	rr = executeRequest(jsonRequest(t, http.MethodPost, "/orders/"+order.ID+"/accept",
		AcceptOrderRequest{DasherID: "dasher-2"}), mux)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAcceptOrderEndpointRequiresDasherID(t *testing.T) {
	app := newTestApplication(t, nil)
	mux := app.mount()

	order := placeOrderViaAPI(t, mux)

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/orders/"+order.ID+"/accept",
		AcceptOrderRequest{}), mux)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	app := newTestApplication(t, nil)
	mux := app.mount()

	order := placeOrderViaAPI(t, mux)

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/orders/"+order.ID+"/accept",
		AcceptOrderRequest{DasherID: "dasher-1"}), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	// skipping a step is a conflict
	rr = executeRequest(jsonRequest(t, http.MethodPatch, "/orders/"+order.ID+"/status",
		UpdateOrderStatusRequest{Status: string(domain.StatusPickedUp), DasherID: "dasher-1"}), mux)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// an unknown status is a bad request
	rr = executeRequest(jsonRequest(t, http.MethodPatch, "/orders/"+order.ID+"/status",
		UpdateOrderStatusRequest{Status: "Teleported", DasherID: "dasher-1"}), mux)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// only the assigned dasher may advance
	rr = executeRequest(jsonRequest(t, http.MethodPatch, "/orders/"+order.ID+"/status",
		UpdateOrderStatusRequest{Status: string(domain.StatusAtHall), DasherID: "dasher-2"}), mux)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = executeRequest(jsonRequest(t, http.MethodPatch, "/orders/"+order.ID+"/status",
		UpdateOrderStatusRequest{Status: string(domain.StatusAtHall), DasherID: "dasher-1"}), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated domain.Order
	decodeBody(t, rr, &updated)
	assert.Equal(t, domain.StatusAtHall, updated.Status)
}

func TestCancelOrderEndpoint(t *testing.T) {
	app := newTestApplication(t, nil)
	mux := app.mount()

	order := placeOrderViaAPI(t, mux)

	rr := executeRequest(httptest.NewRequest(http.MethodPost, "/order/"+order.ID+"/cancel", nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	var cancelled domain.Order
	decodeBody(t, rr, &cancelled)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	// once accepted, cancellation is refused
	other := placeOrderViaAPI(t, mux)
	rr = executeRequest(jsonRequest(t, http.MethodPost, "/orders/"+other.ID+"/accept",
		AcceptOrderRequest{DasherID: "dasher-1"}), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = executeRequest(httptest.NewRequest(http.MethodPost, "/order/"+other.ID+"/cancel", nil), mux)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAvailableOrdersEndpoint(t *testing.T) {
	app := newTestApplication(t, nil)
	mux := app.mount()

	first := placeOrderViaAPI(t, mux)
	placeOrderViaAPI(t, mux)

	var listing struct {
		Orders []domain.Order `json:"orders"`
	}

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/orders/available", nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)
	decodeBody(t, rr, &listing)
	assert.Len(t, listing.Orders, 2)

	rr = executeRequest(jsonRequest(t, http.MethodPost, "/orders/"+first.ID+"/accept",
		AcceptOrderRequest{DasherID: "dasher-1"}), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = executeRequest(httptest.NewRequest(http.MethodGet, "/orders/available", nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)
	decodeBody(t, rr, &listing)
	assert.Len(t, listing.Orders, 1)
}

func TestDasherEarningsEndpoint(t *testing.T) {
	app := newTestApplication(t, nil)
	mux := app.mount()

	order := placeOrderViaAPI(t, mux)

	rr := executeRequest(jsonRequest(t, http.MethodPost, "/orders/"+order.ID+"/accept",
		AcceptOrderRequest{DasherID: "dasher-1"}), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	for _, status := range []domain.OrderStatus{
		domain.StatusAtHall, domain.StatusInLine, domain.StatusPickedUp, domain.StatusDelivered,
	} {
		rr = executeRequest(jsonRequest(t, http.MethodPatch, "/orders/"+order.ID+"/status",
			UpdateOrderStatusRequest{Status: string(status), DasherID: "dasher-1"}), mux)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr = executeRequest(httptest.NewRequest(http.MethodGet, "/dashers/dasher-1/earnings", nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp DasherEarningsResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "dasher-1", resp.DasherID)
	assert.Equal(t, 6.50, resp.Earnings) // delivery fee + tip
}

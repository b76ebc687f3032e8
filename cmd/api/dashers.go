package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
)

type DasherEarningsResponse struct {
	DasherID string  `json:"dasherId"`
	Earnings float64 `json:"earnings"`
}

func (app *application) dasherEarningsHandler(w http.ResponseWriter, r *http.Request) {
	dasherID := chi.URLParam(r, "dasher_id")
	if dasherID == "" {
		app.badRequestResponse(w, r, errors.New("dasher_id is required"))
		return
	}

	earnings, err := app.orderService.GetEarnings(r.Context(), dasherID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := DasherEarningsResponse{
		DasherID: dasherID,
		Earnings: earnings,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

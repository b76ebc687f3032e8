package main

import (
	"errors"
	"net/http"

	"github.com/domgielar/UDash/internal/service"
)

// getMenuHandler serves the aggregated grab-n-go menu snapshot. Any `date`
// query parameter is accepted but ignored: upstream has no date-addressable
// API, so the snapshot always reflects the current menu.
func (app *application) getMenuHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, _, err := app.menuService.BuildSnapshot(r.Context())
	if err != nil {
		var upstreamErr *service.UpstreamFailureError
		if errors.As(err, &upstreamErr) {
			app.badGatewayResponse(w, r, upstreamErr.Details)
			return
		}

		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, snapshot); err != nil {
		app.internalServerError(w, r, err)
	}
}

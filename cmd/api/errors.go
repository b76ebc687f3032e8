package main

import (
	"net/http"

	"github.com/domgielar/UDash/internal/domain"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	_ = writeJsonError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	_ = writeJsonError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	_ = writeJsonError(w, http.StatusNotFound, err.Error())
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("conflict", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	_ = writeJsonError(w, http.StatusConflict, err.Error())
}

// badGatewayResponse reports total upstream failure with the per-location
// details so the client can tell "menu source down" apart from "no menu".
func (app *application) badGatewayResponse(w http.ResponseWriter, r *http.Request, details []domain.UpstreamError) {
	app.logger.Errorw("upstream failure", "method", r.Method, "path", r.URL.Path, "failures", len(details))

	type envelope struct {
		Error   string                 `json:"error"`
		Details []domain.UpstreamError `json:"details"`
	}

	_ = writeJson(w, http.StatusBadGateway, &envelope{
		Error:   "Upstream error fetching menus",
		Details: details,
	})
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	_ = writeJsonError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

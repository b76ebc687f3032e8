package main

import "net/http"

type HealthResponse struct {
	Status  string `json:"status"`
	Env     string `json:"env,omitempty"`
	Version string `json:"version,omitempty"`
}

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:  "ok",
		Env:     app.config.env,
		Version: version,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

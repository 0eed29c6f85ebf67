package main

import (
	"encoding/json"
	"net/http"

	"wayfinder.transitapp.org/internal/models"
)

type errorResponse struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func (api *restAPI) sendErrorResponse(w http.ResponseWriter, status int, text string) {
	response := errorResponse{
		Code:        status,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     1,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.app.Logger.Error("failed to encode error response", "error", err)
	}
}

// invalidAPIKeyResponse sends a 401 Unauthorized response with the required
// format for invalid API key errors.
func (api *restAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.sendErrorResponse(w, http.StatusUnauthorized, "permission denied")
}

func (api *restAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.app.Logger.Error("internal server error", "error", err, "path", r.URL.Path)
	api.sendErrorResponse(w, http.StatusInternalServerError, "internal server error")
}

// validationErrorResponse sends a 400 Bad Request naming the offending
// parameter.
func (api *restAPI) validationErrorResponse(w http.ResponseWriter, text string) {
	api.sendErrorResponse(w, http.StatusBadRequest, text)
}

package main

import (
	"encoding/json"
	"net/http"

	"wayfinder.transitapp.org/internal/models"
)

func (api *restAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.serverErrorResponse(w, r, err)
	}
}

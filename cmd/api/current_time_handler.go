package main

import (
	"net/http"
	"time"

	"wayfinder.transitapp.org/internal/models"
)

// currentTimeHandler writes a JSON response with information about the
// current time.
func (api *restAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	timeData := models.NewCurrentTimeData(time.Now())
	response := models.NewEntryResponse(timeData)

	api.sendResponse(w, r, response)
}

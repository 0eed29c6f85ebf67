package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// EntryData wraps a single entry payload in the standard envelope shape.
type EntryData struct {
	Entry interface{} `json:"entry"`
}

// ResponseCurrentTime returns the current time in epoch milliseconds, as used
// in every response envelope.
func ResponseCurrentTime() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// NewOKResponse creates a successful response envelope around the given data.
func NewOKResponse(data interface{}) ResponseModel {
	return ResponseModel{
		Code:        http.StatusOK,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        "OK",
		Version:     2,
	}
}

// NewEntryResponse creates a successful response whose data holds one entry.
func NewEntryResponse(entry interface{}) ResponseModel {
	return NewOKResponse(EntryData{Entry: entry})
}

// CurrentTimeModel Current time specific model
type CurrentTimeModel struct {
	ReadableTime string `json:"readableTime"`
	Time         int64  `json:"time"`
}

// NewCurrentTimeData creates a CurrentTimeModel based on a provided Time
func NewCurrentTimeData(t time.Time) CurrentTimeModel {
	return CurrentTimeModel{
		ReadableTime: t.Format(time.RFC3339),
		Time:         t.UnixNano() / int64(time.Millisecond),
	}
}

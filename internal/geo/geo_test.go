package geo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
		tolerance              float64
	}{
		{
			name:      "Identical points",
			lat1:      47.6097,
			lon1:      -122.3331,
			lat2:      47.6097,
			lon2:      -122.3331,
			expected:  0.0,
			tolerance: 0.001,
		},
		{
			name:      "One degree of latitude",
			lat1:      47.0,
			lon1:      -122.0,
			lat2:      48.0,
			lon2:      -122.0,
			expected:  111195.0,
			tolerance: 100.0,
		},
		{
			name:      "Seattle to Bellevue",
			lat1:      47.6097,
			lon1:      -122.3331,
			lat2:      47.6101,
			lon2:      -122.2015,
			expected:  9880.0,
			tolerance: 100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DistanceMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, d, tt.tolerance)
		})
	}
}

func TestDistanceMetersIsSymmetric(t *testing.T) {
	d1 := DistanceMeters(47.6097, -122.3331, 47.6154, -122.3208)
	d2 := DistanceMeters(47.6154, -122.3208, 47.6097, -122.3331)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestWalkingMinutes(t *testing.T) {
	tests := []struct {
		meters   float64
		expected int
	}{
		{0, 0},
		{-10, 0},
		{1, 1},
		{51, 1},
		{83.33, 1},
		{83.34, 2},
		{250, 4},
		{500, 7},
		{1000, 13},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.2f meters", tt.meters), func(t *testing.T) {
			assert.Equal(t, tt.expected, WalkingMinutes(tt.meters))
		})
	}
}

func TestCompassDirection(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               string
	}{
		{"due north", 40.0, -122.0, 41.0, -122.0, "N"},
		{"due east", 40.0, -122.0, 40.0, -121.0, "E"},
		{"due south", 41.0, -122.0, 40.0, -122.0, "S"},
		{"due west", 40.0, -121.0, 40.0, -122.0, "W"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompassDirection(tt.lat1, tt.lon1, tt.lat2, tt.lon2))
		})
	}
}

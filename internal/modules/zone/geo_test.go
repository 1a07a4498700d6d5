package zone

import (
	"math"
	"testing"

	"strada/internal/types"
)

func TestApproxDistanceKm(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Point{Lat: 25.033, Lng: 121.565},
			b:         types.Point{Lat: 25.033, Lng: 121.565},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "one degree of latitude",
			a:         types.Point{Lat: 0, Lng: 0},
			b:         types.Point{Lat: 1, Lng: 0},
			wantKm:    111,
			tolerance: 0.001,
		},
		{
			name:      "one cell diagonal (~4.2km)",
			a:         types.Point{Lat: 0, Lng: 0},
			b:         types.Point{Lat: 0.027, Lng: 0.027},
			wantKm:    4.24,
			tolerance: 0.05,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := approxDistanceKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("approxDistanceKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

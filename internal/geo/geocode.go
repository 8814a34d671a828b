package geo

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Coordinates is a latitude/longitude pair as produced by geocoding.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder turns a free-text address into coordinates. Save paths treat the
// result as authoritative and persist it verbatim.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
}

// MockGeocoder stands in for a real provider: it answers with a random
// offset around a fixed base point after a simulated network delay.
type MockGeocoder struct {
	BaseLat float64
	BaseLng float64
	Delay   time.Duration
}

// NewMockGeocoder returns a geocoder centered on Duque de Caxias, RJ.
func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{BaseLat: -22.7859, BaseLng: -43.3117, Delay: 500 * time.Millisecond}
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (Coordinates, error) {
	logrus.WithField("address", address).Debug("geocoding (mocked)")
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return Coordinates{}, ctx.Err()
		}
	}
	return Coordinates{
		Latitude:  m.BaseLat + (rand.Float64()-0.5)*0.1,
		Longitude: m.BaseLng + (rand.Float64()-0.5)*0.1,
	}, nil
}

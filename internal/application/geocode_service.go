package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/civic-reports/pkg/geo"
)

type GeocodeService struct {
	Geocoder geo.ReverseGeocoder // optional
	Timeout  time.Duration
	Logger   *logrus.Logger
}

func NewGeocodeService(g geo.ReverseGeocoder, timeout time.Duration, logger *logrus.Logger) *GeocodeService {
	return &GeocodeService{Geocoder: g, Timeout: timeout, Logger: logger}
}

// ReverseLookup describes a position for the report location field.
// Resolved is false when the coordinates are used verbatim.
type ReverseLookup struct {
	Location string `json:"location"`
	Resolved bool   `json:"resolved"`
}

// Reverse never fails: any lookup problem falls back to "lat, lng".
func (s *GeocodeService) Reverse(ctx context.Context, lat, lng float64) ReverseLookup {
	fallback := ReverseLookup{Location: geo.Coordinates(lat, lng)}
	if s.Geocoder == nil {
		return fallback
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	addr, err := s.Geocoder.Reverse(ctx, lat, lng)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"lat": lat, "lng": lng}).Warn("reverse geocoding failed")
		}
		return fallback
	}
	loc := geo.Format(addr)
	if loc == "" {
		return fallback
	}
	return ReverseLookup{Location: loc, Resolved: true}
}

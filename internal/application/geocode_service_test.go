package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/civic-reports/pkg/geo"
)

type stubGeocoder struct {
	addr geo.Address
	err  error
}

func (s stubGeocoder) Reverse(context.Context, float64, float64) (geo.Address, error) {
	return s.addr, s.err
}

func TestReverse(t *testing.T) {
	tests := []struct {
		name     string
		geocoder geo.ReverseGeocoder
		want     ReverseLookup
	}{
		{
			name:     "resolved",
			geocoder: stubGeocoder{addr: geo.Address{Road: "Main St", City: "Springfield", State: "IL"}},
			want:     ReverseLookup{Location: "Main St, Springfield, IL", Resolved: true},
		},
		{
			name:     "lookup error",
			geocoder: stubGeocoder{err: errors.New("timeout")},
			want:     ReverseLookup{Location: "39.781700, -89.650100"},
		},
		{
			name:     "empty address",
			geocoder: stubGeocoder{},
			want:     ReverseLookup{Location: "39.781700, -89.650100"},
		},
		{
			name: "not configured",
			want: ReverseLookup{Location: "39.781700, -89.650100"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGeocodeService(tt.geocoder, 0, nil)
			assert.Equal(t, tt.want, svc.Reverse(context.Background(), 39.7817, -89.6501))
		})
	}
}

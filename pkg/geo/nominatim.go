package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Address is the subset of a reverse-geocoding result used for display.
type Address struct {
	Road   string
	Suburb string
	City   string
	State  string
}

// ReverseGeocoder resolves coordinates to a postal address.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (Address, error)
}

// Format joins the non-empty parts of a as "road, suburb, city, state".
func Format(a Address) string {
	var parts []string
	for _, p := range []string{a.Road, a.Suburb, a.City, a.State} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Coordinates renders a position the way it is stored when no address is known.
func Coordinates(lat, lng float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lng)
}

// NominatimClient implements ReverseGeocoder against an OpenStreetMap
// Nominatim server.
type NominatimClient struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

func NewNominatimClient(baseURL, userAgent string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: timeout},
	}
}

func (n *NominatimClient) Reverse(ctx context.Context, lat, lng float64) (Address, error) {
	hc := n.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.BaseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Address{}, err
	}
	if n.UserAgent != "" {
		req.Header.Set("User-Agent", n.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return Address{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Error   string `json:"error"`
		Address struct {
			Road    string `json:"road"`
			Suburb  string `json:"suburb"`
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			State   string `json:"state"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Address{}, err
	}
	if body.Error != "" {
		return Address{}, fmt.Errorf("nominatim: %s", body.Error)
	}
	city := body.Address.City
	if city == "" {
		city = body.Address.Town
	}
	if city == "" {
		city = body.Address.Village
	}
	return Address{
		Road:   body.Address.Road,
		Suburb: body.Address.Suburb,
		City:   city,
		State:  body.Address.State,
	}, nil
}

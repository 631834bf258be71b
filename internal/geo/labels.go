package geo

import (
	"context"
	"fmt"
	"log"

	"github.com/kelvins/geocoder"

	"github.com/avilik92/weather-dashboard/internal/weather"
)

// Labeler reverse-geocodes coordinates into a human location label, used only
// when the weather provider did not resolve a city name itself. It is
// optional: without an API key every lookup reports no label and callers fall
// back to the literal coordinate form.
type Labeler struct {
	enabled bool
}

// New creates a Labeler. An empty apiKey disables lookups.
func New(apiKey string) *Labeler {
	// The geocoder package keys requests off a package-level credential.
	geocoder.ApiKey = apiKey
	return &Labeler{enabled: apiKey != ""}
}

// Label implements weather.LabelResolver.
func (g *Labeler) Label(_ context.Context, loc weather.Location) (string, bool) {
	if !g.enabled {
		return "", false
	}

	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  loc.Lat,
		Longitude: loc.Lon,
	})
	if err != nil {
		log.Printf("geo: reverse geocoding failed for %s: %v", loc.Label(), err)
		return "", false
	}

	for _, a := range addresses {
		if a.City != "" && a.Country != "" {
			return fmt.Sprintf("%s, %s", a.City, a.Country), true
		}
	}
	return "", false
}

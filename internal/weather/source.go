package weather

import (
	"context"
	"errors"
)

// Query addresses a fetch cycle either by coordinates or by a free-text city
// query. Exactly one addressing mode is used; both produce identically shaped
// results.
type Query struct {
	Coords *Location
	City   string
}

// Validate checks that exactly one addressing mode is set.
func (q Query) Validate() error {
	if q.Coords == nil && q.City == "" {
		return errors.New("query needs coordinates or a city name")
	}
	if q.Coords != nil && q.City != "" {
		return errors.New("query must use either coordinates or a city name, not both")
	}
	return nil
}

// RawCurrent is the provider's current-weather sample after decoding but
// before enrichment. Timestamps are epoch seconds as delivered upstream.
type RawCurrent struct {
	Dt         int64
	Conditions []Condition
	Temps      InstantTemps
	Wind       Wind
	Coords     Location
	Country    string
	CityName   string
}

// RawHourly is one decoded hourly forecast entry.
type RawHourly struct {
	Dt         int64
	Conditions []Condition
	Temps      InstantTemps
	Wind       Wind
}

// RawDaily is one decoded daily forecast entry.
type RawDaily struct {
	Dt         int64
	Conditions []Condition
	Temps      DaypartTemps
	Wind       Wind
}

// Source abstracts the upstream weather provider's three endpoints.
type Source interface {
	Current(ctx context.Context, q Query, units UnitSystem) (RawCurrent, error)
	Hourly(ctx context.Context, q Query, count int, units UnitSystem) ([]RawHourly, error)
	Daily(ctx context.Context, q Query, count int, units UnitSystem) ([]RawDaily, error)
}

// LabelResolver optionally turns coordinates into a human location label when
// the provider did not resolve one.
type LabelResolver interface {
	Label(ctx context.Context, loc Location) (string, bool)
}

// ImageWarmer pre-fetches image URLs best-effort. Implementations must return
// immediately and must never surface failures.
type ImageWarmer interface {
	Warm(urls []string)
}

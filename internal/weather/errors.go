package weather

import "errors"

var (
	// ErrUpstreamFetch is returned when any of the three upstream requests
	// fails; no partial snapshot is ever surfaced.
	ErrUpstreamFetch = errors.New("upstream weather fetch failed")

	// ErrPartialData is returned when a request succeeds but carries fewer
	// forecast entries than requested. Consumers index positionally up to the
	// requested count, so short lists are a hard failure, not a truncation.
	ErrPartialData = errors.New("upstream returned fewer entries than requested")

	// ErrInvalidUnitSystem is returned when a value outside
	// {metric, imperial, standard} reaches the converter or a parse boundary.
	ErrInvalidUnitSystem = errors.New("invalid unit system")

	// ErrInvalidConversion is returned when a conversion between two unit
	// systems has no rule.
	ErrInvalidConversion = errors.New("invalid temperature conversion")

	// ErrNoCachedData is returned when the dashboard is offline and no
	// snapshot was ever stored.
	ErrNoCachedData = errors.New("no cached weather data available")
)

package weather

import (
	"fmt"
	"time"
)

// UnitSystem selects the scale for temperature and wind-speed values.
// The set is closed; any other value is rejected at the boundary.
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"   // Celsius, m/s
	UnitsImperial UnitSystem = "imperial" // Fahrenheit, mph
	UnitsStandard UnitSystem = "standard" // Kelvin, m/s
)

// ParseUnitSystem validates a raw string against the closed unit-system set.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(s) {
	case UnitsMetric, UnitsImperial, UnitsStandard:
		return UnitSystem(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUnitSystem, s)
}

// Valid reports whether u is one of the three supported systems.
func (u UnitSystem) Valid() bool {
	switch u {
	case UnitsMetric, UnitsImperial, UnitsStandard:
		return true
	}
	return false
}

// Location is a pair of geographic coordinates. It is captured once per
// fetch cycle and not mutated afterwards.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Label returns the literal coordinate label used when the provider did not
// resolve a city name.
func (l Location) Label() string {
	return fmt.Sprintf("%.2f, %.2f", l.Lat, l.Lon)
}

// Condition is one entry of a provider weather[] array.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Wind holds wind figures in the snapshot's unit system.
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
	Gust  float64 `json:"gust,omitempty"`
}

// InstantTemps are the temperature fields carried by instantaneous samples
// (current weather and hourly forecast entries).
type InstantTemps struct {
	Temp    float64 `json:"temp"`
	TempMin float64 `json:"tempMin"`
	TempMax float64 `json:"tempMax"`
}

// DaypartTemps are the temperature fields carried by daily forecast entries.
type DaypartTemps struct {
	Day   float64 `json:"day"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

// CurrentPeriod is the normalized current-weather sample.
// RawTimestamp always keeps the provider's original epoch seconds;
// FormattedTime is derived from it and may be recomputed at any time.
type CurrentPeriod struct {
	FormattedTime string       `json:"formattedTime"`
	RawTimestamp  int64        `json:"rawTimestamp"`
	Conditions    []Condition  `json:"weather"`
	Temps         InstantTemps `json:"main"`
	Wind          Wind         `json:"wind"`
	IconPath      string       `json:"iconPath"`
	LocationLabel string       `json:"locationLabel"`
}

// HourlyPeriod is one normalized hourly forecast sample.
type HourlyPeriod struct {
	FormattedTime string       `json:"formattedTime"`
	RawTimestamp  int64        `json:"rawTimestamp"`
	Conditions    []Condition  `json:"weather"`
	Temps         InstantTemps `json:"main"`
	Wind          Wind         `json:"wind"`
	IconPath      string       `json:"iconPath"`
}

// DailyPeriod is one normalized daily forecast sample. Its formatted label is
// a day-of-week date rather than a clock string.
type DailyPeriod struct {
	FormattedTime string       `json:"formattedTime"`
	RawTimestamp  int64        `json:"rawTimestamp"`
	Conditions    []Condition  `json:"weather"`
	Temps         DaypartTemps `json:"temp"`
	Wind          Wind         `json:"wind"`
	IconPath      string       `json:"iconPath"`
}

// Snapshot is the aggregate root: one complete, self-consistent weather view
// for a location. Units always reflects the scale every numeric temperature
// field is currently expressed in; it is consulted before any conversion.
// Holders that mutate a snapshot in place must hand out copies (Clone), never
// the live pointer, so readers cannot observe a half-converted view.
type Snapshot struct {
	ID          string         `json:"id"`
	Coordinates Location       `json:"coordinates"`
	FlagURL     string         `json:"flagIconUrl"`
	Units       UnitSystem     `json:"unitSystem"`
	Current     CurrentPeriod  `json:"current"`
	Hourly      []HourlyPeriod `json:"hourly"`
	Daily       []DailyPeriod  `json:"daily"`
	FetchedAt   time.Time      `json:"fetchedAt"` // always UTC
}

// Clone returns a deep copy of the snapshot. Every slice, including the
// Conditions list of each period, is copied so mutating either side leaves
// the other untouched.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Current.Conditions = append([]Condition(nil), s.Current.Conditions...)
	out.Hourly = append([]HourlyPeriod(nil), s.Hourly...)
	for i := range out.Hourly {
		out.Hourly[i].Conditions = append([]Condition(nil), s.Hourly[i].Conditions...)
	}
	out.Daily = append([]DailyPeriod(nil), s.Daily...)
	for i := range out.Daily {
		out.Daily[i].Conditions = append([]Condition(nil), s.Daily[i].Conditions...)
	}
	return &out
}

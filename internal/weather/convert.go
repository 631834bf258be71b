package weather

import (
	"fmt"
	"math"
)

// round2 rounds to two decimal places, half away from zero, matching
// fixed-point display formatting without turning values into strings.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Convert converts a temperature value between two unit systems and rounds
// the result to two decimal places. A same-to-same conversion is an explicit
// identity (the value is returned unrounded and untouched).
func Convert(from, to UnitSystem, value float64) (float64, error) {
	if !from.Valid() {
		return 0, fmt.Errorf("%w: from %q", ErrInvalidUnitSystem, from)
	}
	if !to.Valid() {
		return 0, fmt.Errorf("%w: to %q", ErrInvalidUnitSystem, to)
	}
	if from == to {
		return value, nil
	}

	switch {
	case from == UnitsMetric && to == UnitsImperial:
		return round2(value*9/5 + 32), nil
	case from == UnitsMetric && to == UnitsStandard:
		return round2(value + 273.15), nil
	case from == UnitsImperial && to == UnitsMetric:
		return round2((value - 32) * 5 / 9), nil
	case from == UnitsImperial && to == UnitsStandard:
		return round2((value-32)*5/9 + 273.15), nil
	case from == UnitsStandard && to == UnitsMetric:
		return round2(value - 273.15), nil
	case from == UnitsStandard && to == UnitsImperial:
		return round2((value-273.15)*9/5 + 32), nil
	}

	return 0, fmt.Errorf("%w: %s to %s", ErrInvalidConversion, from, to)
}

// ConvertSnapshot re-derives every temperature-bearing field of the snapshot
// in place, using snap.Units as the source scale, then records the new scale
// in snap.Units. Applying it twice with the same target leaves all values
// unchanged after the first application.
func ConvertSnapshot(snap *Snapshot, to UnitSystem) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidConversion)
	}
	from := snap.Units
	if !from.Valid() {
		return fmt.Errorf("%w: snapshot units %q", ErrInvalidUnitSystem, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: target %q", ErrInvalidUnitSystem, to)
	}
	if from == to {
		return nil
	}

	if err := convertInstant(&snap.Current.Temps, from, to); err != nil {
		return err
	}
	for i := range snap.Hourly {
		if err := convertInstant(&snap.Hourly[i].Temps, from, to); err != nil {
			return err
		}
	}
	for i := range snap.Daily {
		if err := convertDaypart(&snap.Daily[i].Temps, from, to); err != nil {
			return err
		}
	}

	snap.Units = to
	return nil
}

func convertInstant(t *InstantTemps, from, to UnitSystem) error {
	var err error
	if t.Temp, err = Convert(from, to, t.Temp); err != nil {
		return err
	}
	if t.TempMin, err = Convert(from, to, t.TempMin); err != nil {
		return err
	}
	if t.TempMax, err = Convert(from, to, t.TempMax); err != nil {
		return err
	}
	return nil
}

func convertDaypart(t *DaypartTemps, from, to UnitSystem) error {
	fields := []*float64{&t.Day, &t.Min, &t.Max, &t.Night, &t.Eve, &t.Morn}
	for _, f := range fields {
		v, err := Convert(from, to, *f)
		if err != nil {
			return err
		}
		*f = v
	}
	return nil
}

package weather

import (
	"fmt"
	"time"
	// Embed the tz database so zone lookups do not depend on the host.
	_ "time/tzdata"

	"github.com/zsefvlol/timezonemapper"
)

// FormatTime renders a clock string for an epoch-millisecond instant in the
// timezone of the given coordinates, honoring the 12/24-hour flag. The
// timestamp itself is never mutated; callers keep the raw epoch value.
func FormatTime(tsMillis int64, hour12 bool, loc Location) (string, error) {
	zoneName := timezonemapper.LatLngToTimezoneString(loc.Lat, loc.Lon)
	zone, err := time.LoadLocation(zoneName)
	if err != nil {
		return "", fmt.Errorf("load timezone %q: %w", zoneName, err)
	}

	t := time.UnixMilli(tsMillis).In(zone)
	if hour12 {
		return t.Format("3:04 PM"), nil
	}
	return t.Format("15:04"), nil
}

// FormatDate renders a day-of-week date label for an epoch-millisecond
// instant in the system zone. Unlike FormatTime there is no timezone lookup:
// only intraday clock strings need the remote location's zone, a multi-day
// date label does not.
func FormatDate(tsMillis int64) string {
	return time.UnixMilli(tsMillis).Format("Monday, 1/2/2006")
}

// ReformatSnapshotTimes recomputes every derived FormattedTime in the
// snapshot from its RawTimestamp, for the given clock format. Raw timestamps
// and daily date labels are left alone.
func ReformatSnapshotTimes(snap *Snapshot, hour12 bool) error {
	s, err := FormatTime(snap.Current.RawTimestamp*1000, hour12, snap.Coordinates)
	if err != nil {
		return err
	}
	snap.Current.FormattedTime = s

	for i := range snap.Hourly {
		s, err := FormatTime(snap.Hourly[i].RawTimestamp*1000, hour12, snap.Coordinates)
		if err != nil {
			return err
		}
		snap.Hourly[i].FormattedTime = s
	}
	return nil
}

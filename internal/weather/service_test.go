package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	current    RawCurrent
	currentErr error
	hourly     []RawHourly
	hourlyErr  error
	daily      []RawDaily
	dailyErr   error
}

func (f *fakeSource) Current(context.Context, Query, UnitSystem) (RawCurrent, error) {
	return f.current, f.currentErr
}

func (f *fakeSource) Hourly(context.Context, Query, int, UnitSystem) ([]RawHourly, error) {
	return f.hourly, f.hourlyErr
}

func (f *fakeSource) Daily(context.Context, Query, int, UnitSystem) ([]RawDaily, error) {
	return f.daily, f.dailyErr
}

type recordingWarmer struct {
	urls []string
}

func (r *recordingWarmer) Warm(urls []string) {
	r.urls = append(r.urls, urls...)
}

func manilaSource(count int) *fakeSource {
	cond := []Condition{{ID: 500, Main: "Rain", Description: "light rain", Icon: "10d"}}

	src := &fakeSource{
		current: RawCurrent{
			Dt:         1700000000,
			Conditions: cond,
			Temps:      InstantTemps{Temp: 30, TempMin: 27, TempMax: 33},
			Wind:       Wind{Speed: 4.2, Deg: 120},
			Coords:     Location{Lat: 14.5995, Lon: 120.9842},
			Country:    "PH",
			CityName:   "Manila",
		},
	}
	for i := 0; i < count; i++ {
		src.hourly = append(src.hourly, RawHourly{
			Dt:         1700000000 + int64(i)*3600,
			Conditions: cond,
			Temps:      InstantTemps{Temp: 29, TempMin: 26, TempMax: 32},
		})
		src.daily = append(src.daily, RawDaily{
			Dt:         1700000000 + int64(i)*86400,
			Conditions: cond,
			Temps:      DaypartTemps{Day: 31, Min: 25, Max: 33, Night: 26, Eve: 30, Morn: 27},
		})
	}
	return src
}

func newTestService(src Source, warmer ImageWarmer) *Service {
	return NewService(src, nil, warmer, ServiceConfig{DefaultCount: 6})
}

func TestBuildSnapshotCardinalitiesAndUnits(t *testing.T) {
	svc := newTestService(manilaSource(5), nil)

	snap, err := svc.BuildSnapshot(context.Background(), Query{City: "Manila, PH"}, 5, UnitsMetric, true)
	require.NoError(t, err)

	assert.Len(t, snap.Hourly, 5)
	assert.Len(t, snap.Daily, 5)
	assert.Equal(t, UnitsMetric, snap.Units)
	assert.NotEmpty(t, snap.ID)

	assert.Equal(t, "Manila, PH", snap.Current.LocationLabel)
	assert.Equal(t, "https://flagsapi.com/PH/flat/64.png", snap.FlagURL)
	assert.Equal(t, "assets/icon/weather-icons/10d.png", snap.Current.IconPath)
	assert.NotEmpty(t, snap.Current.Conditions[0].Description)
	assert.NotEmpty(t, snap.Current.FormattedTime)

	for i, h := range snap.Hourly {
		assert.NotEmpty(t, h.FormattedTime, "hourly %d", i)
		assert.NotEmpty(t, h.IconPath, "hourly %d", i)
	}
	for i, d := range snap.Daily {
		assert.NotEmpty(t, d.FormattedTime, "daily %d", i)
	}
}

func TestBuildSnapshotOrdering(t *testing.T) {
	src := manilaSource(4)
	// Scramble the upstream order; consumers rely on non-decreasing time.
	src.hourly[0], src.hourly[3] = src.hourly[3], src.hourly[0]
	src.daily[1], src.daily[2] = src.daily[2], src.daily[1]

	svc := newTestService(src, nil)
	snap, err := svc.BuildSnapshot(context.Background(), Query{City: "Manila, PH"}, 4, UnitsMetric, true)
	require.NoError(t, err)

	for i := 1; i < len(snap.Hourly); i++ {
		assert.LessOrEqual(t, snap.Hourly[i-1].RawTimestamp, snap.Hourly[i].RawTimestamp)
	}
	for i := 1; i < len(snap.Daily); i++ {
		assert.LessOrEqual(t, snap.Daily[i-1].RawTimestamp, snap.Daily[i].RawTimestamp)
	}
}

func TestBuildSnapshotPartialData(t *testing.T) {
	src := manilaSource(6)
	src.hourly = src.hourly[:3] // fewer entries than requested

	svc := newTestService(src, nil)
	_, err := svc.BuildSnapshot(context.Background(), Query{City: "Manila, PH"}, 6, UnitsMetric, true)
	assert.True(t, errors.Is(err, ErrPartialData))
}

func TestBuildSnapshotAllOrNothing(t *testing.T) {
	src := manilaSource(6)
	src.dailyErr = errors.New("boom")

	svc := newTestService(src, nil)
	snap, err := svc.BuildSnapshot(context.Background(), Query{City: "Manila, PH"}, 6, UnitsMetric, true)
	assert.Nil(t, snap)
	assert.True(t, errors.Is(err, ErrUpstreamFetch))
}

func TestBuildSnapshotCoordinateLabelFallback(t *testing.T) {
	src := manilaSource(2)
	src.current.CityName = ""
	src.current.Country = ""

	svc := newTestService(src, nil)
	snap, err := svc.BuildSnapshot(context.Background(), Query{Coords: &Location{Lat: 14.5995, Lon: 120.9842}}, 2, UnitsMetric, true)
	require.NoError(t, err)

	assert.Equal(t, "14.60, 120.98", snap.Current.LocationLabel)
	assert.Empty(t, snap.FlagURL)
}

func TestBuildSnapshotWarmsImages(t *testing.T) {
	warmer := &recordingWarmer{}
	svc := newTestService(manilaSource(3), warmer)

	_, err := svc.BuildSnapshot(context.Background(), Query{City: "Manila, PH"}, 3, UnitsMetric, true)
	require.NoError(t, err)

	assert.Contains(t, warmer.urls, "https://flagsapi.com/PH/flat/64.png")
	assert.Contains(t, warmer.urls, "https://openweathermap.org/img/wn/10d@2x.png")
}

func TestBuildSnapshotRejectsBadInput(t *testing.T) {
	svc := newTestService(manilaSource(3), nil)

	_, err := svc.BuildSnapshot(context.Background(), Query{}, 3, UnitsMetric, true)
	assert.Error(t, err)

	_, err = svc.BuildSnapshot(context.Background(), Query{City: "Manila"}, 3, "celsius", true)
	assert.True(t, errors.Is(err, ErrInvalidUnitSystem))
}

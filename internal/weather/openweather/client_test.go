package openweather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avilik92/weather-dashboard/internal/weather"
)

func TestCurrentRequiresAPIKey(t *testing.T) {
	client := NewClient(http.DefaultClient, Config{})

	_, err := client.Current(context.Background(), weather.Query{City: "Paris"}, weather.UnitsMetric)
	assert.Error(t, err)
}

func TestCurrentRejectsInvalidQuery(t *testing.T) {
	client := NewClient(http.DefaultClient, Config{APIKey: "k"})

	_, err := client.Current(context.Background(), weather.Query{}, weather.UnitsMetric)
	assert.Error(t, err)

	loc := weather.Location{Lat: 1, Lon: 2}
	_, err = client.Current(context.Background(), weather.Query{Coords: &loc, City: "Paris"}, weather.UnitsMetric)
	assert.Error(t, err)
}

func TestCurrentAddressingModes(t *testing.T) {
	var lastQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery = map[string]string{
			"lat":   r.URL.Query().Get("lat"),
			"lon":   r.URL.Query().Get("lon"),
			"q":     r.URL.Query().Get("q"),
			"units": r.URL.Query().Get("units"),
			"appid": r.URL.Query().Get("appid"),
		}
		fmt.Fprint(w, `{
			"coord":{"lat":48.85,"lon":2.35},
			"weather":[{"id":800,"main":"Clear","description":"clear sky","icon":"01d"}],
			"main":{"temp":12.3,"temp_min":10.0,"temp_max":14.0},
			"wind":{"speed":2.1,"deg":90},
			"dt":1700000000,
			"sys":{"country":"FR"},
			"name":"Paris"
		}`)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{APIKey: "test-key", CurrentURL: srv.URL})

	loc := weather.Location{Lat: 48.85, Lon: 2.35}
	cur, err := client.Current(context.Background(), weather.Query{Coords: &loc}, weather.UnitsImperial)
	require.NoError(t, err)
	assert.NotEmpty(t, lastQuery["lat"])
	assert.NotEmpty(t, lastQuery["lon"])
	assert.Empty(t, lastQuery["q"])
	assert.Equal(t, "imperial", lastQuery["units"])
	assert.Equal(t, "test-key", lastQuery["appid"])

	assert.Equal(t, int64(1700000000), cur.Dt)
	assert.Equal(t, "Paris", cur.CityName)
	assert.Equal(t, "FR", cur.Country)
	assert.Equal(t, 12.3, cur.Temps.Temp)
	require.Len(t, cur.Conditions, 1)
	assert.Equal(t, "01d", cur.Conditions[0].Icon)

	_, err = client.Current(context.Background(), weather.Query{City: "Paris, FR"}, weather.UnitsMetric)
	require.NoError(t, err)
	assert.Equal(t, "Paris, FR", lastQuery["q"])
	assert.Empty(t, lastQuery["lat"])
}

func TestDailyMapsTopLevelWind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("cnt"))
		fmt.Fprint(w, `{
			"city":{"name":"Paris","country":"FR"},
			"cnt":3,
			"list":[
				{"dt":1700000000,"temp":{"day":10,"min":4,"max":12,"night":5,"eve":9,"morn":6},
				 "weather":[{"id":800,"main":"Clear","description":"clear sky","icon":"01d"}],
				 "speed":5.5,"deg":180,"gust":8.0},
				{"dt":1700086400,"temp":{"day":11,"min":5,"max":13,"night":6,"eve":10,"morn":7},
				 "weather":[],"speed":4.0,"deg":170,"gust":6.0},
				{"dt":1700172800,"temp":{"day":9,"min":3,"max":11,"night":4,"eve":8,"morn":5},
				 "weather":[],"speed":3.0,"deg":160,"gust":5.0}
			]
		}`)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Config{APIKey: "test-key", DailyURL: srv.URL})

	entries, err := client.Daily(context.Background(), weather.Query{City: "Paris"}, 3, weather.UnitsMetric)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 5.5, entries[0].Wind.Speed)
	assert.Equal(t, 10.0, entries[0].Temps.Day)
	assert.Equal(t, 6.0, entries[0].Temps.Morn)
	assert.Empty(t, entries[1].Conditions)
}

package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avilik92/weather-dashboard/internal/weather"
	"github.com/sony/gobreaker"
)

const (
	defaultCurrentURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultHourlyURL  = "https://api.openweathermap.org/data/2.5/forecast/hourly"
	defaultDailyURL   = "https://pro.openweathermap.org/data/2.5/forecast/daily"
)

// Config holds client credentials and endpoint overrides.
// Empty URLs fall back to the production endpoints.
type Config struct {
	APIKey     string
	CurrentURL string
	HourlyURL  string
	DailyURL   string
}

// Client talks to the three upstream forecast endpoints. Each endpoint gets
// its own circuit breaker so a flapping forecast endpoint does not take the
// current-weather endpoint down with it.
type Client struct {
	cfg   Config
	http  *http.Client
	retry retryPolicy

	cbCurrent *gobreaker.CircuitBreaker
	cbHourly  *gobreaker.CircuitBreaker
	cbDaily   *gobreaker.CircuitBreaker
}

// NewClient creates a Client using the shared outbound HTTP client.
func NewClient(httpClient *http.Client, cfg Config) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.CurrentURL == "" {
		cfg.CurrentURL = defaultCurrentURL
	}
	if cfg.HourlyURL == "" {
		cfg.HourlyURL = defaultHourlyURL
	}
	if cfg.DailyURL == "" {
		cfg.DailyURL = defaultDailyURL
	}

	newBreaker := func(name string) *gobreaker.CircuitBreaker {
		return gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		})
	}

	return &Client{
		cfg:       cfg,
		http:      httpClient,
		retry:     defaultRetryPolicy(),
		cbCurrent: newBreaker("openweather-current"),
		cbHourly:  newBreaker("openweather-hourly"),
		cbDaily:   newBreaker("openweather-daily"),
	}
}

// queryValues builds the shared request parameters for either addressing
// mode. Both modes must produce identically shaped responses downstream.
func (c *Client) queryValues(q weather.Query, units weather.UnitSystem) (url.Values, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("appid", c.cfg.APIKey)
	values.Set("units", string(units))

	if q.Coords != nil {
		values.Set("lat", fmt.Sprintf("%f", q.Coords.Lat))
		values.Set("lon", fmt.Sprintf("%f", q.Coords.Lon))
	} else {
		values.Set("q", q.City)
	}
	return values, nil
}

func (c *Client) get(ctx context.Context, cb *gobreaker.CircuitBreaker, baseURL string, values url.Values, out interface{}) error {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s?%s", baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.doResilient(ctx, cb, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", baseURL, err)
	}
	return nil
}

// Current fetches and decodes the current-weather sample.
func (c *Client) Current(ctx context.Context, q weather.Query, units weather.UnitSystem) (weather.RawCurrent, error) {
	values, err := c.queryValues(q, units)
	if err != nil {
		return weather.RawCurrent{}, err
	}

	var payload CurrentResponse
	if err := c.get(ctx, c.cbCurrent, c.cfg.CurrentURL, values, &payload); err != nil {
		return weather.RawCurrent{}, err
	}

	return weather.RawCurrent{
		Dt:         payload.Dt,
		Conditions: payload.Weather,
		Temps: weather.InstantTemps{
			Temp:    payload.Main.Temp,
			TempMin: payload.Main.TempMin,
			TempMax: payload.Main.TempMax,
		},
		Wind: weather.Wind{
			Speed: payload.Wind.Speed,
			Deg:   payload.Wind.Deg,
			Gust:  payload.Wind.Gust,
		},
		Coords:   weather.Location{Lat: payload.Coord.Lat, Lon: payload.Coord.Lon},
		Country:  payload.Sys.Country,
		CityName: payload.Name,
	}, nil
}

// Hourly fetches and decodes count hourly forecast entries.
func (c *Client) Hourly(ctx context.Context, q weather.Query, count int, units weather.UnitSystem) ([]weather.RawHourly, error) {
	values, err := c.queryValues(q, units)
	if err != nil {
		return nil, err
	}
	values.Set("cnt", strconv.Itoa(count))

	var payload HourlyResponse
	if err := c.get(ctx, c.cbHourly, c.cfg.HourlyURL, values, &payload); err != nil {
		return nil, err
	}

	entries := make([]weather.RawHourly, 0, len(payload.List))
	for _, e := range payload.List {
		entries = append(entries, weather.RawHourly{
			Dt:         e.Dt,
			Conditions: e.Weather,
			Temps: weather.InstantTemps{
				Temp:    e.Main.Temp,
				TempMin: e.Main.TempMin,
				TempMax: e.Main.TempMax,
			},
			Wind: weather.Wind{
				Speed: e.Wind.Speed,
				Deg:   e.Wind.Deg,
				Gust:  e.Wind.Gust,
			},
		})
	}
	return entries, nil
}

// Daily fetches and decodes count daily forecast entries.
func (c *Client) Daily(ctx context.Context, q weather.Query, count int, units weather.UnitSystem) ([]weather.RawDaily, error) {
	values, err := c.queryValues(q, units)
	if err != nil {
		return nil, err
	}
	values.Set("cnt", strconv.Itoa(count))

	var payload DailyResponse
	if err := c.get(ctx, c.cbDaily, c.cfg.DailyURL, values, &payload); err != nil {
		return nil, err
	}

	entries := make([]weather.RawDaily, 0, len(payload.List))
	for _, e := range payload.List {
		entries = append(entries, weather.RawDaily{
			Dt:         e.Dt,
			Conditions: e.Weather,
			Temps: weather.DaypartTemps{
				Day:   e.Temp.Day,
				Min:   e.Temp.Min,
				Max:   e.Temp.Max,
				Night: e.Temp.Night,
				Eve:   e.Temp.Eve,
				Morn:  e.Temp.Morn,
			},
			// Daily entries carry wind at the top level.
			Wind: weather.Wind{
				Speed: e.Speed,
				Deg:   e.Deg,
				Gust:  e.Gust,
			},
		})
	}
	return entries, nil
}

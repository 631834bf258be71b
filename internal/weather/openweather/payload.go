package openweather

import "github.com/avilik92/weather-dashboard/internal/weather"

// Coord mirrors the provider's coordinate shape.
type Coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// InstantMain carries the temperature block of current and hourly samples.
type InstantMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

// WindData is the provider wind block.
type WindData struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
	Gust  float64 `json:"gust"`
}

// CurrentResponse is the /weather endpoint payload.
type CurrentResponse struct {
	Coord    Coord               `json:"coord"`
	Weather  []weather.Condition `json:"weather"`
	Main     InstantMain         `json:"main"`
	Wind     WindData            `json:"wind"`
	Dt       int64               `json:"dt"`
	Timezone int                 `json:"timezone"`
	Name     string              `json:"name"`
	Sys      struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// HourlyEntry is one item of the hourly forecast list.
type HourlyEntry struct {
	Dt      int64               `json:"dt"`
	Main    InstantMain         `json:"main"`
	Weather []weather.Condition `json:"weather"`
	Wind    WindData            `json:"wind"`
}

// ForecastCity is the city block shared by the forecast endpoints.
type ForecastCity struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Coord    Coord  `json:"coord"`
	Country  string `json:"country"`
	Timezone int    `json:"timezone"`
}

// HourlyResponse is the hourly forecast payload.
type HourlyResponse struct {
	Cnt  int           `json:"cnt"`
	List []HourlyEntry `json:"list"`
	City ForecastCity  `json:"city"`
}

// DaypartTemp is the daily temperature block.
type DaypartTemp struct {
	Day   float64 `json:"day"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

// DailyEntry is one item of the daily forecast list.
type DailyEntry struct {
	Dt      int64               `json:"dt"`
	Sunrise int64               `json:"sunrise"`
	Sunset  int64               `json:"sunset"`
	Temp    DaypartTemp         `json:"temp"`
	Weather []weather.Condition `json:"weather"`
	Speed   float64             `json:"speed"`
	Deg     float64             `json:"deg"`
	Gust    float64             `json:"gust"`
	Clouds  int                 `json:"clouds"`
	Pop     float64             `json:"pop"`
	Rain    float64             `json:"rain"`
}

// DailyResponse is the daily forecast payload.
type DailyResponse struct {
	City ForecastCity `json:"city"`
	Cnt  int          `json:"cnt"`
	List []DailyEntry `json:"list"`
}

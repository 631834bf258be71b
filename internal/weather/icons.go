package weather

import "fmt"

// FlagStyle selects the visual style of country-flag images.
type FlagStyle string

const (
	FlagFlat  FlagStyle = "flat"
	FlagShiny FlagStyle = "shiny"
)

const (
	defaultFlagBaseURL = "https://flagsapi.com"
	iconPathTemplate   = "assets/icon/weather-icons/%s.png"
	iconURLTemplate    = "https://openweathermap.org/img/wn/%s@2x.png"
)

// ConditionIconPath maps a provider icon code to a local asset path.
// An empty code (no condition reported) yields an empty path.
func ConditionIconPath(code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf(iconPathTemplate, code)
}

// IconPathForConditions derives the icon path from the first condition of a
// provider weather[] list, or "" when the list is empty.
func IconPathForConditions(conds []Condition) string {
	if len(conds) == 0 {
		return ""
	}
	return ConditionIconPath(conds[0].Icon)
}

// ConditionIconURL maps a provider icon code to the provider's hosted image,
// used only to warm image caches.
func ConditionIconURL(code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf(iconURLTemplate, code)
}

// FlagURL builds the country-flag image URL for a country code. The template
// is deterministic; no network validation is performed, callers may pre-fetch
// the URL to warm caches.
func FlagURL(baseURL, countryCode string, style FlagStyle, pixelSize int) string {
	if baseURL == "" {
		baseURL = defaultFlagBaseURL
	}
	if style != FlagShiny {
		style = FlagFlat
	}
	return fmt.Sprintf("%s/%s/%s/%d.png", baseURL, countryCode, style, pixelSize)
}

package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultTemperatureF is assumed when a waypoint has no temperature reading.
const DefaultTemperatureF = 50

// windNumberRe matches the first number in a wind string, e.g. "10 to 20 mph" -> "10".
var windNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// NormalizeObservation converts raw waypoint weather into a WaypointObservation.
// Absent fields fall back to 50°F, an empty condition token and calm wind.
func NormalizeObservation(w *WaypointWeather) WaypointObservation {
	obs := WaypointObservation{TemperatureF: DefaultTemperatureF}
	if w == nil {
		return obs
	}
	if w.Temperature != nil {
		obs.TemperatureF = *w.Temperature
	}
	if w.Conditions != nil {
		obs.ConditionToken = strings.ToLower(strings.TrimSpace(*w.Conditions))
	}
	if w.WindSpeed != nil {
		obs.WindMph = parseWindMph(*w.WindSpeed)
	}
	return obs
}

// parseWindMph extracts the leading speed from forecast wind text.
// Ranges report their lower bound; "calm" and unparseable text yield 0.
func parseWindMph(s string) float64 {
	m := windNumberRe.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

package domain

import "time"

func ptr[T any](v T) *T { return &v }

// testNow is the frozen evaluation time used across the package tests.
var testNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func weather(temp float64, conditions, wind string) *WaypointWeather {
	return &WaypointWeather{Temperature: ptr(temp), Conditions: ptr(conditions), WindSpeed: ptr(wind)}
}

// i25Waypoints is Denver to Pueblo along I-25.
func i25Waypoints() []Waypoint {
	return []Waypoint{
		{Name: "Denver, CO", Lat: ptr(39.7392), Lon: ptr(-104.9903), DistanceFromStart: ptr(0.0), EtaMinutes: ptr(0)},
		{Name: "Colorado Springs, CO", Lat: ptr(38.8339), Lon: ptr(-104.8214), DistanceFromStart: ptr(70.0), EtaMinutes: ptr(65)},
		{Name: "Pueblo, CO", Lat: ptr(38.2544), Lon: ptr(-104.6091), DistanceFromStart: ptr(112.0), EtaMinutes: ptr(110)},
	}
}

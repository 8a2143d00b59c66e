package domain

import (
	"context"
	"math"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// RouteSnapshot is one fetched picture of a route as published by the
// route-data collector. Version increases monotonically per RouteID.
type RouteSnapshot struct {
	RouteID       string         `json:"route_id"`
	Version       int64          `json:"version"`
	FetchedAt     time.Time      `json:"fetched_at"`
	RouteGeometry string         `json:"route_geometry,omitempty"` // encoded polyline, precision 5
	SafetyScore   *int           `json:"safety_score,omitempty"`   // 0-100, ignored when out of range
	Vehicle       VehicleProfile `json:"vehicle"`
	Waypoints     []Waypoint     `json:"waypoints" validate:"max=1000"`
	Alerts        []RawAlert     `json:"alerts" validate:"max=1000"`
	Bridges       []BridgeRecord `json:"bridges" validate:"max=1000"`
}

// VehicleProfile describes the driver's vehicle. A nil height means the
// profile is not height-aware.
type VehicleProfile struct {
	TruckerModeEnabled bool     `json:"trucker_mode_enabled"`
	VehicleHeightFt    *float64 `json:"vehicle_height_ft"`
	VehicleType        string   `json:"vehicle_type,omitempty"`
}

// usable returns the profile with a non-positive or non-finite height
// cleared, so screening treats it as unset.
func (v VehicleProfile) usable() VehicleProfile {
	if h := v.VehicleHeightFt; h != nil && (*h <= 0 || math.IsNaN(*h) || math.IsInf(*h, 0)) {
		v.VehicleHeightFt = nil
	}
	return v
}

// usableSafetyScore drops scores outside 0-100.
func usableSafetyScore(score *int) *int {
	if score == nil || *score < 0 || *score > 100 {
		return nil
	}
	return score
}

// HeightAware reports whether the profile carries a trucker flag or a height.
func (v VehicleProfile) HeightAware() bool {
	return v.TruckerModeEnabled || v.VehicleHeightFt != nil
}

// Waypoint is a discrete point along the route.
type Waypoint struct {
	Name              string           `json:"name,omitempty"`
	Lat               *float64         `json:"lat,omitempty"`
	Lon               *float64         `json:"lon,omitempty"`
	DistanceFromStart *float64         `json:"distance_from_start"` // miles
	EtaMinutes        *int             `json:"eta_minutes"`
	Weather           *WaypointWeather `json:"weather,omitempty"`
	Alerts            []RawAlert       `json:"alerts,omitempty"` // alerts already associated upstream
}

// averageSpeedMph estimates an ETA when the collector did not supply one.
const averageSpeedMph = 55

// Distance returns the distance from the route origin in miles, 0 when unknown.
func (w Waypoint) Distance() float64 {
	if w.DistanceFromStart == nil || *w.DistanceFromStart < 0 {
		return 0
	}
	return *w.DistanceFromStart
}

// ETA returns the minutes to reach the waypoint. Without an explicit ETA it
// is estimated from the distance at an average highway speed.
func (w Waypoint) ETA() int {
	if w.EtaMinutes != nil {
		return *w.EtaMinutes
	}
	return int(w.Distance() / averageSpeedMph * 60)
}

// HasCoordinates reports whether both latitude and longitude are present.
func (w Waypoint) HasCoordinates() bool {
	return w.Lat != nil && w.Lon != nil
}

// WaypointWeather is the raw forecast payload attached to a waypoint.
// Every field may be null.
type WaypointWeather struct {
	Temperature *float64 `json:"temperature"`
	Conditions  *string  `json:"conditions"`
	WindSpeed   *string  `json:"wind_speed"`
}

// RawAlert is an active weather-agency alert. Top-level alerts carry their own
// coordinates; alerts nested under a waypoint are anchored to that waypoint.
type RawAlert struct {
	ID        string     `json:"id,omitempty"`
	Event     string     `json:"event"`
	Headline  string     `json:"headline"`
	Severity  string     `json:"severity" validate:"required"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	Latitude  *float64   `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64   `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// BridgeRecord is a bridge or overpass near the route. ClearanceFt is
// authoritative; MaxHeight holds the raw OpenStreetMap tag when the collector
// could not convert it.
type BridgeRecord struct {
	BridgeName      string   `json:"bridge_name"`
	ClearanceFt     *float64 `json:"clearance_ft" validate:"omitempty,gt=0"`
	MaxHeight       string   `json:"maxheight,omitempty"`
	VehicleHeightFt *float64 `json:"vehicle_height_ft,omitempty"` // echo of the profile at fetch time
	DistanceMiles   *float64 `json:"distance_miles" validate:"omitempty,gte=0"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// Package scenario builds a fixed catalog of route snapshots with known
// evaluation outcomes. The catalog backs the hazardctl genmock and verify
// commands and the pipeline fixture tests.
package scenario

import (
	"fmt"
	"slices"
	"time"

	"github.com/couchcryptid/route-hazard-engine/internal/domain"
	"github.com/google/go-cmp/cmp"
)

// BaseTime is the evaluation instant every scenario is written against.
var BaseTime = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

// Scenario pairs a snapshot with the outcome the engine must produce when
// evaluated at BaseTime with default options.
type Scenario struct {
	Name     string
	Snapshot domain.RouteSnapshot
	Want     Expectation
}

// Expectation is the subset of an evaluation a scenario pins down.
type Expectation struct {
	Conditions   []domain.ConditionCode
	Worst        domain.ConditionCode
	Reroute      bool
	HazardAlerts int
	BridgeAlerts int
}

// Check compares an evaluation against the expectation and returns one
// message per mismatch.
func (s Scenario) Check(ev domain.RouteEvaluation) []string {
	var problems []string

	codes := make([]domain.ConditionCode, 0, len(ev.Conditions))
	for _, c := range ev.Conditions {
		codes = append(codes, c.Code)
	}
	if diff := cmp.Diff(s.Want.Conditions, codes); diff != "" {
		problems = append(problems, fmt.Sprintf("conditions mismatch (-want +got):\n%s", diff))
	}
	if ev.Summary.WorstConditionCode != s.Want.Worst {
		problems = append(problems, fmt.Sprintf("worst condition: want %s, got %s", s.Want.Worst, ev.Summary.WorstConditionCode))
	}
	if ev.Summary.RerouteRecommended != s.Want.Reroute {
		problems = append(problems, fmt.Sprintf("reroute: want %t, got %t", s.Want.Reroute, ev.Summary.RerouteRecommended))
	}
	if len(ev.HazardAlerts) != s.Want.HazardAlerts {
		problems = append(problems, fmt.Sprintf("hazard alerts: want %d, got %d", s.Want.HazardAlerts, len(ev.HazardAlerts)))
	}
	if len(ev.BridgeAlerts) != s.Want.BridgeAlerts {
		problems = append(problems, fmt.Sprintf("bridge alerts: want %d, got %d", s.Want.BridgeAlerts, len(ev.BridgeAlerts)))
	}
	return problems
}

// All returns the catalog in a stable order.
func All() []Scenario {
	return []Scenario{
		clearInterstate(),
		freezingRain(),
		lowBridge(),
		tornadoWarning(),
		highWindPlains(),
		expiredAlert(),
	}
}

// Names lists the scenario names in catalog order.
func Names() []string {
	all := All()
	names := make([]string, 0, len(all))
	for _, s := range all {
		names = append(names, s.Name)
	}
	return names
}

// Find returns the named scenario.
func Find(name string) (Scenario, bool) {
	all := All()
	i := slices.IndexFunc(all, func(s Scenario) bool { return s.Name == name })
	if i < 0 {
		return Scenario{}, false
	}
	return all[i], true
}

// Snapshots returns just the snapshots, ready to publish.
func Snapshots() []domain.RouteSnapshot {
	all := All()
	out := make([]domain.RouteSnapshot, 0, len(all))
	for _, s := range all {
		out = append(out, s.Snapshot)
	}
	return out
}

func clearInterstate() Scenario {
	return Scenario{
		Name: "clear-i25",
		Snapshot: snapshot("route-i25-clear", 1, domain.VehicleProfile{VehicleType: "car"},
			waypoint("Denver, CO", 39.7392, -104.9903, 0, 0, 45, "clear", "5 mph"),
			waypoint("Colorado Springs, CO", 38.8339, -104.8214, 70, 65, 48, "sunny", "10 mph"),
			waypoint("Pueblo, CO", 38.2544, -104.6091, 112, 110, 52, "partly cloudy", "8 mph"),
		),
		Want: Expectation{
			Conditions: []domain.ConditionCode{domain.ConditionDry, domain.ConditionDry, domain.ConditionDry},
			Worst:      domain.ConditionDry,
		},
	}
}

func freezingRain() Scenario {
	return Scenario{
		Name: "freezing-rain-i80",
		Snapshot: snapshot("route-i80-ice", 3, domain.VehicleProfile{VehicleType: "rv"},
			waypoint("Cheyenne, WY", 41.1400, -104.8202, 0, 0, 28, "light rain", "12 mph"),
			waypoint("Laramie, WY", 41.3114, -105.5911, 50, 48, 34, "snow", "15 mph"),
			waypoint("Rawlins, WY", 41.7911, -107.2387, 150, 140, 50, "clear", "10 mph"),
		),
		Want: Expectation{
			Conditions: []domain.ConditionCode{domain.ConditionIcy, domain.ConditionSlush, domain.ConditionDry},
			Worst:      domain.ConditionIcy,
			Reroute:    true,
		},
	}
}

func lowBridge() Scenario {
	s := snapshot("route-rv-bridge", 7, domain.VehicleProfile{TruckerModeEnabled: true, VehicleHeightFt: ptr(13.5), VehicleType: "rv"},
		waypoint("Albany, NY", 42.6526, -73.7562, 0, 0, 55, "clear", "5 mph"),
		waypoint("Schenectady, NY", 42.8142, -73.9396, 16, 22, 54, "clear", "6 mph"),
	)
	s.Bridges = []domain.BridgeRecord{
		{BridgeName: "Erie Blvd Rail Bridge", ClearanceFt: ptr(12.0), DistanceMiles: ptr(14.0)},
		{BridgeName: "Route 7 Overpass", ClearanceFt: ptr(16.5), DistanceMiles: ptr(9.0)},
	}
	return Scenario{
		Name:     "low-bridge-rv",
		Snapshot: s,
		Want: Expectation{
			Conditions:   []domain.ConditionCode{domain.ConditionDry, domain.ConditionDry},
			Worst:        domain.ConditionDry,
			Reroute:      true,
			BridgeAlerts: 1,
		},
	}
}

func tornadoWarning() Scenario {
	s := snapshot("route-i35-tornado", 2, domain.VehicleProfile{VehicleType: "car"},
		waypoint("Oklahoma City, OK", 35.4676, -97.5164, 0, 0, 72, "cloudy", "15 mph"),
		waypoint("Norman, OK", 35.2226, -97.4395, 20, 22, 74, "mostly cloudy", "18 mph"),
	)
	issued := BaseTime.Add(-20 * time.Minute)
	s.Alerts = []domain.RawAlert{
		{
			ID:        "urn:oid:tornado-1",
			Event:     "Tornado Warning",
			Headline:  "Take shelter now in a basement or interior room",
			Severity:  "Extreme",
			IssuedAt:  &issued,
			Latitude:  ptr(35.2300),
			Longitude: ptr(-97.4400),
		},
	}
	return Scenario{
		Name:     "tornado-warning",
		Snapshot: s,
		Want: Expectation{
			Conditions:   []domain.ConditionCode{domain.ConditionDry, domain.ConditionDry},
			Worst:        domain.ConditionDry,
			Reroute:      true,
			HazardAlerts: 1,
		},
	}
}

func highWindPlains() Scenario {
	s := snapshot("route-i70-wind", 4, domain.VehicleProfile{TruckerModeEnabled: true, VehicleHeightFt: ptr(12.5), VehicleType: "truck"},
		waypoint("Hays, KS", 38.8792, -99.3268, 0, 0, 60, "sunny", "10 to 15 mph"),
		waypoint("Colby, KS", 39.3958, -101.0524, 100, 95, 58, "sunny", "35 to 45 mph"),
	)
	issued := BaseTime.Add(-30 * time.Minute)
	s.Waypoints[1].Alerts = []domain.RawAlert{
		{Event: "High Wind Warning", Headline: "West winds 35 to 45 mph with gusts to 65 mph", Severity: "Severe", IssuedAt: &issued},
	}
	return Scenario{
		Name:     "high-wind-plains",
		Snapshot: s,
		Want: Expectation{
			Conditions:   []domain.ConditionCode{domain.ConditionDry, domain.ConditionWindy},
			Worst:        domain.ConditionWindy,
			HazardAlerts: 1,
		},
	}
}

func expiredAlert() Scenario {
	s := snapshot("route-i90-expired", 5, domain.VehicleProfile{VehicleType: "car"},
		waypoint("Missoula, MT", 46.8721, -113.9940, 0, 0, 40, "overcast", "5 mph"),
		waypoint("Butte, MT", 46.0038, -112.5348, 120, 115, 38, "light rain", "10 mph"),
	)
	issued := BaseTime.Add(-3 * time.Hour)
	s.Alerts = []domain.RawAlert{
		{Event: "Winter Storm Warning", Headline: "Heavy snow expected", Severity: "Extreme", IssuedAt: &issued, Latitude: ptr(46.0), Longitude: ptr(-112.5)},
	}
	return Scenario{
		Name:     "expired-alert",
		Snapshot: s,
		Want: Expectation{
			Conditions: []domain.ConditionCode{domain.ConditionDry, domain.ConditionWet},
			Worst:      domain.ConditionWet,
		},
	}
}

func snapshot(routeID string, version int64, vehicle domain.VehicleProfile, waypoints ...domain.Waypoint) domain.RouteSnapshot {
	return domain.RouteSnapshot{
		RouteID:   routeID,
		Version:   version,
		FetchedAt: BaseTime.Add(-5 * time.Minute),
		Vehicle:   vehicle,
		Waypoints: waypoints,
		Alerts:    []domain.RawAlert{},
		Bridges:   []domain.BridgeRecord{},
	}
}

func waypoint(name string, lat, lon, miles float64, eta int, tempF float64, conditions, wind string) domain.Waypoint {
	return domain.Waypoint{
		Name:              name,
		Lat:               ptr(lat),
		Lon:               ptr(lon),
		DistanceFromStart: ptr(miles),
		EtaMinutes:        ptr(eta),
		Weather: &domain.WaypointWeather{
			Temperature: ptr(tempF),
			Conditions:  ptr(conditions),
			WindSpeed:   ptr(wind),
		},
	}
}

func ptr[T any](v T) *T { return &v }

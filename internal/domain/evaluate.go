package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ErrStaleSnapshot is returned when a snapshot is older than one already
// evaluated for the same route.
var ErrStaleSnapshot = errors.New("stale route snapshot")

// Options tunes an Evaluator. Zero Window and MaxAlerts fall back to the
// defaults; a negative SafetyMarginFt falls back to DefaultSafetyMarginFt.
type Options struct {
	SafetyMarginFt       float64
	AlertWindow          time.Duration
	MaxAlerts            int
	DeriveWeatherHazards bool
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		SafetyMarginFt: DefaultSafetyMarginFt,
		AlertWindow:    DefaultAlertWindow,
		MaxAlerts:      DefaultMaxHazardAlerts,
	}
}

// Evaluator runs the full classification pipeline over a snapshot. It holds
// only immutable options and is safe for concurrent use.
type Evaluator struct {
	opts Options
}

// NewEvaluator creates an Evaluator with the given options.
func NewEvaluator(opts Options) *Evaluator {
	if opts.SafetyMarginFt < 0 {
		opts.SafetyMarginFt = DefaultSafetyMarginFt
	}
	if opts.AlertWindow <= 0 {
		opts.AlertWindow = DefaultAlertWindow
	}
	if opts.MaxAlerts <= 0 {
		opts.MaxAlerts = DefaultMaxHazardAlerts
	}
	return &Evaluator{opts: opts}
}

// Options returns the effective options.
func (e *Evaluator) Options() Options {
	return e.opts
}

// Evaluate classifies every waypoint, ranks alerts, screens bridges and
// summarizes the route. It never fails on data shape: missing fields take
// defaults and malformed alerts or bridges are skipped.
func (e *Evaluator) Evaluate(s RouteSnapshot) RouteEvaluation {
	now := Now()
	vehicle := s.Vehicle.usable()

	observations := make([]WaypointObservation, 0, len(s.Waypoints))
	for _, wp := range s.Waypoints {
		observations = append(observations, NormalizeObservation(wp.Weather))
	}
	conditions := ClassifyAll(observations)

	rc := RouteContext{
		Waypoints:       s.Waypoints,
		Now:             now,
		Window:          e.opts.AlertWindow,
		MaxAlerts:       e.opts.MaxAlerts,
		DefaultIssuedAt: s.FetchedAt,
	}
	if e.opts.DeriveWeatherHazards {
		rc.Extra = DeriveWeatherHazards(s.Waypoints, observations, s.FetchedAt)
	}
	alerts := AggregateAlerts(s.Alerts, rc)

	// An undecodable geometry only disables along-route bridge distances.
	route, err := DecodeRoute(s.RouteGeometry)
	if err != nil {
		route = nil
	}
	bridgeAlerts := ScreenBridges(s.Bridges, vehicle.VehicleHeightFt, vehicle.TruckerModeEnabled, ScreenConfig{
		SafetyMarginFt: e.opts.SafetyMarginFt,
		Route:          route,
	})

	summary := Summarize(conditions, alerts, bridgeAlerts, SummaryContext{
		Profile:       vehicle,
		WaypointNames: WaypointNames(s.Waypoints),
	})

	return RouteEvaluation{
		RouteID:              s.RouteID,
		Version:              s.Version,
		EvaluatedAt:          now,
		Conditions:           conditions,
		RoadConditionSummary: SummarizeRoadConditions(conditions),
		HazardAlerts:         alerts,
		BridgeAlerts:         bridgeAlerts,
		Summary:              summary,
		SafetyScore:          usableSafetyScore(s.SafetyScore),
	}
}

// WaypointNames returns display names for waypoints, falling back to the
// rounded mile marker ("Mile 42") for unnamed ones.
func WaypointNames(waypoints []Waypoint) []string {
	names := make([]string, len(waypoints))
	for i, wp := range waypoints {
		if wp.Name != "" {
			names[i] = wp.Name
			continue
		}
		names[i] = "Mile " + strconv.Itoa(int(math.Round(wp.Distance())))
	}
	return names
}

// ParseRouteSnapshot deserializes a RawEvent's value into a RouteSnapshot.
// The message key stands in for a missing route_id and the message timestamp
// for a missing fetched_at.
func ParseRouteSnapshot(raw RawEvent) (RouteSnapshot, error) {
	var s RouteSnapshot
	if err := json.Unmarshal(raw.Value, &s); err != nil {
		return RouteSnapshot{}, fmt.Errorf("parse route snapshot: %w", err)
	}
	if s.RouteID == "" {
		s.RouteID = string(raw.Key)
	}
	if s.FetchedAt.IsZero() {
		s.FetchedAt = raw.Timestamp
	}
	return s, nil
}

// SerializeEvaluation converts a RouteEvaluation into an OutputEvent keyed by
// route ID.
func SerializeEvaluation(ev RouteEvaluation) (OutputEvent, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("marshal route evaluation: %w", err)
	}
	return OutputEvent{
		Key:   []byte(ev.RouteID),
		Value: value,
		Headers: map[string]string{
			"route_id":            ev.RouteID,
			"version":             strconv.FormatInt(ev.Version, 10),
			"reroute_recommended": strconv.FormatBool(ev.Summary.RerouteRecommended),
			"evaluated_at":        ev.EvaluatedAt.Format(time.RFC3339),
		},
	}, nil
}

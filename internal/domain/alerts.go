package domain

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	// DefaultAlertWindow bounds how old an alert's issuance may be.
	DefaultAlertWindow = 2 * time.Hour

	// DefaultMaxHazardAlerts caps the ranked alert list.
	DefaultMaxHazardAlerts = 10

	maxRecommendationLen  = 100
	defaultRecommendation = "Monitor local conditions and check for updates"
)

// RouteContext carries everything alert aggregation needs besides the alerts.
type RouteContext struct {
	Waypoints []Waypoint
	Now       time.Time
	Window    time.Duration
	MaxAlerts int

	// DefaultIssuedAt stands in for alerts without an issuance time, usually
	// the snapshot fetch time. Zero means such alerts are skipped.
	DefaultIssuedAt time.Time

	// Extra holds already-built candidates (derived weather hazards) that go
	// through the same window, sort and cap.
	Extra []HazardAlert
}

// AggregateAlerts anchors alerts to waypoints and returns the ranked list.
// Top-level alerts are anchored to the nearest waypoint with coordinates;
// alerts nested under a waypoint stay on that waypoint. Entries missing a
// severity, an anchor or an issuance time are skipped.
func AggregateAlerts(raw []RawAlert, rc RouteContext) []HazardAlert {
	candidates := make([]HazardAlert, 0, len(raw)+len(rc.Extra))

	for _, a := range raw {
		if !validAlert(a) || a.Latitude == nil || a.Longitude == nil {
			continue
		}
		idx, ok := nearestWaypoint(rc.Waypoints, orb.Point{*a.Longitude, *a.Latitude})
		if !ok {
			continue
		}
		if alert, ok := buildHazardAlert(a, rc.Waypoints[idx], rc.DefaultIssuedAt); ok {
			candidates = append(candidates, alert)
		}
	}

	for _, wp := range rc.Waypoints {
		for _, a := range wp.Alerts {
			if !validAlert(a) {
				continue
			}
			if alert, ok := buildHazardAlert(a, wp, rc.DefaultIssuedAt); ok {
				candidates = append(candidates, alert)
			}
		}
	}

	candidates = append(candidates, rc.Extra...)
	return rankAlerts(candidates, rc.Now, rc.Window, rc.MaxAlerts)
}

// MaxClockSkew is how far ahead of the evaluation clock an issuance time may
// be before the alert is treated as future-dated. Alerts within it count as
// issued now.
const MaxClockSkew = 2 * time.Minute

// rankAlerts drops alerts outside [now-window, now], then sorts by tier
// descending and ETA ascending, then truncates to limit.
func rankAlerts(candidates []HazardAlert, now time.Time, window time.Duration, limit int) []HazardAlert {
	if window <= 0 {
		window = DefaultAlertWindow
	}
	if limit <= 0 {
		limit = DefaultMaxHazardAlerts
	}
	oldest := now.Add(-window)

	kept := make([]HazardAlert, 0, len(candidates))
	for _, a := range candidates {
		if a.IssuedAt.After(now) && !a.IssuedAt.After(now.Add(MaxClockSkew)) {
			a.IssuedAt = now
		}
		if a.IssuedAt.Before(oldest) || a.IssuedAt.After(now) {
			continue
		}
		kept = append(kept, a)
	}

	slices.SortStableFunc(kept, func(a, b HazardAlert) int {
		if c := cmp.Compare(b.SeverityTier.Rank(), a.SeverityTier.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.EtaMinutes, b.EtaMinutes)
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

func buildHazardAlert(a RawAlert, anchor Waypoint, defaultIssuedAt time.Time) (HazardAlert, bool) {
	issued := defaultIssuedAt
	if a.IssuedAt != nil {
		issued = *a.IssuedAt
	}
	if issued.IsZero() {
		return HazardAlert{}, false
	}

	eta := anchor.ETA()
	return HazardAlert{
		Type:           alertType(a.Event),
		SeverityTier:   MapSeverityTier(a.Severity),
		DistanceMiles:  anchor.Distance(),
		EtaMinutes:     eta,
		CountdownText:  CountdownText(eta),
		Message:        alertMessage(a),
		Recommendation: recommendation(a.Headline),
		IssuedAt:       issued,
	}, true
}

// MapSeverityTier folds an upstream severity into extreme, high or medium.
// NWS "Extreme" maps to extreme and "Severe" to high; anything else
// non-empty, including unrecognized values, is medium.
func MapSeverityTier(severity string) SeverityTier {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "extreme":
		return TierExtreme
	case "severe", "high":
		return TierHigh
	default:
		return TierMedium
	}
}

// CountdownText renders an ETA as a short phrase.
func CountdownText(etaMinutes int) string {
	switch {
	case etaMinutes <= 0:
		return "arriving now"
	case etaMinutes == 1:
		return "in 1 minute"
	case etaMinutes < 60:
		return fmt.Sprintf("in %d minutes", etaMinutes)
	}
	hours, mins := etaMinutes/60, etaMinutes%60
	if mins == 0 {
		return fmt.Sprintf("in %d hr", hours)
	}
	return fmt.Sprintf("in %d hr %d min", hours, mins)
}

// alertType buckets an event name into the categories used for warnings.
func alertType(event string) string {
	e := strings.ToLower(event)
	switch {
	case strings.Contains(e, "wind"):
		return "wind"
	case containsAny(e, "ice", "freez", "sleet"):
		return "ice"
	case containsAny(e, "snow", "winter", "blizzard"):
		return "snow"
	case strings.Contains(e, "flood"):
		return "flood"
	case containsAny(e, "tornado", "thunder"):
		return "storm"
	case strings.Contains(e, "fog"):
		return "visibility"
	case strings.Contains(e, "heat"):
		return "heat"
	default:
		return "alert"
	}
}

func alertMessage(a RawAlert) string {
	if a.Event != "" {
		return a.Event
	}
	if a.Headline != "" {
		return a.Headline
	}
	return "Weather alert"
}

func recommendation(headline string) string {
	headline = strings.TrimSpace(headline)
	if headline == "" {
		return defaultRecommendation
	}
	r := []rune(headline)
	if len(r) > maxRecommendationLen {
		return string(r[:maxRecommendationLen])
	}
	return headline
}

// nearestWaypoint returns the index of the closest waypoint with coordinates.
// Ties keep the earliest waypoint.
func nearestWaypoint(waypoints []Waypoint, p orb.Point) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, wp := range waypoints {
		if !wp.HasCoordinates() {
			continue
		}
		d := geo.Distance(p, orb.Point{*wp.Lon, *wp.Lat})
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

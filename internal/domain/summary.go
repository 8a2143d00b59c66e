package domain

import (
	"fmt"
	"strings"
)

const maxTruckerWarnings = 8

// SummaryContext carries the profile and display names used for wording.
// WaypointNames is indexed like the conditions passed to Summarize.
type SummaryContext struct {
	Profile       VehicleProfile
	WaypointNames []string
}

// Summarize derives the reroute verdict for a route.
//
// A reroute is recommended for any bridge conflict, any extreme alert, or a
// worst road condition of ICY or STORM. The reason lists triggered causes in
// that priority order. alerts and bridgeAlerts are expected in the order
// produced by AggregateAlerts and ScreenBridges.
func Summarize(conditions []RoadConditionResult, alerts []HazardAlert, bridgeAlerts []BridgeClearanceAlert, sc SummaryContext) RouteSafetySummary {
	worstIdx := worstCondition(conditions)
	worst := ConditionDry
	if worstIdx >= 0 {
		worst = conditions[worstIdx].Code
	}

	var reasons []string
	if len(bridgeAlerts) > 0 {
		reasons = append(reasons, bridgeReason(bridgeAlerts))
	}
	if a, ok := firstExtreme(alerts); ok {
		reasons = append(reasons, fmt.Sprintf("Extreme alert: %s %s", a.Message, a.CountdownText))
	}
	if worst == ConditionIcy || worst == ConditionStorm {
		c := conditions[worstIdx]
		reasons = append(reasons, fmt.Sprintf("%s conditions at %s: %s", c.Code, sc.name(worstIdx), c.Description))
	}

	summary := RouteSafetySummary{
		RerouteRecommended: len(reasons) > 0,
		TruckerWarnings:    []string{},
		WorstConditionCode: worst,
	}
	if summary.RerouteRecommended {
		reason := strings.Join(reasons, "; ")
		summary.RerouteReason = &reason
	}
	if sc.Profile.HeightAware() {
		summary.TruckerWarnings = truckerWarnings(conditions, alerts, bridgeAlerts, sc)
	}
	return summary
}

// worstCondition returns the index of the highest severity, earliest on ties,
// or -1 for no conditions.
func worstCondition(conditions []RoadConditionResult) int {
	worst := -1
	for i, c := range conditions {
		if worst < 0 || c.Severity > conditions[worst].Severity {
			worst = i
		}
	}
	return worst
}

func firstExtreme(alerts []HazardAlert) (HazardAlert, bool) {
	for _, a := range alerts {
		if a.SeverityTier == TierExtreme {
			return a, true
		}
	}
	return HazardAlert{}, false
}

func bridgeReason(bridgeAlerts []BridgeClearanceAlert) string {
	b := bridgeAlerts[0]
	reason := fmt.Sprintf("Low clearance at %s: %.1f ft clearance vs %.1f ft vehicle height",
		b.BridgeName, b.ClearanceFt, b.VehicleHeightFt)
	if n := len(bridgeAlerts) - 1; n > 0 {
		reason += fmt.Sprintf(" (+%d more)", n)
	}
	return reason
}

// truckerWarnings lists vehicle-specific advisories: low clearance first,
// then wind and ice alerts, then ICY, SNOW and WINDY waypoints. Warnings
// sharing the text before " - " are reported once.
func truckerWarnings(conditions []RoadConditionResult, alerts []HazardAlert, bridgeAlerts []BridgeClearanceAlert, sc SummaryContext) []string {
	warnings := []string{}
	seen := make(map[string]bool)
	add := func(w string) {
		key, _, _ := strings.Cut(w, " - ")
		if seen[key] || len(warnings) >= maxTruckerWarnings {
			return
		}
		seen[key] = true
		warnings = append(warnings, w)
	}

	for _, b := range bridgeAlerts {
		add(fmt.Sprintf("Low clearance: %s (%.1f ft) at mile %.0f - verify an alternate route",
			b.BridgeName, b.ClearanceFt, b.DistanceMiles))
	}
	for _, a := range alerts {
		switch a.Type {
		case "wind":
			add(fmt.Sprintf("%s %s - high-profile vehicles at risk of rollover", a.Message, a.CountdownText))
		case "ice":
			add(fmt.Sprintf("%s %s - expect icy bridge decks", a.Message, a.CountdownText))
		}
	}
	for i, c := range conditions {
		switch c.Code {
		case ConditionWindy:
			add(fmt.Sprintf("High crosswinds at %s - reduce speed, high-profile vehicles use caution", sc.name(i)))
		case ConditionIcy:
			add(fmt.Sprintf("Freezing precipitation at %s - bridge decks freeze first", sc.name(i)))
		case ConditionSnow:
			add(fmt.Sprintf("Snow at %s - chain requirements may be in effect", sc.name(i)))
		}
	}
	return warnings
}

func (sc SummaryContext) name(i int) string {
	if i >= 0 && i < len(sc.WaypointNames) && sc.WaypointNames[i] != "" {
		return sc.WaypointNames[i]
	}
	return fmt.Sprintf("waypoint %d", i+1)
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ConditionRule is one entry of the ordered classification table.
type ConditionRule struct {
	Code  ConditionCode
	Match func(WaypointObservation) bool
}

// conditionRules is evaluated top to bottom; the first match wins.
var conditionRules = []ConditionRule{
	{ConditionIcy, func(o WaypointObservation) bool {
		return o.TemperatureF <= 32 && containsAny(o.ConditionToken, "rain", "freezing", "drizzle")
	}},
	{ConditionSnow, func(o WaypointObservation) bool {
		return o.TemperatureF <= 32 && strings.Contains(o.ConditionToken, "snow")
	}},
	{ConditionSlush, func(o WaypointObservation) bool {
		return o.TemperatureF > 32 && o.TemperatureF <= 40 && strings.Contains(o.ConditionToken, "snow")
	}},
	{ConditionFog, func(o WaypointObservation) bool {
		return containsAny(o.ConditionToken, "fog", "mist")
	}},
	{ConditionWet, func(o WaypointObservation) bool {
		return containsAny(o.ConditionToken, "rain", "shower", "drizzle")
	}},
	{ConditionStorm, func(o WaypointObservation) bool {
		return containsAny(o.ConditionToken, "thunder", "storm")
	}},
	{ConditionWindy, func(o WaypointObservation) bool {
		return o.WindMph > 30
	}},
	{ConditionDry, func(WaypointObservation) bool { return true }},
}

// ConditionRules returns a copy of the ordered classification table.
func ConditionRules() []ConditionRule {
	rules := make([]ConditionRule, len(conditionRules))
	copy(rules, conditionRules)
	return rules
}

// conditionProfile holds the static presentation data for a code.
type conditionProfile struct {
	label    string
	icon     string
	color    string
	severity int
	advice   string
	describe func(WaypointObservation) string
}

var conditionProfiles = map[ConditionCode]conditionProfile{
	ConditionIcy: {
		label: "ICY", icon: "🧊", color: "#ef4444", severity: 5,
		advice: "Reduce speed significantly - black ice likely on bridges and overpasses",
		describe: func(o WaypointObservation) string {
			return fmt.Sprintf("Freezing precipitation at %s°F", formatNumber(o.TemperatureF))
		},
	},
	ConditionSnow: {
		label: "SNOW", icon: "❄️", color: "#93c5fd", severity: 4,
		advice: "Use caution - snow-covered surface, increase following distance",
		describe: func(o WaypointObservation) string {
			return fmt.Sprintf("Snow-covered roads at %s°F", formatNumber(o.TemperatureF))
		},
	},
	ConditionSlush: {
		label: "SLUSH", icon: "🌨️", color: "#f59e0b", severity: 3,
		advice: "Reduced traction - slush on road surface",
		describe: func(o WaypointObservation) string {
			return fmt.Sprintf("Wet snow and slush at %s°F", formatNumber(o.TemperatureF))
		},
	},
	ConditionFog: {
		label: "LOW VIS", icon: "🌫️", color: "#9ca3af", severity: 3,
		advice: "Use low beams - low visibility, reduce speed",
		describe: func(WaypointObservation) string {
			return "Fog reducing visibility"
		},
	},
	ConditionWet: {
		label: "WET", icon: "💧", color: "#3b82f6", severity: 2,
		advice: "Watch for hydroplaning - increase following distance",
		describe: func(o WaypointObservation) string {
			return "Wet roads - " + o.ConditionToken
		},
	},
	ConditionStorm: {
		label: "STORM", icon: "⛈️", color: "#dc2626", severity: 4,
		advice: "Heavy rain possible - reduce speed, avoid flooded roads",
		describe: func(WaypointObservation) string {
			return "Thunderstorms along route"
		},
	},
	ConditionWindy: {
		label: "HIGH WIND", icon: "💨", color: "#8b5cf6", severity: 2,
		advice: "Watch for crosswinds - high-profile vehicles use caution",
		describe: func(o WaypointObservation) string {
			return fmt.Sprintf("Strong winds at %s mph", formatNumber(o.WindMph))
		},
	},
	ConditionDry: {
		label: "DRY", icon: "✓", color: "#22c55e", severity: 0,
		advice: "Normal driving conditions",
		describe: func(o WaypointObservation) string {
			sky := o.ConditionToken
			if sky == "" {
				sky = "clear"
			}
			return fmt.Sprintf("Good conditions - %s°F, %s", formatNumber(o.TemperatureF), sky)
		},
	},
}

// Classify returns the road-surface condition for an observation.
// It is total: unknown conditions classify as DRY.
func Classify(obs WaypointObservation) RoadConditionResult {
	for _, rule := range conditionRules {
		if rule.Match(obs) {
			return buildConditionResult(rule.Code, obs)
		}
	}
	return buildConditionResult(ConditionDry, obs)
}

// ClassifyAll classifies every observation, preserving order.
func ClassifyAll(observations []WaypointObservation) []RoadConditionResult {
	results := make([]RoadConditionResult, 0, len(observations))
	for _, obs := range observations {
		results = append(results, Classify(obs))
	}
	return results
}

func buildConditionResult(code ConditionCode, obs WaypointObservation) RoadConditionResult {
	p := conditionProfiles[code]
	return RoadConditionResult{
		Code:          code,
		Label:         p.label,
		Icon:          p.icon,
		Color:         p.color,
		Description:   p.describe(obs),
		SurfaceAdvice: p.advice,
		Severity:      p.severity,
	}
}

// SummarizeRoadConditions renders a one-line overview of the non-DRY segments,
// counting labels in first-seen order.
func SummarizeRoadConditions(conditions []RoadConditionResult) string {
	var order []string
	counts := make(map[string]int)
	for _, c := range conditions {
		if c.Code == ConditionDry {
			continue
		}
		if counts[c.Label] == 0 {
			order = append(order, c.Label)
		}
		counts[c.Label]++
	}
	if len(order) == 0 {
		return "Good road conditions expected throughout your route"
	}

	parts := make([]string, 0, len(order))
	for _, label := range order {
		noun := "segments"
		if counts[label] == 1 {
			noun = "segment"
		}
		parts = append(parts, fmt.Sprintf("%d %s with %s", counts[label], noun, label))
	}
	return "Road hazards detected: " + strings.Join(parts, ", ")
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// formatNumber prints a reading without trailing zeros: 28 -> "28", 34.5 -> "34.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

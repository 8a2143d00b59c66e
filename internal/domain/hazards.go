package domain

import (
	"fmt"
	"strings"
	"time"
)

// DeriveWeatherHazards turns waypoint observations into hazard alerts for
// routes where the weather agency has not issued anything yet. Every derived
// alert is stamped with issuedAt (normally the snapshot fetch time) so it
// passes through the same window as upstream alerts. observations must be
// indexed like waypoints.
func DeriveWeatherHazards(waypoints []Waypoint, observations []WaypointObservation, issuedAt time.Time) []HazardAlert {
	if issuedAt.IsZero() {
		return []HazardAlert{}
	}

	var out []HazardAlert
	for i, obs := range observations {
		if i >= len(waypoints) {
			break
		}
		wp := waypoints[i]
		add := func(typ string, tier SeverityTier, message, advice string) {
			eta := wp.ETA()
			out = append(out, HazardAlert{
				Type:           typ,
				SeverityTier:   tier,
				DistanceMiles:  wp.Distance(),
				EtaMinutes:     eta,
				CountdownText:  CountdownText(eta),
				Message:        message,
				Recommendation: advice,
				IssuedAt:       issuedAt,
			})
		}

		if obs.WindMph > 25 {
			tier := TierMedium
			switch {
			case obs.WindMph > 40:
				tier = TierExtreme
			case obs.WindMph > 30:
				tier = TierHigh
			}
			add("wind", tier, fmt.Sprintf("High winds %s mph", formatNumber(obs.WindMph)),
				"High-profile vehicles use caution or delay travel")
		}

		token := obs.ConditionToken
		switch {
		case containsAny(token, "heavy rain", "thunder", "storm"):
			add("storm", TierHigh, "Heavy rain or thunderstorms", "Reduce speed and avoid flooded roads")
		case strings.Contains(token, "rain"):
			add("rain", TierMedium, "Rain on route", "Increase following distance")
		}
		if strings.Contains(token, "snow") {
			add("snow", TierHigh, "Snow on route", "Check chain requirements before departure")
		}
		if obs.TemperatureF <= 32 {
			add("ice", TierHigh, fmt.Sprintf("Freezing temperatures (%s°F)", formatNumber(obs.TemperatureF)),
				"Watch for ice on bridges and overpasses")
		}
		if strings.Contains(token, "fog") {
			add("visibility", TierHigh, "Reduced visibility from fog", "Use low beams and reduce speed")
		}
	}

	if out == nil {
		return []HazardAlert{}
	}
	return out
}

package domain

import "time"

// ConditionCode identifies a road-surface classification.
type ConditionCode string

const (
	ConditionDry   ConditionCode = "DRY"
	ConditionWet   ConditionCode = "WET"
	ConditionIcy   ConditionCode = "ICY"
	ConditionSnow  ConditionCode = "SNOW"
	ConditionSlush ConditionCode = "SLUSH"
	ConditionFog   ConditionCode = "FOG"
	ConditionStorm ConditionCode = "STORM"
	ConditionWindy ConditionCode = "WINDY"
)

// WaypointObservation is the canonical weather reading for one waypoint.
type WaypointObservation struct {
	TemperatureF   float64 `json:"temperatureF"`
	ConditionToken string  `json:"conditionToken"`
	WindMph        float64 `json:"windMph"`
}

// RoadConditionResult is the classified road surface at one waypoint.
type RoadConditionResult struct {
	Code          ConditionCode `json:"code"`
	Label         string        `json:"label"`
	Icon          string        `json:"icon"`
	Color         string        `json:"color"`
	Description   string        `json:"description"`
	SurfaceAdvice string        `json:"surfaceAdvice"`
	Severity      int           `json:"severity"`
}

// SeverityTier is the normalized importance class used for alert ordering.
type SeverityTier string

const (
	TierExtreme SeverityTier = "extreme"
	TierHigh    SeverityTier = "high"
	TierMedium  SeverityTier = "medium"
)

// Rank orders tiers: extreme > high > medium.
func (t SeverityTier) Rank() int {
	switch t {
	case TierExtreme:
		return 3
	case TierHigh:
		return 2
	case TierMedium:
		return 1
	default:
		return 0
	}
}

// HazardAlert is an alert anchored to a waypoint on the route.
type HazardAlert struct {
	Type           string       `json:"type"`
	SeverityTier   SeverityTier `json:"severityTier"`
	DistanceMiles  float64      `json:"distanceMiles"`
	EtaMinutes     int          `json:"etaMinutes"`
	CountdownText  string       `json:"countdownText"`
	Message        string       `json:"message"`
	Recommendation string       `json:"recommendation"`

	IssuedAt time.Time `json:"-"`
}

// BridgeClearanceAlert flags a bridge the vehicle may not clear.
type BridgeClearanceAlert struct {
	BridgeName      string  `json:"bridgeName"`
	ClearanceFt     float64 `json:"clearanceFt"`
	VehicleHeightFt float64 `json:"vehicleHeightFt"`
	DistanceMiles   float64 `json:"distanceMiles"`
	Warning         string  `json:"warning"`
}

// RouteSafetySummary is the overall verdict for one evaluation.
type RouteSafetySummary struct {
	RerouteRecommended bool          `json:"rerouteRecommended"`
	RerouteReason      *string       `json:"rerouteReason"`
	TruckerWarnings    []string      `json:"truckerWarnings"`
	WorstConditionCode ConditionCode `json:"worstConditionCode"`
}

// RouteEvaluation bundles every record produced for one snapshot.
// Conditions are indexed like the snapshot's waypoints.
type RouteEvaluation struct {
	RouteID              string                 `json:"routeId"`
	Version              int64                  `json:"version"`
	EvaluatedAt          time.Time              `json:"evaluatedAt"`
	Conditions           []RoadConditionResult  `json:"conditions"`
	RoadConditionSummary string                 `json:"roadConditionSummary"`
	HazardAlerts         []HazardAlert          `json:"hazardAlerts"`
	BridgeAlerts         []BridgeClearanceAlert `json:"bridgeAlerts"`
	Summary              RouteSafetySummary     `json:"summary"`
	SafetyScore          *int                   `json:"safetyScore,omitempty"`
}

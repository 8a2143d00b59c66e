// Package domain classifies road conditions and ranks route hazards for RV
// and truck drivers.
//
// # Input
//
// A [RouteSnapshot] is one already-fetched picture of a planned route: the
// ordered waypoints with their weather, active weather-agency alerts, bridges
// with posted clearances, and the driver's vehicle profile. Snapshots arrive
// from the route-data collector as snake_case JSON. Nothing in this package
// performs network or disk I/O; every function is a pure transform over the
// snapshot and can be called concurrently.
//
// # Weather conventions
//
// Waypoint weather mirrors the forecast provider payload:
//
//	temperature  °F, may be null           → default 50
//	conditions   free text, may be null    → lower-cased token, default ""
//	wind_speed   "15 mph", "10 to 20 mph"  → first number, default 0
//
// # Road conditions
//
// [Classify] walks an ordered rule table ([ConditionRules]); the first
// matching rule wins. Temperature-gated precipitation (ICY, SNOW, SLUSH) is
// checked before fog, rain, storms and wind:
//
//	ICY    t ≤ 32 and rain|freezing|drizzle   severity 5
//	SNOW   t ≤ 32 and snow                    severity 4
//	SLUSH  32 < t ≤ 40 and snow               severity 3
//	FOG    fog|mist                           severity 3
//	WET    rain|shower|drizzle                severity 2
//	STORM  thunder|storm                      severity 4
//	WINDY  wind > 30 mph                      severity 2
//	DRY    otherwise                          severity 0
//
// # Alerts
//
// Upstream severities (NWS vocabulary: Extreme, Severe, Moderate, Minor,
// Unknown) collapse into three tiers: extreme, high, medium. Alerts are
// anchored to the nearest waypoint, filtered to those issued in the trailing
// window (2h by default), sorted by tier then ETA, and capped (10 by default).
// Issuance up to [MaxClockSkew] ahead of the evaluation clock counts as now.
//
// # Bridges
//
// Clearance screening only runs for height-aware profiles. A height that is
// zero or negative is treated as unset. A bridge is flagged
// when vehicle height plus the safety margin (0.5 ft by default) reaches the
// posted clearance. OpenStreetMap maxheight tags are accepted as a fallback
// clearance source, see [ParseMaxHeight].
//
// # Reroute
//
// [Summarize] recommends a reroute for any bridge conflict, any extreme alert,
// or a worst road condition of ICY or STORM. The externally supplied safety
// score is echoed when it lies in 0-100 and is never recomputed.
package domain

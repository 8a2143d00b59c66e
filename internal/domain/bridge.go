package domain

import (
	"cmp"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

const (
	// DefaultSafetyMarginFt covers antenna, AC unit and load variance on top
	// of the declared vehicle height.
	DefaultSafetyMarginFt = 0.5

	feetPerMeter       = 3.28084
	clearanceTolerance = 1e-9
	unnamedBridge      = "Bridge/Overpass"
)

var (
	// feetInchesRe matches imperial heights: 13'6", 13' 6", 13.5'.
	feetInchesRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*'\s*(?:(\d+(?:\.\d+)?)\s*(?:"|''))?$`)

	// feetRe matches heights with an explicit feet unit: "14 ft".
	feetRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:ft|feet)$`)

	// metersRe matches plain numbers and meters: "4.2", "4.2 m". OpenStreetMap
	// defaults to meters when no unit is given.
	metersRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*m?$`)
)

// ScreenConfig tunes bridge screening.
type ScreenConfig struct {
	SafetyMarginFt float64

	// Route locates bridges that lack a distance_miles value.
	Route orb.LineString
}

// ScreenBridges flags bridges the vehicle may not clear, nearest first.
// It returns an empty list unless trucker mode is on and a height is set.
// The profile height is authoritative over any height echoed on the bridge
// record. Bridges without a usable clearance or distance are skipped.
func ScreenBridges(bridges []BridgeRecord, vehicleHeightFt *float64, truckerModeEnabled bool, cfg ScreenConfig) []BridgeClearanceAlert {
	alerts := []BridgeClearanceAlert{}
	if !truckerModeEnabled || vehicleHeightFt == nil {
		return alerts
	}
	height := *vehicleHeightFt

	for _, b := range bridges {
		if !validBridge(b) {
			continue
		}
		clearance, ok := bridgeClearance(b)
		if !ok {
			continue
		}
		distance, ok := bridgeDistance(b, cfg.Route)
		if !ok {
			continue
		}
		if height+cfg.SafetyMarginFt < clearance-clearanceTolerance {
			continue
		}

		name := strings.TrimSpace(b.BridgeName)
		if name == "" {
			name = unnamedBridge
		}
		alerts = append(alerts, BridgeClearanceAlert{
			BridgeName:      name,
			ClearanceFt:     clearance,
			VehicleHeightFt: height,
			DistanceMiles:   distance,
			Warning:         clearanceWarning(name, clearance, height, cfg.SafetyMarginFt),
		})
	}

	slices.SortStableFunc(alerts, func(a, b BridgeClearanceAlert) int {
		return cmp.Compare(a.DistanceMiles, b.DistanceMiles)
	})
	return alerts
}

func clearanceWarning(name string, clearance, height, margin float64) string {
	if height >= clearance {
		return fmt.Sprintf("DANGER: %s clearance %.1f ft is at or below vehicle height %.1f ft - do not attempt",
			name, clearance, height)
	}
	return fmt.Sprintf("CAUTION: %s clearance %.1f ft vs vehicle height %.1f ft - within %.1f ft safety margin",
		name, clearance, height, margin)
}

func bridgeClearance(b BridgeRecord) (float64, bool) {
	if b.ClearanceFt != nil {
		return *b.ClearanceFt, *b.ClearanceFt > 0
	}
	return ParseMaxHeight(b.MaxHeight)
}

func bridgeDistance(b BridgeRecord, route orb.LineString) (float64, bool) {
	if b.DistanceMiles != nil {
		return *b.DistanceMiles, true
	}
	if b.Latitude == nil || b.Longitude == nil {
		return 0, false
	}
	return alongRouteMiles(route, orb.Point{*b.Longitude, *b.Latitude})
}

// ParseMaxHeight converts an OpenStreetMap maxheight tag to feet, rounded to
// a tenth. Accepted forms: "4.2", "4.2 m", "13'6\"", "13.5'", "14 ft".
// Sentinels such as "default", "none" and "below_default" report false.
func ParseMaxHeight(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "", "default", "none", "no", "unsigned", "below_default":
		return 0, false
	}

	var feet float64
	if m := feetInchesRe.FindStringSubmatch(s); m != nil {
		ft, _ := strconv.ParseFloat(m[1], 64)
		var in float64
		if m[2] != "" {
			in, _ = strconv.ParseFloat(m[2], 64)
		}
		feet = ft + in/12
	} else if m := feetRe.FindStringSubmatch(s); m != nil {
		feet, _ = strconv.ParseFloat(m[1], 64)
	} else if m := metersRe.FindStringSubmatch(s); m != nil {
		meters, _ := strconv.ParseFloat(m[1], 64)
		feet = meters * feetPerMeter
	} else {
		return 0, false
	}

	if feet <= 0 {
		return 0, false
	}
	return math.Round(feet*10) / 10, true
}

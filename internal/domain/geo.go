package domain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	polyline "github.com/twpayne/go-polyline"
)

const (
	metersPerMile = 1609.344

	// maxOffRouteMiles is how far a bridge may sit from the route line and
	// still count as on the route.
	maxOffRouteMiles = 0.5
)

// DecodeRoute decodes a Google encoded polyline (precision 5) into a line.
// An empty string decodes to an empty line.
func DecodeRoute(encoded string) (orb.LineString, error) {
	if encoded == "" {
		return orb.LineString{}, nil
	}
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode route geometry: %w", err)
	}
	line := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		// polyline coordinates are [lat, lng]; orb points are [lon, lat].
		line = append(line, orb.Point{c[1], c[0]})
	}
	return line, nil
}

// alongRouteMiles returns the route distance from the first vertex to the
// vertex nearest p. It reports false for an empty route or when p lies more
// than maxOffRouteMiles from every vertex.
func alongRouteMiles(route orb.LineString, p orb.Point) (float64, bool) {
	if len(route) == 0 {
		return 0, false
	}

	nearest, nearestDist := 0, math.Inf(1)
	for i, v := range route {
		if d := geo.Distance(p, v); d < nearestDist {
			nearest, nearestDist = i, d
		}
	}
	if nearestDist/metersPerMile > maxOffRouteMiles {
		return 0, false
	}

	var meters float64
	for i := 1; i <= nearest; i++ {
		meters += geo.Distance(route[i-1], route[i])
	}
	return meters / metersPerMile, true
}

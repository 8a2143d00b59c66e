package pipeline

import (
	"context"
	"log/slog"
	"slices"

	"github.com/couchcryptid/route-hazard-engine/internal/domain"
	"golang.org/x/sync/errgroup"
)

// geocodeConcurrency bounds in-flight reverse geocoding calls per snapshot.
const geocodeConcurrency = 4

// EnrichWaypointNames fills in display names for unnamed waypoints that carry
// coordinates. Lookup failures are logged and leave the name unset; the
// evaluation then falls back to a mile marker. The input slice is not modified.
func EnrichWaypointNames(ctx context.Context, geocoder domain.Geocoder, waypoints []domain.Waypoint, logger *slog.Logger) []domain.Waypoint {
	if geocoder == nil {
		return waypoints
	}

	enriched := slices.Clone(waypoints)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(geocodeConcurrency)

	for i := range enriched {
		wp := &enriched[i]
		if wp.Name != "" || !wp.HasCoordinates() {
			continue
		}
		g.Go(func() error {
			result, err := geocoder.ReverseGeocode(gCtx, *wp.Lat, *wp.Lon)
			if err != nil {
				logger.Warn("reverse geocoding failed",
					"error", err, "lat", *wp.Lat, "lon", *wp.Lon)
				// Do not propagate; other waypoints may still resolve.
				return nil
			}
			wp.Name = displayName(result)
			return nil
		})
	}

	_ = g.Wait()
	return enriched
}

func displayName(r domain.GeocodingResult) string {
	if r.PlaceName != "" {
		return r.PlaceName
	}
	return r.FormattedAddress
}

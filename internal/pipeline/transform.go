package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/route-hazard-engine/internal/domain"
	"github.com/couchcryptid/route-hazard-engine/internal/observability"
)

// RouteTransformer implements Transformer by evaluating route snapshots.
type RouteTransformer struct {
	evaluator *domain.Evaluator
	geocoder  domain.Geocoder
	gate      *VersionGate
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewTransformer creates a RouteTransformer. Pass a nil geocoder to disable
// waypoint name enrichment and a nil gate to publish every version.
func NewTransformer(evaluator *domain.Evaluator, geocoder domain.Geocoder, gate *VersionGate, metrics *observability.Metrics, logger *slog.Logger) *RouteTransformer {
	return &RouteTransformer{
		evaluator: evaluator,
		geocoder:  geocoder,
		gate:      gate,
		metrics:   metrics,
		logger:    logger,
	}
}

// Transform parses, evaluates, and serializes one snapshot message. It returns
// an error wrapping domain.ErrStaleSnapshot when a newer version of the route
// has already been published.
func (t *RouteTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	snapshot, err := domain.ParseRouteSnapshot(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	if err := domain.ValidateSnapshot(snapshot); err != nil {
		return domain.OutputEvent{}, err
	}

	if t.gate != nil && !t.gate.Admit(snapshot.RouteID, snapshot.Version) {
		return domain.OutputEvent{}, fmt.Errorf("route %s version %d: %w", snapshot.RouteID, snapshot.Version, domain.ErrStaleSnapshot)
	}

	evaluation := t.Evaluate(ctx, snapshot)
	return domain.SerializeEvaluation(evaluation)
}

// Evaluate enriches waypoint names and runs the engine on an already
// validated snapshot.
func (t *RouteTransformer) Evaluate(ctx context.Context, snapshot domain.RouteSnapshot) domain.RouteEvaluation {
	snapshot.Waypoints = EnrichWaypointNames(ctx, t.geocoder, snapshot.Waypoints, t.logger)

	evaluation := t.evaluator.Evaluate(snapshot)
	t.recordMetrics(evaluation)
	return evaluation
}

func (t *RouteTransformer) recordMetrics(ev domain.RouteEvaluation) {
	t.metrics.HazardAlertsPerRoute.Observe(float64(len(ev.HazardAlerts)))
	if !ev.Summary.RerouteRecommended {
		return
	}
	t.metrics.RerouteRecommended.WithLabelValues(rerouteCause(ev)).Inc()
	t.logger.Info("reroute recommended",
		"route_id", ev.RouteID,
		"version", ev.Version,
		"worst_condition", ev.Summary.WorstConditionCode,
		"bridge_alerts", len(ev.BridgeAlerts),
	)
}

// rerouteCause names the first trigger in reason order.
func rerouteCause(ev domain.RouteEvaluation) string {
	if len(ev.BridgeAlerts) > 0 {
		return "bridge"
	}
	for _, a := range ev.HazardAlerts {
		if a.SeverityTier == domain.TierExtreme {
			return "alert"
		}
	}
	return "condition"
}

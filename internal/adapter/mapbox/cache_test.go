package mapbox

import (
	"context"
	"errors"
	"testing"

	"github.com/couchcryptid/route-hazard-engine/internal/domain"
	"github.com/couchcryptid/route-hazard-engine/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGeocoder struct {
	calls  int
	result domain.GeocodingResult
	err    error
}

func (m *countingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{PlaceName: "Pueblo", FormattedAddress: "Pueblo, Colorado, United States"},
	}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedGeocoder(inner, 10, metrics)

	r1, err := cached.ReverseGeocode(context.Background(), 38.2544, -104.6091)
	require.NoError(t, err)
	r2, err := cached.ReverseGeocode(context.Background(), 38.2544, -104.6091)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("miss")))
}

func TestCachedGeocoder_DifferentKeysMiss(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{PlaceName: "Place", FormattedAddress: "Place, CO"},
	}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.ReverseGeocode(context.Background(), 39.7392, -104.9903)
	_, _ = cached.ReverseGeocode(context.Background(), 38.8339, -104.8214)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.ReverseGeocode(context.Background(), 41.0, -107.0)
	_, _ = cached.ReverseGeocode(context.Background(), 41.0, -107.0)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_ErrorNotCached(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("boom")}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.ReverseGeocode(context.Background(), 41.0, -107.0)
	require.Error(t, err)

	inner.err = nil
	inner.result = domain.GeocodingResult{FormattedAddress: "Rawlins, Wyoming"}
	result, err := cached.ReverseGeocode(context.Background(), 41.0, -107.0)
	require.NoError(t, err)
	assert.Equal(t, "Rawlins, Wyoming", result.FormattedAddress)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{PlaceName: "Limon", FormattedAddress: "Limon, Colorado, United States"}}
	cached := NewCachedGeocoder(inner, 1, observability.NewMetricsForTesting())
	ctx := context.Background()

	_, _ = cached.ReverseGeocode(ctx, 39.26, -103.69)
	_, _ = cached.ReverseGeocode(ctx, 38.83, -102.35)
	_, _ = cached.ReverseGeocode(ctx, 39.26, -103.69)

	assert.Equal(t, 3, inner.calls, "first key should have been evicted by the second")
}

func TestCachedGeocoder_NonPositiveSize(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{PlaceName: "Limon", FormattedAddress: "Limon, Colorado, United States"}}
	cached := NewCachedGeocoder(inner, 0, observability.NewMetricsForTesting())

	for i := 0; i < 2; i++ {
		_, err := cached.ReverseGeocode(context.Background(), 39.26, -103.69)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.calls)
}

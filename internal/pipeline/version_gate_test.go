package pipeline_test

import (
	"testing"

	"github.com/couchcryptid/route-hazard-engine/internal/pipeline"
	"github.com/stretchr/testify/assert"
)

func TestVersionGate_Admit(t *testing.T) {
	gate := pipeline.NewVersionGate(10)

	steps := []struct {
		routeID string
		version int64
		admit   bool
	}{
		{"route-a", 3, true},
		{"route-a", 2, false},
		{"route-a", 3, true},
		{"route-a", 4, true},
		{"route-a", 3, false},
		{"route-b", 1, true},
		{"", 0, true},
		{"", 0, true},
	}

	for _, s := range steps {
		assert.Equal(t, s.admit, gate.Admit(s.routeID, s.version), "route=%q version=%d", s.routeID, s.version)
	}
}

func TestVersionGate_EvictedRouteIsNew(t *testing.T) {
	gate := pipeline.NewVersionGate(1)

	assert.True(t, gate.Admit("route-a", 5))
	assert.True(t, gate.Admit("route-b", 1))
	assert.True(t, gate.Admit("route-a", 1), "route-a was evicted and is no longer tracked")
}

func TestVersionGate_NonPositiveSize(t *testing.T) {
	gate := pipeline.NewVersionGate(0)

	assert.True(t, gate.Admit("route-a", 2))
	assert.False(t, gate.Admit("route-a", 1))
}

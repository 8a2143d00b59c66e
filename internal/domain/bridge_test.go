package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	polyline "github.com/twpayne/go-polyline"
)

func marginConfig() ScreenConfig {
	return ScreenConfig{SafetyMarginFt: DefaultSafetyMarginFt}
}

func TestScreenBridges_SafetyMargin(t *testing.T) {
	bridges := []BridgeRecord{{BridgeName: "Main St Overpass", ClearanceFt: ptr(12.0), DistanceMiles: ptr(4.0)}}

	t.Run("within margin", func(t *testing.T) {
		result := ScreenBridges(bridges, ptr(11.6), true, marginConfig())
		require.Len(t, result, 1)
		assert.Equal(t, "Main St Overpass", result[0].BridgeName)
		assert.Equal(t, 12.0, result[0].ClearanceFt)
		assert.Equal(t, 11.6, result[0].VehicleHeightFt)
		assert.Equal(t, 4.0, result[0].DistanceMiles)
	})

	t.Run("clears with margin to spare", func(t *testing.T) {
		assert.Empty(t, ScreenBridges(bridges, ptr(11.0), true, marginConfig()))
	})

	t.Run("exactly at margin", func(t *testing.T) {
		assert.Len(t, ScreenBridges(bridges, ptr(11.5), true, marginConfig()), 1)
	})

	t.Run("zero margin", func(t *testing.T) {
		assert.Empty(t, ScreenBridges(bridges, ptr(11.6), true, ScreenConfig{}))
	})
}

func TestScreenBridges_Disabled(t *testing.T) {
	bridges := []BridgeRecord{{BridgeName: "Low Bridge", ClearanceFt: ptr(10.0), DistanceMiles: ptr(1.0)}}

	t.Run("trucker mode off", func(t *testing.T) {
		result := ScreenBridges(bridges, ptr(13.5), false, marginConfig())
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("height unset", func(t *testing.T) {
		result := ScreenBridges(bridges, nil, true, marginConfig())
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})
}

func TestScreenBridges_WarningText(t *testing.T) {
	bridges := []BridgeRecord{
		{BridgeName: "Railroad Underpass", ClearanceFt: ptr(12.0), DistanceMiles: ptr(8.0)},
		{BridgeName: "Canal Bridge", ClearanceFt: ptr(13.9), DistanceMiles: ptr(3.0)},
	}

	result := ScreenBridges(bridges, ptr(13.5), true, marginConfig())

	require.Len(t, result, 2)
	assert.Equal(t, "CAUTION: Canal Bridge clearance 13.9 ft vs vehicle height 13.5 ft - within 0.5 ft safety margin", result[0].Warning)
	assert.Equal(t, "DANGER: Railroad Underpass clearance 12.0 ft is at or below vehicle height 13.5 ft - do not attempt", result[1].Warning)
}

func TestScreenBridges_SortedByDistance(t *testing.T) {
	bridges := []BridgeRecord{
		{BridgeName: "C", ClearanceFt: ptr(12.0), DistanceMiles: ptr(30.0)},
		{BridgeName: "A", ClearanceFt: ptr(12.0), DistanceMiles: ptr(2.0)},
		{BridgeName: "B1", ClearanceFt: ptr(12.0), DistanceMiles: ptr(15.0)},
		{BridgeName: "B2", ClearanceFt: ptr(11.0), DistanceMiles: ptr(15.0)},
	}

	result := ScreenBridges(bridges, ptr(13.0), true, marginConfig())

	names := make([]string, 0, len(result))
	for _, b := range result {
		names = append(names, b.BridgeName)
	}
	assert.Equal(t, []string{"A", "B1", "B2", "C"}, names)
}

func TestScreenBridges_ProfileHeightIsAuthoritative(t *testing.T) {
	bridges := []BridgeRecord{{BridgeName: "Overpass", ClearanceFt: ptr(14.0), VehicleHeightFt: ptr(20.0), DistanceMiles: ptr(1.0)}}

	assert.Empty(t, ScreenBridges(bridges, ptr(10.0), true, marginConfig()))
}

func TestScreenBridges_MaxHeightFallback(t *testing.T) {
	bridges := []BridgeRecord{{BridgeName: "Old Stone Arch", MaxHeight: `13'6"`, DistanceMiles: ptr(6.5)}}

	result := ScreenBridges(bridges, ptr(13.2), true, marginConfig())

	require.Len(t, result, 1)
	assert.Equal(t, 13.5, result[0].ClearanceFt)
}

func TestScreenBridges_MalformedSkipped(t *testing.T) {
	bridges := []BridgeRecord{
		{BridgeName: "No clearance", DistanceMiles: ptr(1.0)},
		{BridgeName: "Sentinel clearance", MaxHeight: "default", DistanceMiles: ptr(1.0)},
		{BridgeName: "Zero clearance", ClearanceFt: ptr(0.0), DistanceMiles: ptr(1.0)},
		{BridgeName: "No distance", ClearanceFt: ptr(12.0)},
		{BridgeName: "Bad coordinates", ClearanceFt: ptr(12.0), DistanceMiles: ptr(1.0), Latitude: ptr(95.0), Longitude: ptr(-100.0)},
		{ClearanceFt: ptr(12.0), DistanceMiles: ptr(2.0)},
	}

	result := ScreenBridges(bridges, ptr(12.0), true, marginConfig())

	require.Len(t, result, 1)
	assert.Equal(t, unnamedBridge, result[0].BridgeName)
}

func TestScreenBridges_AlongRouteDistance(t *testing.T) {
	// Due south along the -105 meridian; each 0.1° step is about 6.9 miles.
	encoded := polyline.EncodeCoords([][]float64{
		{39.0, -105.0},
		{38.9, -105.0},
		{38.8, -105.0},
		{38.7, -105.0},
	})
	route, err := DecodeRoute(string(encoded))
	require.NoError(t, err)
	require.Len(t, route, 4)

	bridges := []BridgeRecord{
		{BridgeName: "On route", ClearanceFt: ptr(12.0), Latitude: ptr(38.8), Longitude: ptr(-105.0)},
		{BridgeName: "Off route", ClearanceFt: ptr(12.0), Latitude: ptr(38.8), Longitude: ptr(-104.5)},
	}

	result := ScreenBridges(bridges, ptr(12.0), true, ScreenConfig{SafetyMarginFt: 0.5, Route: route})

	require.Len(t, result, 1)
	assert.Equal(t, "On route", result[0].BridgeName)
	assert.InDelta(t, 13.83, result[0].DistanceMiles, 0.05)
}

func TestDecodeRoute(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		route, err := DecodeRoute("")
		require.NoError(t, err)
		assert.Empty(t, route)
	})

	t.Run("known polyline", func(t *testing.T) {
		// Reference polyline from the encoding format documentation.
		route, err := DecodeRoute("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
		require.NoError(t, err)
		require.Len(t, route, 3)
		assert.InDelta(t, -120.2, route[0].Lon(), 1e-6)
		assert.InDelta(t, 38.5, route[0].Lat(), 1e-6)
		assert.InDelta(t, -126.453, route[2].Lon(), 1e-6)
		assert.InDelta(t, 43.252, route[2].Lat(), 1e-6)
	})

	t.Run("corrupt", func(t *testing.T) {
		_, err := DecodeRoute("_p~iF~ps|U_")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode route geometry")
	})
}

func TestParseMaxHeight(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"4.2", 13.8, true},
		{"4.2 m", 13.8, true},
		{"3.5M", 11.5, true},
		{`13'6"`, 13.5, true},
		{`13' 6"`, 13.5, true},
		{"13.5'", 13.5, true},
		{"14'", 14.0, true},
		{"14 ft", 14.0, true},
		{"default", 0, false},
		{"none", 0, false},
		{"below_default", 0, false},
		{"", 0, false},
		{"0", 0, false},
		{"tall", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseMaxHeight(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		obs      WaypointObservation
		expected ConditionCode
		severity int
	}{
		{"freezing light rain", WaypointObservation{TemperatureF: 28, ConditionToken: "light rain"}, ConditionIcy, 5},
		{"freezing drizzle at 32", WaypointObservation{TemperatureF: 32, ConditionToken: "freezing drizzle"}, ConditionIcy, 5},
		{"rain beats storm when freezing", WaypointObservation{TemperatureF: 30, ConditionToken: "thunderstorm with rain"}, ConditionIcy, 5},
		{"snow below freezing", WaypointObservation{TemperatureF: 30, ConditionToken: "snow"}, ConditionSnow, 4},
		{"snow just above freezing", WaypointObservation{TemperatureF: 34, ConditionToken: "snow"}, ConditionSlush, 3},
		{"snow showers at 40", WaypointObservation{TemperatureF: 40, ConditionToken: "snow showers"}, ConditionSlush, 3},
		{"patchy fog", WaypointObservation{TemperatureF: 45, ConditionToken: "patchy fog"}, ConditionFog, 3},
		{"mist", WaypointObservation{TemperatureF: 45, ConditionToken: "mist"}, ConditionFog, 3},
		{"fog beats rain", WaypointObservation{TemperatureF: 45, ConditionToken: "rain and fog"}, ConditionFog, 3},
		{"light rain", WaypointObservation{TemperatureF: 55, ConditionToken: "light rain"}, ConditionWet, 2},
		{"showers beat thunderstorms", WaypointObservation{TemperatureF: 60, ConditionToken: "chance showers and thunderstorms"}, ConditionWet, 2},
		{"thunderstorms", WaypointObservation{TemperatureF: 70, ConditionToken: "thunderstorms"}, ConditionStorm, 4},
		{"strong wind", WaypointObservation{TemperatureF: 70, ConditionToken: "sunny", WindMph: 35}, ConditionWindy, 2},
		{"wind at threshold", WaypointObservation{TemperatureF: 70, ConditionToken: "sunny", WindMph: 30}, ConditionDry, 0},
		{"defaults", WaypointObservation{TemperatureF: 50}, ConditionDry, 0},
		{"unknown token", WaypointObservation{TemperatureF: 50, ConditionToken: "volcanic ash"}, ConditionDry, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.obs)
			assert.Equal(t, tt.expected, result.Code)
			assert.Equal(t, tt.severity, result.Severity)
			assert.NotEmpty(t, result.Label)
			assert.NotEmpty(t, result.Icon)
			assert.NotEmpty(t, result.Color)
			assert.NotEmpty(t, result.Description)
			assert.NotEmpty(t, result.SurfaceAdvice)
		})
	}
}

func TestClassify_FreezingRainIsAlwaysIcy(t *testing.T) {
	tokens := []string{"rain", "light rain", "freezing rain", "rain and snow"}
	for temp := -40.0; temp <= 32; temp += 0.5 {
		for _, token := range tokens {
			result := Classify(WaypointObservation{TemperatureF: temp, ConditionToken: token})
			require.Equal(t, ConditionIcy, result.Code, "temp=%v token=%q", temp, token)
		}
	}
}

func TestClassify_SnowAboveFreezingIsSlush(t *testing.T) {
	tokens := []string{"snow", "light snow", "snow showers", "heavy snow"}
	for temp := 32.25; temp <= 40; temp += 0.25 {
		for _, token := range tokens {
			result := Classify(WaypointObservation{TemperatureF: temp, ConditionToken: token})
			require.Equal(t, ConditionSlush, result.Code, "temp=%v token=%q", temp, token)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	obs := WaypointObservation{TemperatureF: 28, ConditionToken: "light rain", WindMph: 12}

	first := Classify(obs)
	second := Classify(obs)
	assert.Equal(t, first, second)

	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestClassify_Descriptions(t *testing.T) {
	assert.Equal(t, "Freezing precipitation at 28°F", Classify(WaypointObservation{TemperatureF: 28, ConditionToken: "rain"}).Description)
	assert.Equal(t, "Strong winds at 42 mph", Classify(WaypointObservation{TemperatureF: 60, WindMph: 42}).Description)
	assert.Equal(t, "Good conditions - 50°F, clear", Classify(WaypointObservation{TemperatureF: 50}).Description)
	assert.Equal(t, "Good conditions - 65.5°F, partly cloudy", Classify(WaypointObservation{TemperatureF: 65.5, ConditionToken: "partly cloudy"}).Description)
}

func TestConditionRules_Order(t *testing.T) {
	rules := ConditionRules()

	codes := make([]ConditionCode, 0, len(rules))
	for _, r := range rules {
		codes = append(codes, r.Code)
	}
	assert.Equal(t, []ConditionCode{
		ConditionIcy, ConditionSnow, ConditionSlush, ConditionFog,
		ConditionWet, ConditionStorm, ConditionWindy, ConditionDry,
	}, codes)

	t.Run("last rule matches everything", func(t *testing.T) {
		assert.True(t, rules[len(rules)-1].Match(WaypointObservation{}))
	})

	t.Run("returned table is a copy", func(t *testing.T) {
		rules[0] = ConditionRule{Code: ConditionDry, Match: func(WaypointObservation) bool { return true }}
		assert.Equal(t, ConditionIcy, ConditionRules()[0].Code)
		assert.Equal(t, ConditionIcy, Classify(WaypointObservation{TemperatureF: 20, ConditionToken: "rain"}).Code)
	})

	t.Run("every code has a profile", func(t *testing.T) {
		for _, r := range ConditionRules() {
			_, ok := conditionProfiles[r.Code]
			assert.True(t, ok, string(r.Code))
		}
	})
}

func TestClassifyAll(t *testing.T) {
	t.Run("preserves order", func(t *testing.T) {
		results := ClassifyAll([]WaypointObservation{
			{TemperatureF: 28, ConditionToken: "light rain"},
			{TemperatureF: 70, ConditionToken: "thunderstorms"},
			{TemperatureF: 50},
		})
		require.Len(t, results, 3)
		assert.Equal(t, ConditionIcy, results[0].Code)
		assert.Equal(t, ConditionStorm, results[1].Code)
		assert.Equal(t, ConditionDry, results[2].Code)
	})

	t.Run("empty input", func(t *testing.T) {
		results := ClassifyAll(nil)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})
}

func TestSummarizeRoadConditions(t *testing.T) {
	tests := []struct {
		name     string
		codes    []WaypointObservation
		expected string
	}{
		{"all dry", []WaypointObservation{{TemperatureF: 50}, {TemperatureF: 60}}, "Good road conditions expected throughout your route"},
		{"empty", nil, "Good road conditions expected throughout your route"},
		{
			"mixed hazards in first-seen order",
			[]WaypointObservation{
				{TemperatureF: 30, ConditionToken: "snow"},
				{TemperatureF: 28, ConditionToken: "rain"},
				{TemperatureF: 50},
				{TemperatureF: 29, ConditionToken: "rain"},
			},
			"Road hazards detected: 1 segment with SNOW, 2 segments with ICY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SummarizeRoadConditions(ClassifyAll(tt.codes)))
		})
	}
}

package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWeather_KnownCities(t *testing.T) {
	tests := []struct {
		city     string
		fragment string
	}{
		{"New York", "sunny"},
		{"london", "cloudy"},
		{"TOKYO", "clear"},
		{"Hong Kong", "warm"},
	}

	for _, tt := range tests {
		t.Run(tt.city, func(t *testing.T) {
			result := GetWeather(tt.city)
			assert.Equal(t, "success", result["status"])
			report, _ := result["report"].(string)
			assert.Contains(t, report, tt.fragment)
			assert.Contains(t, report, tt.city)
		})
	}
}

func TestGetWeather_UnknownCity(t *testing.T) {
	result := GetWeather("Atlantis")
	assert.Equal(t, "error", result["status"])
	assert.Contains(t, result["error_message"], "Atlantis")
	_, hasReport := result["report"]
	assert.False(t, hasReport)
}

func TestGetCurrentTime_KnownCity(t *testing.T) {
	result := GetCurrentTime("Tokyo")
	require.Equal(t, "success", result["status"])

	report, _ := result["report"].(string)
	assert.True(t, strings.HasPrefix(report, "The current time in Tokyo is "))
	// Tokyo has no DST; the offset is stable.
	assert.Contains(t, report, "+0900")
}

func TestGetCurrentTime_UnknownCity(t *testing.T) {
	result := GetCurrentTime("Gotham")
	assert.Equal(t, "error", result["status"])
	assert.Contains(t, result["error_message"], "Gotham")
}

func TestNew_Definition(t *testing.T) {
	def := New()
	assert.Equal(t, "weather_time_agent", def.Name)
	assert.NotEmpty(t, def.Instruction)
	require.Len(t, def.Tools, 2)

	assert.NotNil(t, def.FindTool("get_weather"))
	assert.NotNil(t, def.FindTool("get_current_time"))
	assert.Nil(t, def.FindTool("get_stock_price"))
}

func TestWeatherTool_CallThroughSchema(t *testing.T) {
	def := New()
	weather := def.FindTool("get_weather")
	require.NotNil(t, weather)

	result, err := weather.Call(context.Background(), map[string]any{"city": "Paris"})
	require.NoError(t, err)

	m, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "success", m["status"])

	_, err = weather.Call(context.Background(), map[string]any{})
	assert.Error(t, err, "missing required city argument must fail validation")
}

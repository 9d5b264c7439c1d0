package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gcpdemos/agentspace-agent/tool"
)

// Mock weather data for demonstration. In production this would call a real
// weather API.
var mockWeatherData = map[string]string{
	"new york":    "sunny with a temperature of 25 degrees Celsius (77 degrees Fahrenheit)",
	"london":      "cloudy with a temperature of 15 degrees Celsius (59 degrees Fahrenheit)",
	"tokyo":       "clear with a temperature of 28 degrees Celsius (82 degrees Fahrenheit)",
	"paris":       "rainy with a temperature of 18 degrees Celsius (64 degrees Fahrenheit)",
	"sydney":      "partly cloudy with a temperature of 22 degrees Celsius (72 degrees Fahrenheit)",
	"los angeles": "sunny with a temperature of 26 degrees Celsius (79 degrees Fahrenheit)",
	"chicago":     "windy with a temperature of 20 degrees Celsius (68 degrees Fahrenheit)",
	"singapore":   "humid with a temperature of 30 degrees Celsius (86 degrees Fahrenheit)",
	"dubai":       "hot and sunny with a temperature of 35 degrees Celsius (95 degrees Fahrenheit)",
	"hong kong":   "warm with a temperature of 27 degrees Celsius (81 degrees Fahrenheit)",
}

// IANA timezone identifiers for the supported cities.
var cityTimezones = map[string]string{
	"new york":    "America/New_York",
	"london":      "Europe/London",
	"tokyo":       "Asia/Tokyo",
	"paris":       "Europe/Paris",
	"sydney":      "Australia/Sydney",
	"los angeles": "America/Los_Angeles",
	"chicago":     "America/Chicago",
	"singapore":   "Asia/Singapore",
	"dubai":       "Asia/Dubai",
	"hong kong":   "Asia/Hong_Kong",
}

// GetWeather retrieves the current weather report for a specified city.
// The result map carries a status plus either a report or an error_message,
// mirroring the shape the hosted agent returns from its tools.
func GetWeather(city string) map[string]any {
	report, ok := mockWeatherData[strings.ToLower(city)]
	if !ok {
		return map[string]any{
			"status":        "error",
			"error_message": fmt.Sprintf("Weather information for '%s' is not available.", city),
		}
	}
	return map[string]any{
		"status": "success",
		"report": fmt.Sprintf("The weather in %s is %s.", city, report),
	}
}

// GetCurrentTime returns the current time in a specified city.
func GetCurrentTime(city string) map[string]any {
	tzID, ok := cityTimezones[strings.ToLower(city)]
	if !ok {
		return map[string]any{
			"status":        "error",
			"error_message": fmt.Sprintf("Sorry, I don't have timezone information for %s.", city),
		}
	}
	loc, err := time.LoadLocation(tzID)
	if err != nil {
		return map[string]any{
			"status":        "error",
			"error_message": fmt.Sprintf("Timezone database entry for %s is unavailable.", city),
		}
	}
	now := time.Now().In(loc)
	return map[string]any{
		"status": "success",
		"report": fmt.Sprintf("The current time in %s is %s", city, now.Format("2006-01-02 15:04:05 MST-0700")),
	}
}

func citySchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"city": map[string]any{
				"type":        "string",
				"description": "The name of the city, e.g. 'New York'",
			},
		},
		"required": []string{"city"},
	}
}

// NewWeatherTool wraps GetWeather as a callable tool.
func NewWeatherTool() tool.Tool {
	return tool.NewFunctionTool(
		"get_weather",
		"Retrieves the current weather report for a specified city",
		citySchema(),
		func(_ context.Context, args map[string]any) (any, error) {
			city, _ := args["city"].(string)
			return GetWeather(city), nil
		},
	)
}

// NewCurrentTimeTool wraps GetCurrentTime as a callable tool.
func NewCurrentTimeTool() tool.Tool {
	return tool.NewFunctionTool(
		"get_current_time",
		"Returns the current time in a specified city",
		citySchema(),
		func(_ context.Context, args map[string]any) (any, error) {
			city, _ := args["city"].(string)
			return GetCurrentTime(city), nil
		},
	)
}

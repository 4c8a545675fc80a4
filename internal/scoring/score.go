// Package scoring computes the travel suitability score and the advice derived from it.
package scoring

import "github.com/ngmaloney/travel-terminal/internal/models"

// Sub-score maxima, used to scale the breakdown bars.
const (
	MaxWeather = 40
	MaxEco     = 30
	MaxCost    = 30
	MaxTotal   = MaxWeather + MaxEco + MaxCost
)

// Weather thresholds. Wind is compared in whatever unit the upstream reports.
const (
	minComfortTempC = 10.0
	maxComfortTempC = 35.0
	maxHumidityPct  = 85
	maxWindSpeed    = 12.0

	tempPenalty     = 15
	humidityPenalty = 5
	windPenalty     = 5
)

// Eco distance bands in kilometers.
const (
	nearKm = 4000.0
	farKm  = 8000.0
)

// regionCost overrides the base cost score for regions considered more expensive to visit.
var regionCost = map[string]int{
	"Europe":   20,
	"Americas": 15,
	"Oceania":  10,
}

// ComputeScore combines weather, distance from home and region into a ScoreBreakdown.
func ComputeScore(w models.WeatherReading, distanceKm float64, region string) models.ScoreBreakdown {
	s := models.ScoreBreakdown{
		Weather: WeatherScore(w),
		Eco:     EcoScore(distanceKm),
		Cost:    CostScore(region),
	}
	s.Total = s.Weather + s.Eco + s.Cost
	return s
}

// WeatherScore starts at MaxWeather and subtracts independent penalties.
// The result is not clamped; with the current penalties it bottoms out at 15.
func WeatherScore(w models.WeatherReading) int {
	score := MaxWeather
	if w.TemperatureC < minComfortTempC || w.TemperatureC > maxComfortTempC {
		score -= tempPenalty
	}
	if w.HumidityPct > maxHumidityPct {
		score -= humidityPenalty
	}
	if w.WindSpeed > maxWindSpeed {
		score -= windPenalty
	}
	return score
}

// EcoScore rewards destinations closer to home.
func EcoScore(distanceKm float64) int {
	switch {
	case distanceKm > farKm:
		return 10
	case distanceKm > nearKm:
		return 20
	default:
		return MaxEco
	}
}

// CostScore maps a region to its cost heuristic. Unknown regions keep the base score.
func CostScore(region string) int {
	if c, ok := regionCost[region]; ok {
		return c
	}
	return MaxCost
}

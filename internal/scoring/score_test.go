package scoring

import (
	"testing"

	"github.com/ngmaloney/travel-terminal/internal/models"
)

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name     string
		weather  models.WeatherReading
		distance float64
		region   string
		want     models.ScoreBreakdown
	}{
		{
			name:     "ideal nearby asia",
			weather:  models.WeatherReading{TemperatureC: 20, HumidityPct: 50, WindSpeed: 5},
			distance: 1000,
			region:   "Asia",
			want:     models.ScoreBreakdown{Weather: 40, Eco: 30, Cost: 30, Total: 100},
		},
		{
			name:     "every penalty, far europe",
			weather:  models.WeatherReading{TemperatureC: 40, HumidityPct: 90, WindSpeed: 15},
			distance: 9000,
			region:   "Europe",
			want:     models.ScoreBreakdown{Weather: 15, Eco: 10, Cost: 20, Total: 45},
		},
		{
			name:     "cold mid-distance americas",
			weather:  models.WeatherReading{TemperatureC: 2, HumidityPct: 60, WindSpeed: 3},
			distance: 6000,
			region:   "Americas",
			want:     models.ScoreBreakdown{Weather: 25, Eco: 20, Cost: 15, Total: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(tt.weather, tt.distance, tt.region)
			if got != tt.want {
				t.Errorf("ComputeScore() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWeatherScore_Boundaries(t *testing.T) {
	tests := []struct {
		name    string
		weather models.WeatherReading
		want    int
	}{
		{"exactly 10C is comfortable", models.WeatherReading{TemperatureC: 10, HumidityPct: 50}, 40},
		{"exactly 35C is comfortable", models.WeatherReading{TemperatureC: 35, HumidityPct: 50}, 40},
		{"just below 10C", models.WeatherReading{TemperatureC: 9.9, HumidityPct: 50}, 25},
		{"just above 35C", models.WeatherReading{TemperatureC: 35.1, HumidityPct: 50}, 25},
		{"humidity 85 no penalty", models.WeatherReading{TemperatureC: 20, HumidityPct: 85}, 40},
		{"humidity 86 penalty", models.WeatherReading{TemperatureC: 20, HumidityPct: 86}, 35},
		{"wind 12 no penalty", models.WeatherReading{TemperatureC: 20, WindSpeed: 12}, 40},
		{"wind 12.1 penalty", models.WeatherReading{TemperatureC: 20, WindSpeed: 12.1}, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeatherScore(tt.weather); got != tt.want {
				t.Errorf("WeatherScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEcoScore(t *testing.T) {
	tests := []struct {
		distance float64
		want     int
	}{
		{0, 30},
		{4000, 30},
		{4000.1, 20},
		{8000, 20},
		{8000.1, 10},
		{20000, 10},
	}

	for _, tt := range tests {
		if got := EcoScore(tt.distance); got != tt.want {
			t.Errorf("EcoScore(%v) = %d, want %d", tt.distance, got, tt.want)
		}
	}
}

func TestCostScore(t *testing.T) {
	tests := []struct {
		region string
		want   int
	}{
		{"Europe", 20},
		{"Americas", 15},
		{"Oceania", 10},
		{"Asia", 30},
		{"Africa", 30},
		{"Antarctic", 30},
		{"", 30},
		{"europe", 30},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			if got := CostScore(tt.region); got != tt.want {
				t.Errorf("CostScore(%q) = %d, want %d", tt.region, got, tt.want)
			}
		})
	}
}

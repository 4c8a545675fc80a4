package models

// WeatherReading is a single current-conditions snapshot for a coordinate.
type WeatherReading struct {
	TemperatureC float64 // Celsius (units=metric)
	HumidityPct  int     // percent
	WindSpeed    float64 // as reported upstream, m/s under metric units
	Description  string  // e.g. "scattered clouds"
}

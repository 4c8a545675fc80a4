package models

import "time"

// ScoreBreakdown holds the travel suitability sub-scores and their sum.
type ScoreBreakdown struct {
	Weather int // 0-40
	Eco     int // 10, 20 or 30
	Cost    int // 10, 15, 20 or 30
	Total   int
}

// SearchResult is everything a single country search produces.
type SearchResult struct {
	Generation uint64
	Country    CountryProfile
	Weather    WeatherReading
	Home       Coordinate
	DistanceKm float64
	Score      ScoreBreakdown
	Advice     string
	FinishedAt time.Time
}

// HistoryEntry is a persisted summary of a past search.
type HistoryEntry struct {
	ID         int64
	Country    string
	Total      int
	Advice     string
	DistanceKm float64
	CreatedAt  time.Time
}

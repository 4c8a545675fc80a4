// Package travel runs a country search end to end: directory lookup, weather,
// distance from home, score and advice.
package travel

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ngmaloney/travel-terminal/internal/geo"
	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/obs"
	"github.com/ngmaloney/travel-terminal/internal/openweather"
	"github.com/ngmaloney/travel-terminal/internal/restcountries"
	"github.com/ngmaloney/travel-terminal/internal/scoring"
	"github.com/ngmaloney/travel-terminal/internal/upstream"
)

// CountryLister supplies the selectable country list
type CountryLister interface {
	List(ctx context.Context) ([]models.CountryProfile, error)
}

// HistoryStore records completed searches
type HistoryStore interface {
	Save(searchID string, result *models.SearchResult) (int64, error)
	Recent(limit int) ([]models.HistoryEntry, error)
}

// Service orchestrates a single search
type Service struct {
	directory restcountries.Directory
	weather   openweather.WeatherClient
	countries CountryLister
	history   HistoryStore
	now       func() time.Time
}

// NewService creates a search service. countries and history may be nil.
func NewService(directory restcountries.Directory, weather openweather.WeatherClient, countries CountryLister, history HistoryStore) *Service {
	return &Service{
		directory: directory,
		weather:   weather,
		countries: countries,
		history:   history,
		now:       time.Now,
	}
}

// Search fetches the named country and its capital's weather, then scores it
// relative to home. The steps run strictly in order; the first failure aborts.
func (s *Service) Search(ctx context.Context, name string, home models.Coordinate) (result *models.SearchResult, err error) {
	searchID := uuid.NewString()
	ctx = obs.WithSearchID(ctx, searchID)
	defer obs.Time(ctx, "search")(&err)

	country, err := s.directory.GetCountry(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching country: %w", err)
	}
	if !country.HasCoordinate {
		return nil, fmt.Errorf("%w: %s has no capital coordinate", upstream.ErrMalformed, country.Name)
	}

	reading, err := s.weather.GetCurrentWeather(ctx, country.Coordinate)
	if err != nil {
		return nil, fmt.Errorf("fetching weather for %s: %w", country.Name, err)
	}

	distance := geo.DistanceKm(home, country.Coordinate)
	score := scoring.ComputeScore(*reading, distance, country.Region)

	result = &models.SearchResult{
		Country:    *country,
		Weather:    *reading,
		Home:       home,
		DistanceKm: distance,
		Score:      score,
		Advice:     scoring.Advice(score.Total),
		FinishedAt: s.now(),
	}

	log.Printf("search_id=%s country=%q distance_km=%.0f weather=%d eco=%d cost=%d total=%d",
		searchID, country.Name, distance, score.Weather, score.Eco, score.Cost, score.Total)

	if s.history != nil {
		if _, herr := s.history.Save(searchID, result); herr != nil {
			log.Printf("search_id=%s op=save_history err=%v", searchID, herr)
		}
	}

	return result, nil
}

// Countries returns the selectable country list
func (s *Service) Countries(ctx context.Context) ([]models.CountryProfile, error) {
	if s.countries == nil {
		return nil, fmt.Errorf("no country list configured")
	}
	return s.countries.List(ctx)
}

// RecentSearches returns up to limit past searches, or nothing when history is disabled
func (s *Service) RecentSearches(limit int) ([]models.HistoryEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(limit)
}

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/travel-terminal/internal/countries"
	"github.com/ngmaloney/travel-terminal/internal/geo"
	"github.com/ngmaloney/travel-terminal/internal/geolocation"
	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/scoring"
	"github.com/ngmaloney/travel-terminal/internal/ui"
)

// This demo runs the full UI against canned data with no network access
func main() {
	log.SetOutput(io.Discard)

	svc := newDemoService()
	m := ui.NewModel(ui.Options{
		Service: svc,
		Locator: geolocation.StaticLocator{Coordinate: models.Coordinate{Lat: 51.5074, Lon: -0.1278}},
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

type demoService struct {
	mu        sync.Mutex
	countries []models.CountryProfile
	weather   map[string]models.WeatherReading
	history   []models.HistoryEntry
}

func newDemoService() *demoService {
	list := []models.CountryProfile{
		{Name: "Japan", Capital: "Tokyo", Region: "Asia", Population: 125836021, FlagURL: "https://flagcdn.com/w320/jp.png",
			Coordinate: models.Coordinate{Lat: 35.68, Lon: 139.75}, HasCoordinate: true},
		{Name: "France", Capital: "Paris", Region: "Europe", Population: 67391582, FlagURL: "https://flagcdn.com/w320/fr.png",
			Coordinate: models.Coordinate{Lat: 48.87, Lon: 2.33}, HasCoordinate: true},
		{Name: "Brazil", Capital: "Brasília", Region: "Americas", Population: 212559409, FlagURL: "https://flagcdn.com/w320/br.png",
			Coordinate: models.Coordinate{Lat: -15.79, Lon: -47.88}, HasCoordinate: true},
		{Name: "Australia", Capital: "Canberra", Region: "Oceania", Population: 25687041, FlagURL: "https://flagcdn.com/w320/au.png",
			Coordinate: models.Coordinate{Lat: -35.27, Lon: 149.13}, HasCoordinate: true},
		{Name: "Kenya", Capital: "Nairobi", Region: "Africa", Population: 53771300, FlagURL: "https://flagcdn.com/w320/ke.png",
			Coordinate: models.Coordinate{Lat: -1.28, Lon: 36.82}, HasCoordinate: true},
		{Name: "Iceland", Capital: "Reykjavik", Region: "Europe", Population: 366425, FlagURL: "https://flagcdn.com/w320/is.png",
			Coordinate: models.Coordinate{Lat: 64.15, Lon: -21.95}, HasCoordinate: true},
	}
	countries.SortByName(list)

	return &demoService{
		countries: list,
		weather: map[string]models.WeatherReading{
			"Japan":     {TemperatureC: 18.2, HumidityPct: 62, WindSpeed: 4.1, Description: "few clouds"},
			"France":    {TemperatureC: 21.5, HumidityPct: 48, WindSpeed: 3.6, Description: "clear sky"},
			"Brazil":    {TemperatureC: 27.9, HumidityPct: 88, WindSpeed: 2.2, Description: "light rain"},
			"Australia": {TemperatureC: 8.4, HumidityPct: 71, WindSpeed: 6.7, Description: "overcast clouds"},
			"Kenya":     {TemperatureC: 23.0, HumidityPct: 55, WindSpeed: 5.0, Description: "scattered clouds"},
			"Iceland":   {TemperatureC: 3.1, HumidityPct: 90, WindSpeed: 14.2, Description: "snow"},
		},
	}
}

func (d *demoService) Search(ctx context.Context, name string, home models.Coordinate) (*models.SearchResult, error) {
	select {
	case <-time.After(600 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	for _, c := range d.countries {
		if !strings.EqualFold(c.Name, name) {
			continue
		}
		w := d.weather[c.Name]
		distance := geo.DistanceKm(home, c.Coordinate)
		score := scoring.ComputeScore(w, distance, c.Region)
		result := &models.SearchResult{
			Country:    c,
			Weather:    w,
			Home:       home,
			DistanceKm: distance,
			Score:      score,
			Advice:     scoring.Advice(score.Total),
			FinishedAt: time.Now(),
		}
		d.mu.Lock()
		d.history = append([]models.HistoryEntry{{
			ID: int64(len(d.history) + 1), Country: c.Name, Total: score.Total,
			Advice: result.Advice, DistanceKm: distance, CreatedAt: result.FinishedAt,
		}}, d.history...)
		d.mu.Unlock()
		return result, nil
	}
	return nil, fmt.Errorf("unknown country %q", name)
}

func (d *demoService) Countries(ctx context.Context) ([]models.CountryProfile, error) {
	return d.countries, nil
}

func (d *demoService) RecentSearches(limit int) ([]models.HistoryEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := min(len(d.history), limit)
	return append([]models.HistoryEntry(nil), d.history[:n]...), nil
}

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/travel-terminal/internal/config"
	"github.com/ngmaloney/travel-terminal/internal/countries"
	"github.com/ngmaloney/travel-terminal/internal/database"
	"github.com/ngmaloney/travel-terminal/internal/geolocation"
	"github.com/ngmaloney/travel-terminal/internal/history"
	"github.com/ngmaloney/travel-terminal/internal/openweather"
	"github.com/ngmaloney/travel-terminal/internal/restcountries"
	"github.com/ngmaloney/travel-terminal/internal/travel"
	"github.com/ngmaloney/travel-terminal/internal/ui"
	"github.com/ngmaloney/travel-terminal/internal/worldmap"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Anything written to the terminal would corrupt the alt screen.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "travel-terminal")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("op=config warning=%q", "OPENWEATHER_API_KEY not set; searches will fail")
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	directory := restcountries.NewClient(cfg.RestCountriesURL, cfg.HTTPTimeout)
	weather := openweather.NewClient(cfg.OpenWeatherURL, cfg.OpenWeatherAPIKey, cfg.HTTPTimeout)
	countryList := countries.NewService(countries.NewRepository(db), directory, cfg.CountryCacheTTL)
	svc := travel.NewService(directory, weather, countryList, history.NewRepository(db))

	var locator geolocation.Locator = geolocation.NewIPLocator(cfg.IPAPIURL, cfg.LocateTimeout)
	if cfg.Home != nil {
		locator = geolocation.StaticLocator{Coordinate: *cfg.Home}
	}

	model := ui.NewModel(ui.Options{
		Service:        svc,
		Locator:        locator,
		Map:            worldmap.NewProvisioner(db, filepath.Dir(cfg.DBPath), cfg.MapURL),
		LocateTimeout:  cfg.LocateTimeout,
		RequestTimeout: cfg.HTTPTimeout,
		SearchTimeout:  2*cfg.HTTPTimeout + cfg.LocateTimeout,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

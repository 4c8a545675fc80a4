// Package config loads runtime settings from flags, .env and the environment.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/ngmaloney/travel-terminal/internal/database"
	"github.com/ngmaloney/travel-terminal/internal/geolocation"
	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/openweather"
	"github.com/ngmaloney/travel-terminal/internal/restcountries"
	"github.com/ngmaloney/travel-terminal/internal/worldmap"
)

var validate = validator.New()

type Config struct {
	OpenWeatherAPIKey string
	OpenWeatherURL    string `validate:"required,url"`
	RestCountriesURL  string `validate:"required,url"`
	IPAPIURL          string `validate:"required,url"`
	MapURL            string `validate:"required,url"`

	// Home skips IP geolocation when set.
	Home *models.Coordinate

	DBPath  string `validate:"required"`
	LogFile string

	HTTPTimeout     time.Duration `validate:"gt=0"`
	LocateTimeout   time.Duration `validate:"gt=0"`
	CountryCacheTTL time.Duration `validate:"gte=0"`
}

// Load reads configuration from environment with sensible defaults, then
// applies command line flags from args on top.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &Config{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherURL:    getenvDefault("OPENWEATHER_URL", openweather.DefaultBaseURL),
		RestCountriesURL:  getenvDefault("RESTCOUNTRIES_URL", restcountries.DefaultBaseURL),
		IPAPIURL:          getenvDefault("IPAPI_URL", geolocation.DefaultIPAPIURL),
		MapURL:            getenvDefault("TRAVEL_MAP_URL", worldmap.DefaultLandURL),
		DBPath:            getenvDefault("TRAVEL_DB_PATH", database.DBPath()),
		LogFile:           os.Getenv("TRAVEL_LOG_FILE"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.LocateTimeout, err = getenvDuration("LOCATE_TIMEOUT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.CountryCacheTTL, err = getenvDuration("COUNTRY_CACHE_TTL", 168*time.Hour); err != nil {
		return nil, err
	}

	home := os.Getenv("TRAVEL_HOME")

	fs := flag.NewFlagSet("travel-terminal", flag.ContinueOnError)
	fs.StringVar(&home, "home", home, "home coordinate as lat,lon (skips IP geolocation)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "write logs to this file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if home != "" {
		c, err := geolocation.ParseCoordinate(home)
		if err != nil {
			return nil, fmt.Errorf("invalid home: %w", err)
		}
		cfg.Home = &c
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

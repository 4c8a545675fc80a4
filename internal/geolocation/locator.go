// Package geolocation determines the user's home coordinate for distance scoring.
package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/upstream"
)

const DefaultIPAPIURL = "http://ip-api.com"

// Fallback is used whenever the home coordinate cannot be determined.
var Fallback = models.Coordinate{Lat: 20.5937, Lon: 78.9629}

// Source describes where a Home coordinate came from
type Source string

const (
	SourceStatic   Source = "static"
	SourceIP       Source = "ip"
	SourceFallback Source = "fallback"
)

// Home is the resolved user location.
type Home struct {
	Coordinate models.Coordinate
	Source     Source
}

// Locator obtains the current coordinate of the user
type Locator interface {
	Locate(ctx context.Context) (models.Coordinate, error)
}

// StaticLocator always returns the same coordinate
type StaticLocator struct {
	Coordinate models.Coordinate
}

// Locate implements Locator
func (s StaticLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	return s.Coordinate, nil
}

// IPLocator approximates the user's position from their public IP address
type IPLocator struct {
	baseURL string
	http    *upstream.Client
}

// NewIPLocator creates an ip-api.com backed locator. An empty baseURL uses the public service.
func NewIPLocator(baseURL string, timeout time.Duration) *IPLocator {
	if baseURL == "" {
		baseURL = DefaultIPAPIURL
	}
	return &IPLocator{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    upstream.NewClient("ip-api", timeout, "TravelTerminal/1.0"),
	}
}

type ipAPIResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// Locate implements Locator
func (l *IPLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	resp, err := l.http.Get(ctx, l.baseURL+"/json?fields=status,message,lat,lon")
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("locating by ip: %w", err)
	}
	if err := upstream.CheckStatus(resp); err != nil {
		return models.Coordinate{}, fmt.Errorf("locating by ip: %w", err)
	}
	defer resp.Body.Close()

	var payload ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: decoding ip-api response: %v", upstream.ErrMalformed, err)
	}
	if payload.Status != "success" {
		return models.Coordinate{}, &upstream.StatusError{Code: resp.StatusCode, Body: payload.Message}
	}
	if payload.Lat == nil || payload.Lon == nil {
		return models.Coordinate{}, fmt.Errorf("%w: ip-api response has no coordinate", upstream.ErrMalformed)
	}

	return models.Coordinate{Lat: *payload.Lat, Lon: *payload.Lon}, nil
}

// Resolve runs the locator with a deadline. Any failure yields the fallback
// coordinate so callers always get a usable Home.
func Resolve(ctx context.Context, locator Locator, timeout time.Duration) Home {
	if locator == nil {
		return Home{Coordinate: Fallback, Source: SourceFallback}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	coord, err := locator.Locate(ctx)
	if err != nil {
		log.Printf("op=locate outcome=fallback lat=%.4f lon=%.4f err=%v", Fallback.Lat, Fallback.Lon, err)
		return Home{Coordinate: Fallback, Source: SourceFallback}
	}

	source := SourceIP
	if _, ok := locator.(StaticLocator); ok {
		source = SourceStatic
	}
	log.Printf("op=locate outcome=ok source=%s lat=%.4f lon=%.4f", source, coord.Lat, coord.Lon)
	return Home{Coordinate: coord, Source: source}
}

// ParseCoordinate parses "lat,lon" into a Coordinate.
func ParseCoordinate(s string) (models.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return models.Coordinate{}, fmt.Errorf("invalid coordinate %q: expected 'lat,lon'", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	if !finite(lat) || !finite(lon) {
		return models.Coordinate{}, fmt.Errorf("coordinate %q is not finite", s)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return models.Coordinate{}, fmt.Errorf("coordinate %q out of range", s)
	}

	return models.Coordinate{Lat: lat, Lon: lon}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Package openweather fetches current conditions from the OpenWeatherMap API.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/upstream"
)

const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// ErrNoAPIKey is returned when no API key was configured.
var ErrNoAPIKey = errors.New("openweather api key is not configured")

// WeatherClient fetches the current weather at a coordinate
type WeatherClient interface {
	GetCurrentWeather(ctx context.Context, at models.Coordinate) (*models.WeatherReading, error)
}

// Client implements WeatherClient using the /weather endpoint with metric units
type Client struct {
	baseURL string
	apiKey  string
	http    *upstream.Client
}

// NewClient creates an OpenWeatherMap client. An empty baseURL uses the public service.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    upstream.NewClient("openweather", timeout, "TravelTerminal/1.0"),
	}
}

// GetCurrentWeather retrieves the current reading at the given coordinate
func (c *Client) GetCurrentWeather(ctx context.Context, at models.Coordinate) (*models.WeatherReading, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(at.Lon, 'f', -1, 64))
	params.Set("units", "metric")
	params.Set("appid", c.apiKey)

	resp, err := c.http.Get(ctx, fmt.Sprintf("%s/weather?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("fetching weather: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading weather body: %v", upstream.ErrTransport, err)
	}

	var payload weatherResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &upstream.StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		}
		return nil, fmt.Errorf("%w: decoding weather: %v", upstream.ErrMalformed, err)
	}

	if payload.Cod.Int() != http.StatusOK {
		return nil, &upstream.StatusError{Code: payload.Cod.Int(), Body: payload.Message}
	}
	if payload.Main == nil {
		return nil, fmt.Errorf("%w: weather response has no main block", upstream.ErrMalformed)
	}
	if len(payload.Weather) == 0 {
		return nil, fmt.Errorf("%w: weather response has no description", upstream.ErrMalformed)
	}

	return &models.WeatherReading{
		TemperatureC: payload.Main.Temp,
		HumidityPct:  payload.Main.Humidity,
		WindSpeed:    payload.Wind.Speed,
		Description:  payload.Weather[0].Description,
	}, nil
}

// statusCode decodes "cod", which the API sends as a number on success
// and as a string on most errors.
type statusCode int

func (s *statusCode) UnmarshalJSON(b []byte) error {
	str := strings.Trim(string(b), `"`)
	if str == "" || str == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		return fmt.Errorf("invalid cod %s: %w", b, err)
	}
	*s = statusCode(n)
	return nil
}

func (s statusCode) Int() int {
	return int(s)
}

type weatherResponse struct {
	Cod     statusCode `json:"cod"`
	Message string     `json:"message"`
	Main    *struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

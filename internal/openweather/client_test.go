package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/upstream"
)

func TestNewClient(t *testing.T) {
	client := NewClient("", "key", 10*time.Second)

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s, want %s", client.baseURL, DefaultBaseURL)
	}
}

func TestClient_GetCurrentWeather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/weather" {
			t.Errorf("path = %s, want /weather", r.URL.Path)
		}
		if q.Get("lat") != "48.87" || q.Get("lon") != "2.33" {
			t.Errorf("lat/lon = %s/%s", q.Get("lat"), q.Get("lon"))
		}
		if q.Get("units") != "metric" {
			t.Errorf("units = %s, want metric", q.Get("units"))
		}
		if q.Get("appid") != "secret" {
			t.Errorf("appid = %s, want secret", q.Get("appid"))
		}

		data, _ := os.ReadFile("testdata/weather_paris.json")
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", 5*time.Second)
	reading, err := client.GetCurrentWeather(context.Background(), models.Coordinate{Lat: 48.87, Lon: 2.33})
	if err != nil {
		t.Fatalf("GetCurrentWeather() error = %v", err)
	}

	if reading.TemperatureC != 18.4 {
		t.Errorf("TemperatureC = %v, want 18.4", reading.TemperatureC)
	}
	if reading.HumidityPct != 63 {
		t.Errorf("HumidityPct = %d, want 63", reading.HumidityPct)
	}
	if reading.WindSpeed != 4.12 {
		t.Errorf("WindSpeed = %v, want 4.12", reading.WindSpeed)
	}
	if reading.Description != "scattered clouds" {
		t.Errorf("Description = %s, want scattered clouds", reading.Description)
	}
}

func TestClient_GetCurrentWeather_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"invalid key", http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key."}`, upstream.ErrUpstreamStatus},
		{"string cod", http.StatusNotFound, `{"cod":"404","message":"city not found"}`, upstream.ErrUpstreamStatus},
		{"cod mismatch on 200", http.StatusOK, `{"cod":"400","message":"wrong latitude"}`, upstream.ErrUpstreamStatus},
		{"non json error", http.StatusBadGateway, "bad gateway", upstream.ErrUpstreamStatus},
		{"missing description", http.StatusOK, `{"cod":200,"main":{"temp":1,"humidity":2},"wind":{"speed":3},"weather":[]}`, upstream.ErrMalformed},
		{"missing main", http.StatusOK, `{"cod":200,"weather":[{"description":"x"}]}`, upstream.ErrMalformed},
		{"garbage", http.StatusOK, "<html>", upstream.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "secret", 5*time.Second)
			_, err := client.GetCurrentWeather(context.Background(), models.Coordinate{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetCurrentWeather() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_GetCurrentWeather_NoAPIKey(t *testing.T) {
	client := NewClient("http://unused.invalid", "", time.Second)
	_, err := client.GetCurrentWeather(context.Background(), models.Coordinate{})
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("error = %v, want ErrNoAPIKey", err)
	}
}

func TestClient_UpstreamMessageSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad", 5*time.Second)
	_, err := client.GetCurrentWeather(context.Background(), models.Coordinate{})

	var se *upstream.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *upstream.StatusError", err)
	}
	if se.Code != 401 || se.Body != "Invalid API key." {
		t.Errorf("StatusError = %+v", se)
	}
}

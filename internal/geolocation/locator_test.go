package geolocation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/upstream"
)

type failingLocator struct{}

func (failingLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	return models.Coordinate{}, errors.New("denied")
}

type slowLocator struct{}

func (slowLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	<-ctx.Done()
	return models.Coordinate{}, ctx.Err()
}

func TestIPLocator_Locate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json" {
			t.Errorf("path = %s, want /json", r.URL.Path)
		}
		w.Write([]byte(`{"status":"success","lat":52.52,"lon":13.405}`))
	}))
	defer server.Close()

	l := NewIPLocator(server.URL, 5*time.Second)
	coord, err := l.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if coord.Lat != 52.52 || coord.Lon != 13.405 {
		t.Errorf("Locate() = %+v", coord)
	}
}

func TestIPLocator_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"reserved range", http.StatusOK, `{"status":"fail","message":"reserved range"}`, upstream.ErrUpstreamStatus},
		{"missing lat", http.StatusOK, `{"status":"success"}`, upstream.ErrMalformed},
		{"rate limited", http.StatusTooManyRequests, ``, upstream.ErrUpstreamStatus},
		{"bad json", http.StatusOK, `nope`, upstream.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewIPLocator(server.URL, 5*time.Second).Locate(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Locate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	berlin := models.Coordinate{Lat: 52.52, Lon: 13.405}

	tests := []struct {
		name       string
		locator    Locator
		wantCoord  models.Coordinate
		wantSource Source
	}{
		{"static", StaticLocator{Coordinate: berlin}, berlin, SourceStatic},
		{"failure falls back", failingLocator{}, Fallback, SourceFallback},
		{"timeout falls back", slowLocator{}, Fallback, SourceFallback},
		{"nil locator falls back", nil, Fallback, SourceFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := Resolve(context.Background(), tt.locator, 50*time.Millisecond)
			if home.Coordinate != tt.wantCoord {
				t.Errorf("Coordinate = %+v, want %+v", home.Coordinate, tt.wantCoord)
			}
			if home.Source != tt.wantSource {
				t.Errorf("Source = %s, want %s", home.Source, tt.wantSource)
			}
		})
	}
}

func TestResolve_IPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","lat":1.5,"lon":2.5}`))
	}))
	defer server.Close()

	home := Resolve(context.Background(), NewIPLocator(server.URL, time.Second), time.Second)
	if home.Source != SourceIP {
		t.Errorf("Source = %s, want %s", home.Source, SourceIP)
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		input   string
		want    models.Coordinate
		wantErr bool
	}{
		{"20.5937,78.9629", models.Coordinate{Lat: 20.5937, Lon: 78.9629}, false},
		{" -33.86 , 151.2 ", models.Coordinate{Lat: -33.86, Lon: 151.2}, false},
		{"91,0", models.Coordinate{}, true},
		{"0,181", models.Coordinate{}, true},
		{"abc,1", models.Coordinate{}, true},
		{"NaN,0", models.Coordinate{}, true},
		{"0,NaN", models.Coordinate{}, true},
		{"+Inf,0", models.Coordinate{}, true},
		{"0,-Inf", models.Coordinate{}, true},
		{"1", models.Coordinate{}, true},
		{"", models.Coordinate{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCoordinate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCoordinate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCoordinate(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

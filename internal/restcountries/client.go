// Package restcountries is a client for the REST Countries v3.1 directory.
package restcountries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/upstream"
)

const (
	DefaultBaseURL = "https://restcountries.com"
	fields         = "name,capital,capitalInfo,flags,population,region"
)

// Directory looks up countries by display name and lists the whole directory.
type Directory interface {
	ListCountries(ctx context.Context) ([]models.CountryProfile, error)
	GetCountry(ctx context.Context, name string) (*models.CountryProfile, error)
}

// Client implements Directory against the REST Countries API
type Client struct {
	baseURL string
	http    *upstream.Client
}

// NewClient creates a REST Countries client. An empty baseURL uses the public service.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    upstream.NewClient("restcountries", timeout, "TravelTerminal/1.0"),
	}
}

// ListCountries returns every directory entry that has a capital coordinate.
// Entries without one are skipped since they cannot be scored.
func (c *Client) ListCountries(ctx context.Context) ([]models.CountryProfile, error) {
	records, err := c.fetch(ctx, fmt.Sprintf("%s/v3.1/all?fields=%s", c.baseURL, fields))
	if err != nil {
		return nil, fmt.Errorf("listing countries: %w", err)
	}

	countries := make([]models.CountryProfile, 0, len(records))
	for _, r := range records {
		p := r.toProfile()
		if !p.HasCoordinate || p.Name == "" {
			continue
		}
		countries = append(countries, p)
	}
	return countries, nil
}

// GetCountry looks up a country by display name. An exact (case-insensitive)
// common-name match wins over the first result.
func (c *Client) GetCountry(ctx context.Context, name string) (*models.CountryProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: country name cannot be empty", upstream.ErrMalformed)
	}

	reqURL := fmt.Sprintf("%s/v3.1/name/%s?fields=%s", c.baseURL, url.PathEscape(name), fields)
	records, err := c.fetch(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("looking up country %q: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no country named %q", upstream.ErrMalformed, name)
	}

	chosen := records[0]
	for _, r := range records {
		if strings.EqualFold(r.Name.Common, name) {
			chosen = r
			break
		}
	}

	p := chosen.toProfile()
	return &p, nil
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]countryRecord, error) {
	resp, err := c.http.Get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	if err := upstream.CheckStatus(resp); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var records []countryRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decoding countries: %v", upstream.ErrMalformed, err)
	}
	return records, nil
}

// countryRecord mirrors the requested REST Countries fields
type countryRecord struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Capital     []string `json:"capital"`
	CapitalInfo struct {
		LatLng []float64 `json:"latlng"`
	} `json:"capitalInfo"`
	Flags struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
	Population int64  `json:"population"`
	Region     string `json:"region"`
}

func (r countryRecord) toProfile() models.CountryProfile {
	p := models.CountryProfile{
		Name:       r.Name.Common,
		Region:     r.Region,
		Population: r.Population,
		FlagURL:    r.Flags.PNG,
	}
	if len(r.Capital) > 0 {
		p.Capital = r.Capital[0]
	}
	if len(r.CapitalInfo.LatLng) == 2 {
		p.Coordinate = models.Coordinate{Lat: r.CapitalInfo.LatLng[0], Lon: r.CapitalInfo.LatLng[1]}
		p.HasCoordinate = true
	}
	return p
}

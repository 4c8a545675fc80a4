package countries

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/restcountries"
)

// Service serves the selectable country list, refreshing the cache from the directory when stale
type Service struct {
	repo      *Repository
	directory restcountries.Directory
	ttl       time.Duration
	now       func() time.Time
}

// NewService creates a country list service. A ttl <= 0 always refreshes.
func NewService(repo *Repository, directory restcountries.Directory, ttl time.Duration) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		ttl:       ttl,
		now:       time.Now,
	}
}

// NeedsRefresh reports whether the cache is empty or older than the ttl
func (s *Service) NeedsRefresh() (bool, error) {
	fetchedAt, ok, err := s.repo.FetchedAt()
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return s.now().Sub(fetchedAt) > s.ttl, nil
}

// List returns the selectable countries sorted by name.
// A failed refresh falls back to a stale cache when there is one.
func (s *Service) List(ctx context.Context) ([]models.CountryProfile, error) {
	stale, err := s.NeedsRefresh()
	if err != nil {
		return nil, err
	}

	if stale {
		fresh, err := s.directory.ListCountries(ctx)
		if err == nil {
			if err := s.repo.Replace(fresh, s.now()); err != nil {
				log.Printf("op=country_cache outcome=store_failed err=%v", err)
			} else {
				log.Printf("op=country_cache outcome=refreshed count=%d", len(fresh))
			}
			SortByName(fresh)
			return fresh, nil
		}

		cached, cacheErr := s.repo.List()
		if cacheErr != nil || len(cached) == 0 {
			return nil, fmt.Errorf("loading countries: %w", err)
		}
		log.Printf("op=country_cache outcome=stale count=%d err=%v", len(cached), err)
		SortByName(cached)
		return cached, nil
	}

	cached, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	SortByName(cached)
	return cached, nil
}

// SortByName orders countries with English collation, so "Åland Islands"
// sorts next to "Albania" rather than after "Zimbabwe".
func SortByName(countries []models.CountryProfile) {
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(countries, func(i, j int) bool {
		return col.CompareString(countries[i].Name, countries[j].Name) < 0
	})
}

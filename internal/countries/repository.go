// Package countries keeps a local, sorted copy of the country directory.
package countries

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/travel-terminal/internal/models"
)

// Repository persists the country directory in the shared SQLite database
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository over an open database
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Replace swaps the cached directory for the given countries in one transaction.
func (r *Repository) Replace(countries []models.CountryProfile, fetchedAt time.Time) error {
	if r.db == nil {
		return errors.New("country cache: db is nil")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("replacing countries: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM countries"); err != nil {
		return fmt.Errorf("replacing countries: clear: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO countries (name, capital, region, population, flag_url, latitude, longitude, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("replacing countries: prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range countries {
		if !c.HasCoordinate {
			continue
		}
		if _, err := stmt.Exec(c.Name, c.Capital, c.Region, c.Population, c.FlagURL,
			c.Coordinate.Lat, c.Coordinate.Lon, fetchedAt.Unix()); err != nil {
			return fmt.Errorf("replacing countries: insert %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replacing countries: commit: %w", err)
	}
	return nil
}

// List returns every cached country in storage order
func (r *Repository) List() ([]models.CountryProfile, error) {
	rows, err := r.db.Query("SELECT name, capital, region, population, flag_url, latitude, longitude FROM countries ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying countries: %w", err)
	}
	defer rows.Close()

	var out []models.CountryProfile
	for rows.Next() {
		var c models.CountryProfile
		var capital, flag sql.NullString
		if err := rows.Scan(&c.Name, &capital, &c.Region, &c.Population, &flag, &c.Coordinate.Lat, &c.Coordinate.Lon); err != nil {
			return nil, fmt.Errorf("scanning country: %w", err)
		}
		c.Capital = capital.String
		c.FlagURL = flag.String
		c.HasCoordinate = true
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating countries: %w", err)
	}
	return out, nil
}

// FetchedAt returns when the cache was last filled. ok is false for an empty cache.
func (r *Repository) FetchedAt() (t time.Time, ok bool, err error) {
	var unix sql.NullInt64
	if err := r.db.QueryRow("SELECT MIN(fetched_at) FROM countries").Scan(&unix); err != nil {
		return time.Time{}, false, fmt.Errorf("querying cache age: %w", err)
	}
	if !unix.Valid {
		return time.Time{}, false, nil
	}
	return time.Unix(unix.Int64, 0), true, nil
}

// Package history records completed searches.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ngmaloney/travel-terminal/internal/models"
)

// Repository handles persistence for past searches
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new history repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save records a completed search
func (r *Repository) Save(searchID string, result *models.SearchResult) (int64, error) {
	createdAt := result.FinishedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := r.db.Exec(`
		INSERT INTO search_history (search_id, country, total, advice, distance_km, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, searchID, result.Country.Name, result.Score.Total, result.Advice, result.DistanceKm, createdAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("saving search: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit searches, newest first
func (r *Repository) Recent(limit int) ([]models.HistoryEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, country, total, advice, distance_km, created_at
		FROM search_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Country, &e.Total, &e.Advice, &e.DistanceKm, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

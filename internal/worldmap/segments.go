// Package worldmap draws a character-cell world map from Natural Earth land
// outlines stored in SQLite.
package worldmap

import (
	"database/sql"
	"fmt"

	"github.com/ngmaloney/travel-terminal/internal/database"
	"github.com/ngmaloney/travel-terminal/internal/models"
)

const segmentsTable = "land_segments"

// Segment is one edge of a land polygon
type Segment struct {
	From models.Coordinate
	To   models.Coordinate
}

// NeedsProvisioning reports whether the land outline table is missing or empty
func NeedsProvisioning(db *sql.DB) (bool, error) {
	exists, err := database.TableExists(db, segmentsTable)
	if err != nil {
		return false, fmt.Errorf("checking for %s table: %w", segmentsTable, err)
	}
	if !exists {
		return true, nil
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + segmentsTable).Scan(&count); err != nil {
		return false, fmt.Errorf("counting land segments: %w", err)
	}
	return count == 0, nil
}

func createTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS land_segments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			polygon INTEGER NOT NULL,
			lat1 REAL NOT NULL,
			lon1 REAL NOT NULL,
			lat2 REAL NOT NULL,
			lon2 REAL NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating %s table: %w", segmentsTable, err)
	}
	return nil
}

// StoreSegments replaces the stored outline. Segments are grouped by polygon index.
func StoreSegments(db *sql.DB, polygons [][]Segment) (int, error) {
	if err := createTable(db); err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + segmentsTable); err != nil {
		return 0, fmt.Errorf("clearing land segments: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO land_segments (polygon, lat1, lon1, lat2, lon2) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for i, segs := range polygons {
		for _, s := range segs {
			if _, err := stmt.Exec(i, s.From.Lat, s.From.Lon, s.To.Lat, s.To.Lon); err != nil {
				return 0, fmt.Errorf("inserting segment: %w", err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing land segments: %w", err)
	}
	return count, nil
}

// LoadSegments reads every stored land edge
func LoadSegments(db *sql.DB) ([]Segment, error) {
	rows, err := db.Query(`SELECT lat1, lon1, lat2, lon2 FROM land_segments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying land segments: %w", err)
	}
	defer rows.Close()

	var segments []Segment
	for rows.Next() {
		var s Segment
		if err := rows.Scan(&s.From.Lat, &s.From.Lon, &s.To.Lat, &s.To.Lon); err != nil {
			return nil, fmt.Errorf("scanning land segment: %w", err)
		}
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

package worldmap

import (
	"archive/zip"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jonas-p/go-shp"

	"github.com/ngmaloney/travel-terminal/internal/models"
)

const (
	// Natural Earth 1:110m land polygons (public domain)
	DefaultLandURL = "https://naciscdn.org/naturalearth/110m/physical/ne_110m_land.zip"
	shapefileBase  = "ne_110m_land"
)

// Provisioner downloads the land shapefile and loads its outlines into SQLite
type Provisioner struct {
	db         *sql.DB
	dataDir    string
	url        string
	httpClient *http.Client
}

// NewProvisioner creates a provisioner that stages files under dataDir
func NewProvisioner(db *sql.DB, dataDir, url string) *Provisioner {
	if url == "" {
		url = DefaultLandURL
	}
	return &Provisioner{
		db:      db,
		dataDir: dataDir,
		url:     url,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// NeedsProvisioning reports whether the outline still has to be downloaded
func (p *Provisioner) NeedsProvisioning() (bool, error) {
	return NeedsProvisioning(p.db)
}

// Segments loads the stored outline
func (p *Provisioner) Segments() ([]Segment, error) {
	return LoadSegments(p.db)
}

// Provision builds the land_segments table. Status lines are sent on progress
// when it is non-nil; sends never block.
func (p *Provisioner) Provision(ctx context.Context, progress chan<- string) error {
	report := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		log.Printf("op=provision_map status=%q", msg)
		if progress == nil {
			return
		}
		select {
		case progress <- msg:
		default:
		}
	}

	if err := os.MkdirAll(p.dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	zipPath := filepath.Join(p.dataDir, shapefileBase+".zip")
	report("Downloading world map outlines...")
	size, err := p.download(ctx, zipPath)
	if err != nil {
		return fmt.Errorf("downloading shapefile: %w", err)
	}
	defer os.Remove(zipPath)
	report("Downloaded %s", humanize.Bytes(uint64(size)))

	report("Extracting shapefile...")
	if err := unzipFile(zipPath, p.dataDir); err != nil {
		return fmt.Errorf("extracting shapefile: %w", err)
	}
	defer cleanupShapefiles(p.dataDir, shapefileBase)

	report("Reading land polygons...")
	polygons, err := ReadShapefile(filepath.Join(p.dataDir, shapefileBase+".shp"))
	if err != nil {
		return err
	}

	report("Building map database...")
	count, err := StoreSegments(p.db, polygons)
	if err != nil {
		return fmt.Errorf("building map database: %w", err)
	}

	report("Stored %s land edges", humanize.Comma(int64(count)))
	return nil
}

func (p *Provisioner) download(ctx context.Context, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	return io.Copy(out, resp.Body)
}

// ReadShapefile converts each polygon ring in the shapefile into edges.
// Every part is kept so islands and lakes are drawn.
func ReadShapefile(path string) ([][]Segment, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile: %w", err)
	}
	defer shape.Close()

	var polygons [][]Segment
	for shape.Next() {
		_, s := shape.Shape()

		polygon, ok := s.(*shp.Polygon)
		if !ok {
			continue
		}

		var segs []Segment
		for part := 0; part < len(polygon.Parts); part++ {
			start := int(polygon.Parts[part])
			end := len(polygon.Points)
			if part+1 < len(polygon.Parts) {
				end = int(polygon.Parts[part+1])
			}
			segs = append(segs, ringSegments(polygon.Points[start:end])...)
		}
		if len(segs) > 0 {
			polygons = append(polygons, segs)
		}
	}

	return polygons, nil
}

func ringSegments(points []shp.Point) []Segment {
	if len(points) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		segs = append(segs, Segment{
			From: models.Coordinate{Lat: points[i-1].Y, Lon: points[i-1].X},
			To:   models.Coordinate{Lat: points[i].Y, Lon: points[i].X},
		})
	}
	return segs
}

// unzipFile extracts a zip file to a destination directory
func unzipFile(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	cleanDest := filepath.Clean(dest) + string(os.PathSeparator)
	for _, f := range r.File {
		fpath := filepath.Join(dest, f.Name)

		// ZipSlip
		if !strings.HasPrefix(fpath, cleanDest) {
			return fmt.Errorf("illegal file path: %s", fpath)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), 0755); err != nil {
			return err
		}

		if err := extractFile(f, fpath); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(out, rc)
	return err
}

// cleanupShapefiles removes the extracted shapefile components
func cleanupShapefiles(dir, base string) {
	for _, ext := range []string{".shp", ".shx", ".dbf", ".prj", ".cpg", ".README.html", ".VERSION.txt"} {
		os.Remove(filepath.Join(dir, base+ext))
	}
}

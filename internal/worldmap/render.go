package worldmap

import (
	"math"

	"github.com/ngmaloney/travel-terminal/internal/models"
)

const (
	LandRune   = '·'
	MarkerRune = '●'
	EmptyRune  = ' '

	MinZoom = 1.0
	MaxZoom = 8.0
)

// Bounds is a lat/lon rectangle
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// World covers the whole equirectangular plane
var World = Bounds{MinLat: -90, MaxLat: 90, MinLon: -180, MaxLon: 180}

// Canvas is a rendered map. Rows are indexed top to bottom.
type Canvas struct {
	Width, Height int
	Cells         [][]rune

	HasMarker bool
	MarkerRow int
	MarkerCol int
}

// Lines returns each row as a string
func (c Canvas) Lines() []string {
	lines := make([]string, len(c.Cells))
	for i, row := range c.Cells {
		lines[i] = string(row)
	}
	return lines
}

// Viewport frames part of the world around a center. Zoom 1 shows everything.
type Viewport struct {
	Center models.Coordinate
	Zoom   float64
}

// Bounds returns the visible rectangle, shifted so it never leaves the world
func (v Viewport) Bounds() Bounds {
	zoom := clamp(v.Zoom, MinZoom, MaxZoom)
	halfLat := 90 / zoom
	halfLon := 180 / zoom

	lat := clamp(v.Center.Lat, World.MinLat+halfLat, World.MaxLat-halfLat)
	lon := clamp(v.Center.Lon, World.MinLon+halfLon, World.MaxLon-halfLon)

	return Bounds{
		MinLat: lat - halfLat,
		MaxLat: lat + halfLat,
		MinLon: lon - halfLon,
		MaxLon: lon + halfLon,
	}
}

// ZoomIn doubles the zoom up to MaxZoom
func (v Viewport) ZoomIn() Viewport {
	v.Zoom = clamp(v.Zoom*2, MinZoom, MaxZoom)
	return v
}

// ZoomOut halves the zoom down to MinZoom
func (v Viewport) ZoomOut() Viewport {
	v.Zoom = clamp(v.Zoom/2, MinZoom, MaxZoom)
	return v
}

// Render draws the whole world
func Render(segments []Segment, marker *models.Coordinate, width, height int) Canvas {
	return RenderBounds(segments, World, marker, width, height)
}

// RenderView draws the part of the world framed by v
func RenderView(segments []Segment, v Viewport, marker *models.Coordinate, width, height int) Canvas {
	return RenderBounds(segments, v.Bounds(), marker, width, height)
}

// RenderBounds projects land edges inside b onto a width x height grid and
// places the marker when it falls inside b.
func RenderBounds(segments []Segment, b Bounds, marker *models.Coordinate, width, height int) Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	c := Canvas{Width: width, Height: height, Cells: make([][]rune, height)}
	for r := range c.Cells {
		row := make([]rune, width)
		for i := range row {
			row[i] = EmptyRune
		}
		c.Cells[r] = row
	}

	p := projection{b: b, width: width, height: height}
	for _, s := range segments {
		// Edges that wrap the antimeridian would smear across the map.
		if math.Abs(s.From.Lon-s.To.Lon) > 180 {
			continue
		}
		if !b.intersects(s) {
			continue
		}
		r0, c0 := p.cell(s.From)
		r1, c1 := p.cell(s.To)
		c.line(r0, c0, r1, c1)
	}

	if marker != nil && b.contains(*marker) {
		c.MarkerRow, c.MarkerCol = p.cell(*marker)
		if c.inside(c.MarkerRow, c.MarkerCol) {
			c.HasMarker = true
			c.Cells[c.MarkerRow][c.MarkerCol] = MarkerRune
		}
	}

	return c
}

type projection struct {
	b             Bounds
	width, height int
}

// cell maps a coordinate to a (row, col). Points outside the bounds map
// outside the grid.
func (p projection) cell(at models.Coordinate) (int, int) {
	x := (at.Lon - p.b.MinLon) / (p.b.MaxLon - p.b.MinLon)
	y := (p.b.MaxLat - at.Lat) / (p.b.MaxLat - p.b.MinLat)
	col := int(math.Round(x * float64(p.width-1)))
	row := int(math.Round(y * float64(p.height-1)))
	return row, col
}

// line rasterises with Bresenham, dropping cells off the grid
func (c *Canvas) line(r0, c0, r1, c1 int) {
	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	e := dc + dr

	for {
		if c.inside(r0, c0) {
			c.Cells[r0][c0] = LandRune
		}
		if r0 == r1 && c0 == c1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

func (c *Canvas) inside(row, col int) bool {
	return row >= 0 && row < c.Height && col >= 0 && col < c.Width
}

func (b Bounds) contains(at models.Coordinate) bool {
	return at.Lat >= b.MinLat && at.Lat <= b.MaxLat && at.Lon >= b.MinLon && at.Lon <= b.MaxLon
}

func (b Bounds) intersects(s Segment) bool {
	minLat, maxLat := math.Min(s.From.Lat, s.To.Lat), math.Max(s.From.Lat, s.To.Lat)
	minLon, maxLon := math.Min(s.From.Lon, s.To.Lon), math.Max(s.From.Lon, s.To.Lon)
	return maxLat >= b.MinLat && minLat <= b.MaxLat && maxLon >= b.MinLon && minLon <= b.MaxLon
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

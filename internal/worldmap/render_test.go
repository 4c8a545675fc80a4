package worldmap

import (
	"strings"
	"testing"

	"github.com/ngmaloney/travel-terminal/internal/models"
)

func TestRender_MarkerCell(t *testing.T) {
	tests := []struct {
		name    string
		marker  models.Coordinate
		wantRow int
		wantCol int
	}{
		{"center", models.Coordinate{Lat: 0, Lon: 0}, 10, 40},
		{"north west corner", models.Coordinate{Lat: 90, Lon: -180}, 0, 0},
		{"south east corner", models.Coordinate{Lat: -90, Lon: 180}, 20, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marker := tt.marker
			c := Render(nil, &marker, 81, 21)
			if !c.HasMarker {
				t.Fatal("HasMarker = false, want true")
			}
			if c.MarkerRow != tt.wantRow || c.MarkerCol != tt.wantCol {
				t.Errorf("marker at (%d,%d), want (%d,%d)", c.MarkerRow, c.MarkerCol, tt.wantRow, tt.wantCol)
			}
			if c.Cells[c.MarkerRow][c.MarkerCol] != MarkerRune {
				t.Errorf("marker cell = %q", c.Cells[c.MarkerRow][c.MarkerCol])
			}
		})
	}
}

func TestRender_NoMarker(t *testing.T) {
	c := Render(nil, nil, 10, 5)
	if c.HasMarker {
		t.Error("HasMarker = true without a marker")
	}
	if len(c.Lines()) != 5 {
		t.Fatalf("len(Lines()) = %d, want 5", len(c.Lines()))
	}
	for _, line := range c.Lines() {
		if strings.TrimSpace(line) != "" {
			t.Errorf("expected empty map, got %q", line)
		}
	}
}

func TestRender_DrawsSegment(t *testing.T) {
	// Equator from 180W to 180E spans the middle row.
	segs := []Segment{
		{From: models.Coordinate{Lat: 0, Lon: -179}, To: models.Coordinate{Lat: 0, Lon: 0}},
		{From: models.Coordinate{Lat: 0, Lon: 0}, To: models.Coordinate{Lat: 0, Lon: 179}},
	}
	c := Render(segs, nil, 41, 11)

	middle := c.Cells[5]
	for col := 1; col < 40; col++ {
		if middle[col] != LandRune {
			t.Fatalf("cell (5,%d) = %q, want land", col, middle[col])
		}
	}
	if strings.ContainsRune(string(c.Cells[0]), LandRune) {
		t.Error("top row should be empty")
	}
}

func TestRender_SkipsAntimeridianEdges(t *testing.T) {
	segs := []Segment{{From: models.Coordinate{Lat: 10, Lon: 179}, To: models.Coordinate{Lat: 10, Lon: -179}}}
	c := Render(segs, nil, 41, 11)

	count := 0
	for _, line := range c.Lines() {
		count += strings.Count(line, string(LandRune))
	}
	if count != 0 {
		t.Errorf("wrapping edge drew %d cells, want 0", count)
	}
}

func TestViewport_Bounds(t *testing.T) {
	tests := []struct {
		name string
		v    Viewport
		want Bounds
	}{
		{"zoom one is world", Viewport{Center: models.Coordinate{Lat: 48, Lon: 2}, Zoom: 1}, World},
		{"zero zoom treated as one", Viewport{}, World},
		{"zoom two centered", Viewport{Center: models.Coordinate{Lat: 0, Lon: 0}, Zoom: 2},
			Bounds{MinLat: -45, MaxLat: 45, MinLon: -90, MaxLon: 90}},
		{"zoom two clamped at pole", Viewport{Center: models.Coordinate{Lat: 80, Lon: 170}, Zoom: 2},
			Bounds{MinLat: 0, MaxLat: 90, MinLon: 0, MaxLon: 180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Bounds(); got != tt.want {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestViewport_Zoom(t *testing.T) {
	v := Viewport{Zoom: 1}
	for i := 0; i < 10; i++ {
		v = v.ZoomIn()
	}
	if v.Zoom != MaxZoom {
		t.Errorf("Zoom = %v, want %v", v.Zoom, MaxZoom)
	}
	for i := 0; i < 10; i++ {
		v = v.ZoomOut()
	}
	if v.Zoom != MinZoom {
		t.Errorf("Zoom = %v, want %v", v.Zoom, MinZoom)
	}
}

func TestRenderView_MarkerOutsideView(t *testing.T) {
	v := Viewport{Center: models.Coordinate{Lat: 0, Lon: 0}, Zoom: 4}
	tokyo := models.Coordinate{Lat: 35.68, Lon: 139.69}

	c := RenderView(nil, v, &tokyo, 40, 20)
	if c.HasMarker {
		t.Error("marker outside the viewport should not be drawn")
	}

	c = RenderView(nil, Viewport{Center: tokyo, Zoom: 4}, &tokyo, 40, 20)
	if !c.HasMarker {
		t.Error("marker at the viewport center should be drawn")
	}
}

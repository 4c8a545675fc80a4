package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ngmaloney/travel-terminal/internal/geo"
	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/scoring"
	"github.com/ngmaloney/travel-terminal/internal/worldmap"
)

// viewSearch renders the country picker and recent searches
func (m Model) viewSearch() string {
	var sections []string
	sections = append(sections,
		titleStyle.Render("✈ Travel Terminal"),
		mutedStyle.Render("Travel suitability by country"),
	)

	if m.home != nil {
		sections = append(sections, mutedStyle.Render(fmt.Sprintf("Home: %.4f, %.4f (%s)",
			m.home.Coordinate.Lat, m.home.Coordinate.Lon, m.home.Source)))
	}
	sections = append(sections, "")

	switch {
	case m.countriesErr != nil:
		sections = append(sections, errorStyle.Render("✗ Could not load the country list."),
			helpStyle.Render("R: Retry • Q: Quit"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	case m.countries == nil:
		sections = append(sections, mutedStyle.Render("Loading countries..."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, m.countryList.View())

	if len(m.history) > 0 {
		sections = append(sections, sectionHeaderStyle.Render("Recent searches"), m.renderHistory())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHistory() string {
	var lines []string
	for _, h := range m.history {
		tier := scoring.TierFor(h.Total)
		lines = append(lines, fmt.Sprintf("%s %-24s %s  %s",
			tierStyle(tier).Render(fmt.Sprintf("%3d", h.Total)),
			h.Country,
			mutedStyle.Render(h.Advice),
			mutedStyle.Render(humanize.Time(h.CreatedAt)),
		))
	}
	return strings.Join(lines, "\n")
}

// viewDisplay renders the scored result - simple vertical layout
func (m Model) viewDisplay() string {
	if m.result == nil {
		return "No result"
	}

	info := lipgloss.JoinHorizontal(lipgloss.Top,
		sectionBoxStyle.Render(m.renderCountry()),
		sectionBoxStyle.Render(m.renderWeather()),
	)

	sections := []string{
		titleStyle.Render("✈ " + m.result.Country.Label()),
		info,
		sectionHeaderStyle.Render("TRAVEL SCORE"),
		m.renderGauge(),
		m.renderBreakdown(),
		"",
		tierStyle(scoring.TierFor(m.result.Score.Total)).Render(scoring.AdviceMessage(m.result.Score.Total)),
		sectionHeaderStyle.Render("MAP"),
		m.renderMap(),
		helpStyle.Render("S: New search • +/-: Zoom map • Q: Quit"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderCountry() string {
	c := m.result.Country
	capital := c.Capital
	if capital == "" {
		capital = "n/a"
	}

	rows := [][2]string{
		{"Flag", c.FlagURL},
		{"Capital", capital},
		{"Population", humanize.Comma(c.Population)},
		{"Region", c.Region},
		{"Distance", fmt.Sprintf("%s km (%s mi)",
			humanize.Comma(int64(math.Round(m.result.DistanceKm))),
			humanize.Comma(int64(math.Round(geo.DistanceMiles(m.result.Home, c.Coordinate)))))},
	}
	return renderRows(rows)
}

func (m Model) renderWeather() string {
	w := m.result.Weather
	rows := [][2]string{
		{"Temperature", fmt.Sprintf("%.1f°C", w.TemperatureC)},
		{"Conditions", w.Description},
		{"Humidity", fmt.Sprintf("%d%%", w.HumidityPct)},
		{"Wind", fmt.Sprintf("%.1f m/s", w.WindSpeed)},
	}
	return renderRows(rows)
}

func renderRows(rows [][2]string) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = labelStyle.Render(fmt.Sprintf("%-12s", r[0])) + valueStyle.Render(r[1])
	}
	return strings.Join(lines, "\n")
}

// renderGauge shows the animated total, counting up from zero
func (m Model) renderGauge() string {
	value := gaugeStyle.Render(fmt.Sprintf("%d", m.gauge))
	bar := m.gaugeBar.ViewAs(float64(m.gauge) / float64(scoring.MaxTotal))
	return lipgloss.JoinHorizontal(lipgloss.Center, value, "  ", bar, mutedStyle.Render(fmt.Sprintf(" /%d", scoring.MaxTotal)))
}

func (m Model) renderBreakdown() string {
	s := m.result.Score
	return strings.Join([]string{
		m.renderBar("Weather", s.Weather, scoring.MaxWeather),
		m.renderBar("Eco", s.Eco, scoring.MaxEco),
		m.renderBar("Cost", s.Cost, scoring.MaxCost),
	}, "\n")
}

func (m Model) renderBar(label string, score, maxScore int) string {
	return fmt.Sprintf("%s %s %s",
		labelStyle.Render(fmt.Sprintf("%-8s", label)),
		m.bar.ViewAs(float64(score)/float64(maxScore)),
		valueStyle.Render(fmt.Sprintf("%d/%d", score, maxScore)),
	)
}

// mapSize fits a 4:1 character grid, which is roughly square in degrees
func (m Model) mapSize() (int, int) {
	w := min(max(m.width-4, 24), 120)
	h := max(w/4, 6)
	return w, h
}

// renderMap draws land outlines with the marker colored by score tier
func (m Model) renderMap() string {
	if m.mapUnavailable {
		return mutedStyle.Render("Map unavailable")
	}

	w, h := m.mapSize()
	marker := m.markerCoordinate()
	canvas := worldmap.RenderView(m.segments, m.viewport, marker, w, h)

	var tier scoring.Tier
	if m.marker != nil {
		tier = m.marker.tier
	}

	lines := make([]string, len(canvas.Cells))
	for i, row := range canvas.Cells {
		if canvas.HasMarker && i == canvas.MarkerRow {
			lines[i] = landStyle.Render(string(row[:canvas.MarkerCol])) +
				tierStyle(tier).Render(string(row[canvas.MarkerCol])) +
				landStyle.Render(string(row[canvas.MarkerCol+1:]))
			continue
		}
		lines[i] = landStyle.Render(string(row))
	}

	box := sectionBoxStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, box, m.renderPopup(tier))
}

func (m Model) markerCoordinate() *models.Coordinate {
	if m.marker == nil {
		return nil
	}
	at := m.marker.at
	return &at
}

// renderPopup is the marker's caption
func (m Model) renderPopup(tier scoring.Tier) string {
	if m.result == nil || m.marker == nil {
		return ""
	}
	r := m.result
	return fmt.Sprintf("%s %s • %.1f°C %s • Score %d (zoom x%.0f)",
		tierStyle(tier).Render(string(worldmap.MarkerRune)),
		r.Country.Name, r.Weather.TemperatureC, r.Weather.Description, r.Score.Total, m.viewport.Zoom)
}

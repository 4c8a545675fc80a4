package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/travel-terminal/internal/geolocation"
	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/scoring"
	"github.com/ngmaloney/travel-terminal/internal/worldmap"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLocating     AppState = iota // Resolving home; searches are not accepted yet
	StateProvisioning                 // One-time world map download
	StateSearch                       // Pick a country
	StateLoading                      // Search in flight
	StateDisplay                      // Show the scored result
	StateError                        // Search failed
)

// genericError is all the user sees when a search fails; details go to the log.
const genericError = "Something went wrong. Try another country."

// Searcher runs searches and supplies the country list
type Searcher interface {
	Search(ctx context.Context, name string, home models.Coordinate) (*models.SearchResult, error)
	Countries(ctx context.Context) ([]models.CountryProfile, error)
	RecentSearches(limit int) ([]models.HistoryEntry, error)
}

// MapStore provides the world outline, downloading it on first use
type MapStore interface {
	NeedsProvisioning() (bool, error)
	Provision(ctx context.Context, progress chan<- string) error
	Segments() ([]worldmap.Segment, error)
}

// Options wires the model's collaborators
type Options struct {
	Service Searcher
	Locator geolocation.Locator
	// Map may be nil, in which case no map is drawn.
	Map            MapStore
	LocateTimeout  time.Duration
	RequestTimeout time.Duration
	SearchTimeout  time.Duration
}

// mapMarker is the single marker shown on the map
type mapMarker struct {
	at   models.Coordinate
	tier scoring.Tier
}

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	svc            Searcher
	locator        geolocation.Locator
	mapStore       MapStore
	locateTimeout  time.Duration
	requestTimeout time.Duration
	searchTimeout  time.Duration

	home *geolocation.Home

	// Country selection
	countries    []models.CountryProfile
	countryList  list.Model
	countriesErr error
	history      []models.HistoryEntry

	// Search lifecycle. Only a result tagged with the current generation is shown.
	generation   uint64
	cancelSearch context.CancelFunc
	pending      string

	// Result
	result *models.SearchResult
	gauge  int
	marker *mapMarker

	// Map
	segments       []worldmap.Segment
	mapUnavailable bool
	viewport       worldmap.Viewport

	// Widgets
	spinner  spinner.Model
	bar      progress.Model
	gaugeBar progress.Model

	// Provisioning
	provisionStatus   string
	provisionChannels *provisioningStartedMsg
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if opts.LocateTimeout <= 0 {
		opts.LocateTimeout = 3 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = 30 * time.Second
	}

	return Model{
		state:          StateLocating,
		svc:            opts.Service,
		locator:        opts.Locator,
		mapStore:       opts.Map,
		mapUnavailable: opts.Map == nil,
		locateTimeout:  opts.LocateTimeout,
		requestTimeout: opts.RequestTimeout,
		searchTimeout:  opts.SearchTimeout,
		spinner:        s,
		bar:            progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		gaugeBar:       progress.New(progress.WithGradient("#FF6B6B", "#00FF87"), progress.WithWidth(40), progress.WithoutPercentage()),
		viewport:       worldmap.Viewport{Zoom: worldmap.MinZoom},
	}
}

// Init starts home resolution; nothing else happens until it finishes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, locateHome(m.locator, m.locateTimeout))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.countries != nil {
			m.countryList.SetSize(m.listWidth(), m.listHeight())
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case homeLocatedMsg:
		home := msg.home
		m.home = &home
		if m.mapStore == nil {
			return m.enterSearch()
		}
		m.provisionStatus = "Checking world map..."
		return m, checkMap(m.mapStore)

	case mapCheckedMsg:
		if msg.err != nil {
			log.Printf("op=check_map err=%v", msg.err)
			m.mapUnavailable = true
			return m.enterSearch()
		}
		if msg.needed {
			m.state = StateProvisioning
			m.provisionStatus = "Starting map download..."
			return m, startProvisioning(m.mapStore)
		}
		next, cmd := m.enterSearch()
		return next, tea.Batch(cmd, loadSegments(next.mapStore))

	// Provisioning messages
	case provisioningStartedMsg:
		m.provisionChannels = &msg
		return m, tea.Batch(
			waitForProvisionStatus(msg.progressChan),
			waitForProvisionResult(msg.resultChan),
		)

	case provisionStatusMsg:
		m.provisionStatus = string(msg)
		// Continue waiting for more status updates using stored channel
		if m.provisionChannels != nil {
			return m, waitForProvisionStatus(m.provisionChannels.progressChan)
		}
		return m, nil

	case provisionResultMsg:
		m.provisionChannels = nil
		if msg.err != nil {
			// Searching still works without a map.
			log.Printf("op=provision_map err=%v", msg.err)
			m.mapUnavailable = true
			return m.enterSearch()
		}
		next, cmd := m.enterSearch()
		return next, tea.Batch(cmd, loadSegments(next.mapStore))

	case segmentsLoadedMsg:
		if msg.err != nil {
			log.Printf("op=load_map err=%v", msg.err)
			m.mapUnavailable = true
			return m, nil
		}
		m.segments = msg.segments
		return m, nil

	case countriesLoadedMsg:
		if msg.err != nil {
			log.Printf("op=load_countries err=%v", msg.err)
			m.countriesErr = msg.err
			return m, nil
		}
		m.countriesErr = nil
		m.countries = msg.countries
		m.countryList = createCountryList(msg.countries, m.listWidth(), m.listHeight())
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			log.Printf("op=load_history err=%v", msg.err)
			return m, nil
		}
		m.history = msg.entries
		return m, nil

	case searchResultMsg:
		return m.acceptResult(msg)

	case gaugeTickMsg:
		if msg.generation != m.generation || m.result == nil {
			return m, nil
		}
		if m.gauge < m.result.Score.Total {
			m.gauge++
		}
		if m.gauge >= m.result.Score.Total {
			return m, nil
		}
		return m, gaugeTick(msg.generation)

	case spinner.TickMsg:
		switch m.state {
		case StateLocating, StateProvisioning, StateLoading:
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			return m.quit()
		}
		// q is a filter character while the list is filtering
		if keyMsg.String() == "q" && !m.filtering() {
			return m.quit()
		}

		switch m.state {
		case StateLocating, StateProvisioning:
			return m, nil

		case StateSearch:
			return m.handleSearchKeys(keyMsg)

		case StateLoading:
			if keyMsg.String() == "s" || keyMsg.Type == tea.KeyEsc {
				m.abandonSearch()
				return m.enterSearch()
			}
			return m, nil

		case StateDisplay:
			switch keyMsg.String() {
			case "s":
				return m.enterSearch()
			case "+", "=":
				m.viewport = m.viewport.ZoomIn()
			case "-":
				m.viewport = m.viewport.ZoomOut()
			}
			return m, nil

		case StateError:
			// Any key returns to search (except quit keys)
			m.err = nil
			return m.enterSearch()
		}
	}

	if m.state == StateSearch && m.countries != nil {
		m.countryList, cmd = m.countryList.Update(msg)
	}
	return m, cmd
}

// handleSearchKeys handles keyboard input in search state
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.countries == nil {
		if msg.String() == "r" && m.countriesErr != nil {
			m.countriesErr = nil
			return m, loadCountries(m.svc, m.requestTimeout)
		}
		return m, nil
	}

	if msg.Type == tea.KeyEnter && !m.filtering() {
		item, ok := m.countryList.SelectedItem().(countryItem)
		if !ok {
			return m, nil
		}
		return m.startSearch(item.country.Name)
	}

	var cmd tea.Cmd
	m.countryList, cmd = m.countryList.Update(msg)
	return m, cmd
}

// startSearch supersedes any search still in flight
func (m Model) startSearch(name string) (tea.Model, tea.Cmd) {
	if m.home == nil || name == "" {
		return m, nil
	}
	m.abandonSearch()

	ctx, cancel := context.WithTimeout(context.Background(), m.searchTimeout)
	m.cancelSearch = cancel
	m.pending = name
	m.err = nil
	m.state = StateLoading

	return m, tea.Batch(m.spinner.Tick, runSearch(ctx, cancel, m.svc, m.generation, name, m.home.Coordinate))
}

// abandonSearch cancels the running search and moves to a new generation so
// anything it still delivers is ignored.
func (m *Model) abandonSearch() {
	if m.cancelSearch != nil {
		m.cancelSearch()
		m.cancelSearch = nil
	}
	m.generation++
}

func (m Model) acceptResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.generation {
		log.Printf("op=search outcome=stale generation=%d current=%d", msg.generation, m.generation)
		return m, nil
	}
	m.cancelSearch = nil

	if msg.err != nil {
		log.Printf("op=search country=%q outcome=error err=%v", m.pending, msg.err)
		m.err = msg.err
		m.state = StateError
		return m, nil
	}

	result := *msg.result
	result.Generation = msg.generation
	m.result = &result
	m.marker = &mapMarker{at: result.Country.Coordinate, tier: scoring.TierFor(result.Score.Total)}
	m.viewport = worldmap.Viewport{Center: result.Country.Coordinate, Zoom: worldmap.MinZoom}
	m.gauge = 0
	m.state = StateDisplay

	cmds := []tea.Cmd{loadHistory(m.svc)}
	if result.Score.Total > 0 {
		cmds = append(cmds, gaugeTick(msg.generation))
	}
	return m, tea.Batch(cmds...)
}

// enterSearch shows the country list, loading it on first use
func (m Model) enterSearch() (Model, tea.Cmd) {
	m.state = StateSearch
	cmds := []tea.Cmd{loadHistory(m.svc)}
	if m.countries == nil && m.countriesErr == nil {
		cmds = append(cmds, loadCountries(m.svc, m.requestTimeout))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancelSearch != nil {
		m.cancelSearch()
		m.cancelSearch = nil
	}
	return m, tea.Quit
}

func (m Model) filtering() bool {
	return m.state == StateSearch && m.countries != nil && m.countryList.FilterState() == list.Filtering
}

func (m Model) listWidth() int {
	return max(m.width-4, 20)
}

func (m Model) listHeight() int {
	return max(m.height-14, 8)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateLocating:
		return m.viewLocating()
	case StateProvisioning:
		return m.viewProvisioning()
	case StateSearch:
		return m.viewSearch()
	case StateLoading:
		return m.viewLoading()
	case StateDisplay:
		return m.viewDisplay()
	case StateError:
		return m.viewError()
	}

	return ""
}

func (m Model) viewLocating() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		titleStyle.Render("✈ Travel Terminal"),
		"",
		fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("Finding your location...")),
	)
}

// viewProvisioning renders the initial setup screen
func (m Model) viewProvisioning() string {
	title := titleStyle.Render("✈ Travel Terminal Setup")

	sp := m.spinner.View()
	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(m.provisionStatus)

	info := helpStyle.Render("One-time setup: downloading world map outlines...")

	return lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		"",
		fmt.Sprintf("%s %s", sp, status),
		"",
		info,
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")
	help := helpStyle.Render("Press any key to return to search • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", genericError, "", help)
}

// viewLoading renders the loading view
func (m Model) viewLoading() string {
	status := fmt.Sprintf("%s Checking travel conditions for %s...", m.spinner.View(), m.pending)
	help := helpStyle.Render("S/Esc: Cancel • Q: Quit")
	return lipgloss.JoinVertical(lipgloss.Left, "", status, help)
}

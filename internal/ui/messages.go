package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/travel-terminal/internal/geolocation"
	"github.com/ngmaloney/travel-terminal/internal/models"
	"github.com/ngmaloney/travel-terminal/internal/worldmap"
)

// Message types for async operations

// homeLocatedMsg ends the locating gate
type homeLocatedMsg struct {
	home geolocation.Home
}

type mapCheckedMsg struct {
	needed bool
	err    error
}

// provisioningStartedMsg carries the channels of a running provisioning job
type provisioningStartedMsg struct {
	progressChan <-chan string
	resultChan   <-chan error
}

type provisionStatusMsg string

type provisionResultMsg struct {
	err error
}

type segmentsLoadedMsg struct {
	segments []worldmap.Segment
	err      error
}

type countriesLoadedMsg struct {
	countries []models.CountryProfile
	err       error
}

type historyLoadedMsg struct {
	entries []models.HistoryEntry
	err     error
}

// searchResultMsg is tagged with the generation of the search that produced it
type searchResultMsg struct {
	generation uint64
	result     *models.SearchResult
	err        error
}

type gaugeTickMsg struct {
	generation uint64
}

const (
	gaugeInterval = 15 * time.Millisecond
	historyLimit  = 5
)

func locateHome(locator geolocation.Locator, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		return homeLocatedMsg{home: geolocation.Resolve(context.Background(), locator, timeout)}
	}
}

func checkMap(store MapStore) tea.Cmd {
	return func() tea.Msg {
		needed, err := store.NeedsProvisioning()
		return mapCheckedMsg{needed: needed, err: err}
	}
}

// startProvisioning runs the download in the background and hands its
// channels back to the model so it can keep listening.
func startProvisioning(store MapStore) tea.Cmd {
	return func() tea.Msg {
		progress := make(chan string, 8)
		result := make(chan error, 1)

		go func() {
			err := store.Provision(context.Background(), progress)
			close(progress)
			result <- err
		}()

		return provisioningStartedMsg{progressChan: progress, resultChan: result}
	}
}

func waitForProvisionStatus(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-ch
		if !ok {
			return nil
		}
		return provisionStatusMsg(status)
	}
}

func waitForProvisionResult(ch <-chan error) tea.Cmd {
	return func() tea.Msg {
		return provisionResultMsg{err: <-ch}
	}
}

func loadSegments(store MapStore) tea.Cmd {
	return func() tea.Msg {
		segments, err := store.Segments()
		return segmentsLoadedMsg{segments: segments, err: err}
	}
}

func loadCountries(svc Searcher, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		countries, err := svc.Countries(ctx)
		return countriesLoadedMsg{countries: countries, err: err}
	}
}

func loadHistory(svc Searcher) tea.Cmd {
	return func() tea.Msg {
		entries, err := svc.RecentSearches(historyLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// runSearch owns ctx's cancel func once the search finishes
func runSearch(ctx context.Context, cancel context.CancelFunc, svc Searcher, generation uint64, name string, home models.Coordinate) tea.Cmd {
	return func() tea.Msg {
		defer cancel()

		result, err := svc.Search(ctx, name, home)
		return searchResultMsg{generation: generation, result: result, err: err}
	}
}

func gaugeTick(generation uint64) tea.Cmd {
	return tea.Tick(gaugeInterval, func(time.Time) tea.Msg {
		return gaugeTickMsg{generation: generation}
	})
}

package ui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/ngmaloney/travel-terminal/internal/models"
)

// countryItem wraps a CountryProfile for use in a list
type countryItem struct {
	country models.CountryProfile
}

// FilterValue implements list.Item
func (c countryItem) FilterValue() string {
	return c.country.Name
}

// Title implements list.DefaultItem
func (c countryItem) Title() string {
	return c.country.Name
}

// Description implements list.DefaultItem
func (c countryItem) Description() string {
	desc := c.country.Region
	if c.country.Capital != "" {
		desc = c.country.Capital + " • " + desc
	}
	return desc
}

// createCountryList creates a filterable list.Model from countries
func createCountryList(countries []models.CountryProfile, width, height int) list.Model {
	items := make([]list.Item, len(countries))
	for i, country := range countries {
		items[i] = countryItem{country: country}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Select a Country"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}

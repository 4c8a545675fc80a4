package models

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CountryProfile is the subset of country directory data the scorer needs.
type CountryProfile struct {
	Name          string     `json:"name"`
	Capital       string     `json:"capital"` // empty if the country has none
	Region        string     `json:"region"`  // e.g. "Europe", "Americas"
	Population    int64      `json:"population"`
	FlagURL       string     `json:"flag_url"`
	Coordinate    Coordinate `json:"coordinate"` // capital coordinate
	HasCoordinate bool       `json:"has_coordinate"`
}

// Label returns "Name (Capital)" or just the name when there is no capital.
func (c CountryProfile) Label() string {
	if c.Capital == "" {
		return c.Name
	}
	return c.Name + " (" + c.Capital + ")"
}

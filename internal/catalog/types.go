package catalog

import "time"

// PageInfo describes pagination metadata for a list response.
type PageInfo struct {
	Count int    `json:"count"`
	Pages int    `json:"pages"`
	Next  string `json:"next"`
	Prev  string `json:"prev"`
}

// Reference points at another record by name and canonical URL.
// Cross-references in the upstream schema are by URL only.
type Reference struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Character mirrors one character record in the upstream schema.
type Character struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Status   string    `json:"status"`
	Species  string    `json:"species"`
	Type     string    `json:"type"`
	Gender   string    `json:"gender"`
	Origin   Reference `json:"origin"`
	Location Reference `json:"location"`
	Image    string    `json:"image"`
	Episodes []string  `json:"episode"`
	URL      string    `json:"url"`
	Created  time.Time `json:"created"`
}

// Location mirrors one location record in the upstream schema.
type Location struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Dimension string    `json:"dimension"`
	Residents []string  `json:"residents"`
	URL       string    `json:"url"`
	Created   time.Time `json:"created"`
}

// Episode mirrors one episode record in the upstream schema.
type Episode struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	AirDate    string    `json:"air_date"`
	Code       string    `json:"episode"`
	Characters []string  `json:"characters"`
	URL        string    `json:"url"`
	Created    time.Time `json:"created"`
}

// CharacterPage is one page of a character listing query.
type CharacterPage struct {
	Info    PageInfo    `json:"info"`
	Results []Character `json:"results"`
}

// LocationPage is one page of a location listing query.
type LocationPage struct {
	Info    PageInfo   `json:"info"`
	Results []Location `json:"results"`
}

// EpisodePage is one page of an episode listing query.
type EpisodePage struct {
	Info    PageInfo  `json:"info"`
	Results []Episode `json:"results"`
}

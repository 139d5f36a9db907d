package model

import "time"

// Report is the terminal artifact of a scrape run
type Report struct {
	Subject   string    `json:"subject"`    // Page subject derived from the URL
	SourceURL string    `json:"source_url"` // URL that was scraped
	FetchedAt time.Time `json:"fetched_at"` // When the page was loaded
	FromCache bool      `json:"from_cache"` // Whether the page came from the local cache
	FetchMeta FetchMeta `json:"fetch_meta"`

	Records           []PersonRecord      `json:"records"`
	Issues            []RowIssue          `json:"issues,omitempty"`
	Conflicts         []DuplicateConflict `json:"conflicts,omitempty"`
	DuplicatesRemoved int                 `json:"duplicates_removed"`
	HeaderRowsDropped int                 `json:"header_rows_dropped"`

	Summary Summary `json:"summary"`

	Narrative *Narrative `json:"narrative,omitempty"` // Optional LLM paragraph, never alters records
}

// FetchMeta contains HTTP metadata from fetching the source
type FetchMeta struct {
	StatusCode   int               `json:"status_code,omitempty"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// Summary holds descriptive statistics over a record set
type Summary struct {
	Total            int           `json:"total"`
	Living           int           `json:"living"`
	Deceased         int           `json:"deceased"`
	MeanAgeAtDeath   *float64      `json:"mean_age_at_death,omitempty"`
	MedianAgeAtDeath *float64      `json:"median_age_at_death,omitempty"`
	Longest          *PersonRecord `json:"longest_lived,omitempty"`
	Shortest         *PersonRecord `json:"shortest_lived,omitempty"`
	EarliestBorn     *PersonRecord `json:"earliest_born,omitempty"`
	LatestBorn       *PersonRecord `json:"latest_born,omitempty"`
}

// Narrative contains the optional LLM-generated paragraph
type Narrative struct {
	Enabled       bool     `json:"enabled"`
	Provider      string   `json:"provider,omitempty"`
	Model         string   `json:"model,omitempty"`
	StrictFigures bool     `json:"strict_figures"`
	Text          string   `json:"text,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

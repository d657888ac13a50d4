package model

import "net/url"

const lookupBaseURL = "https://www.perplexity.ai/search"

// SearchResult is a single search hit: a reference plus display metadata
// derived purely from the query. Nothing is stored anywhere; the reference
// carries all identity.
type SearchResult struct {
	Reference Reference `json:"reference"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
}

// NewSearchResult builds the search hit for a query
func NewSearchResult(q Query) *SearchResult {
	return &SearchResult{
		Reference: NewReference(q),
		Title:     string(q),
		URL:       LookupURL(q),
	}
}

// Document is a fetched answer with provenance metadata
type Document struct {
	Reference Reference         `json:"reference"`
	Title     string            `json:"title"`
	Text      string            `json:"text"`
	URL       string            `json:"url"`
	Metadata  map[string]string `json:"metadata"`
}

// LookupURL returns the public search URL for a query
func LookupURL(q Query) string {
	return lookupBaseURL + "?q=" + url.QueryEscape(string(q))
}

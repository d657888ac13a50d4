package model

// Answer is the normalized response from the upstream QA API. Meta carries
// upstream diagnostics (model identifier, token usage) and is opaque to
// this system.
type Answer struct {
	Text string
	Meta map[string]any
}

// Model returns the upstream model identifier from the answer metadata,
// or an empty string if the upstream did not report one.
func (a *Answer) Model() string {
	if m, ok := a.Meta["model"].(string); ok {
		return m
	}
	return ""
}

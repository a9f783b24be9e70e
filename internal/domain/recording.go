package domain

import "context"

// Audio sources reported to clients.
const (
	SourceXenoCanto = "xeno-canto"
	SourceLocal     = "local"
)

// Recording is a single playable audio sample for a species. Optional fields
// are empty when the source has no such metadata.
type Recording struct {
	Source     string
	AudioURL   string
	Location   string
	CallType   string
	Quality    string
	Recordist  string
	Country    string
	LicenseURL string
	ExternalID string
}

// RecordingSource retrieves recordings for a species.
//
// Implementations never fail: network errors, bad payloads and "no matches"
// all come back as an empty slice, and callers treat that as a normal,
// retryable outcome.
type RecordingSource interface {
	Fetch(ctx context.Context, species *Species, callType string, limit int) []Recording

	// Name identifies the source for health output and metrics.
	Name() string
}

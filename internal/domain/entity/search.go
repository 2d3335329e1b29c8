package entity

// SourceKind names the data source a result set came from.
type SourceKind string

const (
	SourcePrimary  SourceKind = "primary"
	SourceFallback SourceKind = "fallback"
)

// SearchState is a step of the locate-and-fetch workflow.
type SearchState string

const (
	StateIdle             SearchState = "idle"
	StateLocating         SearchState = "locating"
	StateQueryingPrimary  SearchState = "querying_primary"
	StateQueryingFallback SearchState = "querying_fallback"
	StateSuccess          SearchState = "success"
	StateFailed           SearchState = "failed"
)

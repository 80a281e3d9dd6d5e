package models

import "time"

// SkipReason explains why an input produced no tokens.
type SkipReason string

const (
	SkipReasonNone       SkipReason = ""
	SkipReasonOutOfScope SkipReason = "out_of_content_scope"
	SkipReasonReadError  SkipReason = "read_error"
)

// FileTokens holds the tokens harvested from one input.
type FileTokens struct {
	Path      string     `json:"path"`
	Extractor string     `json:"extractor,omitempty"`
	Tokens    []string   `json:"tokens"`
	Skipped   bool       `json:"skipped,omitempty"`
	Reason    SkipReason `json:"reason,omitempty"`
	Error     string     `json:"error,omitempty"`
	CacheHit  bool       `json:"cache_hit,omitempty"`
}

// HarvestResult aggregates a harvest run. Files keeps input order; Tokens is
// the sorted union without duplicates.
type HarvestResult struct {
	Files      []FileTokens  `json:"files"`
	Tokens     []string      `json:"tokens"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
	CacheHits  int           `json:"cache_hits"`
	SkipCount  int           `json:"skipped"`
	ErrorCount int           `json:"errors"`
}

// ScannedCount returns the number of inputs that were actually extracted.
func (r *HarvestResult) ScannedCount() int {
	return len(r.Files) - r.SkipCount
}

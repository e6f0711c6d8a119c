package constants

import "time"

// MatchThresholds hold the acceptance bars for the match selector. The lower
// bar applies when the input carries natural-language indicator phrases, which
// score low on the direct-name signal and need more tolerance to be reachable.
// Both values are calibrated against the engine scenario tests, not derived.
var MatchThresholds = struct {
	NaturalLanguage float64
	Plain           float64
}{
	NaturalLanguage: 0.15,
	Plain:           0.25,
}

// ScoreWeights are the per-signal multipliers summed into the aggregate score.
var ScoreWeights = struct {
	DirectName      float64
	PhrasePattern   float64
	PatternOverlap  float64
	SemanticKeyword float64
	Description     float64
}{
	DirectName:      0.8,
	PhrasePattern:   0.7,
	PatternOverlap:  0.6,
	SemanticKeyword: 0.4,
	Description:     0.2,
}

var FuzzyMatch = struct {
	WordThreshold    float64 // minimum per-word similarity to count as a match
	MinPatternLength int     // pattern words at or below this length are skipped
}{
	WordThreshold:    0.8,
	MinPatternLength: 2,
}

var StateLimits = struct {
	TTL          time.Duration
	MaxEntries   int
	ContextDepth int
}{
	TTL:          2 * time.Hour,
	MaxEntries:   10000,
	ContextDepth: 10,
}

var CacheTTL = struct {
	CatalogSnapshot time.Duration
}{
	CatalogSnapshot: 24 * time.Hour,
}

var AIInputLimits = struct {
	MaxMessageLength int
}{
	MaxMessageLength: 500,
}

var AITimeouts = struct {
	Analysis time.Duration
}{
	Analysis: 6 * time.Second,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        2 * time.Minute,
	RateLimitTimeout:    10 * time.Minute,
	HealthCheckInterval: 1 * time.Minute,
}

var DiscoveryConfig = struct {
	Concurrency  int
	SyncInterval time.Duration
}{
	Concurrency:  4,
	SyncInterval: 30 * time.Minute,
}

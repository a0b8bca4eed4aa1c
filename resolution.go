// resolution.go
// Package entityresolution links canonical registry records of organizations
// to the name variants that appear in scraped source lists. Matching is
// key-based first (normalized names and generated aliases), then fuzzy
// (token-set similarity gated by a significant-token guard), and every
// accepted or rejected decision is carried into the output so the run can be
// audited. Given identical inputs the output is byte-for-byte identical.
package entityresolution

import (
	"context"

	"github.com/baditaflorin/go_entity_resolution/internal/core/domain"
	"github.com/baditaflorin/go_entity_resolution/pkg/resolution"
)

// Re-exported domain types so callers only need this package.
type (
	// CanonicalRecord is one row of the official registry.
	CanonicalRecord = domain.CanonicalRecord
	// SourceList is the ordered list of raw names from one source.
	SourceList = domain.SourceList
	// Resolution bundles the enriched registry with all derived artifacts.
	Resolution = domain.Resolution
	// EnrichedRecord is a registry record plus its match outcome.
	EnrichedRecord = domain.EnrichedRecord
	// MatchOutcome describes how (and whether) a record was matched.
	MatchOutcome = domain.MatchOutcome
	// DedupGroup is one cluster of registry records describing the same entity.
	DedupGroup = domain.DedupGroup
	// Classification reports subunit and branch status of a name.
	Classification = domain.Classification
	// Report holds the per-run summary counters.
	Report = domain.Report
)

// Re-exported options for the underlying facade.
var (
	WithThresholds = resolution.WithThresholds
	WithRules      = resolution.WithRules
	WithLogger     = resolution.WithLogger
	WithScorer     = resolution.WithScorer
	WithoutFuzzy   = resolution.WithoutFuzzy
	WithWarmUp     = resolution.WithWarmUp
)

// Resolver is the top-level entry point.
type Resolver = resolution.Resolution

// Option configures a Resolver.
type Option = resolution.Option

// New creates a new Resolver with the provided functional options.
func New(opts ...Option) (*Resolver, error) {
	return resolution.New(opts...)
}

// ResolveWithDefaults runs the full pipeline with default configuration.
func ResolveWithDefaults(ctx context.Context, registry []CanonicalRecord, sources []SourceList) (*Resolution, error) {
	lg, err := createDefaultLogger()
	if err != nil {
		return nil, err
	}
	defer lg.Close()

	r, err := New(WithLogger(lg))
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, registry, sources)
}

// Package resolve sequences the resolution pipeline: key derivation, alias
// expansion, exact and fuzzy matching with the guard, classification, and
// report accumulation.
package resolve

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/baditaflorin/go_entity_resolution/internal/core/alias"
	"github.com/baditaflorin/go_entity_resolution/internal/core/classify"
	"github.com/baditaflorin/go_entity_resolution/internal/core/domain"
	"github.com/baditaflorin/go_entity_resolution/internal/core/fuzzy"
	"github.com/baditaflorin/go_entity_resolution/internal/core/index"
	"github.com/baditaflorin/go_entity_resolution/internal/ports"
)

// Config holds the match-acceptance thresholds.
type Config struct {
	// MinScore is the minimum fuzzy score for a match to be considered.
	MinScore float64
	// ReviewScore flags accepted fuzzy matches below it for human review.
	ReviewScore float64
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		MinScore:    90,
		ReviewScore: 96,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MinScore < 0 || c.MinScore > 100 {
		return errors.New("minScore must be between 0 and 100")
	}
	if c.ReviewScore < 0 || c.ReviewScore > 100 {
		return errors.New("reviewScore must be between 0 and 100")
	}
	return nil
}

// Resolver links canonical registry records to scraped source names. Each
// record's outcome is computed independently and written exactly once; given
// identical inputs the output is identical, including tie-breaks.
type Resolver struct {
	config       Config
	logger       ports.Logger
	registryNorm ports.Normalizer
	sourceNorm   ports.Normalizer
	aliases      *alias.Generator
	scorer       ports.Scorer
	guard        *fuzzy.Guard
	classifier   *classify.Classifier
}

// NewResolver creates a resolver from its collaborators.
func NewResolver(
	config Config,
	logger ports.Logger,
	registryNorm, sourceNorm ports.Normalizer,
	aliases *alias.Generator,
	scorer ports.Scorer,
	guard *fuzzy.Guard,
	classifier *classify.Classifier,
) (*Resolver, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{
		config:       config,
		logger:       logger,
		registryNorm: registryNorm,
		sourceNorm:   sourceNorm,
		aliases:      aliases,
		scorer:       scorer,
		guard:        guard,
		classifier:   classifier,
	}, nil
}

// query is one key a record is matched under.
type query struct {
	key       string
	via       domain.MatchedVia
	aliasName string
}

// Resolve runs the full pipeline over the registry and the source lists.
func (r *Resolver) Resolve(ctx context.Context, registry []domain.CanonicalRecord, sources []domain.SourceList) (*domain.Resolution, error) {
	union := buildUnion(sources)
	idx := index.Build(union, r.sourceNorm)
	candidates := idx.UniqueKeys()

	r.logger.Info("Starting resolution",
		"registry_records", len(registry),
		"union_names", len(union),
		"unique_keys", len(candidates),
	)

	res := &domain.Resolution{
		Union: union,
		Report: domain.Report{
			Sources: make(map[string]int, len(sources)),
		},
	}
	for _, s := range sources {
		res.Report.Sources[s.Source] = len(s.Names)
	}

	claimed := make(map[int]struct{})

	for _, rec := range registry {
		select {
		case <-ctx.Done():
			r.logger.Error("Resolution cancelled", "error", ctx.Err())
			return nil, ctx.Err()
		default:
		}

		if strings.TrimSpace(rec.OrganizationName) == "" {
			res.Report.SkippedRecords++
			r.logger.Warn("Skipping record without organization name", "id", rec.ID)
			continue
		}

		enriched := r.resolveRecord(rec, idx, candidates, claimed, res)
		res.Enriched = append(res.Enriched, enriched)

		switch enriched.Match.MatchType {
		case domain.MatchExact:
			res.Report.MatchedExact++
		case domain.MatchFuzzy:
			res.Report.MatchedFuzzy++
		default:
			res.Report.UnmatchedOfficial++
		}
		if enriched.Match.Review {
			res.Report.ReviewCount++
		}
		if enriched.Match.IsBranch {
			res.Report.BranchCount++
		}
	}

	for i, occ := range union {
		if _, ok := claimed[i]; ok {
			continue
		}
		res.Unmatched = append(res.Unmatched, domain.UnmatchedName{
			Name:   occ.Name,
			Source: occ.Source,
			Key:    idx.Key(i),
		})
	}

	res.Report.OfficialTotal = len(res.Enriched)
	res.Report.AggregatorsUnionTotal = len(union)
	res.Report.MatchedTotal = res.Report.MatchedExact + res.Report.MatchedFuzzy
	res.Report.UnmatchedAggregators = len(res.Unmatched)

	r.logger.Info("Resolution finished",
		"matched_exact", res.Report.MatchedExact,
		"matched_fuzzy", res.Report.MatchedFuzzy,
		"unmatched_official", res.Report.UnmatchedOfficial,
		"unmatched_aggregators", res.Report.UnmatchedAggregators,
		"review", res.Report.ReviewCount,
		"skipped", res.Report.SkippedRecords,
	)
	return res, nil
}

// resolveRecord computes the match outcome for one canonical record.
func (r *Resolver) resolveRecord(rec domain.CanonicalRecord, idx *index.Index, candidates []string, claimed map[int]struct{}, res *domain.Resolution) domain.EnrichedRecord {
	mainKey := r.registryNorm.Normalize(rec.OrganizationName)
	aliases := r.aliases.Generate(rec.OrganizationName)

	aliasNames := make([]string, 0, len(aliases))
	for _, a := range aliases {
		aliasNames = append(aliasNames, a.Name)
	}

	out := domain.EnrichedRecord{
		CanonicalRecord: rec,
		Match: domain.MatchOutcome{
			OfficialKey:     mainKey,
			OfficialAliases: aliasNames,
			MatchType:       domain.MatchNone,
			IsBranch:        r.classifier.Classify(rec.OrganizationName).IsBranch,
		},
	}

	queries := make([]query, 0, 1+len(aliases))
	queries = append(queries, query{key: mainKey, via: domain.ViaOfficialName})
	for _, a := range aliases {
		queries = append(queries, query{key: a.Key, via: domain.ViaOfficialAlias, aliasName: a.Name})
	}

	// Exact lookup: main key first, then aliases in generation order.
	for _, q := range queries {
		positions := idx.Lookup(q.key)
		if len(positions) == 0 {
			continue
		}
		claim(claimed, positions)
		out.Match.FoundInAggregators = true
		out.Match.MatchType = domain.MatchExact
		out.Match.MatchScore = 100
		out.Match.MatchedName = shortestName(idx, positions)
		out.Match.AggregatorSources = sourceTags(idx, positions)
		out.Match.MatchedVia = q.via
		out.Match.MatchedOfficialAlias = q.aliasName
		r.logger.Debug("Exact match",
			"record", rec.OrganizationName,
			"key", q.key,
			"matched_name", out.Match.MatchedName,
		)
		r.mergeMatchedNameFlags(&out.Match)
		return out
	}

	// Fuzzy: keep the globally highest passing score across all queries.
	var best struct {
		ok    bool
		q     query
		key   string
		score float64
	}
	for _, q := range queries {
		candKey, score := r.scorer.BestMatch(q.key, candidates)
		if candKey == "" || score < r.config.MinScore {
			continue
		}
		verdict := r.guard.Evaluate(q.key, candKey, score)
		if !verdict.Pass {
			// Near-miss: retained for manual tuning, never discarded silently.
			res.Rejected = append(res.Rejected, domain.RejectedMatch{
				OfficialKey:     mainKey,
				QueryKey:        q.key,
				CandidateKey:    candKey,
				Score:           score,
				QueryTokens:     verdict.QueryTokens,
				CandidateTokens: verdict.CandidateTokens,
				SharedTokens:    verdict.SharedTokens,
			})
			continue
		}
		if score > best.score {
			best.ok = true
			best.q = q
			best.key = candKey
			best.score = score
		}
	}

	if best.ok {
		positions := idx.Lookup(best.key)
		claim(claimed, positions)
		out.Match.FoundInAggregators = true
		out.Match.MatchType = domain.MatchFuzzy
		out.Match.MatchScore = best.score
		out.Match.MatchedName = idx.Name(positions[0]).Name
		out.Match.AggregatorSources = sourceTags(idx, positions)
		out.Match.MatchedVia = best.q.via
		out.Match.MatchedOfficialAlias = best.q.aliasName
		if best.score < r.config.ReviewScore {
			out.Match.Review = true
		}
		r.logger.Debug("Fuzzy match",
			"record", rec.OrganizationName,
			"query_key", best.q.key,
			"candidate_key", best.key,
			"score", best.score,
		)
	}

	r.mergeMatchedNameFlags(&out.Match)
	return out
}

// mergeMatchedNameFlags folds the classification of the matched source name
// into the record's review and branch flags.
func (r *Resolver) mergeMatchedNameFlags(m *domain.MatchOutcome) {
	if m.MatchedName == "" {
		return
	}
	cls := r.classifier.Classify(m.MatchedName)
	if cls.IsSubunit {
		m.Review = true
	}
	if cls.IsBranch {
		m.IsBranch = true
	}
}

func buildUnion(sources []domain.SourceList) []domain.RawName {
	var union []domain.RawName
	for _, s := range sources {
		for _, n := range s.Names {
			union = append(union, domain.RawName{Name: n, Source: s.Source})
		}
	}
	return union
}

func claim(claimed map[int]struct{}, positions []int) {
	for _, p := range positions {
		claimed[p] = struct{}{}
	}
}

// shortestName returns the shortest surface form among the occurrences,
// preferring the first-seen on ties.
func shortestName(idx *index.Index, positions []int) string {
	best := idx.Name(positions[0]).Name
	for _, p := range positions[1:] {
		if n := idx.Name(p).Name; len(n) < len(best) {
			best = n
		}
	}
	return best
}

func sourceTags(idx *index.Index, positions []int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range positions {
		src := idx.Name(p).Source
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		out = append(out, src)
	}
	sort.Strings(out)
	return out
}

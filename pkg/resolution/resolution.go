// Package resolution is the high-level facade over the resolution pipeline.
package resolution

import (
	"context"

	"github.com/baditaflorin/go_entity_resolution/internal/adapters/logger"
	"github.com/baditaflorin/go_entity_resolution/internal/adapters/normalizer"
	"github.com/baditaflorin/go_entity_resolution/internal/core/alias"
	"github.com/baditaflorin/go_entity_resolution/internal/core/classify"
	"github.com/baditaflorin/go_entity_resolution/internal/core/dedup"
	"github.com/baditaflorin/go_entity_resolution/internal/core/domain"
	"github.com/baditaflorin/go_entity_resolution/internal/core/fuzzy"
	"github.com/baditaflorin/go_entity_resolution/internal/core/resolve"
	"github.com/baditaflorin/go_entity_resolution/internal/core/rules"
	"github.com/baditaflorin/go_entity_resolution/internal/ports"
	"github.com/baditaflorin/go_entity_resolution/internal/warmup"
	"github.com/baditaflorin/l"
)

// Resolution provides methods to resolve scraped organization names against a
// canonical registry.
type Resolution struct {
	resolver     *resolve.Resolver
	dedup        *dedup.Deduplicator
	classifier   *classify.Classifier
	aliases      *alias.Generator
	registryNorm ports.Normalizer
	logger       ports.Logger
}

// Option defines a functional option for configuring Resolution.
type Option func(*config)

type config struct {
	Thresholds   resolve.Config
	Guard        fuzzy.GuardConfig
	Rules        rules.Set
	Logger       ports.Logger
	Scorer       ports.Scorer
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithThresholds sets custom fuzzy acceptance and review thresholds.
func WithThresholds(minScore, reviewScore float64) Option {
	return func(cfg *config) {
		cfg.Thresholds.MinScore = minScore
		cfg.Thresholds.ReviewScore = reviewScore
	}
}

// WithGuardConfig sets a custom guard configuration.
func WithGuardConfig(gc fuzzy.GuardConfig) Option {
	return func(cfg *config) {
		cfg.Guard = gc
	}
}

// WithRules replaces the built-in heuristic rule tables.
func WithRules(rs rules.Set) Option {
	return func(cfg *config) {
		cfg.Rules = rs
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithScorer sets a custom fuzzy scorer.
func WithScorer(scorer ports.Scorer) Option {
	return func(cfg *config) {
		cfg.Scorer = scorer
	}
}

// WithoutFuzzy disables the fuzzy matching stage; only exact key matches are
// produced.
func WithoutFuzzy() Option {
	return func(cfg *config) {
		cfg.Scorer = fuzzy.Disabled{}
	}
}

// WithWarmUp enables a default warmup pass on construction.
func WithWarmUp() Option {
	return func(cfg *config) {
		cfg.WarmUp = true
		cfg.WarmUpConfig = warmup.DefaultWarmupConfig()
	}
}

// WithWarmUpConfig enables warmup with a custom configuration.
func WithWarmUpConfig(wc warmup.WarmupConfig) Option {
	return func(cfg *config) {
		cfg.WarmUp = true
		cfg.WarmUpConfig = wc
	}
}

// New creates a new Resolution instance.
func New(opts ...Option) (*Resolution, error) {
	cfg := &config{
		Thresholds: resolve.DefaultConfig(),
		Guard:      fuzzy.DefaultGuardConfig(),
		Rules:      rules.Default(),
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	// Set up logger if not provided
	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	// Set up scorer if not provided
	if cfg.Scorer == nil {
		cfg.Scorer = fuzzy.NewScorer()
	}

	registryNorm := normalizer.NewRegistryNormalizer(cfg.Rules)
	sourceNorm := normalizer.NewSourceNormalizer(cfg.Rules)
	textNorm := normalizer.NewTextNormalizer()

	generator := alias.NewGenerator(cfg.Rules, registryNorm)
	guard := fuzzy.NewGuard(cfg.Guard, cfg.Rules)
	classifier := classify.New(cfg.Rules, textNorm)

	resolver, err := resolve.NewResolver(
		cfg.Thresholds,
		cfg.Logger,
		registryNorm, sourceNorm,
		generator,
		cfg.Scorer,
		guard,
		classifier,
	)
	if err != nil {
		return nil, err
	}

	if cfg.WarmUp {
		wm := warmup.NewManager(cfg.Logger, cfg.WarmUpConfig)
		wm.RegisterNormalizer(registryNorm)
		wm.RegisterNormalizer(sourceNorm)
		wm.RegisterScorer(cfg.Scorer)
		wm.WarmUp(context.Background())
	}

	return &Resolution{
		resolver:     resolver,
		dedup:        dedup.New(registryNorm, cfg.Logger),
		classifier:   classifier,
		aliases:      generator,
		registryNorm: registryNorm,
		logger:       cfg.Logger,
	}, nil
}

// Resolve links every canonical registry record to scraped source names and
// returns the enriched registry with all derived artifacts.
func (r *Resolution) Resolve(ctx context.Context, registry []domain.CanonicalRecord, sources []domain.SourceList) (*domain.Resolution, error) {
	return r.resolver.Resolve(ctx, registry, sources)
}

// Dedup groups registry records that describe the same real-world entity.
func (r *Resolution) Dedup(records []domain.CanonicalRecord) []domain.DedupGroup {
	return r.dedup.Dedup(records)
}

// Classify reports whether a name denotes a subunit or a branch.
func (r *Resolution) Classify(name string) domain.Classification {
	return r.classifier.Classify(name)
}

// Aliases generates the alias surface forms for a registry name.
func (r *Resolution) Aliases(name string) []domain.Alias {
	return r.aliases.Generate(name)
}

// NormalizeKey derives the registry matching key for a name.
func (r *Resolution) NormalizeKey(name string) string {
	return r.registryNorm.Normalize(name)
}

package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_entity_resolution/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  500,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles system warmup operations. Warming the normalizers and the
// scorer primes their buffer pools before a large batch run.
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	scorers     []ports.Scorer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// RegisterScorer adds a scorer to be warmed up
func (wm *Manager) RegisterScorer(scorer ports.Scorer) {
	wm.scorers = append(wm.scorers, scorer)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.normalizers)+len(wm.scorers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	var warmupCtx context.Context
	var cancel context.CancelFunc
	if wm.config.Duration > 0 {
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	} else {
		warmupCtx = ctx
	}

	wm.warmUpNormalizers(warmupCtx)
	wm.warmUpScorers(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

// warmUpNormalizers runs warmup for all registered normalizers
func (wm *Manager) warmUpNormalizers(ctx context.Context) {
	if len(wm.normalizers) == 0 {
		return
	}

	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, normalizer := range wm.normalizers {
					for _, s := range sampleNames {
						_ = normalizer.Normalize(s)
					}
				}
			}
		}()
	}

	wg.Wait()
}

// warmUpScorers runs warmup for all registered scorers
func (wm *Manager) warmUpScorers(ctx context.Context) {
	if len(wm.scorers) == 0 {
		return
	}

	wm.logger.Debug("Warming up scorers", "count", len(wm.scorers))

	keys := make([]string, 0, len(sampleNames))
	for _, s := range sampleNames {
		keys = append(keys, strings.ToLower(s))
	}

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				for _, scorer := range wm.scorers {
					query := keys[j%len(keys)]
					_, _ = scorer.BestMatch(query, keys)
				}
			}
		}()
	}

	wg.Wait()
}

// sampleNames exercises the cyrillic slow path and the pooled buffers with
// realistic organization-name shapes.
var sampleNames = []string{
	"Федеральное государственное бюджетное образовательное учреждение высшего образования «Пример»",
	"Московский государственный технический университет",
	"Национальный исследовательский университет «Высшая школа экономики»",
	"Институт проблем управления имени В.А. Трапезникова",
	"Российский государственный гуманитарный университет",
}

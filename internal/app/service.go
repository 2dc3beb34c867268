// Package app wires the orbit pipeline: fetch, record, score, rank,
// enrich, partition.
package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/okian/orbit/internal/adapters/cache"
	"github.com/okian/orbit/internal/domain/model"
	"github.com/okian/orbit/internal/domain/rank"
	"github.com/okian/orbit/internal/domain/record"
	"github.com/okian/orbit/internal/domain/scoring"
	"github.com/okian/orbit/internal/domain/tier"
	"github.com/okian/orbit/pkg/logger"
	"github.com/okian/orbit/pkg/metrics"
)

// avatarBatchLimit is the upstream cap on ids per avatar lookup. The
// pipeline refuses layer requests that would exceed it instead of
// sending an oversized batch.
const avatarBatchLimit = 100

// Fetcher is the upstream collaborator boundary. Implementations are
// expected to propagate their failures unmodified; the pipeline
// performs no recovery.
type Fetcher interface {
	Followers(ctx context.Context, screenName string) ([]string, error)
	Friends(ctx context.Context, screenName string) ([]string, error)
	Mentions(ctx context.Context, screenName string) ([]model.Post, error)
	Timeline(ctx context.Context, screenName string) ([]model.Post, error)
	Likes(ctx context.Context, screenName string) ([]model.Post, error)
	Avatars(ctx context.Context, ids []string) (map[string]string, error)
}

// Orbit is one complete computation result: the ranked tiers plus the
// observability totals.
type Orbit struct {
	ScreenName string            `json:"screen_name"`
	Layers     [][]scoring.Tally `json:"layers"`
	Totals     record.Totals     `json:"totals"`

	// Friends is fetched alongside the scoring inputs but never feeds
	// the score; it is surfaced for collaborators outside this core.
	Friends []string `json:"-"`
}

// Service runs orbit computations. Each computation is isolated; the
// only shared state is the read-through cache.
type Service struct {
	fetcher       Fetcher
	cache         cache.Cache
	defaultLayers []int
	logger        logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the upstream fetch boundary.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithCache sets the orbit result cache. Without one, every request
// recomputes.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithDefaultLayers sets the layer request used when a caller supplies none.
func WithDefaultLayers(sizes []int) Option {
	return func(s *Service) {
		if len(sizes) > 0 {
			s.defaultLayers = sizes
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultLayers: []int{8, 15, 26},
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	return s
}

// Orbit computes the ranked closeness tiers for a subject. An empty
// layer request falls back to the configured default. Fetch failures
// propagate to the caller; the pipeline itself has no error states
// beyond layer-request validation.
func (s *Service) Orbit(ctx context.Context, screenName string, layers []int) (*Orbit, error) {
	if strings.TrimSpace(screenName) == "" {
		return nil, ErrBadSubject
	}
	if len(layers) == 0 {
		layers = s.defaultLayers
	}
	if err := validateLayers(layers); err != nil {
		return nil, err
	}

	key := cacheKey(screenName, layers)
	if s.cache != nil {
		if v, ok := s.cache.Get(ctx, key); ok {
			if orbit, ok := v.(*Orbit); ok {
				metrics.RecordCacheHit()
				return orbit, nil
			}
		}
		metrics.RecordCacheMiss()
	}

	start := time.Now()

	f, err := s.fetchAll(ctx, screenName)
	if err != nil {
		return nil, err
	}

	tracker := record.NewTracker(screenName, f.followers)
	tracker.RecordMentions(f.mentions)
	tracker.RecordTimeline(f.timeline)
	tracker.RecordLikes(f.likes)

	totals := tracker.Totals()
	metrics.RecordInteractions(record.KindMention, totals.Mentions)
	metrics.RecordInteractions(record.KindReply, totals.Replies)
	metrics.RecordInteractions(record.KindRetweet, totals.Retweets)
	metrics.RecordInteractions(record.KindLike, totals.Likes)

	tallies := scoring.ScoreAll(tracker.Records())
	metrics.RecordAccountsRanked(len(tallies))

	ranked := rank.Top(tallies, tier.Sum(layers))
	if err := s.enrich(ctx, ranked); err != nil {
		return nil, err
	}

	orbit := &Orbit{
		ScreenName: screenName,
		Layers:     tier.Partition(ranked, layers),
		Totals:     totals,
		Friends:    f.friends,
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, orbit)
		metrics.UpdateCacheEntries(s.cache.Len())
	}
	metrics.RecordOrbitComputed(float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "orbit computed",
		logger.String("subject", screenName),
		logger.Int("accounts", len(tallies)),
		logger.Int("ranked", len(ranked)),
	)
	return orbit, nil
}

// enrich batch-fetches avatars for the ranked set and attaches them in
// place. Ids absent from the returned mapping keep an empty avatar.
func (s *Service) enrich(ctx context.Context, ranked []scoring.Tally) error {
	if len(ranked) == 0 {
		return nil
	}
	ids := make([]string, len(ranked))
	for i, entry := range ranked {
		ids[i] = entry.ID
	}
	avatars, err := s.fetcher.Avatars(ctx, ids)
	if err != nil {
		return fmt.Errorf("fetch avatars: %w", err)
	}
	for i := range ranked {
		if url, ok := avatars[ranked[i].ID]; ok {
			ranked[i].Avatar = url
		}
	}
	return nil
}

// fetched bundles the five upstream collections for one subject.
type fetched struct {
	followers []string
	friends   []string
	mentions  []model.Post
	timeline  []model.Post
	likes     []model.Post
}

// fetchAll issues the five independent fetches concurrently. The first
// failure cancels the rest and is returned.
func (s *Service) fetchAll(ctx context.Context, screenName string) (*fetched, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var f fetched
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	run := func(fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
			}
		}()
	}

	run(func(ctx context.Context) error {
		v, err := s.fetcher.Followers(ctx, screenName)
		if err != nil {
			return fmt.Errorf("fetch followers: %w", err)
		}
		f.followers = v
		return nil
	})
	run(func(ctx context.Context) error {
		v, err := s.fetcher.Friends(ctx, screenName)
		if err != nil {
			return fmt.Errorf("fetch friends: %w", err)
		}
		f.friends = v
		return nil
	})
	run(func(ctx context.Context) error {
		v, err := s.fetcher.Mentions(ctx, screenName)
		if err != nil {
			return fmt.Errorf("fetch mentions: %w", err)
		}
		f.mentions = v
		return nil
	})
	run(func(ctx context.Context) error {
		v, err := s.fetcher.Timeline(ctx, screenName)
		if err != nil {
			return fmt.Errorf("fetch timeline: %w", err)
		}
		f.timeline = v
		return nil
	})
	run(func(ctx context.Context) error {
		v, err := s.fetcher.Likes(ctx, screenName)
		if err != nil {
			return fmt.Errorf("fetch likes: %w", err)
		}
		f.likes = v
		return nil
	})

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return &f, nil
}

func validateLayers(layers []int) error {
	for _, size := range layers {
		if size < 0 {
			return fmt.Errorf("%w: negative layer size %d", ErrBadLayers, size)
		}
	}
	if total := tier.Sum(layers); total > avatarBatchLimit {
		return fmt.Errorf("%w: %d entries requested, limit %d", ErrLayerBudget, total, avatarBatchLimit)
	}
	return nil
}

func cacheKey(screenName string, layers []int) string {
	sizes := make([]string, len(layers))
	for i, size := range layers {
		sizes[i] = strconv.Itoa(size)
	}
	return strings.ToLower(screenName) + "|" + strings.Join(sizes, ",")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"default_layers": s.defaultLayers,
		"cache_enabled":  s.cache != nil,
	}
	if s.cache != nil {
		stats["cache_entries"] = s.cache.Len()
	}
	return stats
}

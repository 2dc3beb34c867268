// Package demo generates synthetic interaction data and runs the orbit
// pipeline offline, for development without API credentials.
package demo

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/okian/orbit/internal/domain/model"
)

// Default generation constants.
const (
	defaultAccounts = 40
	defaultPosts    = 300
	defaultSeed     = 42
)

// Generator produces a deterministic synthetic dataset and serves it
// through the app.Fetcher interface.
type Generator struct {
	subject   string
	accounts  []model.Author
	followers []string
	friends   []string
	mentions  []model.Post
	timeline  []model.Post
	likes     []model.Post
	avatars   map[string]string
}

// GeneratorOption configures dataset generation.
type GeneratorOption func(*generatorConfig)

type generatorConfig struct {
	accounts int
	posts    int
	seed     int64
}

// WithAccounts sets how many synthetic accounts to generate.
func WithAccounts(n int) GeneratorOption {
	return func(c *generatorConfig) {
		if n > 0 {
			c.accounts = n
		}
	}
}

// WithPosts sets how many synthetic posts to spread across the kinds.
func WithPosts(n int) GeneratorOption {
	return func(c *generatorConfig) {
		if n > 0 {
			c.posts = n
		}
	}
}

// WithSeed fixes the random seed for reproducible datasets.
func WithSeed(seed int64) GeneratorOption {
	return func(c *generatorConfig) {
		c.seed = seed
	}
}

// NewGenerator builds a synthetic dataset for the given subject.
// Roughly a quarter of the accounts are non-followers, so the
// eligibility gate has something to discard.
func NewGenerator(subject string, opts ...GeneratorOption) *Generator {
	cfg := &generatorConfig{
		accounts: defaultAccounts,
		posts:    defaultPosts,
		seed:     defaultSeed,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	rng := rand.New(rand.NewSource(cfg.seed)) //nolint:gosec // deterministic seed for reproducible demos

	g := &Generator{
		subject: subject,
		avatars: make(map[string]string),
	}

	for i := 0; i < cfg.accounts; i++ {
		author := model.Author{
			ID:         uuid.New().String(),
			ScreenName: fmt.Sprintf("account_%03d", i),
		}
		g.accounts = append(g.accounts, author)
		if i%4 != 0 {
			g.followers = append(g.followers, author.ID)
		}
		if rng.Intn(2) == 0 {
			g.friends = append(g.friends, author.ID)
		}
		g.avatars[author.ID] = fmt.Sprintf("https://avatars.demo/%s.png", author.ID)
	}

	// Skew interactions toward low-index accounts so the orbit has a
	// clear inner circle.
	pick := func() model.Author {
		idx := rng.Intn(len(g.accounts))
		if closer := rng.Intn(len(g.accounts)); closer < idx {
			idx = closer
		}
		return g.accounts[idx]
	}

	for i := 0; i < cfg.posts; i++ {
		author := pick()
		post := model.Post{ID: uuid.New().String(), Author: author}
		switch rng.Intn(4) {
		case 0:
			g.mentions = append(g.mentions, post)
		case 1:
			target := pick()
			g.timeline = append(g.timeline, model.Post{
				ID:        post.ID,
				Author:    model.Author{ScreenName: subject},
				InReplyTo: &target,
			})
		case 2:
			original := pick()
			g.timeline = append(g.timeline, model.Post{
				ID:        post.ID,
				Author:    model.Author{ScreenName: subject},
				RetweetOf: &original,
			})
		default:
			g.likes = append(g.likes, post)
		}
	}

	return g
}

// Followers serves the synthetic follower ids.
func (g *Generator) Followers(ctx context.Context, screenName string) ([]string, error) {
	return g.followers, nil
}

// Friends serves the synthetic friend ids.
func (g *Generator) Friends(ctx context.Context, screenName string) ([]string, error) {
	return g.friends, nil
}

// Mentions serves the synthetic mention posts.
func (g *Generator) Mentions(ctx context.Context, screenName string) ([]model.Post, error) {
	return g.mentions, nil
}

// Timeline serves the synthetic timeline posts.
func (g *Generator) Timeline(ctx context.Context, screenName string) ([]model.Post, error) {
	return g.timeline, nil
}

// Likes serves the synthetic liked posts.
func (g *Generator) Likes(ctx context.Context, screenName string) ([]model.Post, error) {
	return g.likes, nil
}

// Avatars serves synthetic avatar URLs for the requested ids.
func (g *Generator) Avatars(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if url, ok := g.avatars[id]; ok {
			out[id] = url
		}
	}
	return out, nil
}

// Package xapi implements the upstream fetch boundary against the X
// API v2. Raw payloads are decoded here, once, into the pipeline's
// model types; nothing downstream touches wire shapes.
package xapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/orbit/internal/domain/model"
	"github.com/okian/orbit/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultTimeout     = 15 * time.Second
	defaultRPS         = 2.0
	defaultBurst       = 10
	defaultMaxAttempts = 5

	// maxAvatarBatch is the upstream cap on ids per batch user lookup.
	maxAvatarBatch = 100
)

// Client is a bearer-token client for the X API v2.
type Client struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int

	fetchLimit    int
	followerLimit int

	// screen name -> account id, warm after the first lookup
	mu  sync.Mutex
	ids map[string]string
}

// NewClient creates an X API client with configuration options.
func NewClient(baseURL, bearerToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		bearerToken:   bearerToken,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		limiter:       rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		maxAttempts:   defaultMaxAttempts,
		fetchLimit:    200,
		followerLimit: 1000,
		ids:           make(map[string]string),
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) auth(req *http.Request) {
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}
	req.Header.Set("Accept", "application/json")
}

// get performs one rate-limited, retried GET and decodes the JSON body
// into out. The endpoint label only feeds metrics.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.auth(req)

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	resp, err := c.doWithRetry(ctx, endpoint, req)
	metrics.RecordFetchDuration(endpoint, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordFetchError(endpoint)
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordFetchError(endpoint)
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// userPayload is the wire shape shared by user lookups.
type userPayload struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url"`
}

// tweetPayload is the wire shape shared by tweet lookups.
type tweetPayload struct {
	ID               string `json:"id"`
	AuthorID         string `json:"author_id"`
	InReplyToUserID  string `json:"in_reply_to_user_id"`
	ReferencedTweets []struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	} `json:"referenced_tweets"`
}

// includesPayload carries expanded objects referenced by the data array.
type includesPayload struct {
	Users  []userPayload  `json:"users"`
	Tweets []tweetPayload `json:"tweets"`
}

// resolveID maps a screen name to an account id, caching the answer.
func (c *Client) resolveID(ctx context.Context, screenName string) (string, error) {
	if screenName == "" {
		return "", ErrEmptySubject
	}

	c.mu.Lock()
	id, ok := c.ids[screenName]
	c.mu.Unlock()
	if ok {
		return id, nil
	}

	u := fmt.Sprintf("%s/users/by/username/%s", c.baseURL, url.PathEscape(screenName))
	var raw struct {
		Data userPayload `json:"data"`
	}
	if err := c.get(ctx, "user_by_username", u, &raw); err != nil {
		return "", err
	}
	if raw.Data.ID == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownAccount, screenName)
	}

	c.mu.Lock()
	c.ids[screenName] = raw.Data.ID
	c.mu.Unlock()
	return raw.Data.ID, nil
}

// Followers returns the ids of accounts following the subject.
func (c *Client) Followers(ctx context.Context, screenName string) ([]string, error) {
	return c.connections(ctx, "followers", screenName)
}

// Friends returns the ids of accounts the subject follows.
func (c *Client) Friends(ctx context.Context, screenName string) ([]string, error) {
	return c.connections(ctx, "following", screenName)
}

func (c *Client) connections(ctx context.Context, kind, screenName string) ([]string, error) {
	id, err := c.resolveID(ctx, screenName)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/users/%s/%s?max_results=%d", c.baseURL, url.PathEscape(id), kind, c.followerLimit)
	var raw struct {
		Data []userPayload `json:"data"`
	}
	if err := c.get(ctx, kind, u, &raw); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw.Data))
	for _, d := range raw.Data {
		out = append(out, d.ID)
	}
	return out, nil
}

// Mentions returns recent posts mentioning the subject, with authors
// resolved from the expanded user objects.
func (c *Client) Mentions(ctx context.Context, screenName string) ([]model.Post, error) {
	id, err := c.resolveID(ctx, screenName)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/users/%s/mentions?max_results=%d&tweet.fields=author_id&expansions=author_id",
		c.baseURL, url.PathEscape(id), c.fetchLimit)
	var raw struct {
		Data     []tweetPayload  `json:"data"`
		Includes includesPayload `json:"includes"`
	}
	if err := c.get(ctx, "mentions", u, &raw); err != nil {
		return nil, err
	}
	users := indexUsers(raw.Includes.Users)
	out := make([]model.Post, 0, len(raw.Data))
	for _, d := range raw.Data {
		out = append(out, model.Post{
			ID:     d.ID,
			Author: model.Author{ID: d.AuthorID, ScreenName: users[d.AuthorID]},
		})
	}
	return out, nil
}

// Timeline returns the subject's own recent posts with reply targets
// and retweeted authors decoded from referenced tweets.
func (c *Client) Timeline(ctx context.Context, screenName string) ([]model.Post, error) {
	id, err := c.resolveID(ctx, screenName)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/users/%s/tweets?max_results=%d&tweet.fields=in_reply_to_user_id,referenced_tweets&expansions=in_reply_to_user_id,referenced_tweets.id.author_id",
		c.baseURL, url.PathEscape(id), c.fetchLimit)
	var raw struct {
		Data     []tweetPayload  `json:"data"`
		Includes includesPayload `json:"includes"`
	}
	if err := c.get(ctx, "timeline", u, &raw); err != nil {
		return nil, err
	}
	users := indexUsers(raw.Includes.Users)
	originals := make(map[string]string, len(raw.Includes.Tweets)) // tweet id -> author id
	for _, t := range raw.Includes.Tweets {
		originals[t.ID] = t.AuthorID
	}

	out := make([]model.Post, 0, len(raw.Data))
	for _, d := range raw.Data {
		post := model.Post{
			ID:     d.ID,
			Author: model.Author{ID: id, ScreenName: screenName},
		}
		if d.InReplyToUserID != "" {
			post.InReplyTo = &model.Author{
				ID:         d.InReplyToUserID,
				ScreenName: users[d.InReplyToUserID],
			}
		}
		for _, ref := range d.ReferencedTweets {
			if ref.Type != "retweeted" {
				continue
			}
			if authorID := originals[ref.ID]; authorID != "" {
				post.RetweetOf = &model.Author{
					ID:         authorID,
					ScreenName: users[authorID],
				}
			}
		}
		out = append(out, post)
	}
	return out, nil
}

// Likes returns posts the subject liked, with authors resolved.
func (c *Client) Likes(ctx context.Context, screenName string) ([]model.Post, error) {
	id, err := c.resolveID(ctx, screenName)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/users/%s/liked_tweets?max_results=%d&tweet.fields=author_id&expansions=author_id",
		c.baseURL, url.PathEscape(id), c.fetchLimit)
	var raw struct {
		Data     []tweetPayload  `json:"data"`
		Includes includesPayload `json:"includes"`
	}
	if err := c.get(ctx, "likes", u, &raw); err != nil {
		return nil, err
	}
	users := indexUsers(raw.Includes.Users)
	out := make([]model.Post, 0, len(raw.Data))
	for _, d := range raw.Data {
		out = append(out, model.Post{
			ID:     d.ID,
			Author: model.Author{ID: d.AuthorID, ScreenName: users[d.AuthorID]},
		})
	}
	return out, nil
}

// Avatars batch-fetches profile image URLs for up to 100 account ids.
// Ids the upstream does not return are simply absent from the result.
func (c *Client) Avatars(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	if len(ids) > maxAvatarBatch {
		return nil, fmt.Errorf("%w: %d ids", ErrBatchTooLarge, len(ids))
	}
	metrics.RecordAvatarBatch(len(ids))

	joined := url.QueryEscape(strings.Join(ids, ","))
	u := fmt.Sprintf("%s/users?ids=%s&user.fields=profile_image_url", c.baseURL, joined)
	var raw struct {
		Data []userPayload `json:"data"`
	}
	if err := c.get(ctx, "avatars", u, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw.Data))
	for _, d := range raw.Data {
		if d.ProfileImageURL != "" {
			out[d.ID] = d.ProfileImageURL
		}
	}
	return out, nil
}

func indexUsers(users []userPayload) map[string]string {
	out := make(map[string]string, len(users))
	for _, u := range users {
		out[u.ID] = u.Username
	}
	return out
}

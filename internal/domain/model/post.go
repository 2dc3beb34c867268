// Package model contains the boundary types fed into the orbit pipeline.
//
// The upstream API returns loosely structured post objects; the fetch
// adapter decodes them once into these shapes so the core never probes
// raw payloads. Optional associations (reply target, retweeted author)
// are nil pointers, not sentinel values.
package model

// Author identifies an account by its stable id and display handle.
// The id is the identity; the screen name is for display and for the
// case-insensitive self-exclusion check.
type Author struct {
	ID         string `json:"id"`
	ScreenName string `json:"screen_name"`
}

// Zero reports whether the author carries no identity.
func (a Author) Zero() bool {
	return a.ID == "" && a.ScreenName == ""
}

// Post is one timeline, mention, or like item.
type Post struct {
	ID     string `json:"id"`
	Author Author `json:"author"`

	// InReplyTo is the account this post replies to, nil when the post
	// is not a reply.
	InReplyTo *Author `json:"in_reply_to,omitempty"`

	// RetweetOf is the author of the embedded original post, nil when
	// the post is not a retweet.
	RetweetOf *Author `json:"retweet_of,omitempty"`
}

// Package api implements the typed HTTP client for the backend REST API.
// All requests carry a bearer access token except the code exchange, run
// under a bounded timeout, and decode into validator-checked DTOs.
package api

import "context"

// TokenSource supplies the current access token for authenticated requests.
// An empty string means "no session"; the request is sent without the
// Authorization header and the backend answers 401.
type TokenSource func() string

// Client is the backend API surface used by the auth manager and note store.
type Client interface {
	// ExchangeCode trades an authorization code for a token pair.
	ExchangeCode(ctx context.Context, code, nextPage string) (*TokenPair, error)

	// CheckSession asks the backend whether the current token pair is still
	// good, or whether the user must be sent through authorization again.
	CheckSession(ctx context.Context, accessToken, refreshToken, nextPage string) (*CheckResult, error)

	// GetUser fetches the profile for the given user id.
	GetUser(ctx context.Context, id string) (*User, error)

	// GetFeed requests count recent posts.
	GetFeed(ctx context.Context, count int) ([]FeedPost, error)

	// CreatePost uploads a locally created note.
	CreatePost(ctx context.Context, req CreatePostRequest) error

	// DeletePost removes a post by id.
	DeletePost(ctx context.Context, id int64) error

	// Like registers a like on a post.
	Like(ctx context.Context, postID int64) error

	// Unlike removes a like by its like id.
	Unlike(ctx context.Context, likeID int64) error

	// GetLikeCount returns the number of likes on a post.
	GetLikeCount(ctx context.Context, postID int64) (int, error)
}

package api

// DTOs for the backend REST contract. Every response type carries validate tags and
// is checked after decoding, so malformed payloads surface as typed decode
// errors instead of zero values leaking into the app.

// TokenPair is returned by the code-exchange endpoint.
type TokenPair struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CheckResult is returned by the session-check endpoint. When Redirect is
// true the backend supplies a fresh authorization URL the user must visit.
type CheckResult struct {
	Redirect bool   `json:"redirect"`
	URL      string `json:"url,omitempty" validate:"required_if=Redirect true"`
}

type checkRequest struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
	NextPage     string `json:"next_page"`
}

// User is the profile record keyed by the token subject.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username" validate:"required"`
	ImgLink  string `json:"img_link,omitempty"`
}

// FeedPost is one post as returned by the feed endpoint. The backend spells
// the hashtag field "hashtages"; kept wire-compatible.
type FeedPost struct {
	ID        int64    `json:"id" validate:"required"`
	AuthorID  string   `json:"author_id" validate:"required"`
	UpdatedAt float64  `json:"updated_at"`
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Hashtags  []string `json:"hashtages"`
}

type feedResponse struct {
	Posts []FeedPost `json:"posts" validate:"dive"`
}

// CreatePostRequest is the body of the post-creation endpoint. ScheduledAt is
// a unix timestamp, null for immediate posts.
type CreatePostRequest struct {
	Title       string   `json:"title"`
	Text        string   `json:"text"`
	Public      bool     `json:"public"`
	Hashtags    []string `json:"hashtages"`
	ScheduledAt *int64   `json:"scheduled_at"`
}

type likeRequest struct {
	PostID int64 `json:"post_id"`
}

type likeCountResponse struct {
	Count int `json:"count" validate:"gte=0"`
}

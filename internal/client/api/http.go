package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/polyprep/polynotes/internal/logging"
)

// maxBodyBytes caps how much of a response body is read; feed payloads for
// the count sizes in use stay well under this.
const maxBodyBytes = 4 << 20

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL  string
	hc       *http.Client
	timeout  time.Duration
	token    TokenSource
	validate *validator.Validate
	log      logging.Logger
}

// NewHTTPClient returns a client bound to the given base URL. Every request
// runs under timeout; token supplies the bearer token for authenticated
// endpoints.
func NewHTTPClient(baseURL string, timeout time.Duration, token TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		hc:       &http.Client{},
		timeout:  timeout,
		token:    token,
		validate: validator.New(),
		log:      log.With("component", "api"),
	}
}

// do performs one request/response cycle. When out is non-nil the response
// body is decoded into it and schema-validated.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any, authed bool) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	c.log.Debug(ctx, "request", "method", method, "url", u)

	resp, err := c.hc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", method, path, ErrTimeout)
		}
		if errors.Is(err, context.Canceled) {
			// A deliberate abort by the caller, not a network failure.
			return fmt.Errorf("%s %s: %w", method, path, context.Canceled)
		}
		return fmt.Errorf("%s %s: %w", method, path, ErrUnreachable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, ErrUnreachable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrDecodeFailed, err)
	}
	if err := c.validate.Struct(out); err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrDecodeFailed, err)
	}
	return nil
}

func (c *HTTPClient) ExchangeCode(ctx context.Context, code, nextPage string) (*TokenPair, error) {
	q := url.Values{}
	q.Set("code", code)
	q.Set("next_page", nextPage)

	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "/auth/mobile/callback", q, nil, &pair, false); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *HTTPClient) CheckSession(ctx context.Context, accessToken, refreshToken, nextPage string) (*CheckResult, error) {
	body := checkRequest{
		RefreshToken: refreshToken,
		AccessToken:  accessToken,
		NextPage:     nextPage,
	}

	var res CheckResult
	if err := c.do(ctx, http.MethodPost, "/auth/mobile/check", nil, body, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (*User, error) {
	q := url.Values{}
	q.Set("id", id)

	var user User
	if err := c.do(ctx, http.MethodGet, "/user", q, nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) GetFeed(ctx context.Context, count int) ([]FeedPost, error) {
	q := url.Values{}
	q.Set("count", strconv.Itoa(count))

	var res feedResponse
	if err := c.do(ctx, http.MethodGet, "/post/random", q, nil, &res, true); err != nil {
		return nil, err
	}
	return res.Posts, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, req CreatePostRequest) error {
	return c.do(ctx, http.MethodPost, "/post", nil, req, nil, true)
}

func (c *HTTPClient) DeletePost(ctx context.Context, id int64) error {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(id, 10))
	return c.do(ctx, http.MethodDelete, "/post", q, nil, nil, true)
}

func (c *HTTPClient) Like(ctx context.Context, postID int64) error {
	return c.do(ctx, http.MethodPost, "/like", nil, likeRequest{PostID: postID}, nil, true)
}

func (c *HTTPClient) Unlike(ctx context.Context, likeID int64) error {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(likeID, 10))
	return c.do(ctx, http.MethodDelete, "/like", q, nil, nil, true)
}

func (c *HTTPClient) GetLikeCount(ctx context.Context, postID int64) (int, error) {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(postID, 10))

	var res likeCountResponse
	if err := c.do(ctx, http.MethodGet, "/like", q, nil, &res, true); err != nil {
		return 0, err
	}
	return res.Count, nil
}

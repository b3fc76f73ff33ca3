package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

const (
	defaultXBaseURL  = "https://api.twitter.com"
	tweetsPath       = "/2/tweets"
	defaultXTimeout  = 10 * time.Second
	maxErrorBodySize = 512
)

// Publisher sends text to the social channel.
type Publisher interface {
	Post(ctx context.Context, text string) error
}

// XConfig holds the OAuth 1.0a user-context credentials for posting.
type XConfig struct {
	BaseURL      string
	AppKey       string
	AppSecret    string
	AccessToken  string
	AccessSecret string
	// HTTPClient is the transport the signing client wraps; defaults to a client with a timeout.
	HTTPClient *http.Client
}

// XClient posts to the X v2 API.
type XClient struct {
	baseURL string
	config  *oauth1.Config
	token   *oauth1.Token
	base    *http.Client
	now     func() time.Time
}

// NewXClient builds a signing client for the given credentials.
func NewXClient(cfg XConfig) *XClient {
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: defaultXTimeout}
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultXBaseURL
	}
	return &XClient{
		baseURL: baseURL,
		config:  oauth1.NewConfig(cfg.AppKey, cfg.AppSecret),
		token:   oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret),
		base:    base,
		now:     time.Now,
	}
}

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Post publishes text. A 429 is returned as *RateLimitError; every other failure is a plain error.
func (c *XClient) Post(ctx context.Context, text string) error {
	payload, err := json.Marshal(tweetRequest{Text: text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tweetsPath, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.config.Client(context.WithValue(ctx, oauth1.HTTPClient, c.base), c.token)
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfter(resp.Header.Get("Retry-After"), resp.Header.Get("x-rate-limit-reset"), c.now()),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return fmt.Errorf("x: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out tweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("x: decode: %w", err)
	}
	if out.Data.ID == "" {
		return fmt.Errorf("x: response carried no post id")
	}
	return nil
}

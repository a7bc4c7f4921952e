package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pdelacruz/newscred/internal/model"
)

// Graph API timestamps look like 2024-03-01T12:00:00+0000
const graphTimeLayout = "2006-01-02T15:04:05-0700"

// How far back recent-activity counting reaches
const recentWindow = 30 * 24 * time.Hour

// GraphClient implements Provider against the Facebook Graph API
type GraphClient struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	now         func() time.Time
}

// NewGraphClient creates a Graph API client from configuration
func NewGraphClient(cfg model.SocialConfig) *GraphClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://graph.facebook.com/v18.0"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &GraphClient{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		now:         time.Now,
	}
}

type graphPostResponse struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Story       string `json:"story"`
	CreatedTime string `json:"created_time"`
	Permalink   string `json:"permalink_url"`
	From        struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"from"`
}

type graphAccountResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsVerified  bool   `json:"is_verified"`
	FanCount    int    `json:"fan_count"`
	CreatedTime string `json:"created_time"`
}

type graphFeedResponse struct {
	Data []struct {
		CreatedTime string `json:"created_time"`
		Likes       struct {
			Summary struct {
				TotalCount int `json:"total_count"`
			} `json:"summary"`
		} `json:"likes"`
		Comments struct {
			Summary struct {
				TotalCount int `json:"total_count"`
			} `json:"summary"`
		} `json:"comments"`
		Shares struct {
			Count int `json:"count"`
		} `json:"shares"`
	} `json:"data"`
}

// GetPost fetches a post by id
func (c *GraphClient) GetPost(ctx context.Context, postID string) (*Post, error) {
	if c.accessToken == "" {
		return nil, ErrNotConfigured
	}

	var parsed graphPostResponse
	fields := "id,message,story,created_time,permalink_url,from"
	if err := c.get(ctx, "/"+postID, fields, &parsed); err != nil {
		return nil, fmt.Errorf("fetch post %s: %w", postID, err)
	}

	message := parsed.Message
	if message == "" {
		message = parsed.Story
	}

	post := &Post{
		ID:         parsed.ID,
		Message:    message,
		AuthorID:   parsed.From.ID,
		AuthorName: parsed.From.Name,
		Permalink:  parsed.Permalink,
	}
	if t, err := time.Parse(graphTimeLayout, parsed.CreatedTime); err == nil {
		post.CreatedTime = t
	}
	return post, nil
}

// GetAccount fetches an account and derives its activity metrics from the
// most recent posts on its feed
func (c *GraphClient) GetAccount(ctx context.Context, handle string) (*Account, error) {
	if c.accessToken == "" {
		return nil, ErrNotConfigured
	}

	var acct graphAccountResponse
	if err := c.get(ctx, "/"+handle, "id,name,is_verified,fan_count,created_time", &acct); err != nil {
		return nil, fmt.Errorf("fetch account %s: %w", handle, err)
	}

	var feed graphFeedResponse
	fields := "created_time,likes.summary(true),comments.summary(true),shares"
	if err := c.get(ctx, "/"+handle+"/posts", fields, &feed); err != nil {
		return nil, fmt.Errorf("fetch account feed %s: %w", handle, err)
	}

	now := c.now()
	metrics := model.ActivityMetrics{
		TotalPosts:    len(feed.Data),
		FollowerCount: acct.FanCount,
	}

	totalEngagement := 0
	for _, post := range feed.Data {
		totalEngagement += post.Likes.Summary.TotalCount +
			post.Comments.Summary.TotalCount + post.Shares.Count
		if t, err := time.Parse(graphTimeLayout, post.CreatedTime); err == nil {
			if now.Sub(t) <= recentWindow {
				metrics.RecentPosts30d++
			}
		}
	}
	if len(feed.Data) > 0 {
		metrics.AverageEngagement = float64(totalEngagement) / float64(len(feed.Data))
	}
	metrics.PostingFrequency = float64(metrics.RecentPosts30d) / 30.0

	if t, err := time.Parse(graphTimeLayout, acct.CreatedTime); err == nil {
		metrics.AccountAgeDays = int(now.Sub(t).Hours() / 24)
		metrics.AccountAgeKnown = true
	}

	return &Account{
		ID:       acct.ID,
		Name:     acct.Name,
		Verified: acct.IsVerified,
		Metrics:  metrics,
	}, nil
}

func (c *GraphClient) get(ctx context.Context, path, fields string, out any) error {
	params := url.Values{}
	params.Set("fields", fields)
	params.Set("access_token", c.accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graph api status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode graph response: %w", err)
	}
	return nil
}

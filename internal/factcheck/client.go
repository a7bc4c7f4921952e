package factcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/pdelacruz/newscred/internal/model"
)

// ErrNotConfigured is returned when no API key is available. Callers treat
// it like any other upstream failure: the evidence signal defaults.
var ErrNotConfigured = errors.New("fact check API key not configured")

// Provider searches for third-party fact checks of a claim. An error means
// the provider was unreachable or unconfigured; an empty slice is a valid
// "no fact checks found" result.
type Provider interface {
	Search(ctx context.Context, query string) ([]model.EvidenceClaim, error)
}

// Client queries the Google Fact Check Tools claims:search endpoint
type Client struct {
	httpClient   *http.Client
	apiKey       string
	baseURL      string
	languageCode string
	pageSize     int
	cache        *gocache.Cache
	limiter      *rate.Limiter
}

// NewClient creates a fact-check client from configuration. Responses are
// cached in memory so repeated phrases within one process don't re-query.
func NewClient(cfg model.FactCheckConfig) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		languageCode: cfg.LanguageCode,
		pageSize:     pageSize,
		cache:        gocache.New(15*time.Minute, 5*time.Minute),
		limiter:      rate.NewLimiter(rate.Limit(5), 5),
	}
}

// claimsSearchResponse mirrors the claims:search JSON shape
type claimsSearchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimDate   string `json:"claimDate"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			Title         string `json:"title"`
			ReviewDate    string `json:"reviewDate"`
			TextualRating string `json:"textualRating"`
			LanguageCode  string `json:"languageCode"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Search returns normalized fact-check claims for a query
func (c *Client) Search(ctx context.Context, query string) ([]model.EvidenceClaim, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	if cached, found := c.cache.Get(query); found {
		return cached.([]model.EvidenceClaim), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("query", query)
	params.Set("languageCode", c.languageCode)
	params.Set("pageSize", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fact check search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fact check API status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4_000_000))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed claimsSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	claims := make([]model.EvidenceClaim, 0, len(parsed.Claims))
	for _, raw := range parsed.Claims {
		claim := model.EvidenceClaim{
			ClaimText: raw.Text,
			Claimant:  raw.Claimant,
			ClaimDate: raw.ClaimDate,
		}
		for _, review := range raw.ClaimReview {
			publisher := review.Publisher.Name
			if publisher == "" {
				publisher = "Unknown"
			}
			claim.Reviews = append(claim.Reviews, model.ClaimReview{
				Publisher:        publisher,
				PublisherSite:    review.Publisher.Site,
				URL:              review.URL,
				Title:            review.Title,
				TextualRating:    review.TextualRating,
				NormalizedRating: NormalizeRating(review.TextualRating),
			})
		}
		claims = append(claims, claim)
	}

	c.cache.Set(query, claims, gocache.DefaultExpiration)

	return claims, nil
}

package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdelacruz/newscred/internal/cache"
	"github.com/pdelacruz/newscred/internal/model"
	"github.com/pdelacruz/newscred/internal/util"
	"github.com/pdelacruz/newscred/internal/worker"
)

// ContentExtractor retrieves readable text for a URL. Implementations are
// best-effort: an empty string (or an error) means the page yielded nothing.
type ContentExtractor interface {
	FromURL(ctx context.Context, rawURL string) (string, error)
}

// PageExtractor fetches a web page and strips it down to its readable text.
// Fetches respect robots.txt, are rate limited per domain, and are cached.
type PageExtractor struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil when robots checking is disabled
	limiter    *worker.Limiter
	store      cache.Cache // nil when caching is disabled
}

// NewPageExtractor creates a page extractor from HTTP configuration
func NewPageExtractor(cfg model.HTTPConfig, store cache.Cache) *PageExtractor {
	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	ratePerSecond := cfg.RatePerSecond
	if ratePerSecond <= 0 {
		ratePerSecond = 2
	}

	return &PageExtractor{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
		limiter:   worker.NewLimiter(ratePerSecond, cfg.RateBurst),
		store:     store,
	}
}

// FromURL fetches the page at rawURL and returns its readable text
func (e *PageExtractor) FromURL(ctx context.Context, rawURL string) (string, error) {
	if e.store != nil {
		if cached, found := e.store.Get(cache.Key(rawURL)); found {
			return string(cached), nil
		}
	}

	crawlDelay := time.Duration(0)
	if e.robots != nil {
		allowed, delay, err := e.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
		}
		crawlDelay = delay
	}

	if err := e.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	limited := io.LimitReader(resp.Body, e.maxBytes)
	text, err := ReadableText(limited)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	if e.store != nil && text != "" {
		_ = e.store.Set(cache.Key(rawURL), []byte(text), 0)
	}

	return text, nil
}

// ReadableText extracts readable article text from an HTML document.
// Paragraph content is preferred; when a page carries too little of it the
// whole body text is used instead.
func ReadableText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, iframe, nav, footer, aside").Remove()

	var parts []string
	doc.Find("article p, main p, p").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	text := collapseWhitespace(strings.Join(parts, " "))

	// Pages without paragraph markup still deserve a best effort
	if len(text) < 100 {
		body := collapseWhitespace(doc.Find("body").Text())
		if len(body) > len(text) {
			text = body
		}
	}

	return text, nil
}

// collapseWhitespace squashes runs of whitespace into single spaces
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

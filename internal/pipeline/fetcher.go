package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/mwalden/termlens/internal/cache"
	"github.com/mwalden/termlens/internal/model"
	"github.com/mwalden/termlens/internal/util"
	"github.com/mwalden/termlens/internal/worker"
)

// fetchSleepFunc is swappable so retry tests run without real backoff.
var fetchSleepFunc = time.Sleep

const fetchMaxAttempts = 3

// Fetcher retrieves contract documents over HTTP with a body-size cap,
// per-host rate limiting, robots.txt checks, and a read-through cache.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	store      cache.Store
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
}

// NewFetcher creates a fetcher. A nil store disables caching; robots
// checking follows the config flag.
func NewFetcher(cfg model.HTTPConfig, store cache.Store) *Fetcher {
	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.ProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
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
		store:     store,
		robots:    robots,
		limiter:   worker.NewLimiter(cfg.RatePerHost, cfg.RateBurst),
	}
}

// FetchResult carries the fetched document body and derived metadata.
type FetchResult struct {
	Body      string
	FinalURL  string
	Subject   string
	FromCache bool
}

// Fetch retrieves a document, consulting the cache first and retrying
// transient upstream failures.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	key := cache.Key(rawURL)
	if f.store != nil {
		if body, found := f.store.Get(key); found {
			return &FetchResult{
				Body:      string(body),
				FinalURL:  rawURL,
				Subject:   subjectFromURL(rawURL),
				FromCache: true,
			}, nil
		}
	}

	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
		}
		if err := f.limiter.WaitWithDelay(ctx, rawURL, delay); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	} else if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	result, err := f.fetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if f.store != nil {
		_ = f.store.Set(key, []byte(result.Body), 0)
	}
	return result, nil
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchMaxAttempts; attempt++ {
		result, retryable, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable || attempt == fetchMaxAttempts {
			break
		}
		fetchSleepFunc(time.Duration(attempt) * 500 * time.Millisecond)
	}
	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (*FetchResult, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}

	finalURL := resp.Request.URL.String()
	return &FetchResult{
		Body:     string(body),
		FinalURL: finalURL,
		Subject:  subjectFromURL(finalURL),
	}, false, nil
}

// subjectFromURL derives a readable document name from the last URL path
// segment.
func subjectFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	segment := path.Base(strings.Trim(parsed.Path, "/"))
	if segment == "" || segment == "." {
		return parsed.Host
	}
	segment = strings.TrimSuffix(segment, path.Ext(segment))
	segment = strings.ReplaceAll(segment, "_", " ")
	segment = strings.ReplaceAll(segment, "-", " ")
	return segment
}

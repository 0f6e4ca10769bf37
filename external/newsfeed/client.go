package newsfeed

import (
	"compress/flate"
	"compress/gzip"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analyzer/internal/domain/news"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
	"github.com/riskibarqy/match-analyzer/internal/platform/resilience"
	"github.com/riskibarqy/match-analyzer/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultUserAgent       = "Mozilla/5.0 (compatible; MatchAnalyzer/1.0)"
	defaultMaxItemsPerFeed = 10
	maxFeedBodyBytes       = 4 << 20
)

var errFeedTransient = crerr.New("news feed transient failure")

type Feed struct {
	Name string
	URL  string
}

type ClientConfig struct {
	HTTPClient      *http.Client
	Feeds           []Feed
	Timeout         time.Duration
	MaxItemsPerFeed int
	UserAgent       string
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

// Client reads football headlines from a fixed set of RSS feeds.
type Client struct {
	httpClient      *http.Client
	feeds           []Feed
	maxItemsPerFeed int
	userAgent       string
	logger          *logging.Logger
	breaker         *resilience.Breaker
	flight          resilience.Group[[]news.Item]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	maxItems := cfg.MaxItemsPerFeed
	if maxItems <= 0 {
		maxItems = defaultMaxItemsPerFeed
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient:      httpClient,
		feeds:           append([]Feed(nil), cfg.Feeds...),
		maxItemsPerFeed: maxItems,
		userAgent:       userAgent,
		logger:          logger,
		breaker:         resilience.NewBreaker("news-feeds", cfg.CircuitBreaker).OnTransition(logTransition(logger)),
	}
}

type feedResult struct {
	index int
	items []news.Item
	err   error
}

// Fetch reads every feed in parallel and concatenates their items in feed
// order. A failing feed is logged and skipped; the call fails only when no
// feed could be read.
func (c *Client) Fetch(ctx context.Context) ([]news.Item, error) {
	if len(c.feeds) == 0 {
		return []news.Item{}, nil
	}
	// Only the caller that goes upstream holds a breaker slot; callers
	// sharing its flight must not take half-open probes.
	items, shared, err := c.flight.Do("feeds", func() ([]news.Item, error) {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "news feed circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: news feeds are temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		items, fetchErr := c.fetchAll(ctx)
		c.breaker.Done(fetchErr != nil && stderrors.Is(fetchErr, errFeedTransient))
		return items, fetchErr
	})
	if err != nil {
		return nil, err
	}
	if shared {
		// Callers may reorder the slice they get back.
		items = append([]news.Item(nil), items...)
	}
	return items, nil
}

func (c *Client) fetchAll(ctx context.Context) ([]news.Item, error) {
	p := pool.NewWithResults[feedResult]().WithMaxGoroutines(len(c.feeds))
	for i, feed := range c.feeds {
		p.Go(func() feedResult {
			items, err := c.fetchFeed(ctx, feed)
			return feedResult{index: i, items: items, err: err}
		})
	}
	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	all := make([]news.Item, 0, len(c.feeds)*c.maxItemsPerFeed)
	var errs []error
	for _, res := range results {
		if res.err != nil {
			feed := c.feeds[res.index]
			c.logger.WarnContext(ctx, "news feed failed", "feed", feed.Name, "error", res.err)
			errs = append(errs, res.err)
			continue
		}
		all = append(all, res.items...)
	}

	if len(errs) == len(c.feeds) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, crerr.Wrapf(stderrors.Join(errs...), "all %d news feeds failed", len(errs))
	}

	c.logger.DebugContext(ctx, "news feeds fetched", "feeds", len(c.feeds), "failed", len(errs), "items", len(all))
	return all, nil
}

func (c *Client) fetchFeed(ctx context.Context, feed Feed) ([]news.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, crerr.Wrapf(err, "build request feed=%s", feed.Name)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: feed=%s: %v", errFeedTransient, feed.Name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: feed=%s status=%d", errFeedTransient, feed.Name, resp.StatusCode)
		}
		return nil, crerr.Newf("feed=%s status=%d", feed.Name, resp.StatusCode)
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, crerr.Wrapf(err, "decode body feed=%s", feed.Name)
	}
	defer func() {
		_ = body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(body, maxFeedBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body feed=%s: %v", errFeedTransient, feed.Name, err)
	}

	items, err := parseRSS(raw, feed, c.maxItemsPerFeed)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse rss feed=%s", feed.Name)
	}
	return items, nil
}

// decodeBody undoes Content-Encoding. Setting Accept-Encoding by hand turns
// off the transport's transparent gzip handling.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "", "identity":
		return io.NopCloser(resp.Body), nil
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		return nil, crerr.Newf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}
}

func logTransition(logger *logging.Logger) resilience.TransitionFunc {
	return func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
	}
}

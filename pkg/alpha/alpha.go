// Package alpha queries WolframAlpha and returns the result pods as text,
// with tabular pods rendered by package texttable.
package alpha

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/walpha-cli/walpha/pkg/httpclient"
	"github.com/walpha-cli/walpha/pkg/texttable"
)

const (
	DefaultBaseURL     = "https://www.wolframalpha.com/input/"
	DefaultConcurrency = 4
	DefaultTimeout     = 30 * time.Second

	maxBodySize = 4 << 20
)

var (
	ErrEmptyQuery        = errors.New("query cannot be empty")
	ErrRobotsDisallowed  = errors.New("query page blocked by robots.txt")
	recalculateReference = regexp.MustCompile(`(?i)'(recalculate\.jsp\?id=[^']*?)'`)
	podReference         = regexp.MustCompile(`(?i)'(pod\.jsp\?id=[^']*?)'`)
	closingTags          = strings.NewReplacer("</body>", "", "</html>", "")
)

// StatusError is returned when the result page answers with a non 2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Pod is one titled section of a result.
type Pod struct {
	Title string
	// Text holds the cleaned blocks of the pod, tables rendered, joined by newlines.
	Text string
	// Raw is the pod text as retrieved.
	Raw string
}

type Result struct {
	Query string
	Pods  []Pod
}

type Client struct {
	baseURL       string
	httpClient    *http.Client
	headers       map[string]string
	timeout       time.Duration
	allPods       bool
	concurrency   int
	respectRobots bool
	formatter     *texttable.Formatter
	cache         *cache.Cache
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the client used for every request. Headers and
// timeout options are ignored when it is set.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = httpclient.CanonicalHeaders(headers)
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithAllPods makes Query also fetch the pods the result page loads
// asynchronously.
func WithAllPods(all bool) Option {
	return func(c *Client) {
		c.allPods = all
	}
}

func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithCache keeps results in memory for ttl. A ttl of zero disables caching.
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl <= 0 {
			c.cache = nil
			return
		}
		c.cache = cache.New(ttl, 2*ttl)
	}
}

func WithRespectRobots(respect bool) Option {
	return func(c *Client) {
		c.respectRobots = respect
	}
}

func WithMeasure(measure texttable.Measure) Option {
	return func(c *Client) {
		c.formatter = texttable.New(texttable.WithMeasure(measure))
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		headers:     httpclient.DefaultHeaders(),
		timeout:     DefaultTimeout,
		allPods:     true,
		concurrency: DefaultConcurrency,
		formatter:   texttable.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = httpclient.NewHTTPClient(
			httpclient.WithHeaders(c.headers),
			httpclient.WithTimeout(c.timeout),
		)
	}

	return c
}

// Query retrieves the result pods for query. Failures to load individual
// asynchronous pods are logged and skipped; only a failure of the result
// page itself is returned.
func (c *Client) Query(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	key := fmt.Sprintf("%t:%s", c.allPods, query)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			slog.Debug("Using cached result", "query", query)
			return cached.(*Result), nil
		}
	}

	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	if c.respectRobots && !c.robotsAllowed(ctx, base) {
		return nil, ErrRobotsDisallowed
	}

	page, err := c.get(ctx, c.queryURL(base, query))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch result page: %w", err)
	}
	page = closingTags.Replace(page)

	if c.allPods {
		page += c.asyncPods(ctx, base, page)
	}

	raw, err := extractPods(page + "</body></html>")
	if err != nil {
		return nil, fmt.Errorf("failed to parse result page: %w", err)
	}

	result := &Result{Query: query}
	for _, pod := range raw {
		var formatted []string
		for _, block := range Blocks(pod.text) {
			formatted = append(formatted, c.formatter.FormatOr(block))
		}
		if len(formatted) == 0 {
			continue
		}
		result.Pods = append(result.Pods, Pod{
			Title: pod.title,
			Text:  strings.Join(formatted, "\n"),
			Raw:   pod.text,
		})
	}

	slog.Debug("Query completed", "query", query, "pods", len(result.Pods))

	if c.cache != nil {
		c.cache.SetDefault(key, result)
	}

	return result, nil
}

func (c *Client) queryURL(base *url.URL, query string) string {
	mode := "false"
	if c.allPods {
		mode = "pod"
	}

	u := *base
	u.RawQuery = url.Values{
		"i":            {query},
		"asynchronous": {mode},
		"equal":        {"Submit"},
	}.Encode()

	return u.String()
}

// asyncPods loads the recalculation page and every pod it or page
// references, returning the concatenated markup in reference order.
func (c *Client) asyncPods(ctx context.Context, base *url.URL, page string) string {
	var recalc string
	if m := recalculateReference.FindStringSubmatch(page); m != nil {
		body, err := c.get(ctx, resolve(base, m[1]))
		if err != nil {
			slog.Warn("Failed to fetch recalculation page", "error", err)
		} else {
			recalc = body
		}
	}

	refs := references(page + recalc)
	if len(refs) == 0 {
		return ""
	}

	bodies := make([]string, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, ref := range refs {
		g.Go(func() error {
			body, err := c.get(gctx, resolve(base, ref))
			if err != nil {
				slog.Warn("Failed to fetch pod", "ref", ref, "error", err)
				return nil
			}
			bodies[i] = body
			return nil
		})
	}

	// Pod failures are never returned.
	_ = g.Wait()

	slog.Debug("Fetched asynchronous pods", "count", len(refs))

	return strings.Join(bodies, "")
}

// references returns the distinct pod references of data in order.
func references(data string) []string {
	seen := map[string]bool{}

	var refs []string
	for _, m := range podReference.FindAllStringSubmatch(data, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		refs = append(refs, m[1])
	}
	return refs
}

func resolve(base *url.URL, ref string) string {
	rel, err := url.Parse(ref)
	if err != nil {
		return base.String() + ref
	}
	return base.ResolveReference(rel).String()
}

func (c *Client) get(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

func (c *Client) userAgent() string {
	return cmp.Or(c.headers["User-Agent"], "*")
}
